package schema

// AccessRules holds the five per-operation access-rule slots of a
// collection. Each slot is a rule expression pointer with three states:
//
//   - nil: the operation is locked (admins only)
//   - pointer to "": the operation is public
//   - pointer to a non-empty expression: the operation requires the
//     expression to evaluate true (e.g. an authenticated request)
type AccessRules struct {
	List   *string `json:"list"`
	View   *string `json:"view"`
	Create *string `json:"create"`
	Update *string `json:"update"`
	Delete *string `json:"delete"`
}

// Public returns a rule allowing everyone.
func Public() *string {
	s := ""
	return &s
}

// Expr returns a rule gated by the given filter expression.
func Expr(expression string) *string {
	return &expression
}

// AuthenticatedOnly is the common rule requiring a signed-in user.
const AuthenticatedOnly = `@request.auth.id != ""`

// AllAuthenticated returns rules requiring a signed-in user for every
// operation.
func AllAuthenticated() AccessRules {
	return AccessRules{
		List:   Expr(AuthenticatedOnly),
		View:   Expr(AuthenticatedOnly),
		Create: Expr(AuthenticatedOnly),
		Update: Expr(AuthenticatedOnly),
		Delete: Expr(AuthenticatedOnly),
	}
}
