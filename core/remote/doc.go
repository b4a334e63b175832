// Package remote wraps the document store's admin HTTP API behind a local
// Client interface.
//
// The store is an external collaborator: this package only maps the handful
// of endpoints provisioning needs (health, admin auth, collection listing
// and create/update, and the optional users-collection OAuth settings
// patch). Authenticated calls take the Session value explicitly so that a
// session's lifetime is exactly the provisioning run that created it.
//
// The interface exists so the provisioning engine can be tested against the
// testify mock in core/remote/mocks without a live store.
package remote
