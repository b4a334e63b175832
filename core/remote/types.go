package remote

// Session carries the admin token obtained from Authenticate. It is a plain
// value owned by the provisioning run that created it; the client never
// stores one internally, so sessions cannot leak between runs.
type Session struct {
	Token string
}

// Health is the store's health-check response.
type Health struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CollectionRecord is the store's representation of an existing collection.
// Only the attributes the provisioner consumes are mapped.
type CollectionRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	System bool   `json:"system"`
}

// AuthSettings is an optional OAuth provider configuration applied to the
// store's built-in user-auth collection.
type AuthSettings struct {
	// Provider is the OAuth provider name (e.g., "google").
	Provider string `json:"provider"`
	// ClientID is the provider application client id.
	ClientID string `json:"clientId"`
	// ClientSecret is the provider application client secret.
	ClientSecret string `json:"clientSecret"`
	// Enabled toggles the provider on the users collection.
	Enabled bool `json:"enabled"`
}
