package remote

// Config holds configuration for the remote document store.
type Config struct {
	// Endpoint is the base URL of the store's HTTP API.
	Endpoint string `mapstructure:"endpoint" default:"http://localhost:8090"`
	// AdminEmail is the admin identity used for provisioning.
	AdminEmail string `mapstructure:"admin_email" default:""`
	// AdminPassword is the admin password used for provisioning.
	AdminPassword string `mapstructure:"admin_password" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
