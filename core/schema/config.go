package schema

// Source selects where the registry is loaded from.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceStorage = "storage"
)

// Config holds configuration for the registry source.
type Config struct {
	// Source selects the registry origin (default, file, storage).
	Source string `mapstructure:"source" default:"default"`
	// Path is the local registry file path when Source is "file".
	Path string `mapstructure:"path" default:"registry.json"`
	// Object is the bucket object key when Source is "storage".
	Object string `mapstructure:"object" default:"registry.json"`
}

// IsValidSource checks if the configured registry source is valid.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceDefault, SourceFile, SourceStorage:
		return true
	default:
		return false
	}
}
