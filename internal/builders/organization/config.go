// internal/builders/organization/config.go
package organization

// Config holds the organization builder's knobs.
type Config struct {
	// AnchorFragment is appended to the home URL to form the document @id.
	AnchorFragment string
}

func LoadConfig() *Config {
	return &Config{
		AnchorFragment: "#org",
	}
}
