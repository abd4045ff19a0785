// internal/builders/policypages/config.go
package policypages

// No per-builder knobs yet, but struct provided for consistency.
type Config struct{}

func LoadConfig() *Config {
	return &Config{}
}
