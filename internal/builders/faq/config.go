// internal/builders/faq/config.go
package faq

// Config holds the FAQ builder's knobs.
type Config struct {
	// MaxItems caps mainEntity length regardless of source.
	MaxItems int
}

func LoadConfig() *Config {
	return &Config{
		MaxItems: 50,
	}
}
