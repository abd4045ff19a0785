// internal/builders/product/config.go
package product

// Config holds the product augmenter's knobs.
type Config struct {
	// MaxReviews caps how many reviews are rebuilt into the markup.
	MaxReviews int
}

func LoadConfig() *Config {
	return &Config{
		MaxReviews: 100,
	}
}
