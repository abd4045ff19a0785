// internal/builders/article/config.go
package article

// Config holds the article builder's truncation limits.
type Config struct {
	HeadlineMax    int
	DescriptionMax int
}

func LoadConfig() *Config {
	return &Config{
		HeadlineMax:    110,
		DescriptionMax: 320,
	}
}
