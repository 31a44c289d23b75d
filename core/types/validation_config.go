package types

// ValidationConfig controls validation behavior
type ValidationConfig struct {
	// Performance: Caching
	EnableCache  bool // Enable validator caching (default: true)
	MaxCacheSize int  // Max cached validators (default: 256)

	// Validation behavior
	AssertFormat bool // Enable format assertions (default: true)
}

// DefaultValidationConfig returns the defaults used by the synthesizer
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		EnableCache:  true,
		MaxCacheSize: 256,
		AssertFormat: true,
	}
}
