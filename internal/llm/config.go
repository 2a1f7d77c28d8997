// Package llm generates ideal-candidate profiles and screening questions for
// job postings through a Gemini client hidden behind the Client interface.
package llm

// ModelTier selects how much model capability a call pays for.
type ModelTier string

const (
	// TierLite handles cheap classification-style calls.
	TierLite ModelTier = "lite"
	// TierStandard handles structured output such as job profiles.
	TierStandard ModelTier = "standard"
	// TierAdvanced handles long-form reasoning over large postings.
	TierAdvanced ModelTier = "advanced"
)

// Config maps model tiers to concrete model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the Gemini model mapping used in production.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard and
// then lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Models: models}
}
