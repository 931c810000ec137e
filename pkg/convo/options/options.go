// Package options provides request configuration for the conversation
// engine. The settings/credentials collaborator supplies provider and
// model selection plus feature flags; they travel with each request and
// are never read back mid-stream.
package options

import "time"

// Default client-side timeouts per operation family.
const (
	// DefaultTimeout bounds most streaming turns.
	DefaultTimeout = 60 * time.Second

	// ArgumentTimeout bounds argumentative turns, which routinely chain
	// multiple tool uses.
	ArgumentTimeout = 120 * time.Second
)

// ChatOptions carries the per-surface settings captured at submit time.
type ChatOptions struct {
	// BaseURL locates the backend agent process.
	BaseURL string `yaml:"baseURL"`

	// Provider selects the AI provider for routing.
	Provider string `yaml:"provider"`

	// ModelID selects the model within the provider.
	ModelID string `yaml:"modelId"`

	// WorkspaceRoot is sent with agentic operations.
	WorkspaceRoot string `yaml:"workspaceRoot"`

	// Autonomous lets the backend skip confirmation prompts.
	Autonomous bool `yaml:"autonomous"`

	// LargeContext opts into the provider's extended context window.
	LargeContext bool `yaml:"largeContext"`
}

// imageProviders lists providers whose chat operations accept inline
// image parts.
var imageProviders = map[string]bool{
	"anthropic": true,
	"openai":    true,
	"google":    true,
}

// ProviderSupportsImages reports whether a pending image may be attached
// to a request for the given provider.
func ProviderSupportsImages(provider string) bool {
	return imageProviders[provider]
}
