// -----------------------------------------------------------------------
// Completion Service Factory - selects the configured completion
// provider and constructs the matching service
// -----------------------------------------------------------------------

package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/common"
	"github.com/ternarybob/lumen/internal/interfaces"
)

// NewCompletionService constructs the completion service selected by
// llm.default_provider. API keys resolve KV-first so operators can rotate
// keys without a restart-and-reconfigure cycle.
func NewCompletionService(config *common.Config, kvStorage interfaces.KeyValueStorage, logger arbor.ILogger) (interfaces.CompletionService, error) {
	switch config.LLM.DefaultProvider {
	case common.LLMProviderClaude:
		return NewClaudeService(&config.Claude, kvStorage, logger)
	case common.LLMProviderGemini, "":
		return NewGeminiService(&config.Gemini, kvStorage, logger)
	default:
		return nil, fmt.Errorf("unknown completion provider %q (expected %q or %q)",
			config.LLM.DefaultProvider, common.LLMProviderGemini, common.LLMProviderClaude)
	}
}
