package intent

import (
	"context"

	"workspace-assistant/pkg/llmprovider"
	"workspace-assistant/pkg/log"
)

// Classifier is the interface for the first NLU stage.
type Classifier interface {
	Classify(ctx context.Context, message string, conversationHistory []string) (ClassifierOutput, error)
}

// Extractor is the interface for the second NLU stage.
type Extractor interface {
	Extract(ctx context.Context, in Intent, message string, conversationHistory []string) (Details, error)
}

// LLMClassifier classifies user intent using the provider chain.
type LLMClassifier struct {
	llm *llmprovider.Manager
	l   log.Logger
}

var _ Classifier = (*LLMClassifier)(nil)

// NewClassifier creates a new LLMClassifier.
// Convention: Factory function returns concrete type (not interface) for internal packages
func NewClassifier(llm *llmprovider.Manager, l log.Logger) *LLMClassifier {
	return &LLMClassifier{
		llm: llm,
		l:   l,
	}
}

// LLMExtractor pulls structured slots out of a message once the intent is known.
type LLMExtractor struct {
	llm *llmprovider.Manager
	l   log.Logger
}

var _ Extractor = (*LLMExtractor)(nil)

// NewExtractor creates a new LLMExtractor.
func NewExtractor(llm *llmprovider.Manager, l log.Logger) *LLMExtractor {
	return &LLMExtractor{
		llm: llm,
		l:   l,
	}
}
