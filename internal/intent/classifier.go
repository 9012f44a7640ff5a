package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"workspace-assistant/pkg/llmprovider"
)

// Classify determines user intent from the current message plus recent history.
// Convention: Method accepts context.Context as first parameter
func (c *LLMClassifier) Classify(ctx context.Context, message string, conversationHistory []string) (ClassifierOutput, error) {
	historyContext := ""
	if len(conversationHistory) > 0 {
		historyContext = PromptHistoryPrefix
		for i, msg := range conversationHistory {
			historyContext += fmt.Sprintf("%d. %s\n", i+1, msg)
		}
		historyContext += "\n"
	}

	prompt := historyContext + fmt.Sprintf(PromptClassifySystem, message)

	resp, err := c.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: prompt}},
			},
		},
		Temperature: ClassifyTemperature,
	})
	if err != nil {
		// Every provider failed. Degrade to keyword matching so the engine
		// can still answer simple requests.
		c.l.Warnf(ctx, "%s: %s: %v", LogPrefixClassify, ErrMsgLLMCallFailed, err)
		return keywordClassify(message), nil
	}

	responseText := sanitizeJSONResponse(resp.Text())
	if responseText == "" {
		c.l.Warnf(ctx, "%s: %s", LogPrefixClassify, ErrMsgEmptyResponse)
		return ClassifierOutput{
			Intent:     FallbackIntent,
			Confidence: FallbackConfidence,
			Reasoning:  ReasonEmptyResponse,
		}, nil
	}

	var output ClassifierOutput
	if err := json.Unmarshal([]byte(responseText), &output); err != nil {
		c.l.Warnf(ctx, "%s: %s: %v", LogPrefixClassify, ErrMsgJSONParseFailed, err)
		return ClassifierOutput{
			Intent:     FallbackIntent,
			Confidence: FallbackConfidence,
			Reasoning:  ReasonParsingError,
		}, nil
	}

	if !output.Intent.Valid() {
		c.l.Warnf(ctx, "%s: %s: %q", LogPrefixClassify, ErrMsgUnknownIntent, output.Intent)
		return ClassifierOutput{
			Intent:     FallbackIntent,
			Confidence: FallbackConfidence,
			Reasoning:  ReasonUnknownIntent,
		}, nil
	}

	c.l.Infof(ctx, "%s: Classified as %s (confidence: %d%%)", LogPrefixClassify, output.Intent, output.Confidence)
	return output, nil
}

// keywordRules are checked in order; the first match wins.
var keywordRules = []struct {
	keywords []string
	intent   Intent
}{
	{[]string{"send it", "send the draft", "approve"}, IntentSendEmailDraft},
	{[]string{"schedule", "create an event", "put on my calendar"}, IntentCreateEvent},
	{[]string{"what's on my calendar", "list my events", "my schedule"}, IntentListEvents},
	{[]string{"reschedule", "move my", "rename my"}, IntentUpdateEvent},
	{[]string{"cancel the event", "delete the event"}, IntentDeleteEvent},
	{[]string{"compose", "write an email", "email to"}, IntentComposeEmail},
	{[]string{"reply"}, IntentReplyEmail},
	{[]string{"summarize"}, IntentSummarizeEmail},
	{[]string{"find email", "search my email", "emails from"}, IntentFindEmail},
	{[]string{"message to", "tell "}, IntentSendChatMessage},
	{[]string{"create a doc", "new document"}, IntentCreateDocument},
	{[]string{"open the doc", "open document"}, IntentOpenDocument},
	{[]string{"edit", "change the text", "replace"}, IntentEditDocument},
}

// keywordClassify is the no-LLM fallback path. Low confidence by definition.
func keywordClassify(message string) ClassifierOutput {
	lower := strings.ToLower(message)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return ClassifierOutput{
					Intent:     rule.intent,
					Confidence: 30,
					Reasoning:  ReasonKeywordFallback,
				}
			}
		}
	}
	return ClassifierOutput{
		Intent:     FallbackIntent,
		Confidence: 10,
		Reasoning:  ReasonKeywordFallback,
	}
}
