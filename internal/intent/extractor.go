package intent

import (
	"context"
	"encoding/json"
	"fmt"

	"workspace-assistant/pkg/llmprovider"
)

// Extract pulls the slots for the given intent out of the message. Intents
// with no extractable slots (approvals, cancellations, close_document) skip
// the LLM entirely. Extraction failure is not fatal: the caller gets bare
// Details carrying only the intent.
func (e *LLMExtractor) Extract(ctx context.Context, in Intent, message string, conversationHistory []string) (Details, error) {
	hints, ok := slotHints[in]
	if !ok {
		return Details{Intent: in}, nil
	}

	historyContext := ""
	if len(conversationHistory) > 0 {
		historyContext = PromptHistoryPrefix
		for i, msg := range conversationHistory {
			historyContext += fmt.Sprintf("%d. %s\n", i+1, msg)
		}
		historyContext += "\n"
	}

	prompt := historyContext + fmt.Sprintf(PromptExtractSystem, in, message, hints.Guidance, in, hints.Fields)

	resp, err := e.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: prompt}},
			},
		},
		Temperature: ExtractTemperature,
	})
	if err != nil {
		e.l.Warnf(ctx, "%s: %s: %v", LogPrefixExtract, ErrMsgLLMCallFailed, err)
		return Details{Intent: in}, nil
	}

	responseText := sanitizeJSONResponse(resp.Text())
	if responseText == "" {
		e.l.Warnf(ctx, "%s: %s", LogPrefixExtract, ErrMsgEmptyResponse)
		return Details{Intent: in}, nil
	}

	var details Details
	if err := json.Unmarshal([]byte(responseText), &details); err != nil {
		e.l.Warnf(ctx, "%s: %s: %v", LogPrefixExtract, ErrMsgJSONParseFailed, err)
		return Details{Intent: in}, nil
	}

	// The classifier owns the intent decision, not the extractor.
	details.Intent = in

	e.l.Debugf(ctx, "%s: Extracted details for %s", LogPrefixExtract, in)
	return details, nil
}
