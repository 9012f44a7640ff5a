package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/model"
	"workspace-assistant/pkg/gcalendar"
	"workspace-assistant/pkg/llmprovider"
)

// generateText runs a single free-form generation through the provider chain.
func (uc *implUseCase) generateText(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: prompt}}},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", llmprovider.ErrEmptyResponse
	}
	return text, nil
}

// renderHistory flattens turns into the "role: content" lines the NLU prompts expect.
func renderHistory(turns []model.Turn) []string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Role, t.Content))
	}
	return lines
}

func textOutput(session assistant.SessionState, text string) assistant.ProcessOutput {
	return assistant.ProcessOutput{Kind: assistant.KindText, Text: text, Session: session}
}

func errorOutput(session assistant.SessionState, text string) assistant.ProcessOutput {
	return assistant.ProcessOutput{Kind: assistant.KindError, Text: text, Session: session}
}

func draftOutput(session assistant.SessionState, text string, draft assistant.DraftDetails) assistant.ProcessOutput {
	return assistant.ProcessOutput{
		Kind:    assistant.KindDraftReview,
		Text:    text,
		Draft:   &draft,
		Session: session,
	}
}

func navigationOutput(session assistant.SessionState, text, target string) assistant.ProcessOutput {
	return assistant.ProcessOutput{
		Kind:    assistant.KindNavigation,
		Text:    text,
		Target:  target,
		Session: session,
	}
}

// truncate shortens s to at most max bytes, never splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "..."
}

func formatEventLine(e gcalendar.Event) string {
	when := ""
	if !e.StartTime.IsZero() {
		when = e.StartTime.Format("Mon Jan 2 15:04")
	}
	if when == "" {
		return fmt.Sprintf("- %s", e.Summary)
	}
	return fmt.Sprintf("- %s (%s)", e.Summary, when)
}

// firstNonEmpty returns the first non-blank string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// sanitizeJSONResponse strips markdown code fences and surrounding prose from
// an LLM response expected to be a JSON object.
func sanitizeJSONResponse(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return text
}
