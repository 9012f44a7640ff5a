package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"workspace-assistant/pkg/llmprovider"
)

// Candidate is one possible target of an ambiguous request.
type Candidate struct {
	ID    string
	Label string
	When  string // timestamp rendering, used for "latest"/"oldest" cues
}

// resolveCandidate narrows a candidate list down to one id using the user's
// own words. With exactly one candidate no LLM call happens. The boolean is
// false when no confident match exists; the caller then shows the list.
func (uc *implUseCase) resolveCandidate(ctx context.Context, request string, candidates []Candidate) (string, bool) {
	switch len(candidates) {
	case 0:
		return "", false
	case 1:
		return candidates[0].ID, true
	}

	if len(candidates) > maxSearchResults {
		candidates = candidates[:maxSearchResults]
	}

	var listing strings.Builder
	for _, c := range candidates {
		if c.When != "" {
			fmt.Fprintf(&listing, "- id=%s label=%q time=%s\n", c.ID, c.Label, c.When)
		} else {
			fmt.Fprintf(&listing, "- id=%s label=%q\n", c.ID, c.Label)
		}
	}

	prompt := fmt.Sprintf(PromptResolveCandidate, request, listing.String())

	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: prompt}}},
		},
		Temperature: ResolveTemperature,
	})
	if err != nil {
		uc.l.Warnf(ctx, "%s: LLM call failed: %v", LogPrefixResolve, err)
		return "", false
	}

	var choice struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(sanitizeJSONResponse(resp.Text())), &choice); err != nil {
		uc.l.Warnf(ctx, "%s: unparseable choice: %v", LogPrefixResolve, err)
		return "", false
	}

	// Only ids from the actual list count as confident matches.
	for _, c := range candidates {
		if choice.ID == c.ID {
			return c.ID, true
		}
	}
	return "", false
}

// candidateListing renders candidates for a clarifying question to the user.
func candidateListing(candidates []Candidate) string {
	var sb strings.Builder
	for i, c := range candidates {
		if i >= maxSearchResults {
			break
		}
		if c.When != "" {
			fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, c.Label, c.When)
		} else {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, c.Label)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
