package datemath

import (
	"fmt"
	"strings"
	"time"
)

// Special range keywords recognized before general expression parsing.
const (
	KeywordToday       = "today"
	KeywordOneMonthAgo = "one_month_ago"
	KeywordEndOfYear   = "end_of_the_year"
)

// ResolveRange turns a start and an end expression into a concrete [Start, End)
// window. If the resolved endpoints fall on the same calendar date, the end is
// widened to 23:59:59 so a single-day query is never empty.
// Failure of either side is a resolver error, never a partial range.
func (p *Parser) ResolveRange(startExpr, endExpr string, baseTime time.Time) (Range, error) {
	start, err := p.resolveBoundary(startExpr, baseTime)
	if err != nil {
		return Range{}, fmt.Errorf("start %q: %w", startExpr, err)
	}

	end, err := p.resolveBoundary(endExpr, baseTime)
	if err != nil {
		return Range{}, fmt.Errorf("end %q: %w", endExpr, err)
	}

	if sameCalendarDate(start, end) {
		end = p.EndOfDay(end)
	}

	if end.Before(start) {
		return Range{}, fmt.Errorf("end %q resolves before start %q", endExpr, startExpr)
	}

	return Range{Start: start, End: end}, nil
}

// resolveBoundary handles range keywords, then falls back to Parse.
func (p *Parser) resolveBoundary(expr string, baseTime time.Time) (time.Time, error) {
	switch normalizeKeyword(expr) {
	case KeywordOneMonthAgo:
		return baseTime.In(p.location).AddDate(0, 0, -30), nil
	case KeywordEndOfYear:
		base := baseTime.In(p.location)
		return time.Date(base.Year(), time.December, 31, 23, 59, 59, 0, p.location), nil
	}

	return p.Parse(expr, baseTime)
}

func normalizeKeyword(expr string) string {
	expr = strings.ToLower(strings.TrimSpace(expr))
	return strings.ReplaceAll(expr, " ", "_")
}

func sameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
