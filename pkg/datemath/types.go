package datemath

import "time"

// Range is a resolved half-open [Start, End) time window.
type Range struct {
	Start time.Time
	End   time.Time
}
