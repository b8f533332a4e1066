package contracts

import (
	"fmt"
	"time"
)

// Timestamps on the wire use ISO-8601 UTC with millisecond precision:
// YYYY-MM-DDTHH:MM:SS.mmmZ. Parsing also accepts the whole-second form.
const (
	timestampLayout        = "2006-01-02T15:04:05.000Z"
	timestampLayoutSeconds = "2006-01-02T15:04:05Z"
)

// Now returns the current UTC time truncated to millisecond precision, so
// that document timestamps survive the wire format round-trip unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FormatTimestamp renders t in the canonical wire form. The result always
// carries the millisecond component; ParseTimestamp(FormatTimestamp(t))
// round-trips for any millisecond-precision UTC time.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp parses a canonical wire timestamp. Only the UTC "Z" suffix
// is accepted; numeric offsets are not part of the contract format.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(timestampLayoutSeconds, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: expected YYYY-MM-DDTHH:MM:SS[.mmm]Z", s)
	}
	return t, nil
}
