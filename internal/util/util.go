package util

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// FormatDuration renders a duration compactly, e.g. "850ms", "45s", "5m10s", "1h30m", "2d3h".
// Durations under a second keep millisecond precision; longer ones are rounded to the second.
func FormatDuration(duration time.Duration) string {
	if duration < 0 {
		return "-" + FormatDuration(-duration)
	}

	if duration < time.Second {
		return fmt.Sprintf("%dms", duration.Milliseconds())
	}

	duration = duration.Round(time.Second)

	switch {
	case duration < time.Minute:
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	case duration < time.Hour:
		return fmt.Sprintf("%dm%ds", int(duration.Minutes()), int(duration.Seconds())%60)
	case duration < day:
		return fmt.Sprintf("%dh%dm", int(duration.Hours()), int(duration.Minutes())%60)
	}

	return fmt.Sprintf("%dd%dh", int(duration/day), int(duration.Hours())%24)
}
