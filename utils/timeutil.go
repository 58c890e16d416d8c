package utils

import "fmt"

// FormatSeconds renders a remaining-seconds value for display.
// Positive values render as M:SS, or H:MM:SS once an hour or more
// remains. Negative values are overtime and render with a leading +.
func FormatSeconds(seconds int64) string {
	prefix := ""
	if seconds < 0 {
		prefix = "+"
		seconds = -seconds
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", prefix, hours, minutes, secs)
	}
	return fmt.Sprintf("%s%d:%02d", prefix, minutes, secs)
}
