package events

import (
	"fmt"
	"time"
)

// FormatDuration renders an event span the way the editor shows it:
// "2h 30m", "1 hour", "3 hours" or "45 minutes".
func FormatDuration(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int(d%time.Hour) / int(time.Minute)

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours == 1:
		return "1 hour"
	case hours > 0:
		return fmt.Sprintf("%d hours", hours)
	case minutes == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
