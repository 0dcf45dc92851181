package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
// Fractional seconds are truncated.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// FormatDuration formats a duration in seconds as e.g. "3.5s".
func FormatDuration(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}

// ParseTimeToSeconds parses a time string in HH:MM:SS, MM:SS, or raw seconds
// format. The seconds part may be fractional in any form (e.g. "1:30.5").
// Uses colon count: 2 colons = H:M:S, 1 colon = M:S, 0 colons = raw seconds.
func ParseTimeToSeconds(timeStr string) (float64, error) {
	parts := strings.Split(timeStr, ":")

	switch len(parts) {
	case 3:
		hours, err1 := strconv.Atoi(parts[0])
		minutes, err2 := strconv.Atoi(parts[1])
		secs, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 == nil && err2 == nil && err3 == nil && hours >= 0 && minutes >= 0 && secs >= 0 {
			return float64(hours*3600+minutes*60) + secs, nil
		}
	case 2:
		minutes, err1 := strconv.Atoi(parts[0])
		secs, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 == nil && err2 == nil && minutes >= 0 && secs >= 0 {
			return float64(minutes*60) + secs, nil
		}
	case 1:
		if secs, err := strconv.ParseFloat(parts[0], 64); err == nil && secs >= 0 {
			return secs, nil
		}
	}

	return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
}
