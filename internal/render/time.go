package render

import (
	"fmt"
	"time"
)

// bookingLayouts are the date forms the API has been seen to send.
var bookingLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02",
}

// ParseDate parses an API date string.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range bookingLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an API date as "Jan 2, 2006", or returns s unchanged
// when it does not parse.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// TimeAgo returns a short relative time like "5m ago" for an API date.
func TimeAgo(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return Since(t, time.Now())
}

// Since formats the distance from t to now.
func Since(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 0:
		return t.Format("Jan 2, 2006")
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	return t.Format("Jan 2, 2006")
}
