package render

import (
	"testing"
	"time"
)

func TestDescriptionText(t *testing.T) {
	tcases := map[string]struct {
		raw   string
		width int
		want  string
	}{
		"empty": {raw: "  ", want: ""},
		"plain": {
			raw:  "Friendly dog &amp; good with kids.\n\nHouse trained.",
			want: "Friendly dog & good with kids.\n\nHouse trained.",
		},
		"paragraphs_and_list": {
			raw:  `<p>Meet <b>Rex</b> &amp; friends.</p><p>Likes:</p><ul><li>balls</li><li>naps</li></ul>`,
			want: "Meet **Rex** & friends.\n\nLikes:\n- balls\n- naps",
		},
		"ordered_list_wraps_under_marker": {
			raw:   `<ol><li>one two three four</li></ol>`,
			width: 10,
			want:  "1. one two\n   three\n   four",
		},
		"link": {
			raw:  `Visit <a href="https://shelter.example">our site</a>`,
			want: "Visit our site [https://shelter.example]",
		},
		"bare_link": {
			raw:  `<a href="https://shelter.example">https://shelter.example</a>`,
			want: "https://shelter.example",
		},
		"line_break": {
			raw:  "Line one<br>Line two",
			want: "Line one\nLine two",
		},
	}

	for name, tc := range tcases {
		t.Run(name, func(t *testing.T) {
			if got := DescriptionText(tc.raw, tc.width); got != tc.want {
				t.Errorf("DescriptionText() =\n%q\nwant\n%q", got, tc.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	for in, want := range map[string]string{
		"2025-03-04T10:00:00.000Z": "Mar 4, 2025",
		"2025-03-04":               "Mar 4, 2025",
		"next tuesday":             "next tuesday",
	} {
		if got := FormatDate(in); got != want {
			t.Errorf("FormatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSince(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	for d, want := range map[time.Duration]string{
		10 * time.Second:    "just now",
		5 * time.Minute:     "5m ago",
		3 * time.Hour:       "3h ago",
		4 * 24 * time.Hour:  "4d ago",
		90 * 24 * time.Hour: "Oct 4, 2025",
		-48 * time.Hour:     "Jan 4, 2026",
	} {
		if got := Since(now.Add(-d), now); got != want {
			t.Errorf("Since(-%s) = %q, want %q", d, got, want)
		}
	}
}
