package render

import (
	"html"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"
)

// DescriptionText converts a pet description, which admins may enter as
// light HTML, to wrapped plain text. Handles <p>, <br>, <b>/<strong>,
// <i>/<em>, <ul>/<ol>/<li> and <a>; other tags are dropped.
func DescriptionText(raw string, width int) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if !strings.Contains(raw, "<") {
		return wrapText(strings.TrimSpace(html.UnescapeString(raw)), width)
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	var anchorURL string
	var anchorStart int
	var listDepth int
	var ordered []int // item counters per open list, 0 for unordered

	newline := func() {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
	}

	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return wrapText(strings.TrimSpace(sb.String()), width)

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "p", "div":
				if sb.Len() > 0 {
					newline()
					sb.WriteString("\n")
				}
			case "br":
				sb.WriteString("\n")
			case "b", "strong":
				sb.WriteString("**")
			case "i", "em":
				sb.WriteString("*")
			case "ul":
				newline()
				listDepth++
				ordered = append(ordered, 0)
			case "ol":
				newline()
				listDepth++
				ordered = append(ordered, 1)
			case "li":
				newline()
				sb.WriteString(strings.Repeat("  ", max(listDepth-1, 0)))
				if n := len(ordered); n > 0 && ordered[n-1] > 0 {
					sb.WriteString(strconv.Itoa(ordered[n-1]) + ". ")
					ordered[n-1]++
				} else {
					sb.WriteString("- ")
				}
			case "a":
				anchorURL = ""
				for _, attr := range t.Attr {
					if attr.Key == "href" {
						anchorURL = attr.Val
					}
				}
				anchorStart = sb.Len()
			}

		case xhtml.EndTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "b", "strong":
				sb.WriteString("**")
			case "i", "em":
				sb.WriteString("*")
			case "ul", "ol":
				if listDepth > 0 {
					listDepth--
					ordered = ordered[:len(ordered)-1]
				}
				newline()
			case "a":
				text := strings.TrimSpace(sb.String()[anchorStart:])
				if anchorURL != "" && text != anchorURL {
					sb.WriteString(" [" + anchorURL + "]")
				}
				anchorURL = ""
			}

		case xhtml.TextToken:
			text := collapse(string(tokenizer.Text()))
			if text == " " && (sb.Len() == 0 || strings.HasSuffix(sb.String(), "\n")) {
				continue
			}
			sb.WriteString(text)
		}
	}
}

// collapse folds runs of whitespace into single spaces, keeping a leading
// or trailing space if there was one.
func collapse(s string) string {
	if s == "" {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

// isListMarker reports whether w is a "-" or "12." item marker.
func isListMarker(w string) bool {
	if w == "-" {
		return true
	}
	n := strings.TrimSuffix(w, ".")
	if n == w || n == "" {
		return false
	}
	_, err := strconv.Atoi(n)
	return err == nil
}

// wrapText performs simple word wrapping to the given width. List items
// keep their marker indent on continuation lines.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}
		lead := len(paragraph) - len(strings.TrimLeft(paragraph, " "))
		indent := lead
		if isListMarker(words[0]) {
			indent += len(words[0]) + 1
		}
		result.WriteString(strings.Repeat(" ", lead))
		lineLen := lead
		for i, word := range words {
			wlen := len(word)
			if i > 0 && lineLen+1+wlen > width {
				result.WriteString("\n")
				result.WriteString(strings.Repeat(" ", indent))
				lineLen = indent
			} else if i > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wlen
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}
