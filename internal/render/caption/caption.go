package caption

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	nethtml "golang.org/x/net/html"
)

// MaxHashtags is how many tags a card shows.
const MaxHashtags = 3

var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "pre": true, "figure": true,
}

// Text converts a caption that may contain HTML into plain text. Block
// elements become line breaks, list items get a bullet, and scripts and
// styles are dropped.
func Text(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "<&") {
		return raw
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return strings.TrimSpace(html.UnescapeString(raw))
	}
	body := findBodyNode(doc)
	if body == nil {
		return strings.TrimSpace(html.UnescapeString(raw))
	}

	var b strings.Builder
	writeNode(&b, body)
	return strings.Join(nonBlankLines(strings.Split(b.String(), "\n")), "\n")
}

// Lines renders a caption wrapped to width.
func Lines(raw string, width int) []string {
	text := Text(raw)
	if text == "" {
		return nil
	}
	return wrapText(text, width)
}

// Hashtags renders up to MaxHashtags tags as "#tag" words.
func Hashtags(tags []string) string {
	out := make([]string, 0, MaxHashtags)
	for _, tag := range tags {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		if tag == "" {
			continue
		}
		out = append(out, "#"+tag)
		if len(out) == MaxHashtags {
			break
		}
	}
	return strings.Join(out, " ")
}

// Count abbreviates engagement counters: 999, 1.2K, 3.4M.
func Count(n int) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.Itoa(n)
	}
}

// Duration renders seconds as m:ss.
func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Truncate shortens s to maxLen runes, ending with "..." when cut.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func writeNode(b *strings.Builder, node *nethtml.Node) {
	switch node.Type {
	case nethtml.TextNode:
		b.WriteString(collapseSpace(node.Data))
		return
	case nethtml.ElementNode:
		switch strings.ToLower(node.Data) {
		case "script", "style", "img", "video":
			return
		case "br":
			b.WriteString("\n")
			return
		case "li":
			b.WriteString("\n• ")
		default:
			if blockTags[strings.ToLower(node.Data)] {
				b.WriteString("\n")
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeNode(b, child)
	}
	if node.Type == nethtml.ElementNode && blockTags[strings.ToLower(node.Data)] {
		b.WriteString("\n")
	}
}

func collapseSpace(s string) string {
	if strings.TrimSpace(s) == "" {
		if s == "" {
			return ""
		}
		return " "
	}
	lead := s[0] == ' ' || s[0] == '\n' || s[0] == '\t'
	trail := s[len(s)-1] == ' ' || s[len(s)-1] == '\n' || s[len(s)-1] == '\t'
	out := strings.Join(strings.Fields(s), " ")
	if lead {
		out = " " + out
	}
	if trail {
		out += " "
	}
	return out
}

func nonBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for utf8.RuneCountInString(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				runes := []rune(word)
				out = append(out, string(runes[:width]))
				word = string(runes[width:])
			}

			if line == "" {
				line = word
				continue
			}
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}
