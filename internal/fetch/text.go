package fetch

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// dropped elements never contribute text.
const dropped = "head, script, style, noscript, template, svg, iframe, object"

// paragraph elements are followed by a blank line, other block elements by
// a line break.
var (
	paragraphTags = map[string]bool{
		"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"blockquote": true, "pre": true, "table": true, "figure": true,
	}
	blockTags = map[string]bool{
		"div": true, "section": true, "article": true, "main": true, "header": true, "footer": true,
		"nav": true, "aside": true, "ul": true, "ol": true, "li": true, "dl": true, "dt": true,
		"dd": true, "tr": true, "figcaption": true, "form": true, "address": true, "hr": true,
	}
)

// toText renders doc as plain text wrapped at width columns.
func toText(doc *goquery.Document, width int) string {
	doc.Find(dropped).Remove()

	var b strings.Builder

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	for _, n := range body.Nodes {
		collect(&b, n, false)
	}

	return wrap(normalizeLines(b.String()), width)
}

func collect(b *strings.Builder, n *html.Node, inPre bool) {
	switch n.Type {
	case html.TextNode:
		data := n.Data
		if !inPre {
			data = strings.NewReplacer("\n", " ", "\t", " ", "\r", " ").Replace(data)
		}
		b.WriteString(data)
		return
	case html.ElementNode, html.DocumentNode:
	default:
		return
	}

	name := strings.ToLower(n.Data)
	if name == "br" {
		b.WriteString("\n")
		return
	}
	if name == "pre" {
		inPre = true
	}

	block := paragraphTags[name] || blockTags[name]
	if block {
		lineBreak(b)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(b, c, inPre)
	}

	switch {
	case paragraphTags[name]:
		lineBreak(b)
		b.WriteString("\n")
	case block:
		lineBreak(b)
	}
}

func lineBreak(b *strings.Builder) {
	if b.Len() == 0 {
		return
	}
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
}

// normalizeLines trims every line, collapses runs of spaces and keeps at
// most one blank line in a row.
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
		}
		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return strings.Join(out, "\n")
}

// wrap breaks every line of s at word boundaries so no line exceeds width
// runes. Words longer than width get a line of their own.
func wrap(s string, width int) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if utf8.RuneCountInString(line) <= width {
			out = append(out, line)
			continue
		}

		var cur strings.Builder
		curLen := 0
		for _, word := range strings.Fields(line) {
			wl := utf8.RuneCountInString(word)
			if curLen > 0 && curLen+1+wl > width {
				out = append(out, cur.String())
				cur.Reset()
				curLen = 0
			}
			if curLen > 0 {
				cur.WriteByte(' ')
				curLen++
			}
			cur.WriteString(word)
			curLen += wl
		}
		if curLen > 0 {
			out = append(out, cur.String())
		}
	}

	return strings.Join(out, "\n")
}
