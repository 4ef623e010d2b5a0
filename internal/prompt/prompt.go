// Package prompt builds the instruction sent to the generative model.
package prompt

import (
	"strings"
)

// DefaultTone is used when the caller does not pick a tone.
const DefaultTone = "Neutral"

// Input holds everything the prompt is assembled from.
type Input struct {
	// URL is a single reference blog URL.
	URL string
	// URLs lists several reference blog URLs line by line. When set, even
	// with one element, it takes precedence over URL.
	URLs     []string
	Platform string
	Tone     string
	// Content is the extracted blog text. It is optional.
	Content string
}

// Build returns the prompt for in. It has no side effects and identical
// inputs always produce identical output.
func Build(in Input) string {
	tone := in.Tone
	if tone == "" {
		tone = DefaultTone
	}

	var b strings.Builder

	b.WriteString("You are a social media strategist and expert copywriter.\n\n")
	b.WriteString("Write a high-performing post for **" + in.Platform + "**  \n")
	b.WriteString("Tone: **" + tone + "**\n\n")

	b.WriteString(urlBlock(in))
	if in.Content != "" {
		b.WriteString("\n\nExtracted blog content:\n\"\"\"" + strings.TrimSpace(in.Content) + "\"\"\"")
	}
	b.WriteString("\n\n")

	b.WriteString("Instructions:\n")
	b.WriteString("- Start with a scroll-stopping hook\n")
	b.WriteString("- Highlight key insights from the blog\n")
	b.WriteString("- Match the tone and format suited for **" + in.Platform + "**\n")
	b.WriteString("- End with a compelling CTA\n")
	b.WriteString("- Keep it short, engaging, and platform-native\n")

	return strings.TrimSpace(b.String())
}

func urlBlock(in Input) string {
	if in.URLs != nil {
		return "Use the following blog URLs as reference:\n" + strings.Join(in.URLs, "\n")
	}

	return "Use this blog URL as reference:\n" + in.URL
}
