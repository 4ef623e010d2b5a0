// Package postprocess turns model output into plain prose that can be
// posted as is. It strips the markup artifacts chat models like to emit.
package postprocess

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Step is one named rewrite. Steps run in order and later steps rely on
// earlier ones: italic stripping only works because bold markers are
// already gone.
type Step struct {
	Name        string
	re          *regexp2.Regexp
	replacement string
}

func newStep(name, pattern, replacement string, multiline bool) Step {
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	if multiline {
		opts |= regexp2.Multiline
	}

	return Step{
		Name:        name,
		re:          regexp2.MustCompile(pattern, opts),
		replacement: replacement,
	}
}

// Apply runs the step on s. A failed rewrite leaves s untouched.
func (s Step) Apply(in string) string {
	out, err := s.re.Replace(in, s.replacement, -1, -1)
	if err != nil {
		return in
	}

	return out
}

var steps = []Step{
	newStep("bold", `(\*\*|__)(.*?)\1`, "$2", false),
	newStep("italic", `(\*|_)(.*?)\1`, "$2", false),
	newStep("list-bullet", `^\s*[-*+]\s+`, "", true),
	newStep("inline-code", "`(.*?)`", "$1", false),
	newStep("heading", `^#{1,6}\s*`, "", true),
	newStep("blockquote", `^>\s?`, "", true),
	newStep("bold-label", `^\*\*(.*?)\*\*:`, "$1:", true),
}

// Steps returns the rewrite pipeline in execution order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)

	return out
}

// Clean strips bold, italic, list, inline code, heading and blockquote
// markup from raw, then trims surrounding whitespace.
func Clean(raw string) string {
	out := raw
	for _, s := range steps {
		out = s.Apply(out)
	}

	return strings.TrimSpace(out)
}
