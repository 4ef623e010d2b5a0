// Package llm wraps the generative text models used to write posts.
//
// A Model takes a prompt and returns a Response. Providers answer either
// with a single text value or with an ordered list of segments, so Response
// is a small tagged variant instead of a bare string.
package llm

import (
	"context"
	"strings"
)

// Model is a generative text model.
type Model interface {
	Invoke(ctx context.Context, prompt string) (Response, error)
}

// ResponseKind tags the shape of a Response.
type ResponseKind int

const (
	// KindEmpty is the zero value: the provider returned nothing usable.
	KindEmpty ResponseKind = iota
	// KindText is a single text value.
	KindText
	// KindSegments is an ordered list of segments.
	KindSegments
)

// Segment is one part of a multi-part answer. Non-text parts carry an
// empty Text.
type Segment struct {
	Type string
	Text string
}

// Response is the raw model output.
type Response struct {
	kind     ResponseKind
	text     string
	segments []Segment
}

// Text returns a single-text Response.
func Text(s string) Response {
	return Response{kind: KindText, text: s}
}

// Segments returns a segmented Response.
func Segments(segs ...Segment) Response {
	return Response{kind: KindSegments, segments: segs}
}

// Kind reports the shape of r.
func (r Response) Kind() ResponseKind {
	return r.kind
}

// String normalizes r to one string. Text is returned verbatim, segments
// are joined by newlines and anything else is empty.
func (r Response) String() string {
	switch r.kind {
	case KindText:
		return r.text
	case KindSegments:
		parts := make([]string, len(r.segments))
		for i, s := range r.segments {
			parts[i] = s.Text
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}
