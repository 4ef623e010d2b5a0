// Package models defines the request and response data structures used
// for communication between the client and the post generator service.
package models

// GenerationRequest represents a request to turn a blog post into a
// social media update.
type GenerationRequest struct {
	// BlogURL is the absolute http(s) URL of the blog post.
	BlogURL string `json:"blogUrl"`

	// Platform is the target social network label, e.g. "linkedin".
	Platform string `json:"platform"`

	// Tone is the rhetorical style label, e.g. "witty".
	Tone string `json:"tone"`
}

// Complete reports whether all required fields are present.
func (r GenerationRequest) Complete() bool {
	return r.BlogURL != "" && r.Platform != "" && r.Tone != ""
}

// Envelope is the uniform wrapper returned by every API call.
//
// Success is derived from StatusCode and must not be set on its own;
// build envelopes with NewEnvelope.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       string `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// DefaultMessage is used when an envelope is built without a message.
const DefaultMessage = "Success"

// NewEnvelope builds an Envelope for the given status code. Success is true
// for codes below 400.
func NewEnvelope(statusCode int, data, message string) Envelope {
	if message == "" {
		message = DefaultMessage
	}

	return Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}
