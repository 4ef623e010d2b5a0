// Package handler contains the HTTP handlers of the post generator. It
// decodes JSON and URL-encoded request bodies, reports malformed requests
// as typed errors and writes every answer as a models.Envelope.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/atinyakov/go-post-generator/internal/models"
)

// MaxBodyBytes caps JSON and URL-encoded request bodies.
const MaxBodyBytes = 2 << 20

// malformedRequest represents an error with a malformed HTTP request.
type malformedRequest struct {
	status int    // HTTP status code for the error
	msg    string // Error message
}

// Error returns the error message for a malformed request.
func (mr *malformedRequest) Error() string {
	return mr.msg
}

// decodeRequest fills dst from a JSON or URL-encoded body. A request
// without a Content-Type is read as JSON.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst *models.GenerationRequest) error {
	switch mediaType(r) {
	case "", "application/json":
		return decodeJSONBody(w, r, dst)
	case "application/x-www-form-urlencoded":
		return decodeFormBody(w, r, dst)
	default:
		msg := "Content-Type header is not application/json or application/x-www-form-urlencoded"
		return &malformedRequest{status: http.StatusUnsupportedMediaType, msg: msg}
	}
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
}

// decodeJSONBody decodes a JSON request body into the given destination struct.
// It reads the content from the request body, checks for proper JSON formatting,
// and handles common errors related to JSON parsing.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.ErrUnexpectedEOF):
			msg := "Request body contains badly-formed JSON"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.EOF):
			msg := "Request body must not be empty"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.As(err, &maxBytesError):
			msg := "Request body must not be larger than 2MB"
			return &malformedRequest{status: http.StatusRequestEntityTooLarge, msg: msg}

		default:
			return err
		}
	}

	// Ensure the body only contains a single JSON object
	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		msg := "Request body must only contain a single JSON object"
		return &malformedRequest{status: http.StatusBadRequest, msg: msg}
	}

	return nil
}

func decodeFormBody(w http.ResponseWriter, r *http.Request, dst *models.GenerationRequest) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if err := r.ParseForm(); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return &malformedRequest{status: http.StatusRequestEntityTooLarge, msg: "Request body must not be larger than 2MB"}
		}
		return &malformedRequest{status: http.StatusBadRequest, msg: "Request body contains a badly-formed form"}
	}

	dst.BlogURL = r.PostForm.Get("blogUrl")
	dst.Platform = r.PostForm.Get("platform")
	dst.Tone = r.PostForm.Get("tone")

	return nil
}

// writeEnvelope writes env as JSON with env.StatusCode as the HTTP status.
func writeEnvelope(res http.ResponseWriter, env models.Envelope) {
	body, err := json.Marshal(env)
	if err != nil {
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(env.StatusCode)
	_, _ = res.Write(body)
}

// NotFound answers unknown routes with a 404 envelope.
func NotFound(res http.ResponseWriter, _ *http.Request) {
	writeEnvelope(res, models.NewEnvelope(http.StatusNotFound, "", http.StatusText(http.StatusNotFound)))
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed(res http.ResponseWriter, _ *http.Request) {
	writeEnvelope(res, models.NewEnvelope(http.StatusMethodNotAllowed, "", http.StatusText(http.StatusMethodNotAllowed)))
}
