package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-post-generator/internal/app/service"
	"github.com/atinyakov/go-post-generator/internal/fetch"
	"github.com/atinyakov/go-post-generator/internal/models"
)

// SuccessMessage is the envelope message of a generated post.
const SuccessMessage = "Generated Post Successfully!"

// MissingFieldsMessage is reported for a validation failure when typed
// errors are enabled.
const MissingFieldsMessage = "All fields required!"

type PostHandler struct {
	service     service.PostServiceIface
	logger      *zap.Logger
	typedErrors bool
	timeout     time.Duration
}

// Option configures a PostHandler.
type Option func(*PostHandler)

// WithTypedErrors makes failures answer 400, 502 or 504 by cause instead
// of a uniform 500.
func WithTypedErrors(enabled bool) Option {
	return func(h *PostHandler) {
		h.typedErrors = enabled
	}
}

// WithTimeout bounds the whole generation. Zero means no bound beyond the
// request context.
func WithTimeout(d time.Duration) Option {
	return func(h *PostHandler) {
		h.timeout = d
	}
}

func NewPost(s service.PostServiceIface, l *zap.Logger, opts ...Option) *PostHandler {
	h := &PostHandler{
		service: s,
		logger:  l,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// GeneratePost handles POST /api/post/generate-post.
func (h *PostHandler) GeneratePost(res http.ResponseWriter, req *http.Request) {
	var request models.GenerationRequest

	if err := decodeRequest(res, req, &request); err != nil {
		h.fail(res, err)
		return
	}

	ctx := req.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	post, err := h.service.GeneratePost(ctx, request)
	if err != nil {
		h.fail(res, err)
		return
	}

	writeEnvelope(res, models.NewEnvelope(http.StatusOK, post, SuccessMessage))
}

func (h *PostHandler) fail(res http.ResponseWriter, err error) {
	status, msg := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	if h.typedErrors {
		status, msg = statusFor(err)
	}

	h.logger.Error("post generation failed",
		zap.Error(err),
		zap.String("kind", service.KindOf(err).String()),
		zap.Int("status", status),
	)

	writeEnvelope(res, models.NewEnvelope(status, "", msg))
}

// statusFor maps a failure to the HTTP status and message reported when
// typed errors are enabled.
func statusFor(err error) (int, string) {
	var mr *malformedRequest
	if errors.As(err, &mr) {
		return mr.status, mr.msg
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, http.StatusText(http.StatusGatewayTimeout)
	case errors.Is(err, fetch.ErrInvalidURL):
		return http.StatusBadRequest, "Invalid blog URL"
	}

	switch service.KindOf(err) {
	case service.KindValidation:
		return http.StatusBadRequest, MissingFieldsMessage
	case service.KindFetch, service.KindGeneration:
		return http.StatusBadGateway, http.StatusText(http.StatusBadGateway)
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}
