// Package service implements the post generation pipeline: validate the
// request, fetch the blog, build the prompt, call the model and clean up
// its answer. It is shared by the HTTP and gRPC transports.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-post-generator/internal/models"
	"github.com/atinyakov/go-post-generator/internal/postprocess"
	"github.com/atinyakov/go-post-generator/internal/prompt"
)

type PostService struct {
	fetcher Fetcher
	model   Generator
	logger  *zap.Logger
}

func NewPost(f Fetcher, m Generator, l *zap.Logger) *PostService {
	if l == nil {
		l = zap.NewNop()
	}

	return &PostService{
		fetcher: f,
		model:   m,
		logger:  l,
	}
}

// GeneratePost returns a cleaned, ready to publish post for req.
// Every failure is an *Error; a request with a missing field fails before
// anything is fetched or generated.
func (s *PostService) GeneratePost(ctx context.Context, req models.GenerationRequest) (string, error) {
	const op = "service.GeneratePost"

	if !req.Complete() {
		return "", &Error{Kind: KindValidation, Op: op, Err: ErrMissingFields}
	}

	start := time.Now()

	docs, err := s.fetcher.Fetch(ctx, req.BlogURL)
	if err != nil {
		return "", &Error{Kind: KindFetch, Op: op, Err: err}
	}

	var content string
	if len(docs) > 0 {
		content = docs[0].Text
	}
	s.logger.Debug("blog fetched",
		zap.String("url", req.BlogURL),
		zap.Int("documents", len(docs)),
		zap.Int("content_len", len(content)),
	)

	p := prompt.Build(prompt.Input{
		URL:      req.BlogURL,
		Platform: req.Platform,
		Tone:     req.Tone,
		Content:  content,
	})

	resp, err := s.model.Invoke(ctx, p)
	if err != nil {
		return "", &Error{Kind: KindGeneration, Op: op, Err: err}
	}

	post := postprocess.Clean(resp.String())

	s.logger.Info("post generated",
		zap.String("platform", req.Platform),
		zap.String("tone", req.Tone),
		zap.Int("length", len(post)),
		zap.Duration("duration", time.Since(start)),
	)

	return post, nil
}
