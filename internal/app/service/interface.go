package service

import (
	"context"

	"github.com/atinyakov/go-post-generator/internal/fetch"
	"github.com/atinyakov/go-post-generator/internal/llm"
	"github.com/atinyakov/go-post-generator/internal/models"
)

//go:generate mockgen -source=interface.go -destination=../../mocks/service.go -package=mocks

// Fetcher loads the text of a blog page and the pages it links to.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]fetch.Document, error)
}

// Generator produces raw text for a prompt.
type Generator interface {
	Invoke(ctx context.Context, prompt string) (llm.Response, error)
}

// PostServiceIface is the generation pipeline consumed by the transports.
type PostServiceIface interface {
	GeneratePost(ctx context.Context, req models.GenerationRequest) (string, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}
