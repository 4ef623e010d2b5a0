package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/atinyakov/go-post-generator/internal/models"
)

// Client calls postgen.v1.PostService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// GeneratePost returns the generated post for req.
func (c *Client) GeneratePost(ctx context.Context, req models.GenerationRequest, opts ...grpc.CallOption) (string, error) {
	in, err := structpb.NewStruct(map[string]any{
		"blogUrl":  req.BlogURL,
		"platform": req.Platform,
		"tone":     req.Tone,
	})
	if err != nil {
		return "", err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GeneratePostMethod, in, out, opts...); err != nil {
		return "", err
	}

	return out.GetFields()["data"].GetStringValue(), nil
}
