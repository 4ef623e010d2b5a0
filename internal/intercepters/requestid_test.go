package intercepters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/atinyakov/go-post-generator/internal/middleware"
)

func TestRequestIDInterceptor(t *testing.T) {
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return middleware.RequestIDFromContext(ctx), nil
	}

	const sent = "0f8fad5b-d9cb-469f-a165-70867728950e"

	tests := []struct {
		name  string
		ctx   context.Context
		reuse bool
	}{
		{
			name:  "valid id in metadata",
			ctx:   metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDMetadataKey, sent)),
			reuse: true,
		},
		{
			name: "malformed id in metadata",
			ctx:  metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDMetadataKey, "nope")),
		},
		{
			name: "without metadata",
			ctx:  context.Background(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := RequestIDInterceptor(tt.ctx, nil, &grpc.UnaryServerInfo{
				FullMethod: "/postgen.v1.PostService/GeneratePost",
			}, handler)
			require.NoError(t, err)

			id, _ := resp.(string)
			_, err = uuid.Parse(id)
			require.NoError(t, err)

			if tt.reuse {
				assert.Equal(t, sent, id)
			} else {
				assert.NotEqual(t, sent, id)
			}
		})
	}
}
