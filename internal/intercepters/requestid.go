package intercepters

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/atinyakov/go-post-generator/internal/middleware"
)

// RequestIDMetadataKey is the metadata key carrying the request id.
const RequestIDMetadataKey = "x-request-id"

// RequestIDInterceptor stores a request id in the context, reusing a
// well-formed one sent by the client, and returns it as a response header.
func RequestIDInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	var id string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(RequestIDMetadataKey); len(ids) > 0 {
			id = ids[0]
		}
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	// fails only outside a real RPC, e.g. when called directly in tests
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDMetadataKey, id))

	ctx = context.WithValue(ctx, middleware.RequestIDKey, id)
	return handler(ctx, req)
}
