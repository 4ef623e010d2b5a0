// Package grpc exposes the post generation pipeline over gRPC.
//
// Messages are google.protobuf.Struct values carrying the same field names
// as the HTTP JSON API, so no generated code is required.
package grpc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/atinyakov/go-post-generator/internal/app/service"
	"github.com/atinyakov/go-post-generator/internal/fetch"
	"github.com/atinyakov/go-post-generator/internal/intercepters"
	"github.com/atinyakov/go-post-generator/internal/models"
)

const (
	ServiceName        = "postgen.v1.PostService"
	GeneratePostMethod = "/" + ServiceName + "/GeneratePost"
)

const (
	internalMessage      = "Internal Server Error"
	missingFieldsMessage = "All fields required!"
	successMessage       = "Generated Post Successfully!"
)

// PostServiceServer is the server API of postgen.v1.PostService.
type PostServiceServer interface {
	GeneratePost(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes postgen.v1.PostService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PostServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GeneratePost",
			Handler:    generatePostHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "postgen/v1/post.proto",
}

func generatePostHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PostServiceServer).GeneratePost(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GeneratePostMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PostServiceServer).GeneratePost(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}

// Server wraps the gRPC server and dependencies.
type Server struct {
	grpcServer *grpc.Server
	address    string
	logger     *zap.Logger
}

// Option configures the PostService implementation.
type Option func(*PostServer)

// WithTypedErrors reports InvalidArgument, Unavailable or DeadlineExceeded
// by cause instead of a uniform Internal.
func WithTypedErrors(enabled bool) Option {
	return func(s *PostServer) {
		s.typedErrors = enabled
	}
}

// WithTimeout bounds every generation.
func WithTimeout(d time.Duration) Option {
	return func(s *PostServer) {
		s.timeout = d
	}
}

// New creates a gRPC server listening on address.
func New(address string, svc service.PostServiceIface, logger *zap.Logger, opts ...Option) *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			intercepters.RequestIDInterceptor,
			logging.UnaryServerInterceptor(
				intercepters.InterceptorLogger(logger),
				logging.WithLogOnEvents(logging.FinishCall),
				logging.WithFieldsFromContext(intercepters.RequestIDFields),
			),
			recovery.UnaryServerInterceptor(
				recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
					logger.Error("gRPC handler panicked", zap.Any("panic", p))
					return status.Error(codes.Internal, internalMessage)
				}),
			),
		),
	)

	s.RegisterService(&ServiceDesc, NewPostServer(svc, logger, opts...))

	return &Server{
		grpcServer: s,
		address:    address,
		logger:     logger,
	}
}

// Start listens on the configured address and serves until stopped.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		s.logger.Error("gRPC server failed to listen", zap.Error(err))
		return err
	}

	return s.Serve(lis)
}

// Serve accepts connections on lis.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server listening", zap.String("address", lis.Addr().String()))
	return s.grpcServer.Serve(lis)
}

// GracefulStop shuts down the server gracefully.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// PostServer implements PostServiceServer on top of the pipeline.
type PostServer struct {
	service     service.PostServiceIface
	logger      *zap.Logger
	typedErrors bool
	timeout     time.Duration
}

func NewPostServer(svc service.PostServiceIface, logger *zap.Logger, opts ...Option) *PostServer {
	s := &PostServer{
		service: svc,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GeneratePost reads blogUrl, platform and tone from req and answers with
// an envelope shaped struct.
func (s *PostServer) GeneratePost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	request := models.GenerationRequest{
		BlogURL:  fields["blogUrl"].GetStringValue(),
		Platform: fields["platform"].GetStringValue(),
		Tone:     fields["tone"].GetStringValue(),
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	post, err := s.service.GeneratePost(ctx, request)
	if err != nil {
		s.logger.Error("post generation failed",
			zap.Error(err),
			zap.String("kind", service.KindOf(err).String()),
		)
		return nil, s.statusError(err)
	}

	env := models.NewEnvelope(http.StatusOK, post, successMessage)

	return structpb.NewStruct(map[string]any{
		"statusCode": env.StatusCode,
		"data":       env.Data,
		"message":    env.Message,
		"success":    env.Success,
	})
}

func (s *PostServer) statusError(err error) error {
	if !s.typedErrors {
		return status.Error(codes.Internal, internalMessage)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "generation timed out")
	case errors.Is(err, fetch.ErrInvalidURL):
		return status.Error(codes.InvalidArgument, "Invalid blog URL")
	}

	switch service.KindOf(err) {
	case service.KindValidation:
		return status.Error(codes.InvalidArgument, missingFieldsMessage)
	case service.KindFetch, service.KindGeneration:
		return status.Error(codes.Unavailable, "upstream unavailable")
	default:
		return status.Error(codes.Internal, internalMessage)
	}
}
