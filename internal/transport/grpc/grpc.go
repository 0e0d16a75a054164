// Package grpc implements the gRPC transport for coachd.
//
// This transport exposes the coach.v1.Coach service with unary Analyze,
// Questions, FollowUp, SummarizeInterview, Translate, Detect and Languages
// methods. Messages are the JSON forms of the
// message package types, carried with the "json" content-subtype codec
// registered by this package, so clients need no generated stubs. The
// standard gRPC health service is served alongside it.
package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/nadzzz/coachd/internal/message"
	"github.com/nadzzz/coachd/internal/transport"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "coach.v1.Coach"

// FailureKindKey is the trailer key carrying the message.FailureKind of a
// failed call.
const FailureKindKey = "coach-failure-kind"

// CodecName is the content-subtype clients must select with
// grpc.CallContentSubtype.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

// LanguagesRequest filters the catalog. An empty Query returns everything.
type LanguagesRequest struct {
	Query string `json:"query,omitempty"`
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*transport.Handler)(nil),
	Methods: []grpc.MethodDesc{
		unary("Analyze", transport.Handler.Analyze),
		unary("Questions", transport.Handler.Questions),
		unary("FollowUp", transport.Handler.FollowUp),
		unary("SummarizeInterview", transport.Handler.Summarize),
		unary("Translate", transport.Handler.Translate),
		unary("Detect", transport.Handler.Detect),
		unary("Languages", func(h transport.Handler, _ context.Context, req *LanguagesRequest) (*message.LanguagesResult, error) {
			return h.Languages(req.Query), nil
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coach/v1/coach.proto",
}

// unary adapts a Handler method to a gRPC method. Handler errors become
// status errors carrying the failure kind.
func unary[Req, Res any](name string, fn func(transport.Handler, context.Context, *Req) (Res, error)) grpc.MethodDesc {
	full := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			call := func(ctx context.Context, req any) (any, error) {
				res, err := fn(srv.(transport.Handler), ctx, req.(*Req))
				if err != nil {
					return nil, toStatus(ctx, err)
				}
				return res, nil
			}
			if interceptor == nil {
				return call(ctx, in)
			}
			return interceptor(ctx, in, &grpc.UnaryServerInfo{Server: srv, FullMethod: full}, call)
		},
	}
}

// CodeFor maps a failure kind to its gRPC status code.
func CodeFor(kind message.FailureKind) codes.Code {
	switch kind {
	case message.FailureValidation:
		return codes.InvalidArgument
	case message.FailureServiceUnreachable, message.FailureMalformedResponse:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// toStatus converts a handler error into a status error and records the
// failure kind in the response trailer.
func toStatus(ctx context.Context, err error) error {
	var f *message.Failure
	if !errors.As(err, &f) {
		f = &message.Failure{Kind: message.FailureInternal, Message: "internal error", Detail: err.Error()}
	}
	_ = grpc.SetTrailer(ctx, metadata.Pairs(FailureKindKey, string(f.Kind)))
	return status.Error(CodeFor(f.Kind), f.Message)
}

// logUnary logs every finished call.
func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	res, err := handler(ctx, req)
	slog.LogAttrs(ctx, slog.LevelInfo, "rpc completed",
		slog.String("method", info.FullMethod),
		slog.String("code", status.Code(err).String()),
		slog.Duration("duration", time.Since(start)),
	)
	return res, err
}

// NewServer builds a gRPC server serving h and the health service. The
// returned health server reports ServiceName as SERVING.
func NewServer(h transport.Handler) (*grpc.Server, *health.Server) {
	s := grpc.NewServer(grpc.UnaryInterceptor(logUnary))
	s.RegisterService(&serviceDesc, h)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return s, hs
}

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port int

	mu     sync.Mutex
	server *grpc.Server
	health *health.Server
	closed bool
}

// New creates a new gRPC transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Listen starts the gRPC server and routes incoming requests to the handler.
// It returns nil once the transport is closed, including when Close ran first.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		t.mu.Unlock()
		return fmt.Errorf("grpc listen: %w", err)
	}
	srv, hs := NewServer(handler)
	t.server, t.health = srv, hs
	t.mu.Unlock()

	slog.Info("grpc transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Close gracefully stops the gRPC server.
func (t *Transport) Close() error {
	t.mu.Lock()
	t.closed = true
	srv, hs := t.server, t.health
	t.mu.Unlock()

	if srv != nil {
		hs.Shutdown()
		srv.GracefulStop()
	}
	return nil
}
