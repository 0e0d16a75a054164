// Package transport defines the interface for pluggable request transports.
//
// Each transport (HTTP, gRPC) implements this interface and serves the same
// Handler. The engine doesn't care how requests arrive; it only works with
// the Handler contract.
package transport

import (
	"context"

	"github.com/nadzzz/coachd/internal/message"
)

// Handler processes incoming requests. The engine implements it. Every
// returned error is a *message.Failure.
type Handler interface {
	Analyze(ctx context.Context, req *message.AnalyzeRequest) (*message.AnalysisResult, error)
	Questions(ctx context.Context, req *message.QuestionsRequest) (*message.QuestionsResult, error)
	FollowUp(ctx context.Context, req *message.FollowUpRequest) (*message.FollowUpResult, error)
	Summarize(ctx context.Context, req *message.InterviewRequest) (*message.InterviewSummary, error)
	Translate(ctx context.Context, req *message.TranslateRequest) (*message.TranslateResult, error)
	Detect(ctx context.Context, req *message.DetectRequest) (*message.DetectResult, error)
	Languages(query string) *message.LanguagesResult
}

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "grpc", "http").
	Name() string

	// Listen starts accepting requests and passes them to the handler.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
