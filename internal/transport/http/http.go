// Package http implements the HTTP transport for coachd.
//
// This transport exposes a small JSON API for answer analysis, interview
// coaching, translation and the language catalog, plus the Swagger UI. It is best suited for web
// clients and services that prefer HTTP-based communication.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/nadzzz/coachd/docs" // registers the OpenAPI document with swag
	"github.com/nadzzz/coachd/internal/message"
	"github.com/nadzzz/coachd/internal/observe"
	"github.com/nadzzz/coachd/internal/transport"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error *message.Failure `json:"error"`
}

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port    int
	metrics *observe.Metrics

	mu     sync.Mutex
	server *http.Server
	closed bool
}

// New creates a new HTTP transport on the given port. A nil metrics records
// nothing.
func New(port int, m *observe.Metrics) *Transport {
	if m == nil {
		m = observe.Discard()
	}
	return &Transport{port: port, metrics: m}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Handler returns the routed, instrumented handler for h.
func (t *Transport) Handler(h transport.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/analyze", func(w http.ResponseWriter, r *http.Request) {
		handleAnalyze(w, r, h)
	})
	mux.HandleFunc("POST /v1/questions", func(w http.ResponseWriter, r *http.Request) {
		handleQuestions(w, r, h)
	})
	mux.HandleFunc("POST /v1/followup", func(w http.ResponseWriter, r *http.Request) {
		handleFollowUp(w, r, h)
	})
	mux.HandleFunc("POST /v1/interview/summary", func(w http.ResponseWriter, r *http.Request) {
		handleSummary(w, r, h)
	})
	mux.HandleFunc("POST /v1/translate", func(w http.ResponseWriter, r *http.Request) {
		handleTranslate(w, r, h)
	})
	mux.HandleFunc("POST /v1/detect", func(w http.ResponseWriter, r *http.Request) {
		handleDetect(w, r, h)
	})
	mux.HandleFunc("GET /v1/languages", func(w http.ResponseWriter, r *http.Request) {
		handleLanguages(w, r, h)
	})

	// Swagger UI, serving the registered OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return observe.Middleware(t.metrics)(requestID(mux))
}

// Listen starts the HTTP server and routes incoming requests to the handler.
// It returns nil once the transport is closed, including when Close ran first.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           t.Handler(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}
	t.server = srv
	t.mu.Unlock()

	slog.Info("http transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// handleAnalyze processes a POST /v1/analyze request.
//
// @Summary     Analyze an interview answer
// @Description Scores the answer, extracts keywords and writes feedback in the requested language.
// @Description Feedback is written by the completion service when one is configured and by local rules otherwise.
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Param       request  body      message.AnalyzeRequest  true  "Answer to analyze"
// @Success     200      {object}  message.AnalysisResult
// @Failure     400      {object}  ErrorResponse  "Invalid request"
// @Failure     502      {object}  ErrorResponse  "Completion service failure"
// @Failure     500      {object}  ErrorResponse  "Internal error"
// @Router      /v1/analyze [post]
func handleAnalyze(w http.ResponseWriter, r *http.Request, h transport.Handler) {
	var req message.AnalyzeRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Analyze(r.Context(), &req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleQuestions processes a POST /v1/questions request.
//
// @Summary     Generate interview questions
// @Description Returns a question set for the role and level in the requested language.
// @Description Falls back to the built-in question tables when the completion service fails.
// @Tags        interview
// @Accept      json
// @Produce     json
// @Param       request  body      message.QuestionsRequest  true  "Question set to generate"
// @Success     200      {object}  message.QuestionsResult
// @Failure     400      {object}  ErrorResponse  "Invalid request"
// @Failure     500      {object}  ErrorResponse  "Internal error"
// @Router      /v1/questions [post]
func handleQuestions(w http.ResponseWriter, r *http.Request, h transport.Handler) {
	var req message.QuestionsRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Questions(r.Context(), &req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleFollowUp processes a POST /v1/followup request.
//
// @Summary     Pick a follow-up question
// @Description Chooses the next question from the candidate's last answer, the role and the interview stage.
// @Tags        interview
// @Accept      json
// @Produce     json
// @Param       request  body      message.FollowUpRequest  true  "Last question and answer"
// @Success     200      {object}  message.FollowUpResult
// @Failure     400      {object}  ErrorResponse  "Invalid request"
// @Failure     500      {object}  ErrorResponse  "Internal error"
// @Router      /v1/followup [post]
func handleFollowUp(w http.ResponseWriter, r *http.Request, h transport.Handler) {
	var req message.FollowUpRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.FollowUp(r.Context(), &req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleSummary processes a POST /v1/interview/summary request.
//
// @Summary     Assess a finished interview
// @Description Scores every answer and the interview as a whole, with strengths, improvements and recommendations.
// @Tags        interview
// @Accept      json
// @Produce     json
// @Param       request  body      message.InterviewRequest  true  "Interview answers"
// @Success     200      {object}  message.InterviewSummary
// @Failure     400      {object}  ErrorResponse  "Invalid request"
// @Failure     500      {object}  ErrorResponse  "Internal error"
// @Router      /v1/interview/summary [post]
func handleSummary(w http.ResponseWriter, r *http.Request, h transport.Handler) {
	var req message.InterviewRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Summarize(r.Context(), &req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleTranslate processes a POST /v1/translate request.
//
// @Summary     Translate text
// @Description Translates text into the target language. The source language is detected when omitted.
// @Description Repeated requests are served from the translation cache.
// @Tags        language
// @Accept      json
// @Produce     json
// @Param       request  body      message.TranslateRequest  true  "Text to translate"
// @Success     200      {object}  message.TranslateResult
// @Failure     400      {object}  ErrorResponse  "Invalid request"
// @Failure     502      {object}  ErrorResponse  "Completion service failure"
// @Router      /v1/translate [post]
func handleTranslate(w http.ResponseWriter, r *http.Request, h transport.Handler) {
	var req message.TranslateRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Translate(r.Context(), &req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleDetect processes a POST /v1/detect request.
//
// @Summary     Detect the language of a text
// @Tags        language
// @Accept      json
// @Produce     json
// @Param       request  body      message.DetectRequest  true  "Text to inspect"
// @Success     200      {object}  message.DetectResult
// @Failure     400      {object}  ErrorResponse  "Empty or undetectable text"
// @Failure     502      {object}  ErrorResponse  "Completion service failure"
// @Router      /v1/detect [post]
func handleDetect(w http.ResponseWriter, r *http.Request, h transport.Handler) {
	var req message.DetectRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Detect(r.Context(), &req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleLanguages processes a GET /v1/languages request.
//
// @Summary     List supported languages
// @Description Returns the language catalog grouped by category, optionally filtered by a search query.
// @Tags        language
// @Produce     json
// @Param       q    query     string  false  "Substring of the code, name or native name"
// @Success     200  {object}  message.LanguagesResult
// @Router      /v1/languages [get]
func handleLanguages(w http.ResponseWriter, r *http.Request, h transport.Handler) {
	writeJSON(w, http.StatusOK, h.Languages(r.URL.Query().Get("q")))
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFailure(w, &message.Failure{
			Kind:    message.FailureValidation,
			Message: "invalid json body",
			Detail:  err.Error(),
		})
		return false
	}
	return true
}

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(kind message.FailureKind) int {
	switch kind {
	case message.FailureValidation:
		return http.StatusBadRequest
	case message.FailureServiceUnreachable, message.FailureMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeFailure(w http.ResponseWriter, err error) {
	var f *message.Failure
	if !errors.As(err, &f) {
		f = &message.Failure{Kind: message.FailureInternal, Message: "internal error", Detail: err.Error()}
	}
	writeJSON(w, StatusFor(f.Kind), ErrorResponse{Error: f})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestID echoes the caller's request ID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	t.mu.Lock()
	t.closed = true
	srv := t.server
	t.mu.Unlock()

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
	return nil
}
