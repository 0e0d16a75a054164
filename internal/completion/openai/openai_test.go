package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/config"
)

func chatBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(body)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.CompletionConfig{
		APIKey:    "sk-test",
		BaseURL:   srv.URL + "/v1/",
		Model:     "gpt-4o-mini",
		Timeout:   5 * time.Second,
		MaxTokens: 200,
	})
}

func TestComplete(t *testing.T) {
	t.Run("returns trimmed content", func(t *testing.T) {
		var (
			got        map[string]any
			path, auth string
		)
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			path, auth = r.URL.Path, r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(chatBody("  Great answer.\n")))
		})

		out, err := c.Complete(context.Background(), completion.Request{
			System:      "be brief",
			Prompt:      "hello",
			Model:       "gpt-4o",
			Temperature: 0.3,
		})
		require.NoError(t, err)
		require.Equal(t, "Great answer.", out)
		require.Equal(t, "/v1/chat/completions", path)
		require.Equal(t, "Bearer sk-test", auth)
		require.Equal(t, "gpt-4o", got["model"])
		require.Len(t, got["messages"], 2)
		require.EqualValues(t, 200, got["max_completion_tokens"])
	})

	t.Run("zero temperature is sent", func(t *testing.T) {
		var got map[string]any
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(chatBody("en")))
		})

		_, err := c.Complete(context.Background(), completion.Request{Prompt: "detect", Temperature: 0})
		require.NoError(t, err)
		require.Contains(t, got, "temperature")
		require.EqualValues(t, 0, got["temperature"])
	})

	t.Run("server error is unreachable and not retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
		})

		_, err := c.Complete(context.Background(), completion.Request{Prompt: "hello"})
		require.ErrorIs(t, err, completion.ErrUnreachable)
		require.EqualValues(t, 1, calls.Load())
	})

	t.Run("empty content is malformed", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(chatBody("   ")))
		})

		_, err := c.Complete(context.Background(), completion.Request{Prompt: "hello"})
		require.ErrorIs(t, err, completion.ErrMalformed)
	})

	t.Run("no choices is malformed", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
		})

		_, err := c.Complete(context.Background(), completion.Request{Prompt: "hello"})
		require.ErrorIs(t, err, completion.ErrMalformed)
	})

	t.Run("connection refused is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()
		c := New(config.CompletionConfig{APIKey: "sk-test", BaseURL: url + "/v1/", Model: "m", Timeout: time.Second})

		_, err := c.Complete(context.Background(), completion.Request{Prompt: "hello"})
		require.ErrorIs(t, err, completion.ErrUnreachable)
	})
}

func TestName(t *testing.T) {
	require.Equal(t, "openai", New(config.CompletionConfig{Timeout: time.Second}).Name())
}
