// Package mock provides a test double for the completion.Completer interface.
//
// Use Completer in unit tests to verify the requests a component sends and to
// feed controlled responses without a live service.
//
// Example:
//
//	c := &mock.Completer{Response: `["react", "docker"]`}
//	out, err := c.Complete(ctx, req)
package mock

import (
	"context"
	"sync"

	"github.com/nadzzz/coachd/internal/completion"
)

// Call records a single invocation of Complete.
type Call struct {
	Ctx context.Context
	Req completion.Request
}

// Completer is a mock implementation of completion.Completer.
// Set Err to inject an error. Respond, if set, takes precedence over Response.
type Completer struct {
	mu sync.Mutex

	// Response is returned by Complete.
	Response string

	// Respond computes the response per request.
	Respond func(req completion.Request) (string, error)

	// Err, if non-nil, is returned as the error from Complete.
	Err error

	// Calls records every invocation of Complete in order.
	Calls []Call

	closed bool
}

// Name implements completion.Completer.
func (c *Completer) Name() string { return "mock" }

// Complete implements completion.Completer.
func (c *Completer) Complete(ctx context.Context, req completion.Request) (string, error) {
	c.mu.Lock()
	c.Calls = append(c.Calls, Call{Ctx: ctx, Req: req})
	respond, resp, err := c.Respond, c.Response, c.Err
	c.mu.Unlock()

	if respond != nil {
		return respond(req)
	}
	if err != nil {
		return "", err
	}
	return resp, nil
}

// Close implements completion.Completer.
func (c *Completer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// CallCount returns the number of Complete invocations so far.
func (c *Completer) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Calls)
}

// Closed reports whether Close was called.
func (c *Completer) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
