package language

import (
	"context"
	"errors"
)

var (
	// ErrInvalid marks caller errors: empty text, unknown language codes.
	ErrInvalid = errors.New("invalid translation request")

	// ErrUndetectable is returned when a backend cannot identify the
	// language of a text.
	ErrUndetectable = errors.New("language could not be detected")
)

// Backend detects and translates text. Codes passed to and returned from a
// Backend are catalog codes.
type Backend interface {
	// Name returns the backend identifier (e.g., "local").
	Name() string

	// Detect returns the catalog code of the language text is written in.
	Detect(ctx context.Context, text string) (string, error)

	// Translate translates text from source (empty when unknown) into target.
	Translate(ctx context.Context, text, source, target string) (string, error)
}
