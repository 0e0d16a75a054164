package language

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/nadzzz/coachd/internal/message"
	"github.com/nadzzz/coachd/internal/observe"
)

// Service is the language entry point: catalog queries, detection and cached
// translation. It is safe for concurrent use.
type Service struct {
	catalog *Catalog
	backend Backend
	cache   *Cache
	metrics *observe.Metrics
	group   singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records cache lookups.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service over backend.
func NewService(backend Backend, opts ...Option) *Service {
	s := &Service{
		catalog: DefaultCatalog(),
		backend: backend,
		cache:   NewCache(),
		metrics: observe.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Catalog returns the service's catalog.
func (s *Service) Catalog() *Catalog { return s.catalog }

// Resolve normalizes a language identifier to a catalog code.
func (s *Service) Resolve(id string) (string, bool) { return s.catalog.Resolve(id) }

// Detect returns the catalog code for the language of text.
func (s *Service) Detect(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: text is required", ErrInvalid)
	}
	return s.backend.Detect(ctx, text)
}

// Translate translates text into target.
//
// A cached translation is returned before anything else, so a hit makes no
// backend call and reports the source language recorded with the entry. On a
// miss an empty source is detected; when detection fails the translation
// proceeds without a source hint. Text already in the target language is
// returned unchanged and is not cached.
//
// Concurrent misses for the same text and target share one backend call. The
// shared call is not cancelled with any single caller; each caller stops
// waiting when its own context is done.
func (s *Service) Translate(ctx context.Context, text, target, source string) (*message.TranslateResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalid)
	}
	to, ok := s.catalog.Resolve(target)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported target language %q", ErrInvalid, target)
	}
	var from string
	if strings.TrimSpace(source) != "" {
		if from, ok = s.catalog.Resolve(source); !ok {
			return nil, fmt.Errorf("%w: unsupported source language %q", ErrInvalid, source)
		}
	}

	res := &message.TranslateResult{SourceLanguage: from, TargetLanguage: to}
	if from == to {
		res.TranslatedText = text
		return res, nil
	}

	if v, src, hit := s.cache.Get(to, text); hit {
		s.metrics.RecordCacheLookup(ctx, true)
		res.TranslatedText = v
		if res.SourceLanguage == "" {
			res.SourceLanguage = src
		}
		return res, nil
	}
	s.metrics.RecordCacheLookup(ctx, false)

	if from == "" {
		detected, err := s.backend.Detect(ctx, text)
		if err != nil {
			slog.Debug("source language detection failed", "backend", s.backend.Name(), "error", err)
		}
		from = detected
		res.SourceLanguage = detected
		if from == to {
			res.TranslatedText = text
			return res, nil
		}
	}

	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(to+"\x00"+text, func() (any, error) {
		// A caller that missed just before the previous flight stored its
		// result finds it here.
		if v, _, hit := s.cache.Get(to, text); hit {
			return v, nil
		}
		out, err := s.backend.Translate(shared, text, from, to)
		if err != nil {
			return "", err
		}
		s.cache.Put(to, text, out, from)
		slog.Debug("translation cached", "target", to, "entries", s.cache.Len())
		return out, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		res.TranslatedText = r.Val.(string)
		return res, nil
	}
}
