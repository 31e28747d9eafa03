package ingest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ErrUnknownKind is returned when no handler is registered for an envelope's kind.
var ErrUnknownKind = errors.New("unknown ingest kind")

// Handler reconciles one envelope.
type Handler func(ctx context.Context, env Envelope) (Result, error)

// Router maps kinds to handlers.
type Router struct {
	mu       sync.RWMutex
	handlers map[Kind]Handler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[Kind]Handler)}
}

// Register binds h to kind, replacing any previous handler.
func (r *Router) Register(kind Kind, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = h
}

// Kinds returns the registered kinds, sorted.
func (r *Router) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Dispatch runs the handler registered for env.Kind.
func (r *Router) Dispatch(ctx context.Context, env Envelope) (Result, error) {
	r.mu.RLock()
	h, ok := r.handlers[env.Kind]
	r.mu.RUnlock()

	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownKind, env.Kind)
	}

	res, err := h(ctx, env)
	res.Kind = env.Kind
	res.Domain = env.Domain
	return res, err
}

// Archiver stores envelopes for later replay.
type Archiver interface {
	Put(ctx context.Context, env Envelope) (string, error)
}

// Pipeline validates, archives and dispatches envelopes.
type Pipeline struct {
	router   *Router
	archiver Archiver
	logger   *zap.Logger
}

// NewPipeline creates a pipeline. A nil archiver disables archiving.
func NewPipeline(router *Router, archiver Archiver, logger *zap.Logger) *Pipeline {
	return &Pipeline{router: router, archiver: archiver, logger: logger}
}

// Router returns the router envelopes are dispatched through.
func (p *Pipeline) Router() *Router {
	return p.router
}

// Ingest reconciles env. The payload is archived before dispatch so a failed
// reconciliation can be replayed.
func (p *Pipeline) Ingest(ctx context.Context, env Envelope) (Result, error) {
	if err := env.Validate(); err != nil {
		return Result{}, err
	}

	var key string
	if p.archiver != nil {
		k, err := p.archiver.Put(ctx, env)
		if err != nil {
			return Result{}, fmt.Errorf("failed to archive %s payload: %w", env.Kind, err)
		}
		key = k
	}

	res, err := p.router.Dispatch(ctx, env)
	res.Archive = key
	if err != nil {
		p.logger.Warn("Ingest failed",
			zap.String("kind", string(env.Kind)),
			zap.String("domain", env.Domain),
			zap.String("archive", key),
			zap.Error(err))
		return res, err
	}

	p.logger.Debug("Ingested",
		zap.String("kind", string(env.Kind)),
		zap.String("domain", env.Domain),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated))
	return res, nil
}
