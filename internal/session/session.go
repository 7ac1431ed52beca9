// Package session drives one search at a time through the idle, loading, success and error states
package session

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesearch/internal/errors"
	"github.com/KirkDiggler/pokesearch/internal/orchestrators/lookup"
	"github.com/KirkDiggler/pokesearch/internal/pkg/clock"
	"github.com/KirkDiggler/pokesearch/internal/pkg/idgen"
)

// State is the phase of the current search
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

const (
	// SearchIDPrefix prefixes generated search ids
	SearchIDPrefix = "search"

	messageEmptyQuery = "Enter a Pokemon name or number."
	messageCanceled   = "Search canceled."
)

// Snapshot is an immutable view of the session. A new one replaces the old on every transition.
type Snapshot struct {
	Generation  uint64
	SearchID    string
	State       State
	Query       string
	Result      *lookup.LookupOutput
	Message     string
	StartedAt   time.Time
	CompletedAt time.Time
}

// Config holds the dependencies for a Session
type Config struct {
	Service     lookup.Service
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Logger      *zap.Logger
	// OnChange is called after every published snapshot (optional)
	OnChange func(*Snapshot)
}

// Validate ensures required dependencies are provided and sets defaults
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	if c.IDGenerator == nil {
		c.IDGenerator = idgen.NewUUID(SearchIDPrefix)
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	vb := errors.NewValidationBuilder()
	if c.Service == nil {
		vb.RequiredField("Service")
	}
	return vb.Build()
}

// Session serializes search results so only the newest submission is ever shown
type Session struct {
	service    lookup.Service
	idGen      idgen.Generator
	clock      clock.Clock
	logger     *zap.Logger
	onChange   func(*Snapshot)
	generation atomic.Uint64
	current    atomic.Pointer[Snapshot]
}

// New creates an idle session
func New(cfg *Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Session{
		service:  cfg.Service,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		onChange: cfg.OnChange,
	}
	s.current.Store(&Snapshot{State: StateIdle})
	return s, nil
}

// Snapshot returns the latest published snapshot
func (s *Session) Snapshot() *Snapshot {
	return s.current.Load()
}

// Submit starts a new search generation and runs it to completion.
// The loading snapshot clears any previous result. The returned bool is false
// when a newer submission finished or started first and this result was discarded.
func (s *Session) Submit(ctx context.Context, query string) (*Snapshot, bool) {
	gen := s.generation.Add(1)
	searchID := s.idGen.Generate()

	loading := &Snapshot{
		Generation: gen,
		SearchID:   searchID,
		State:      StateLoading,
		Query:      query,
		StartedAt:  s.clock.Now(),
	}
	if !s.publish(loading) {
		return loading, false
	}

	result, err := s.service.Lookup(ctx, &lookup.LookupInput{Query: query, SearchID: searchID})

	final := &Snapshot{
		Generation:  gen,
		SearchID:    searchID,
		Query:       query,
		StartedAt:   loading.StartedAt,
		CompletedAt: s.clock.Now(),
	}
	if err != nil {
		final.State = StateError
		final.Message = userMessage(err)
	} else {
		final.State = StateSuccess
		final.Result = result
	}

	if !s.publish(final) {
		s.logger.Debug("Discarded stale search result",
			zap.String("search_id", searchID),
			zap.Uint64("generation", gen),
			zap.Uint64("latest", s.generation.Load()),
		)
		return final, false
	}
	return final, true
}

// Reset returns the session to idle and supersedes any in-flight search
func (s *Session) Reset() *Snapshot {
	idle := &Snapshot{Generation: s.generation.Add(1), State: StateIdle}
	s.publish(idle)
	return idle
}

// publish stores next unless a newer generation is already visible
func (s *Session) publish(next *Snapshot) bool {
	for {
		cur := s.current.Load()
		if cur != nil && (cur.Generation > next.Generation || s.generation.Load() != next.Generation) {
			return false
		}
		if s.current.CompareAndSwap(cur, next) {
			if s.onChange != nil {
				s.onChange(next)
			}
			return true
		}
	}
}

func userMessage(err error) string {
	switch {
	case errors.IsInvalidArgument(err):
		return messageEmptyQuery
	case errors.IsCanceled(err), errors.GetCode(err) == errors.CodeDeadlineExceeded:
		return messageCanceled
	default:
		return lookup.NotFoundMessage
	}
}
