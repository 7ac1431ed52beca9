package roster

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/pokesearch/internal/errors"
	"github.com/KirkDiggler/pokesearch/internal/pkg/clock"
)

type entry struct {
	names     []string
	storedAt  time.Time
	expiresAt time.Time
}

// InMemoryRepository implements Repository using process memory
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]entry
}

// NewInMemory creates a new in-memory repository. A nil clock uses system time.
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[string]entry),
	}
}

// Get retrieves a roster by limit
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.store[keyFor(input.Limit)]
	if !exists {
		return nil, errors.NotFoundf("roster for limit %d not found", input.Limit)
	}
	if !e.expiresAt.IsZero() && !r.clock.Now().Before(e.expiresAt) {
		return nil, errors.NotFoundf("roster for limit %d expired", input.Limit)
	}

	return &GetOutput{
		Names:    append([]string(nil), e.names...),
		StoredAt: e.storedAt,
	}, nil
}

// Save stores a roster
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}
	if input.TTL < 0 {
		return nil, errors.InvalidArgument("ttl cannot be negative")
	}

	now := r.clock.Now()
	e := entry{
		names:    append([]string(nil), input.Names...),
		storedAt: now,
	}
	if input.TTL > 0 {
		e.expiresAt = now.Add(input.TTL)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[keyFor(input.Limit)] = e

	return &SaveOutput{StoredAt: now}, nil
}
