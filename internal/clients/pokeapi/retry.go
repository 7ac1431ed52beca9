package pokeapi

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesearch/internal/entities"
	"github.com/KirkDiggler/pokesearch/internal/errors"
)

const (
	// DefaultRetryBaseDelay is the first backoff step
	DefaultRetryBaseDelay = 200 * time.Millisecond

	// DefaultRetryMaxDelay caps a single backoff step
	DefaultRetryMaxDelay = 5 * time.Second
)

// RetryConfig configures the bounded retry wrapper.
// MaxAttempts counts the first call, so 1 disables retrying.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Logger      *zap.Logger
}

// Validate validates the RetryConfig and sets defaults if not provided.
func (cfg *RetryConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = DefaultRetryBaseDelay
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = DefaultRetryMaxDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("MaxAttempts", cfg.MaxAttempts, vb)
	if cfg.BaseDelay < 0 {
		vb.Field("BaseDelay", "cannot be negative")
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		vb.Field("MaxDelay", "must not be below BaseDelay")
	}
	return vb.Build()
}

type retryingClient struct {
	inner       Client
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	logger      *zap.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewRetrying wraps a Client so every call is retried on retryable failures.
// NotFound and InvalidArgument are returned immediately.
func NewRetrying(inner Client, cfg *RetryConfig) (Client, error) {
	if inner == nil {
		return nil, errors.InvalidArgument("inner client is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid retry config")
	}
	if cfg.MaxAttempts == 1 {
		return inner, nil
	}

	return &retryingClient{
		inner:       inner,
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay,
		maxDelay:    cfg.MaxDelay,
		logger:      cfg.Logger,
		sleep:       sleepContext,
	}, nil
}

func (r *retryingClient) ListPokemon(ctx context.Context, limit int) ([]string, error) {
	return withRetry(ctx, r, "ListPokemon", func(ctx context.Context) ([]string, error) {
		return r.inner.ListPokemon(ctx, limit)
	})
}

func (r *retryingClient) GetPokemon(ctx context.Context, nameOrID string) (*entities.Pokemon, error) {
	return withRetry(ctx, r, "GetPokemon", func(ctx context.Context) (*entities.Pokemon, error) {
		return r.inner.GetPokemon(ctx, nameOrID)
	})
}

func (r *retryingClient) GetSpecies(ctx context.Context, id int) (*entities.Species, error) {
	return withRetry(ctx, r, "GetSpecies", func(ctx context.Context) (*entities.Species, error) {
		return r.inner.GetSpecies(ctx, id)
	})
}

func (r *retryingClient) GetEvolutionChain(ctx context.Context, locator string) (*entities.EvolutionNode, error) {
	return withRetry(ctx, r, "GetEvolutionChain", func(ctx context.Context) (*entities.EvolutionNode, error) {
		return r.inner.GetEvolutionChain(ctx, locator)
	})
}

func (r *retryingClient) GetTypeRelation(ctx context.Context, locator string) (*entities.TypeRelation, error) {
	return withRetry(ctx, r, "GetTypeRelation", func(ctx context.Context) (*entities.TypeRelation, error) {
		return r.inner.GetTypeRelation(ctx, locator)
	})
}

func withRetry[T any](ctx context.Context, r *retryingClient, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !errors.IsRetryable(err) || attempt == r.maxAttempts-1 {
			break
		}

		delay := r.computeDelay(attempt)
		r.logger.Warn("Upstream call failed, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", r.maxAttempts),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := r.sleep(ctx, delay); err != nil {
			return zero, errors.WrapWithCodef(err, errors.GetCode(err), "%s retry aborted", op)
		}
	}

	return zero, lastErr
}

// computeDelay doubles the base delay per attempt, caps it, and adds up to 50% jitter
func (r *retryingClient) computeDelay(attempt int) time.Duration {
	delay := r.baseDelay << attempt
	if delay <= 0 || delay > r.maxDelay {
		delay = r.maxDelay
	}
	if half := int64(delay / 2); half > 0 {
		delay += time.Duration(rand.Int63n(half))
	}
	if delay > r.maxDelay {
		delay = r.maxDelay
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
