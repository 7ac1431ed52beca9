package roster

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokesearch/internal/errors"
	"github.com/KirkDiggler/pokesearch/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/pokesearch/internal/redis"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis roster repository.
type RedisConfig struct {
	Client redisclient.Client
	// Clock stamps StoredAt (optional, defaults to system time)
	Clock clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed roster repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  clk,
	}, nil
}

// rosterData is what gets serialized to Redis
type rosterData struct {
	Names    []string  `json:"names"`
	StoredAt time.Time `json:"stored_at"`
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}

	key := keyFor(input.Limit)
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("roster for limit %d not found", input.Limit)
		}
		return nil, errors.Wrapf(err, "failed to get roster %s", key)
	}

	var data rosterData
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal roster %s", key)
	}

	return &GetOutput{
		Names:    data.Names,
		StoredAt: data.StoredAt,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}
	if input.TTL < 0 {
		return nil, errors.InvalidArgument("ttl cannot be negative")
	}

	data := rosterData{
		Names:    input.Names,
		StoredAt: r.clock.Now().UTC(),
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal roster")
	}

	key := keyFor(input.Limit)
	if err := r.client.Set(ctx, key, payload, input.TTL).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save roster %s", key)
	}

	return &SaveOutput{StoredAt: data.StoredAt}, nil
}
