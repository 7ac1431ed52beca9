// Package roster stores the pre-fetched list of entity names used for suggestions
package roster

//go:generate mockgen -destination=mock/mock_repository.go -package=rostermock github.com/KirkDiggler/pokesearch/internal/repositories/roster Repository

import (
	"context"
	"strconv"
	"time"

	"github.com/KirkDiggler/pokesearch/internal/errors"
)

const rosterKeyPrefix = "roster:pokemon:"

// KeyPattern matches every roster key written by the Redis repository
const KeyPattern = rosterKeyPrefix + "*"

// Repository defines the interface for roster storage
type Repository interface {
	// Get retrieves the roster stored for a list limit
	// Returns errors.InvalidArgument for a non-positive limit
	// Returns errors.NotFound if nothing is stored or the entry expired
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save stores a roster, replacing any previous one for the same limit
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}

// GetInput defines the input for getting a roster
type GetInput struct {
	Limit int
}

// GetOutput defines the output for getting a roster
type GetOutput struct {
	Names    []string
	StoredAt time.Time
}

// SaveInput defines the input for saving a roster
type SaveInput struct {
	Limit int
	Names []string
	// TTL of zero keeps the roster until replaced
	TTL time.Duration
}

// SaveOutput defines the output for saving a roster
type SaveOutput struct {
	StoredAt time.Time
}

func keyFor(limit int) string {
	return rosterKeyPrefix + strconv.Itoa(limit)
}

func validateLimit(limit int) error {
	if limit <= 0 {
		return errors.InvalidArgumentf("roster limit must be positive, got %d", limit)
	}
	return nil
}
