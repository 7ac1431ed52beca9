package lookup

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesearch/internal/errors"
	"github.com/KirkDiggler/pokesearch/internal/repositories/roster"
)

const (
	// MinQueryLength is the longest query that still yields no suggestions
	MinQueryLength = 2

	// MaxSuggestions caps the suggestion list
	MaxSuggestions = 5
)

// FilterSuggestions returns, in roster order, the first limit names containing query
// case-insensitively. Queries of MinQueryLength characters or fewer match nothing.
func FilterSuggestions(names []string, query string, limit int) []string {
	if len([]rune(query)) <= MinQueryLength || limit <= 0 {
		return nil
	}

	needle := strings.ToLower(query)
	var matches []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			matches = append(matches, name)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

func (o *orchestrator) Suggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len([]rune(input.Query)) <= MinQueryLength {
		return &SuggestOutput{}, nil
	}

	names, _, err := o.loadRoster(ctx, false)
	if err != nil {
		o.logger.Warn("Suggestion roster unavailable", zap.Error(err))
		return &SuggestOutput{}, nil
	}

	return &SuggestOutput{
		Suggestions: FilterSuggestions(names, input.Query, MaxSuggestions),
	}, nil
}

func (o *orchestrator) LoadRoster(ctx context.Context, input *LoadRosterInput) (*LoadRosterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	names, fromStore, err := o.loadRoster(ctx, input.Refresh)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load roster")
	}

	return &LoadRosterOutput{Count: len(names), FromStore: fromStore}, nil
}

// loadRoster returns the stored roster, fetching and storing it when absent or refresh is set
func (o *orchestrator) loadRoster(ctx context.Context, refresh bool) ([]string, bool, error) {
	if !refresh {
		stored, err := o.rosterRepo.Get(ctx, roster.GetInput{Limit: o.rosterLimit})
		switch {
		case err == nil:
			return stored.Names, true, nil
		case !errors.IsNotFound(err):
			o.logger.Warn("Failed to read stored roster", zap.Error(err))
		}
	}

	names, err := o.client.ListPokemon(ctx, o.rosterLimit)
	if err != nil {
		return nil, false, err
	}

	if _, err := o.rosterRepo.Save(ctx, roster.SaveInput{
		Limit: o.rosterLimit,
		Names: names,
		TTL:   o.rosterTTL,
	}); err != nil {
		o.logger.Warn("Failed to store roster", zap.Error(err))
	}

	o.logger.Debug("Roster fetched", zap.Int("count", len(names)))
	return names, false, nil
}
