package lookup

import (
	"github.com/KirkDiggler/pokesearch/internal/entities"
)

// LookupInput defines the request for looking up a single entity
type LookupInput struct {
	// Query is a name or numeric id, matched case-insensitively
	Query string
	// SearchID correlates log lines of one search (optional)
	SearchID string
}

// LookupOutput is the full aggregation result of one search.
// Nil sections were unavailable and are omitted from display.
type LookupOutput struct {
	Pokemon     *entities.Pokemon
	Description string
	Evolution   *Evolution
	Matchups    *entities.Matchups
	Moves       []entities.LevelUpMove
	// Enriched is false when the species record could not be fetched
	Enriched bool
}

// Evolution holds the full chain tree and the stages on its primary path
type Evolution struct {
	Chain  *entities.EvolutionNode
	Stages []entities.EvolutionStage
}

// SuggestInput defines the request for name suggestions
type SuggestInput struct {
	Query string
}

// SuggestOutput defines the response for name suggestions
type SuggestOutput struct {
	Suggestions []string
}

// LoadRosterInput defines the request for warming the suggestion roster
type LoadRosterInput struct {
	// Refresh ignores a stored roster and fetches it again
	Refresh bool
}

// LoadRosterOutput defines the response for warming the suggestion roster
type LoadRosterOutput struct {
	Count     int
	FromStore bool
}
