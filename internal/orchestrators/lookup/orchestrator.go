// Package lookup aggregates an entity record with its species, evolution, type and move data
package lookup

//go:generate mockgen -destination=mock/mock_service.go -package=lookupmock github.com/KirkDiggler/pokesearch/internal/orchestrators/lookup Service

import (
	"context"
	"strings"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesearch/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokesearch/internal/entities"
	"github.com/KirkDiggler/pokesearch/internal/errors"
	"github.com/KirkDiggler/pokesearch/internal/repositories/roster"
)

const (
	// NotFoundMessage is shown to the user when the primary record cannot be fetched
	NotFoundMessage = "Pokemon not found! Try another name."

	// DefaultLanguage selects the flavor text entry used as description
	DefaultLanguage = "en"

	// DefaultRosterLimit is the size of the suggestion roster
	DefaultRosterLimit = 151

	// DefaultRosterTTL is how long a fetched roster is reused
	DefaultRosterTTL = time.Hour

	// DefaultMaxConcurrency bounds parallel sprite and type fetches
	DefaultMaxConcurrency = 6

	// MaxMoves is the number of level-up moves kept for display
	MaxMoves = 5
)

// Service defines the interface for lookup operations
type Service interface {
	// Lookup fetches an entity and enriches it on a best-effort basis.
	// Returns errors.NotFound carrying NotFoundMessage when the entity cannot be fetched.
	Lookup(ctx context.Context, input *LookupInput) (*LookupOutput, error)

	// Suggest returns up to MaxSuggestions roster names containing the query.
	// Roster failures yield an empty list, never an error.
	Suggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error)

	// LoadRoster makes sure the suggestion roster is stored
	LoadRoster(ctx context.Context, input *LoadRosterInput) (*LoadRosterOutput, error)
}

// Config holds the dependencies for the lookup orchestrator
type Config struct {
	Client         pokeapi.Client
	RosterRepo     roster.Repository
	Logger         *zap.Logger
	MaxConcurrency int
	RosterLimit    int
	RosterTTL      time.Duration
}

// Validate ensures all required dependencies are provided and sets defaults
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	if c.RosterLimit == 0 {
		c.RosterLimit = DefaultRosterLimit
	}
	if c.RosterTTL == 0 {
		c.RosterTTL = DefaultRosterTTL
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.RosterRepo == nil {
		vb.RequiredField("RosterRepo")
	}
	errors.ValidatePositive("MaxConcurrency", c.MaxConcurrency, vb)
	errors.ValidatePositive("RosterLimit", c.RosterLimit, vb)
	if c.RosterTTL < 0 {
		vb.Field("RosterTTL", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	client         pokeapi.Client
	rosterRepo     roster.Repository
	logger         *zap.Logger
	maxConcurrency int
	rosterLimit    int
	rosterTTL      time.Duration
}

// NewOrchestrator creates a new lookup orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		client:         cfg.Client,
		rosterRepo:     cfg.RosterRepo,
		logger:         cfg.Logger,
		maxConcurrency: cfg.MaxConcurrency,
		rosterLimit:    cfg.RosterLimit,
		rosterTTL:      cfg.RosterTTL,
	}, nil
}

// Lookup runs entity, species and evolution in sequence, then types and moves together
func (o *orchestrator) Lookup(ctx context.Context, input *LookupInput) (*LookupOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.InvalidArgument("query is required")
	}

	log := o.logger.With(zap.String("search_id", input.SearchID), zap.String("query", query))
	start := time.Now()

	pokemon, err := o.client.GetPokemon(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(err, errors.GetCode(ctx.Err()), "lookup aborted")
		}
		log.Info("Entity fetch failed", zap.String("code", errors.GetCode(err).String()), zap.Error(err))
		return nil, errors.WrapWithCode(err, errors.CodeNotFound, NotFoundMessage).
			WithMeta("query", query)
	}

	output := &LookupOutput{Pokemon: pokemon}

	species, err := o.client.GetSpecies(ctx, pokemon.ID)
	if err != nil {
		log.Warn("Species enrichment unavailable", zap.Int("id", pokemon.ID), zap.Error(err))
		return output, nil
	}
	output.Enriched = true
	output.Description = FlavorText(species.FlavorTexts, DefaultLanguage)

	evolution, err := o.resolveEvolution(ctx, pokemon, species)
	if err != nil {
		log.Warn("Evolution chain unavailable", zap.String("locator", species.EvolutionChainLocator), zap.Error(err))
	} else {
		output.Evolution = evolution
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		matchups, err := o.aggregateTypes(ctx, pokemon.Types)
		if err != nil {
			log.Warn("Type relations unavailable", zap.Strings("types", pokemon.TypeNames()), zap.Error(err))
			return
		}
		output.Matchups = matchups
	})
	wg.Go(func() {
		output.Moves = SelectLevelUpMoves(pokemon.Moves, MaxMoves)
	})
	wg.Wait()

	log.Debug("Lookup complete",
		zap.Int("id", pokemon.ID),
		zap.Bool("evolution", output.Evolution != nil),
		zap.Bool("matchups", output.Matchups != nil),
		zap.Int("moves", len(output.Moves)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return output, nil
}

// resolveEvolution fetches the chain tree and one sprite per primary-path stage.
// Sprite failures leave that stage's sprite nil.
func (o *orchestrator) resolveEvolution(ctx context.Context, pokemon *entities.Pokemon, species *entities.Species) (*Evolution, error) {
	var chain *entities.EvolutionNode
	if species.EvolutionChainLocator == "" {
		chain = &entities.EvolutionNode{Species: pokemon.Name}
	} else {
		root, err := o.client.GetEvolutionChain(ctx, species.EvolutionChainLocator)
		if err != nil {
			return nil, err
		}
		chain = root
	}

	path := chain.PrimaryPath()
	stages := make([]entities.EvolutionStage, len(path))

	p := pool.New().WithMaxGoroutines(o.maxConcurrency)
	for i, name := range path {
		i, name := i, name
		stages[i].Name = name
		if name == pokemon.Name {
			stages[i].SpriteURL = pokemon.Sprites.FrontDefault
			continue
		}
		p.Go(func() {
			stage, err := o.client.GetPokemon(ctx, name)
			if err != nil {
				o.logger.Debug("Stage sprite unavailable", zap.String("stage", name), zap.Error(err))
				return
			}
			stages[i].SpriteURL = stage.Sprites.FrontDefault
		})
	}
	p.Wait()

	return &Evolution{Chain: chain, Stages: stages}, nil
}

// aggregateTypes fetches every type relation concurrently. One failure fails the whole section.
func (o *orchestrator) aggregateTypes(ctx context.Context, tags []entities.TypeTag) (*entities.Matchups, error) {
	if len(tags) == 0 {
		return nil, errors.InvalidArgument("entity has no types")
	}

	relations := make([]*entities.TypeRelation, len(tags))

	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(o.maxConcurrency).
		WithCancelOnError().
		WithFirstError()
	for i, tag := range tags {
		i, tag := i, tag
		p.Go(func(ctx context.Context) error {
			locator := tag.Locator
			if locator == "" {
				locator = tag.Name
			}
			rel, err := o.client.GetTypeRelation(ctx, locator)
			if err != nil {
				return errors.Wrapf(err, "failed to get type %s", tag.Name)
			}
			relations[i] = rel
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	matchups := MergeTypeRelations(relations)
	return &matchups, nil
}
