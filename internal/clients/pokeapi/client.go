// Package pokeapi is the client for the public creature database REST API
package pokeapi

//go:generate mockgen -destination=mock/mock_client.go -package=pokeapimock github.com/KirkDiggler/pokesearch/internal/clients/pokeapi Client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesearch/internal/entities"
	"github.com/KirkDiggler/pokesearch/internal/errors"
)

const (
	// DefaultBaseURL is the public PokeAPI v2 root
	DefaultBaseURL = "https://pokeapi.co/api/v2/"

	// DefaultHTTPTimeout bounds a single upstream round-trip
	DefaultHTTPTimeout = 10 * time.Second
)

// Client defines the read-only operations against the upstream API
type Client interface {
	// ListPokemon returns the first limit entity names in upstream order
	ListPokemon(ctx context.Context, limit int) ([]string, error)

	// GetPokemon fetches an entity by name or numeric id (case-insensitive)
	// Returns errors.NotFound when upstream has no such entity
	GetPokemon(ctx context.Context, nameOrID string) (*entities.Pokemon, error)

	// GetSpecies fetches the species record for an entity id
	GetSpecies(ctx context.Context, id int) (*entities.Species, error)

	// GetEvolutionChain fetches the full evolution tree from a chain locator (URL or id)
	GetEvolutionChain(ctx context.Context, locator string) (*entities.EvolutionNode, error)

	// GetTypeRelation fetches the damage relations of a type by locator URL or type name
	GetTypeRelation(ctx context.Context, locator string) (*entities.TypeRelation, error)
}

// Config contains configuration options for the client.
type Config struct {
	// BaseURL of the API (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to DefaultHTTPTimeout)
	HTTPTimeout time.Duration
	// HTTPClient overrides the transport (optional, mostly for tests)
	HTTPClient *http.Client
	// Logger (optional)
	Logger *zap.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	vb := errors.NewValidationBuilder()
	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		vb.Field("BaseURL", "must be an absolute URL")
	}
	if cfg.HTTPTimeout < 0 {
		vb.Field("HTTPTimeout", "cannot be negative")
	}
	return vb.Build()
}

type client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a new client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid base URL")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &client{
		baseURL:    base,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}, nil
}

func (c *client) ListPokemon(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, errors.InvalidArgumentf("limit must be positive, got %d", limit)
	}

	var list resourceList
	if err := c.getJSON(ctx, "pokemon?limit="+strconv.Itoa(limit), &list); err != nil {
		return nil, errors.Wrap(err, "failed to list pokemon")
	}

	names := make([]string, len(list.Results))
	for i, r := range list.Results {
		names[i] = r.Name
	}
	c.logger.Debug("Listed pokemon", zap.Int("count", len(names)))
	return names, nil
}

func (c *client) GetPokemon(ctx context.Context, nameOrID string) (*entities.Pokemon, error) {
	key := normalizeKey(nameOrID)
	if key == "" {
		return nil, errors.InvalidArgument("pokemon name or id is required")
	}

	var resp pokemonResponse
	if err := c.getJSON(ctx, "pokemon/"+url.PathEscape(key), &resp); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.WrapWithCodef(err, errors.CodeNotFound, "pokemon %q not found", key).
				WithMeta("name", key)
		}
		return nil, errors.Wrapf(err, "failed to get pokemon %q", key)
	}

	pokemon, err := convertPokemon(&resp)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to convert pokemon %q", key)
	}
	return pokemon, nil
}

func (c *client) GetSpecies(ctx context.Context, id int) (*entities.Species, error) {
	if id <= 0 {
		return nil, errors.InvalidArgumentf("species id must be positive, got %d", id)
	}

	var resp speciesResponse
	if err := c.getJSON(ctx, "pokemon-species/"+strconv.Itoa(id), &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to get species %d", id)
	}
	return convertSpecies(&resp), nil
}

func (c *client) GetEvolutionChain(ctx context.Context, locator string) (*entities.EvolutionNode, error) {
	ref := strings.TrimSpace(locator)
	if ref == "" {
		return nil, errors.InvalidArgument("evolution chain locator is required")
	}
	if !isAbsolute(ref) {
		ref = "evolution-chain/" + url.PathEscape(ref)
	}

	var resp evolutionChainResponse
	if err := c.getJSON(ctx, ref, &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to get evolution chain %s", locator)
	}
	if resp.Chain.Species.Name == "" {
		return nil, errors.Internalf("evolution chain %s has no root species", locator)
	}
	return convertChainLink(&resp.Chain), nil
}

func (c *client) GetTypeRelation(ctx context.Context, locator string) (*entities.TypeRelation, error) {
	ref := strings.TrimSpace(locator)
	if ref == "" {
		return nil, errors.InvalidArgument("type locator is required")
	}
	if !isAbsolute(ref) {
		ref = "type/" + url.PathEscape(strings.ToLower(ref))
	}

	var resp typeResponse
	if err := c.getJSON(ctx, ref, &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to get type %s", locator)
	}
	return convertTypeRelation(&resp), nil
}

// getJSON issues a GET for ref (absolute URL or path relative to the base URL)
// and decodes the body into dest. Non-2xx statuses become errors.Upstream.
func (c *client) getJSON(ctx context.Context, ref string, dest any) error {
	reqURL, err := c.resolve(ref)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to build request for %s", reqURL)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.WrapWithCodef(err, errors.GetCode(ctxErr), "request to %s aborted", reqURL)
		}
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "request to %s failed", reqURL)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("Failed to close response body", zap.String("url", reqURL), zap.Error(err))
		}
	}()

	c.logger.Debug("PokeAPI request",
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if upstreamErr := errors.Upstream(resp.StatusCode, reqURL); upstreamErr != nil {
		return upstreamErr
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Wrapf(err, "failed to decode response from %s", reqURL)
	}
	return nil
}

func (c *client) resolve(ref string) (string, error) {
	if isAbsolute(ref) {
		return ref, nil
	}

	rel, err := url.Parse(ref)
	if err != nil {
		return "", errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid resource path %q", ref)
	}
	return c.baseURL.ResolveReference(rel).String(), nil
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// normalizeKey lowercases and trims a name or id the way upstream keys are stored
func normalizeKey(nameOrID string) string {
	return strings.ToLower(strings.TrimSpace(nameOrID))
}

