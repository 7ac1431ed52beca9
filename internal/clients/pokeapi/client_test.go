package pokeapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokesearch/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokesearch/internal/errors"
)

const pikachuJSON = `{
  "id": 25,
  "name": "pikachu",
  "base_experience": 112,
  "height": 4,
  "weight": 60,
  "types": [{"slot": 1, "type": {"name": "electric", "url": "%[1]s/type/13/"}}],
  "stats": [
    {"base_stat": 35, "stat": {"name": "hp"}},
    {"base_stat": 55, "stat": {"name": "attack"}}
  ],
  "abilities": [
    {"ability": {"name": "static"}, "is_hidden": false, "slot": 1},
    {"ability": {"name": "lightning-rod"}, "is_hidden": true, "slot": 3}
  ],
  "sprites": {
    "front_default": "https://img.example/25.png",
    "back_default": "https://img.example/back/25.png",
    "front_shiny": null,
    "back_shiny": null
  },
  "moves": [
    {
      "move": {"name": "thunder-shock"},
      "version_group_details": [
        {"level_learned_at": 1, "move_learn_method": {"name": "level-up"}, "version_group": {"name": "red-blue"}}
      ]
    },
    {
      "move": {"name": "surf"},
      "version_group_details": [
        {"level_learned_at": 0, "move_learn_method": {"name": "machine"}, "version_group": {"name": "red-blue"}}
      ]
    }
  ]
}`

const speciesJSON = `{
  "id": 25,
  "name": "pikachu",
  "flavor_text_entries": [
    {"flavor_text": "Quand plusieurs", "language": {"name": "fr"}, "version": {"name": "x"}},
    {"flavor_text": "When several of\nthese POKéMON\fgather", "language": {"name": "en"}, "version": {"name": "red"}}
  ],
  "evolution_chain": {"url": "%[1]s/evolution-chain/10/"}
}`

const chainJSON = `{
  "id": 10,
  "chain": {
    "species": {"name": "pichu"},
    "evolves_to": [{
      "species": {"name": "pikachu"},
      "evolves_to": [{"species": {"name": "raichu"}, "evolves_to": []}]
    }]
  }
}`

const electricJSON = `{
  "id": 13,
  "name": "electric",
  "damage_relations": {
    "double_damage_from": [{"name": "ground"}],
    "half_damage_from": [{"name": "flying"}, {"name": "steel"}, {"name": "electric"}],
    "no_damage_from": []
  }
}`

const rosterJSON = `{"count": 1302, "next": null, "results": [{"name": "bulbasaur"}, {"name": "ivysaur"}, {"name": "venusaur"}]}`

type ClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	client   pokeapi.Client
	mu       sync.Mutex
	requests []string
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.mu.Lock()
	s.requests = nil
	s.mu.Unlock()

	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			s.requests = append(s.requests, r.URL.RequestURI())
			s.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(strings.ReplaceAll(body, "%[1]s", s.server.URL)))
		}
	}
	mux.HandleFunc("/pokemon", serve(rosterJSON))
	mux.HandleFunc("/pokemon/pikachu", serve(pikachuJSON))
	mux.HandleFunc("/pokemon/25", serve(pikachuJSON))
	mux.HandleFunc("/pokemon-species/25", serve(speciesJSON))
	mux.HandleFunc("/evolution-chain/10/", serve(chainJSON))
	mux.HandleFunc("/type/13/", serve(electricJSON))
	mux.HandleFunc("/type/electric", serve(electricJSON))
	mux.HandleFunc("/pokemon/broken", serve(`{"id": 1, "name": "broken", "types": []}`))
	mux.HandleFunc("/pokemon/garbled", serve(`{not json`))
	mux.HandleFunc("/pokemon-species/500", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/pokemon/slowpoke", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	s.server = httptest.NewServer(mux)

	client, err := pokeapi.New(&pokeapi.Config{BaseURL: s.server.URL})
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientTestSuite) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) TestListPokemon() {
	names, err := s.client.ListPokemon(context.Background(), 151)
	s.Require().NoError(err)
	s.Assert().Equal([]string{"bulbasaur", "ivysaur", "venusaur"}, names)
	s.Assert().Equal([]string{"/pokemon?limit=151"}, s.recorded())
}

func (s *ClientTestSuite) TestListPokemon_InvalidLimit() {
	_, err := s.client.ListPokemon(context.Background(), 0)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Empty(s.recorded())
}

func (s *ClientTestSuite) TestGetPokemon() {
	pokemon, err := s.client.GetPokemon(context.Background(), "  PikaChu ")
	s.Require().NoError(err)

	s.Assert().Equal(25, pokemon.ID)
	s.Assert().Equal("pikachu", pokemon.Name)
	s.Assert().Equal([]string{"electric"}, pokemon.TypeNames())
	s.Assert().Equal(s.server.URL+"/type/13/", pokemon.Types[0].Locator)
	s.Assert().Equal(4, pokemon.Height)
	s.Assert().Equal(60, pokemon.Weight)
	s.Require().NotNil(pokemon.BaseExperience)
	s.Assert().Equal(112, *pokemon.BaseExperience)
	s.Assert().Equal([]string{"static", "lightning-rod"}, pokemon.Abilities)
	s.Assert().Len(pokemon.Stats, 2)
	s.Assert().Equal("hp", pokemon.Stats[0].Name)
	s.Assert().Equal(35, pokemon.Stats[0].Value)
	s.Require().NotNil(pokemon.Sprites.FrontDefault)
	s.Assert().Equal("https://img.example/25.png", *pokemon.Sprites.FrontDefault)
	s.Assert().Nil(pokemon.Sprites.FrontShiny)

	s.Require().Len(pokemon.Moves, 2)
	s.Assert().Equal("thunder-shock", pokemon.Moves[0].Name)
	s.Assert().Equal("level-up", pokemon.Moves[0].Details[0].Method)
	s.Require().NotNil(pokemon.Moves[0].Details[0].Level)
	s.Assert().Equal(1, *pokemon.Moves[0].Details[0].Level)
}

func (s *ClientTestSuite) TestGetPokemon_ByID() {
	pokemon, err := s.client.GetPokemon(context.Background(), "25")
	s.Require().NoError(err)
	s.Assert().Equal("pikachu", pokemon.Name)
}

func (s *ClientTestSuite) TestGetPokemon_NotFound() {
	_, err := s.client.GetPokemon(context.Background(), "xyzzynotreal")
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Equal("xyzzynotreal", errors.GetMeta(err)["name"])
	s.Assert().Equal(404, errors.GetStatus(err))
}

func (s *ClientTestSuite) TestGetPokemon_Blank() {
	_, err := s.client.GetPokemon(context.Background(), "   ")
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Empty(s.recorded())
}

func (s *ClientTestSuite) TestGetPokemon_InvalidTypeCount() {
	_, err := s.client.GetPokemon(context.Background(), "broken")
	s.Require().Error(err)
	s.Assert().True(errors.IsInternal(err))
	s.Assert().Contains(err.Error(), "0 types")
}

func (s *ClientTestSuite) TestGetPokemon_MalformedBody() {
	_, err := s.client.GetPokemon(context.Background(), "garbled")
	s.Require().Error(err)
	s.Assert().True(errors.IsInternal(err))
}

func (s *ClientTestSuite) TestGetPokemon_ContextCanceled() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.client.GetPokemon(ctx, "slowpoke")
	s.Require().Error(err)
	s.Assert().Equal(errors.CodeDeadlineExceeded, errors.GetCode(err))
}

func (s *ClientTestSuite) TestGetSpecies() {
	species, err := s.client.GetSpecies(context.Background(), 25)
	s.Require().NoError(err)

	s.Assert().Equal(25, species.ID)
	s.Require().Len(species.FlavorTexts, 2)
	s.Assert().Equal("en", species.FlavorTexts[1].Language)
	s.Assert().Equal(s.server.URL+"/evolution-chain/10/", species.EvolutionChainLocator)
}

func (s *ClientTestSuite) TestGetSpecies_UpstreamError() {
	_, err := s.client.GetSpecies(context.Background(), 500)
	s.Require().Error(err)
	s.Assert().True(errors.IsUnavailable(err))
	s.Assert().True(errors.IsRetryable(err))
	s.Assert().Equal(502, errors.GetStatus(err))
}

func (s *ClientTestSuite) TestGetEvolutionChain() {
	root, err := s.client.GetEvolutionChain(context.Background(), s.server.URL+"/evolution-chain/10/")
	s.Require().NoError(err)
	s.Assert().Equal([]string{"pichu", "pikachu", "raichu"}, root.PrimaryPath())
}

func (s *ClientTestSuite) TestGetTypeRelation() {
	testCases := []struct {
		name    string
		locator string
	}{
		{name: "by locator", locator: s.server.URL + "/type/13/"},
		{name: "by name", locator: "Electric"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rel, err := s.client.GetTypeRelation(context.Background(), tc.locator)
			s.Require().NoError(err)
			s.Assert().Equal("electric", rel.Name)
			s.Assert().Equal([]string{"ground"}, rel.DoubleDamageFrom)
			s.Assert().Equal([]string{"flying", "steel", "electric"}, rel.HalfDamageFrom)
			s.Assert().Empty(rel.NoDamageFrom)
		})
	}
}

func (s *ClientTestSuite) TestNew_InvalidBaseURL() {
	_, err := pokeapi.New(&pokeapi.Config{BaseURL: "not a url"})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}
