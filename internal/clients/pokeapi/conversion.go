package pokeapi

import (
	"github.com/KirkDiggler/pokesearch/internal/entities"
	"github.com/KirkDiggler/pokesearch/internal/errors"
)

func convertPokemon(resp *pokemonResponse) (*entities.Pokemon, error) {
	if resp == nil {
		return nil, errors.Internal("pokemon response is nil")
	}
	if len(resp.Types) == 0 || len(resp.Types) > 2 {
		return nil, errors.Internalf("pokemon %s has %d types, expected 1 or 2", resp.Name, len(resp.Types)).
			WithMeta("name", resp.Name)
	}

	types := make([]entities.TypeTag, len(resp.Types))
	for i, t := range resp.Types {
		types[i] = entities.TypeTag{Name: t.Type.Name, Locator: t.Type.URL}
	}

	stats := make([]entities.BaseStat, len(resp.Stats))
	for i, s := range resp.Stats {
		stats[i] = entities.BaseStat{Name: s.Stat.Name, Value: s.BaseStat}
	}

	abilities := make([]string, len(resp.Abilities))
	for i, a := range resp.Abilities {
		abilities[i] = a.Ability.Name
	}

	moves := make([]entities.Move, len(resp.Moves))
	for i, m := range resp.Moves {
		details := make([]entities.LearnDetail, len(m.VersionGroupDetails))
		for j, d := range m.VersionGroupDetails {
			details[j] = entities.LearnDetail{
				Method:       d.MoveLearnMethod.Name,
				Level:        d.LevelLearnedAt,
				VersionGroup: d.VersionGroup.Name,
			}
		}
		moves[i] = entities.Move{Name: m.Move.Name, Details: details}
	}

	return &entities.Pokemon{
		ID:             resp.ID,
		Name:           resp.Name,
		Types:          types,
		Stats:          stats,
		Abilities:      abilities,
		Height:         resp.Height,
		Weight:         resp.Weight,
		BaseExperience: resp.BaseExperience,
		Sprites: entities.Sprites{
			FrontDefault: resp.Sprites.FrontDefault,
			BackDefault:  resp.Sprites.BackDefault,
			FrontShiny:   resp.Sprites.FrontShiny,
			BackShiny:    resp.Sprites.BackShiny,
		},
		Moves: moves,
	}, nil
}

func convertSpecies(resp *speciesResponse) *entities.Species {
	if resp == nil {
		return nil
	}

	texts := make([]entities.FlavorText, len(resp.FlavorTextEntries))
	for i, e := range resp.FlavorTextEntries {
		texts[i] = entities.FlavorText{
			Text:     e.FlavorText,
			Language: e.Language.Name,
			Version:  e.Version.Name,
		}
	}

	species := &entities.Species{
		ID:          resp.ID,
		Name:        resp.Name,
		FlavorTexts: texts,
	}
	if resp.EvolutionChain != nil {
		species.EvolutionChainLocator = resp.EvolutionChain.URL
	}
	return species
}

// convertChainLink keeps every branch of the chain
func convertChainLink(link *chainLink) *entities.EvolutionNode {
	node := &entities.EvolutionNode{Species: link.Species.Name}
	if len(link.EvolvesTo) > 0 {
		node.Children = make([]*entities.EvolutionNode, len(link.EvolvesTo))
		for i := range link.EvolvesTo {
			node.Children[i] = convertChainLink(&link.EvolvesTo[i])
		}
	}
	return node
}

func convertTypeRelation(resp *typeResponse) *entities.TypeRelation {
	return &entities.TypeRelation{
		Name:             resp.Name,
		DoubleDamageFrom: resourceNames(resp.DamageRelations.DoubleDamageFrom),
		HalfDamageFrom:   resourceNames(resp.DamageRelations.HalfDamageFrom),
		NoDamageFrom:     resourceNames(resp.DamageRelations.NoDamageFrom),
	}
}

func resourceNames(resources []namedResource) []string {
	names := make([]string, len(resources))
	for i, r := range resources {
		names[i] = r.Name
	}
	return names
}
