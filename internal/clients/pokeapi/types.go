package pokeapi

// namedResource is the upstream {name, url} reference object
type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type resourceList struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results []namedResource `json:"results"`
}

type pokemonResponse struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	BaseExperience *int             `json:"base_experience"`
	Height         int              `json:"height"`
	Weight         int              `json:"weight"`
	Types          []pokemonType    `json:"types"`
	Stats          []pokemonStat    `json:"stats"`
	Abilities      []pokemonAbility `json:"abilities"`
	Sprites        pokemonSprites   `json:"sprites"`
	Moves          []pokemonMove    `json:"moves"`
}

type pokemonType struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

type pokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Stat     namedResource `json:"stat"`
}

type pokemonAbility struct {
	Ability  namedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type pokemonSprites struct {
	FrontDefault *string `json:"front_default"`
	BackDefault  *string `json:"back_default"`
	FrontShiny   *string `json:"front_shiny"`
	BackShiny    *string `json:"back_shiny"`
}

type pokemonMove struct {
	Move                namedResource        `json:"move"`
	VersionGroupDetails []versionGroupDetail `json:"version_group_details"`
}

type versionGroupDetail struct {
	LevelLearnedAt  *int          `json:"level_learned_at"`
	MoveLearnMethod namedResource `json:"move_learn_method"`
	VersionGroup    namedResource `json:"version_group"`
}

type speciesResponse struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	FlavorTextEntries []flavorTextEntry `json:"flavor_text_entries"`
	EvolutionChain    *apiResource      `json:"evolution_chain"`
}

type flavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   namedResource `json:"language"`
	Version    namedResource `json:"version"`
}

// apiResource is the upstream {url} reference object
type apiResource struct {
	URL string `json:"url"`
}

type evolutionChainResponse struct {
	ID    int       `json:"id"`
	Chain chainLink `json:"chain"`
}

type chainLink struct {
	Species   namedResource `json:"species"`
	EvolvesTo []chainLink   `json:"evolves_to"`
}

type typeResponse struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	DamageRelations damageRelations `json:"damage_relations"`
}

type damageRelations struct {
	DoubleDamageFrom []namedResource `json:"double_damage_from"`
	HalfDamageFrom   []namedResource `json:"half_damage_from"`
	NoDamageFrom     []namedResource `json:"no_damage_from"`
}
