// Package entities holds the creature records pokesearch aggregates
package entities

// LearnMethodLevelUp is the learn method name for moves learned by levelling
const LearnMethodLevelUp = "level-up"

// Pokemon is the canonical entity record returned by the entity endpoint
type Pokemon struct {
	ID             int
	Name           string
	Types          []TypeTag
	Stats          []BaseStat
	Abilities      []string
	Height         int // decimeters
	Weight         int // hectograms
	BaseExperience *int
	Sprites        Sprites
	Moves          []Move
}

// TypeTag names one of the entity's types and where its damage relations live
type TypeTag struct {
	Name    string
	Locator string
}

// BaseStat is a single stat name and its base value (0-255)
type BaseStat struct {
	Name  string
	Value int
}

// Sprites holds the optional image URLs of an entity
type Sprites struct {
	FrontDefault *string
	BackDefault  *string
	FrontShiny   *string
	BackShiny    *string
}

// Move is a move the entity can learn together with every per-version way of learning it
type Move struct {
	Name    string
	Details []LearnDetail
}

// LearnDetail describes how a move is learned in one version group
type LearnDetail struct {
	Method       string
	Level        *int
	VersionGroup string
}

// TypeNames returns the entity's type tags in slot order
func (p *Pokemon) TypeNames() []string {
	names := make([]string, len(p.Types))
	for i, t := range p.Types {
		names[i] = t.Name
	}
	return names
}

// FirstLevelUp returns the first level-up detail of the move, if any
func (m Move) FirstLevelUp() (LearnDetail, bool) {
	for _, d := range m.Details {
		if d.Method == LearnMethodLevelUp {
			return d, true
		}
	}
	return LearnDetail{}, false
}

// LevelUpMove is a move selected for display with the level it is learned at
type LevelUpMove struct {
	Name  string
	Level int
}
