// Package view turns lookup results into display-ready models and renders them
package view

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KirkDiggler/pokesearch/internal/entities"
	"github.com/KirkDiggler/pokesearch/internal/orchestrators/lookup"
)

// Model is the display-ready form of one lookup. It is rebuilt for every search.
type Model struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Number         string    `json:"number"`
	Image          *string   `json:"image,omitempty"`
	HoverImage     *string   `json:"hover_image,omitempty"`
	Types          []string  `json:"types"`
	Height         string    `json:"height"`
	Weight         string    `json:"weight"`
	BaseExperience *int      `json:"base_experience,omitempty"`
	Abilities      string    `json:"abilities"`
	Stats          []Stat    `json:"stats"`
	Description    string    `json:"description,omitempty"`
	Evolution      []Stage   `json:"evolution,omitempty"`
	Matchups       *Matchups `json:"matchups,omitempty"`
	Moves          []Move    `json:"moves,omitempty"`
}

// Stat is one base stat row
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Stage is one evolution stage
type Stage struct {
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

// Matchups is the defensive type profile
type Matchups struct {
	Weak   []string `json:"weak"`
	Resist []string `json:"resist"`
	Immune []string `json:"immune"`
}

// Move is one level-up move row
type Move struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// NewModel derives the display model from a lookup result. A nil result yields nil.
func NewModel(out *lookup.LookupOutput) *Model {
	if out == nil || out.Pokemon == nil {
		return nil
	}
	p := out.Pokemon

	m := &Model{
		ID:             p.ID,
		Name:           DisplayName(p.Name),
		Number:         fmt.Sprintf("#%03d", p.ID),
		Image:          p.Sprites.FrontDefault,
		HoverImage:     p.Sprites.BackDefault,
		Types:          p.TypeNames(),
		Height:         FormatHeight(p.Height),
		Weight:         FormatWeight(p.Weight),
		BaseExperience: p.BaseExperience,
		Abilities:      FormatAbilities(p.Abilities),
		Description:    out.Description,
	}

	for _, s := range p.Stats {
		m.Stats = append(m.Stats, Stat{Name: s.Name, Value: s.Value})
	}

	if out.Evolution != nil {
		for _, stage := range out.Evolution.Stages {
			m.Evolution = append(m.Evolution, Stage{Name: DisplayName(stage.Name), Image: stage.SpriteURL})
		}
	}

	if out.Matchups != nil {
		m.Matchups = newMatchups(out.Matchups)
	}

	for _, mv := range out.Moves {
		m.Moves = append(m.Moves, Move{Name: mv.Name, Level: mv.Level})
	}

	return m
}

func newMatchups(src *entities.Matchups) *Matchups {
	return &Matchups{
		Weak:   nonNil(src.Weak),
		Resist: nonNil(src.Resist),
		Immune: nonNil(src.Immune),
	}
}

// DisplayName upper-cases the first letter of a name
func DisplayName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// FormatHeight converts decimeters to rounded inches, e.g. 4 -> 16"
func FormatHeight(decimeters int) string {
	return fmt.Sprintf("%d\"", int(math.Round(float64(decimeters)*3.9)))
}

// FormatWeight converts hectograms to rounded pounds, e.g. 60 -> 14 lbs
func FormatWeight(hectograms int) string {
	return fmt.Sprintf("%d lbs", int(math.Round(float64(hectograms)/4.3)))
}

// FormatAbilities joins ability names with the first hyphen of each replaced by a space
func FormatAbilities(abilities []string) string {
	names := make([]string, len(abilities))
	for i, a := range abilities {
		names[i] = strings.Replace(a, "-", " ", 1)
	}
	return strings.Join(names, ", ")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
