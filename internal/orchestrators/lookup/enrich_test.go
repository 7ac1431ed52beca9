package lookup_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/pokesearch/internal/entities"
	"github.com/KirkDiggler/pokesearch/internal/orchestrators/lookup"
)

func intPtr(v int) *int { return &v }

func TestFlavorText(t *testing.T) {
	testCases := []struct {
		name     string
		entries  []entities.FlavorText
		expected string
	}{
		{
			name: "first english entry with layout breaks",
			entries: []entities.FlavorText{
				{Text: "Quand plusieurs", Language: "fr"},
				{Text: "When several of\nthese POKéMON\fgather,\u00adtheir", Language: "en"},
				{Text: "Second english", Language: "en"},
			},
			expected: "When several of these POKéMON gather, their",
		},
		{
			name:     "collapses runs of whitespace",
			entries:  []entities.FlavorText{{Text: "  A\n\n\tB  ", Language: "en"}},
			expected: "A B",
		},
		{
			name:     "no english entry",
			entries:  []entities.FlavorText{{Text: "ピカチュウ", Language: "ja"}},
			expected: "",
		},
		{
			name:     "no entries",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, lookup.FlavorText(tc.entries, lookup.DefaultLanguage))
		})
	}
}

func TestMergeTypeRelations(t *testing.T) {
	t.Run("weak beats resist across types", func(t *testing.T) {
		matchups := lookup.MergeTypeRelations([]*entities.TypeRelation{
			{Name: "a", DoubleDamageFrom: []string{"fire", "water"}},
			{Name: "b", HalfDamageFrom: []string{"fire", "grass"}},
		})

		assert.Equal(t, []string{"fire", "water"}, matchups.Weak)
		assert.Equal(t, []string{"grass"}, matchups.Resist)
		assert.Empty(t, matchups.Immune)
	})

	t.Run("immune beats weak and resist", func(t *testing.T) {
		// normal/ghost style overlap
		matchups := lookup.MergeTypeRelations([]*entities.TypeRelation{
			{Name: "normal", DoubleDamageFrom: []string{"fighting"}, NoDamageFrom: []string{"ghost"}},
			{Name: "ghost", DoubleDamageFrom: []string{"ghost", "dark"}, HalfDamageFrom: []string{"poison", "bug"}, NoDamageFrom: []string{"normal", "fighting"}},
		})

		assert.Equal(t, []string{"ghost", "normal", "fighting"}, matchups.Immune)
		assert.Equal(t, []string{"dark"}, matchups.Weak)
		assert.Equal(t, []string{"poison", "bug"}, matchups.Resist)
	})

	t.Run("duplicates collapse in first-seen order", func(t *testing.T) {
		matchups := lookup.MergeTypeRelations([]*entities.TypeRelation{
			{HalfDamageFrom: []string{"steel", "fire"}},
			{HalfDamageFrom: []string{"fire", "steel", "ice"}},
		})
		assert.Equal(t, []string{"steel", "fire", "ice"}, matchups.Resist)
	})

	t.Run("sets are pairwise disjoint", func(t *testing.T) {
		all := []string{"fire", "water", "grass", "ice", "ghost", "dark"}
		for i := 0; i < 50; i++ {
			// deterministic pseudo-random spread over the three relation lists
			pick := func(offset int) []string {
				var out []string
				for j, name := range all {
					if (i+j*offset)%3 == 0 {
						out = append(out, name)
					}
				}
				return out
			}
			rels := []*entities.TypeRelation{
				{DoubleDamageFrom: pick(1), HalfDamageFrom: pick(2), NoDamageFrom: pick(5)},
				{DoubleDamageFrom: pick(7), HalfDamageFrom: pick(4), NoDamageFrom: pick(11)},
			}
			m := lookup.MergeTypeRelations(rels)

			seen := map[string]string{}
			for set, names := range map[string][]string{"weak": m.Weak, "resist": m.Resist, "immune": m.Immune} {
				for _, n := range names {
					prev, dup := seen[n]
					assert.False(t, dup, "iteration %d: %s in both %s and %s", i, n, prev, set)
					seen[n] = set
				}
			}
			for _, rel := range rels {
				for _, n := range rel.NoDamageFrom {
					assert.Equal(t, "immune", seen[n], "iteration %d: %s", i, n)
				}
			}
		}
	})

	t.Run("nil relations are skipped", func(t *testing.T) {
		m := lookup.MergeTypeRelations([]*entities.TypeRelation{nil, {NoDamageFrom: []string{"ground"}}})
		assert.Equal(t, []string{"ground"}, m.Immune)
	})
}

func TestSelectLevelUpMoves(t *testing.T) {
	levelUp := func(name string, level *int) entities.Move {
		return entities.Move{Name: name, Details: []entities.LearnDetail{
			{Method: entities.LearnMethodLevelUp, Level: level, VersionGroup: "red-blue"},
		}}
	}

	t.Run("filters sorts and caps", func(t *testing.T) {
		moves := []entities.Move{
			levelUp("thunderbolt", intPtr(26)),
			{Name: "surf", Details: []entities.LearnDetail{{Method: "machine", Level: intPtr(0)}}},
			levelUp("growl", intPtr(5)),
			levelUp("thunder-shock", intPtr(1)),
			levelUp("quick-attack", intPtr(16)),
			levelUp("thunder-wave", intPtr(9)),
			levelUp("agility", intPtr(33)),
			levelUp("tail-whip", intPtr(5)),
		}

		got := lookup.SelectLevelUpMoves(moves, lookup.MaxMoves)
		assert.Equal(t, []entities.LevelUpMove{
			{Name: "thunder-shock", Level: 1},
			{Name: "growl", Level: 5},
			{Name: "tail-whip", Level: 5},
			{Name: "thunder-wave", Level: 9},
			{Name: "quick-attack", Level: 16},
		}, got)
	})

	t.Run("missing level sorts first", func(t *testing.T) {
		got := lookup.SelectLevelUpMoves([]entities.Move{
			levelUp("tackle", intPtr(3)),
			levelUp("mystery", nil),
		}, lookup.MaxMoves)
		assert.Equal(t, []entities.LevelUpMove{{Name: "mystery", Level: 0}, {Name: "tackle", Level: 3}}, got)
	})

	t.Run("uses the first level-up detail", func(t *testing.T) {
		got := lookup.SelectLevelUpMoves([]entities.Move{{
			Name: "ember",
			Details: []entities.LearnDetail{
				{Method: "tutor"},
				{Method: entities.LearnMethodLevelUp, Level: intPtr(7), VersionGroup: "red-blue"},
				{Method: entities.LearnMethodLevelUp, Level: intPtr(1), VersionGroup: "x-y"},
			},
		}}, lookup.MaxMoves)
		assert.Equal(t, []entities.LevelUpMove{{Name: "ember", Level: 7}}, got)
	})

	t.Run("no level-up moves", func(t *testing.T) {
		got := lookup.SelectLevelUpMoves([]entities.Move{
			{Name: "surf", Details: []entities.LearnDetail{{Method: "machine"}}},
		}, lookup.MaxMoves)
		assert.Empty(t, got)
	})

	t.Run("long lists stay bounded and sorted", func(t *testing.T) {
		var moves []entities.Move
		for i := 0; i < 40; i++ {
			moves = append(moves, levelUp(fmt.Sprintf("move-%d", i), intPtr((i*17)%50)))
		}
		got := lookup.SelectLevelUpMoves(moves, lookup.MaxMoves)
		assert.Len(t, got, lookup.MaxMoves)
		assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Level < got[j].Level }))
	})
}

func TestFilterSuggestions(t *testing.T) {
	roster := []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon", "charizard",
		"squirtle", "wartortle", "blastoise", "pikachu", "raichu", "nidoran-f", "nidorina", "nidoqueen"}

	testCases := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "substring match in roster order", query: "saur", expected: []string{"bulbasaur", "ivysaur", "venusaur"}},
		{name: "case-insensitive", query: "CHAR", expected: []string{"charmander", "charmeleon", "charizard"}},
		{name: "two characters match nothing", query: "pi", expected: nil},
		{name: "empty query", query: "", expected: nil},
		{name: "no match", query: "mew", expected: nil},
		{name: "infix", query: "ort", expected: []string{"wartortle"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, lookup.FilterSuggestions(roster, tc.query, lookup.MaxSuggestions))
		})
	}

	t.Run("results bounded and all contain the query", func(t *testing.T) {
		for _, q := range []string{"aur", "ar", "ni", "nido", "ch", "a", "tle", "zzz"} {
			got := lookup.FilterSuggestions(roster, q, lookup.MaxSuggestions)
			assert.LessOrEqual(t, len(got), lookup.MaxSuggestions)
			if len(q) <= lookup.MinQueryLength {
				assert.Empty(t, got, q)
			}
			for _, name := range got {
				assert.Contains(t, name, q)
			}
		}
	})

	t.Run("limit applies", func(t *testing.T) {
		got := lookup.FilterSuggestions(roster, "nid", lookup.MaxSuggestions)
		assert.Equal(t, []string{"nidoran-f", "nidorina", "nidoqueen"}, got)

		two := lookup.FilterSuggestions(roster, "aur", 2)
		assert.Equal(t, []string{"bulbasaur", "ivysaur"}, two)

		crowded := []string{"abra1", "abra2", "abra3", "abra4", "abra5", "abra6", "abra7"}
		assert.Equal(t, crowded[:5], lookup.FilterSuggestions(crowded, "abr", lookup.MaxSuggestions))
	})
}
