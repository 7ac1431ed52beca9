package lookup

import (
	"sort"
	"strings"
	"unicode"

	"github.com/KirkDiggler/pokesearch/internal/entities"
)

// FlavorText returns the first entry in language with layout control characters
// collapsed to single spaces. No matching entry yields "".
func FlavorText(entries []entities.FlavorText, language string) string {
	for _, entry := range entries {
		if entry.Language != language {
			continue
		}
		cleaned := strings.Map(func(r rune) rune {
			if unicode.IsControl(r) || r == '\u00ad' {
				return ' '
			}
			return r
		}, entry.Text)
		return strings.Join(strings.Fields(cleaned), " ")
	}
	return ""
}

// MergeTypeRelations reduces per-type damage relations into disjoint matchups.
// Immune wins over weak and resist, weak wins over resist. Order is first seen.
func MergeTypeRelations(relations []*entities.TypeRelation) entities.Matchups {
	var rawWeak, rawResist, rawImmune []string
	for _, rel := range relations {
		if rel == nil {
			continue
		}
		rawWeak = append(rawWeak, rel.DoubleDamageFrom...)
		rawResist = append(rawResist, rel.HalfDamageFrom...)
		rawImmune = append(rawImmune, rel.NoDamageFrom...)
	}

	immune := dedupe(rawImmune, nil)
	weak := dedupe(rawWeak, setOf(immune))
	resist := dedupe(rawResist, setOf(immune, rawWeak))

	return entities.Matchups{
		Weak:   weak,
		Resist: resist,
		Immune: immune,
	}
}

// SelectLevelUpMoves keeps moves learned by level-up at their first level-up level,
// sorted ascending with ties in original order, capped at limit. A missing level counts as 0.
func SelectLevelUpMoves(moves []entities.Move, limit int) []entities.LevelUpMove {
	var selected []entities.LevelUpMove
	for _, move := range moves {
		detail, ok := move.FirstLevelUp()
		if !ok {
			continue
		}
		level := 0
		if detail.Level != nil {
			level = *detail.Level
		}
		selected = append(selected, entities.LevelUpMove{Name: move.Name, Level: level})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Level < selected[j].Level
	})

	if limit >= 0 && len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

func setOf(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, s := range list {
			set[s] = struct{}{}
		}
	}
	return set
}

// dedupe keeps the first occurrence of each value not in exclude
func dedupe(values []string, exclude map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, skip := exclude[v]; skip {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
