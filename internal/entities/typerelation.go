package entities

// TypeRelation lists which attacking types deal modified damage to a type
type TypeRelation struct {
	Name             string
	DoubleDamageFrom []string
	HalfDamageFrom   []string
	NoDamageFrom     []string
}

// Matchups is the merged defensive profile of an entity. The three sets are disjoint.
type Matchups struct {
	Weak   []string
	Resist []string
	Immune []string
}
