package entities

// Species is the auxiliary record holding descriptive text and evolution linkage
type Species struct {
	ID                    int
	Name                  string
	FlavorTexts           []FlavorText
	EvolutionChainLocator string
}

// FlavorText is one localized description entry
type FlavorText struct {
	Text     string
	Language string
	Version  string
}
