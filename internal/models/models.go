package models

// NamedResource is the {name, url} pair PokeAPI uses for references
type NamedResource struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url,omitempty"`
}

// PokemonList is the response of the bulk listing endpoint
type PokemonList struct {
	Count   int             `json:"count" yaml:"count"`
	Results []NamedResource `json:"results" yaml:"results"`
}

// Pokemon represents a detail record from the catalog API
type Pokemon struct {
	ID      int         `json:"id" yaml:"id"`
	Name    string      `json:"name" yaml:"name"`
	Height  int         `json:"height" yaml:"height"`
	Weight  int         `json:"weight" yaml:"weight"`
	Sprites Sprites     `json:"sprites" yaml:"sprites"`
	Types   []TypeSlot  `json:"types" yaml:"types"`
	Stats   []StatEntry `json:"stats" yaml:"stats"`
}

// Sprites holds image references; only the default front sprite is used
type Sprites struct {
	FrontDefault string `json:"front_default" yaml:"front_default"`
}

// TypeSlot is one entry of a Pokemon's ordered type list
type TypeSlot struct {
	Slot int           `json:"slot" yaml:"slot"`
	Type NamedResource `json:"type" yaml:"type"`
}

// StatEntry is one (stat name, base value, effort value) triple
type StatEntry struct {
	BaseStat int           `json:"base_stat" yaml:"base_stat"`
	Effort   int           `json:"effort" yaml:"effort"`
	Stat     NamedResource `json:"stat" yaml:"stat"`
}

// Thumbnail returns the image URL shown on cards and in the detail view
func (p Pokemon) Thumbnail() string {
	return p.Sprites.FrontDefault
}
