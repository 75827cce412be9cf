// Package pokeapi defines the consumed subset of the PokeAPI resource
// model and a typed fetch service on top of the HTTP client. Only the
// fields the exporter reads are declared; everything else in the
// payloads is ignored.
package pokeapi

import (
	"strings"
)

// NamedResource is the API's ubiquitous {name, url} reference pair.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pokemon is the per-id pokemon resource.
type Pokemon struct {
	Name    string        `json:"name"`
	Height  int           `json:"height"` // decimeters
	Weight  int           `json:"weight"` // hectograms
	Types   []TypeSlot    `json:"types"`
	Stats   []StatValue   `json:"stats"`
	Sprites Sprites       `json:"sprites"`
	Species NamedResource `json:"species"`
}

// TypeSlot is one entry of a pokemon's ordered type list.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// StatValue is one base stat keyed by stat name.
type StatValue struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

// Sprites holds the sprite URL tree; only the official artwork is used.
type Sprites struct {
	Other OtherSprites `json:"other"`
}

// OtherSprites holds the non-game sprite sets.
type OtherSprites struct {
	OfficialArtwork Artwork `json:"official-artwork"`
}

// Artwork is the official artwork sprite set.
type Artwork struct {
	FrontDefault string `json:"front_default"`
}

// Species is the pokemon-species resource.
type Species struct {
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
	EvolutionChain    ChainRef     `json:"evolution_chain"`
	Name              string       `json:"name"`
}

// ChainRef is the species' reference to its evolution chain.
type ChainRef struct {
	URL string `json:"url"`
}

// FlavorText is one localized, versioned descriptive blurb.
type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

// EvolutionChain is the evolution-chain resource, a rooted tree of
// species names.
type EvolutionChain struct {
	Chain ChainLink `json:"chain"`
}

// ChainLink is one node of the evolution tree. EvolvesTo preserves the
// child order of the source payload.
type ChainLink struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}

// Stat names required on every pokemon resource. A missing entry is a
// decode failure, never a silent zero.
var requiredStats = []string{
	"hp",
	"attack",
	"defense",
	"special-attack",
	"special-defense",
	"speed",
}

// BaseStats returns the base stat values keyed by stat name. All six
// required stats must be present.
func (p *Pokemon) BaseStats() (map[string]int, error) {
	stats := make(map[string]int, len(p.Stats))
	for _, s := range p.Stats {
		stats[s.Stat.Name] = s.BaseStat
	}

	for _, name := range requiredStats {
		if _, ok := stats[name]; !ok {
			return nil, missingField("pokemon", "stats."+name)
		}
	}

	return stats, nil
}

// TypeNames returns the primary and secondary type names in source
// order. The secondary type is empty when the pokemon has a single
// type; a pokemon with no types at all is a decode failure.
func (p *Pokemon) TypeNames() (primary, secondary string, err error) {
	if len(p.Types) == 0 || p.Types[0].Type.Name == "" {
		return "", "", missingField("pokemon", "types")
	}

	primary = p.Types[0].Type.Name
	if len(p.Types) > 1 {
		secondary = p.Types[1].Type.Name
	}
	return primary, secondary, nil
}

// HeightMeters converts the API's decimeters to meters.
func (p *Pokemon) HeightMeters() float64 {
	return float64(p.Height) / 10
}

// WeightKilograms converts the API's hectograms to kilograms.
func (p *Pokemon) WeightKilograms() float64 {
	return float64(p.Weight) / 10
}

// ArtworkURL returns the official artwork front image URL.
func (p *Pokemon) ArtworkURL() (string, error) {
	url := p.Sprites.Other.OfficialArtwork.FrontDefault
	if url == "" {
		return "", missingField("pokemon", "sprites.other.official-artwork.front_default")
	}
	return url, nil
}

// flavorNormalizer strips the API's embedded formatting control
// characters: newlines become spaces, form feeds disappear.
var flavorNormalizer = strings.NewReplacer("\n", " ", "\f", "")

// Description returns the first flavor text entry, in source order,
// whose language matches and whose game version is in versions. An
// empty result is not an error; many species lack an entry for the
// requested versions.
func (s *Species) Description(language string, versions []string) string {
	for _, entry := range s.FlavorTextEntries {
		if entry.Language.Name != language {
			continue
		}
		for _, v := range versions {
			if entry.Version.Name == v {
				return flavorNormalizer.Replace(entry.FlavorText)
			}
		}
	}
	return ""
}
