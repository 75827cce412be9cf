package testutil

import (
	"encoding/json"
	"fmt"
)

// PokemonFixture describes a mock pokemon resource. Zero-value stat
// maps and type lists produce payloads with those fields absent, which
// is useful for exercising decode failures.
type PokemonFixture struct {
	ID         int
	Name       string
	Types      []string
	Stats      map[string]int
	Height     int
	Weight     int
	ArtworkURL string
	SpeciesURL string
}

// DefaultStats returns a complete base stat set.
func DefaultStats() map[string]int {
	return map[string]int{
		"hp":              45,
		"attack":          49,
		"defense":         49,
		"special-attack":  65,
		"special-defense": 65,
		"speed":           45,
	}
}

// PokemonJSON renders the fixture as a pokemon resource payload.
func PokemonJSON(f PokemonFixture) string {
	types := make([]map[string]any, 0, len(f.Types))
	for i, name := range f.Types {
		types = append(types, map[string]any{
			"slot": i + 1,
			"type": map[string]any{"name": name},
		})
	}

	// Deterministic stat order matching the live API.
	statOrder := []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}
	stats := make([]map[string]any, 0, len(f.Stats))
	for _, name := range statOrder {
		if value, ok := f.Stats[name]; ok {
			stats = append(stats, map[string]any{
				"base_stat": value,
				"stat":      map[string]any{"name": name},
			})
		}
	}

	payload := map[string]any{
		"id":     f.ID,
		"name":   f.Name,
		"height": f.Height,
		"weight": f.Weight,
		"types":  types,
		"stats":  stats,
		"sprites": map[string]any{
			"other": map[string]any{
				"official-artwork": map[string]any{
					"front_default": f.ArtworkURL,
				},
			},
		},
		"species": map[string]any{
			"name": f.Name,
			"url":  f.SpeciesURL,
		},
	}

	return mustJSON(payload)
}

// FlavorEntry describes one flavor text entry of a species fixture.
type FlavorEntry struct {
	Text     string
	Language string
	Version  string
}

// SpeciesJSON renders a pokemon-species resource payload.
func SpeciesJSON(name, chainURL string, entries []FlavorEntry) string {
	flavorEntries := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		flavorEntries = append(flavorEntries, map[string]any{
			"flavor_text": e.Text,
			"language":    map[string]any{"name": e.Language},
			"version":     map[string]any{"name": e.Version},
		})
	}

	payload := map[string]any{
		"name":                name,
		"flavor_text_entries": flavorEntries,
		"evolution_chain":     map[string]any{"url": chainURL},
	}

	return mustJSON(payload)
}

// ChainNode describes one node of an evolution chain fixture.
type ChainNode struct {
	Name      string
	EvolvesTo []ChainNode
}

// ChainJSON renders an evolution-chain resource payload.
func ChainJSON(root ChainNode) string {
	payload := map[string]any{
		"chain": chainLink(root),
	}
	return mustJSON(payload)
}

func chainLink(node ChainNode) map[string]any {
	children := make([]any, 0, len(node.EvolvesTo))
	for _, child := range node.EvolvesTo {
		children = append(children, chainLink(child))
	}
	return map[string]any{
		"species":    map[string]any{"name": node.Name},
		"evolves_to": children,
	}
}

// LinearChain builds a straight evolution line from the given names.
func LinearChain(names ...string) ChainNode {
	if len(names) == 0 {
		return ChainNode{}
	}
	node := ChainNode{Name: names[len(names)-1]}
	for i := len(names) - 2; i >= 0; i-- {
		node = ChainNode{Name: names[i], EvolvesTo: []ChainNode{node}}
	}
	return node
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal fixture: %v", err))
	}
	return string(data)
}
