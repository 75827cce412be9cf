// Package evolution flattens PokeAPI evolution-chain trees into a
// per-species lookup and caches the result per chain URL for the
// lifetime of one export run.
package evolution

import (
	"github.com/pokedex-tools/pokedex-export/pkg/pokeapi"
)

// Link records a species' immediate evolution neighbors.
type Link struct {
	// From is the species this one evolves from, empty for the root
	// of its chain.
	From string

	// To lists the species this one evolves into, in source order.
	To []string
}

// Chain maps every species name in an evolution-chain response to its
// Link. Immutable after construction.
type Chain map[string]Link

// ParseChain flattens the nested evolution tree. Every node is visited
// exactly once; a node without a species name aborts with a decode
// error. The traversal uses an explicit work list so chain depth never
// translates into call-stack depth.
func ParseChain(resource *pokeapi.EvolutionChain) (Chain, error) {
	result := make(Chain)

	type frame struct {
		node   *pokeapi.ChainLink
		parent string
	}

	stack := []frame{{node: &resource.Chain}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name := f.node.Species.Name
		if name == "" {
			return nil, &pokeapi.DecodeError{
				Resource: "evolution-chain",
				Field:    "species.name",
			}
		}

		to := make([]string, 0, len(f.node.EvolvesTo))
		for i := range f.node.EvolvesTo {
			to = append(to, f.node.EvolvesTo[i].Species.Name)
		}
		result[name] = Link{From: f.parent, To: to}

		// Push children in reverse so they are visited in source order.
		for i := len(f.node.EvolvesTo) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &f.node.EvolvesTo[i], parent: name})
		}
	}

	return result, nil
}
