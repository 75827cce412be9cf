package export

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokedex-tools/pokedex-export/pkg/evolution"
	"github.com/pokedex-tools/pokedex-export/pkg/pokeapi"
)

// Builder assembles one Record per pokedex id: pokemon data, species
// flavor text, and the cached evolution chain. Any fetch failure or
// missing required field aborts the run.
type Builder struct {
	service  *pokeapi.Service
	cache    *evolution.Cache
	language string
	versions []string
	logger   zerolog.Logger
}

// NewBuilder creates a builder. The cache collaborator is scoped to
// one run and shared across all ids.
func NewBuilder(service *pokeapi.Service, cache *evolution.Cache, language string, versions []string) *Builder {
	return &Builder{
		service:  service,
		cache:    cache,
		language: language,
		versions: versions,
		logger:   log.With().Str("component", "export").Logger(),
	}
}

// Build fetches and assembles the record for one pokedex id.
func (b *Builder) Build(ctx context.Context, id int) (*Record, error) {
	pokemon, err := b.service.PokemonByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.logger.Debug().
		Int("pokemon_id", id).
		Str("name", pokemon.Name).
		Msg("Building record")

	stats, err := pokemon.BaseStats()
	if err != nil {
		return nil, err
	}

	primary, secondary, err := pokemon.TypeNames()
	if err != nil {
		return nil, err
	}

	imageURL, err := pokemon.ArtworkURL()
	if err != nil {
		return nil, err
	}

	species, err := b.service.SpeciesByURL(ctx, pokemon.Species.URL)
	if err != nil {
		return nil, err
	}

	description := species.Description(b.language, b.versions)
	if description == "" {
		b.logger.Debug().
			Int("pokemon_id", id).
			Str("name", pokemon.Name).
			Msg("No flavor text for the configured language and versions")
	}

	chainURL := species.EvolutionChain.URL
	chain, err := b.cache.GetOrFetch(ctx, chainURL, func(ctx context.Context) (*pokeapi.EvolutionChain, error) {
		return b.service.EvolutionChainByURL(ctx, chainURL)
	})
	if err != nil {
		return nil, err
	}

	// A species absent from its chain mapping gets empty evolution
	// fields, not an error.
	link := chain[pokemon.Name]

	return &Record{
		ID:             id,
		PokedexNumber:  id,
		Name:           pokemon.Name,
		TypePrimary:    primary,
		TypeSecondary:  secondary,
		HP:             stats["hp"],
		Attack:         stats["attack"],
		Defense:        stats["defense"],
		SpecialAttack:  stats["special-attack"],
		SpecialDefense: stats["special-defense"],
		Speed:          stats["speed"],
		HeightMeters:   pokemon.HeightMeters(),
		WeightKG:       pokemon.WeightKilograms(),
		Description:    description,
		EvolutionFrom:  link.From,
		EvolutionTo:    strings.Join(link.To, ", "),
		ImageURL:       imageURL,
	}, nil
}

// ChainsCached returns the number of distinct evolution chains fetched
// so far, for the run summary.
func (b *Builder) ChainsCached() int {
	return b.cache.Len()
}
