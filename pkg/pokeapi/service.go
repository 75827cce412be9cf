package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokedex-tools/pokedex-export/pkg/client"
)

// DefaultBaseURL is the public PokeAPI endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Service fetches typed PokeAPI resources through the HTTP client.
type Service struct {
	client  *client.Client
	baseURL string
	logger  zerolog.Logger
}

// NewService creates a service bound to the given client and base URL.
// An empty baseURL falls back to DefaultBaseURL.
func NewService(c *client.Client, baseURL string) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		client:  c,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.With().Str("component", "pokeapi").Logger(),
	}
}

// PokemonByID fetches the pokemon resource for the given pokedex id.
func (s *Service) PokemonByID(ctx context.Context, id int) (*Pokemon, error) {
	url := fmt.Sprintf("%s/pokemon/%d/", s.baseURL, id)

	body, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var p Pokemon
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &DecodeError{Resource: "pokemon", Err: err}
	}

	if p.Name == "" {
		return nil, missingField("pokemon", "name")
	}
	if p.Species.URL == "" {
		return nil, missingField("pokemon", "species.url")
	}

	s.logger.Debug().
		Int("pokemon_id", id).
		Str("name", p.Name).
		Msg("Fetched pokemon")

	return &p, nil
}

// SpeciesByURL fetches the pokemon-species resource referenced by the
// pokemon payload.
func (s *Service) SpeciesByURL(ctx context.Context, url string) (*Species, error) {
	body, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var sp Species
	if err := json.Unmarshal(body, &sp); err != nil {
		return nil, &DecodeError{Resource: "pokemon-species", Err: err}
	}

	if sp.EvolutionChain.URL == "" {
		return nil, missingField("pokemon-species", "evolution_chain.url")
	}

	return &sp, nil
}

// EvolutionChainByURL fetches the evolution-chain resource referenced
// by the species payload.
func (s *Service) EvolutionChainByURL(ctx context.Context, url string) (*EvolutionChain, error) {
	body, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var chain EvolutionChain
	if err := json.Unmarshal(body, &chain); err != nil {
		return nil, &DecodeError{Resource: "evolution-chain", Err: err}
	}

	return &chain, nil
}
