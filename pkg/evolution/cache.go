package evolution

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokedex-tools/pokedex-export/pkg/pokeapi"
)

// FetchFunc fetches a raw evolution-chain resource on a cache miss.
type FetchFunc func(ctx context.Context) (*pokeapi.EvolutionChain, error)

// Cache holds parsed evolution chains keyed by chain URL for the
// lifetime of one run. It grows monotonically, has no eviction, and is
// discarded at process exit. The mutex keeps the cache safe should the
// export loop ever be parallelized; the current pipeline is strictly
// sequential.
type Cache struct {
	mu     sync.Mutex
	chains map[string]Chain
	logger zerolog.Logger
}

// NewCache creates an empty run-scoped cache.
func NewCache() *Cache {
	return &Cache{
		chains: make(map[string]Chain),
		logger: log.With().Str("component", "evolution").Logger(),
	}
}

// GetOrFetch returns the parsed chain for the given URL, fetching and
// parsing it via fetch on the first call. Each distinct chain URL is
// fetched from the network at most once per run; failed fetches are
// not cached, they abort the run instead.
func (c *Cache) GetOrFetch(ctx context.Context, chainURL string, fetch FetchFunc) (Chain, error) {
	c.mu.Lock()
	chain, ok := c.chains[chainURL]
	c.mu.Unlock()

	if ok {
		CacheHits.Inc()
		c.logger.Debug().
			Str("chain_url", chainURL).
			Bool("cache_hit", true).
			Msg("Evolution chain lookup")
		return chain, nil
	}

	CacheMisses.Inc()
	c.logger.Debug().
		Str("chain_url", chainURL).
		Bool("cache_hit", false).
		Msg("Evolution chain lookup")

	resource, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	chain, err = ParseChain(resource)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.chains[chainURL] = chain
	size := len(c.chains)
	c.mu.Unlock()

	CacheSize.Set(float64(size))

	return chain, nil
}

// Len returns the number of distinct chains fetched so far.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.chains)
}
