package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokedex-tools/pokedex-export/internal/testutil"
	"github.com/pokedex-tools/pokedex-export/pkg/client"
	"github.com/pokedex-tools/pokedex-export/pkg/evolution"
	"github.com/pokedex-tools/pokedex-export/pkg/pokeapi"
)

// seedBulbasaurLine configures the mock server with ids 1..3 sharing
// the bulbasaur -> ivysaur -> venusaur chain.
func seedBulbasaurLine(mock *testutil.MockPokeAPI) {
	names := []string{"bulbasaur", "ivysaur", "venusaur"}
	chainURL := mock.URL() + "/evolution-chain/1/"

	for i, name := range names {
		id := i + 1
		speciesPath := fmt.Sprintf("/pokemon-species/%d/", id)

		mock.SetJSONResponse(fmt.Sprintf("/pokemon/%d/", id), 200, testutil.PokemonJSON(testutil.PokemonFixture{
			ID:         id,
			Name:       name,
			Types:      []string{"grass", "poison"},
			Stats:      testutil.DefaultStats(),
			Height:     7 + 3*i,
			Weight:     69 + 61*i,
			ArtworkURL: fmt.Sprintf("https://example.com/%d.png", id),
			SpeciesURL: mock.URL() + speciesPath,
		}))

		mock.SetJSONResponse(speciesPath, 200, testutil.SpeciesJSON(name, chainURL, []testutil.FlavorEntry{
			{Text: "A " + name + "\nentry.", Language: "en", Version: "red"},
		}))
	}

	mock.SetJSONResponse("/evolution-chain/1/", 200,
		testutil.ChainJSON(testutil.LinearChain(names...)))
}

func newTestPipeline(t *testing.T, mock *testutil.MockPokeAPI, path string, opts Options) (*Exporter, *Writer) {
	t.Helper()

	cfg := client.DefaultConfig("pokedex-export-test/0.1.0")
	cfg.Pace = 0
	c, err := client.New(cfg)
	require.NoError(t, err)

	service := pokeapi.NewService(c, mock.URL())
	cache := evolution.NewCache()
	builder := NewBuilder(service, cache, "en", []string{"red", "blue"})

	writer, err := NewWriter(path)
	require.NoError(t, err)
	t.Cleanup(func() { writer.Close() })

	exporter, err := NewExporter(builder, writer, opts)
	require.NoError(t, err)

	return exporter, writer
}

func TestExporter_EndToEnd(t *testing.T) {
	mock := testutil.NewMockPokeAPI()
	defer mock.Close()
	seedBulbasaurLine(mock)

	path := filepath.Join(t.TempDir(), "pokemon.csv")
	exporter, writer := newTestPipeline(t, mock, path, Options{StartID: 1, EndID: 3})

	require.NoError(t, exporter.Run(context.Background()))
	require.NoError(t, writer.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Header row exactly as specified.
	assert.Equal(t, Header(), rows[0])

	// Rows in ascending id order with the expected evolution fields.
	bulbasaur, ivysaur, venusaur := rows[1], rows[2], rows[3]

	assert.Equal(t, "1", bulbasaur[0])
	assert.Equal(t, "bulbasaur", bulbasaur[2])
	assert.Equal(t, "", bulbasaur[14])        // evolution_from
	assert.Equal(t, "ivysaur", bulbasaur[15]) // evolution_to

	assert.Equal(t, "2", ivysaur[0])
	assert.Equal(t, "bulbasaur", ivysaur[14])
	assert.Equal(t, "venusaur", ivysaur[15])

	assert.Equal(t, "3", venusaur[0])
	assert.Equal(t, "ivysaur", venusaur[14])
	assert.Equal(t, "", venusaur[15])

	// Unit conversion and flavor text normalization.
	assert.Equal(t, "0.7", bulbasaur[11])
	assert.Equal(t, "6.9", bulbasaur[12])
	assert.Equal(t, "1.0", ivysaur[11])
	assert.Equal(t, "13.0", ivysaur[12])
	assert.Equal(t, "A bulbasaur entry.", bulbasaur[13])

	// Shared chain fetched from the network exactly once.
	assert.Equal(t, 1, mock.RequestCount("/evolution-chain/1/"))
}

func TestExporter_SpeciesAbsentFromChain(t *testing.T) {
	mock := testutil.NewMockPokeAPI()
	defer mock.Close()

	chainURL := mock.URL() + "/evolution-chain/66/"
	mock.SetJSONResponse("/pokemon/83/", 200, testutil.PokemonJSON(testutil.PokemonFixture{
		ID:         83,
		Name:       "farfetchd",
		Types:      []string{"normal", "flying"},
		Stats:      testutil.DefaultStats(),
		Height:     8,
		Weight:     150,
		ArtworkURL: "https://example.com/83.png",
		SpeciesURL: mock.URL() + "/pokemon-species/83/",
	}))
	mock.SetJSONResponse("/pokemon-species/83/", 200,
		testutil.SpeciesJSON("farfetchd", chainURL, nil))
	// The chain resource names a different species entirely.
	mock.SetJSONResponse("/evolution-chain/66/", 200,
		testutil.ChainJSON(testutil.ChainNode{Name: "farfetchd-galar"}))

	path := filepath.Join(t.TempDir(), "pokemon.csv")
	exporter, writer := newTestPipeline(t, mock, path, Options{StartID: 83, EndID: 83})

	require.NoError(t, exporter.Run(context.Background()))
	require.NoError(t, writer.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "", rows[1][14]) // evolution_from
	assert.Equal(t, "", rows[1][15]) // evolution_to
	assert.Equal(t, "", rows[1][13]) // no flavor text either
}

func TestExporter_MissingStatAborts(t *testing.T) {
	mock := testutil.NewMockPokeAPI()
	defer mock.Close()

	stats := testutil.DefaultStats()
	delete(stats, "speed")
	mock.SetJSONResponse("/pokemon/1/", 200, testutil.PokemonJSON(testutil.PokemonFixture{
		ID:         1,
		Name:       "bulbasaur",
		Types:      []string{"grass"},
		Stats:      stats,
		Height:     7,
		Weight:     69,
		ArtworkURL: "https://example.com/1.png",
		SpeciesURL: mock.URL() + "/pokemon-species/1/",
	}))

	path := filepath.Join(t.TempDir(), "pokemon.csv")
	exporter, writer := newTestPipeline(t, mock, path, Options{StartID: 1, EndID: 1})

	err := exporter.Run(context.Background())
	require.Error(t, err)

	var decodeErr *pokeapi.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "stats.speed", decodeErr.Field)
	assert.Contains(t, err.Error(), "pokemon 1:")

	// The run aborted before any data row was written; the header
	// survives in the partial file.
	require.NoError(t, writer.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, writer.Rows())
	assert.Contains(t, string(data), "id,pokedex_number")
}

func TestExporter_FetchFailureAbortsMidRun(t *testing.T) {
	mock := testutil.NewMockPokeAPI()
	defer mock.Close()
	seedBulbasaurLine(mock)

	// id 3 fails server-side; ids 1 and 2 must survive in the file.
	mock.SetHandler("/pokemon/3/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	})

	path := filepath.Join(t.TempDir(), "pokemon.csv")
	exporter, writer := newTestPipeline(t, mock, path, Options{StartID: 1, EndID: 3})

	err := exporter.Run(context.Background())
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, client.ErrorClassServer, apiErr.ErrorClass)

	require.NoError(t, writer.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + ids 1, 2
	assert.Equal(t, "bulbasaur", rows[1][2])
	assert.Equal(t, "ivysaur", rows[2][2])
}

func TestNewExporter_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"start id below 1", Options{StartID: 0, EndID: 151}},
		{"end before start", Options{StartID: 10, EndID: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExporter(nil, nil, tt.opts)
			require.Error(t, err)
		})
	}
}

func TestExporter_Cancellation(t *testing.T) {
	mock := testutil.NewMockPokeAPI()
	defer mock.Close()
	seedBulbasaurLine(mock)

	path := filepath.Join(t.TempDir(), "pokemon.csv")
	exporter, _ := newTestPipeline(t, mock, path, Options{StartID: 1, EndID: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := exporter.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export cancelled")
}
