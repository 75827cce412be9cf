package export

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures one export run.
type Options struct {
	// StartID is the first pokedex id, inclusive.
	StartID int

	// EndID is the last pokedex id, inclusive.
	EndID int

	// Progress enables the console progress bar.
	Progress bool
}

// Exporter drives the export loop: ids are processed strictly
// sequentially in ascending order, each record streamed to the writer
// before the next id begins. The first error aborts the run; rows
// already flushed remain in the output file.
type Exporter struct {
	builder *Builder
	writer  *Writer
	opts    Options
	logger  zerolog.Logger
}

// NewExporter creates an exporter.
func NewExporter(builder *Builder, writer *Writer, opts Options) (*Exporter, error) {
	if opts.StartID < 1 {
		return nil, fmt.Errorf("start id must be >= 1 (got %d)", opts.StartID)
	}
	if opts.EndID < opts.StartID {
		return nil, fmt.Errorf("end id must be >= start id (got %d < %d)", opts.EndID, opts.StartID)
	}

	return &Exporter{
		builder: builder,
		writer:  writer,
		opts:    opts,
		logger:  log.With().Str("component", "export").Logger(),
	}, nil
}

// Run executes the export. It returns the first error encountered;
// cancellation of ctx stops the loop at the next id boundary.
func (e *Exporter) Run(ctx context.Context) error {
	total := e.opts.EndID - e.opts.StartID + 1
	startTime := time.Now()

	e.logger.Info().
		Int("start_id", e.opts.StartID).
		Int("end_id", e.opts.EndID).
		Str("output", e.writer.Path()).
		Msg("Starting export")

	increment := func() {}
	finish := func() {}
	if e.opts.Progress {
		bar := newProgressBar(total, "export ")
		increment = func() { bar.Increment() }
		finish = func() { bar.Finish() }
	}

	for id := e.opts.StartID; id <= e.opts.EndID; id++ {
		if err := ctx.Err(); err != nil {
			finish()
			return fmt.Errorf("export cancelled at id %d: %w", id, err)
		}

		record, err := e.builder.Build(ctx, id)
		if err != nil {
			finish()
			return fmt.Errorf("pokemon %d: %w", id, err)
		}

		if err := e.writer.Write(record); err != nil {
			finish()
			return fmt.Errorf("pokemon %d: %w", id, err)
		}

		increment()
	}
	finish()

	e.logger.Info().
		Str("records", humanize.Comma(int64(e.writer.Rows()))).
		Int("chains_fetched", e.builder.ChainsCached()).
		Str("elapsed", time.Since(startTime).Round(time.Millisecond).String()).
		Str("output", e.writer.Path()).
		Msg("Export complete")

	return nil
}
