package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Writer streams records to a CSV file. The header is written when the
// file is opened; each record becomes one row. encoding/csv handles
// quoting of fields containing delimiters or newlines.
type Writer struct {
	file   *os.File
	csv    *csv.Writer
	path   string
	rows   int
	logger zerolog.Logger
}

// NewWriter creates the output file, truncating any existing one, and
// writes the header row.
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file %s: %w", path, err)
	}

	w := &Writer{
		file:   file,
		csv:    csv.NewWriter(file),
		path:   path,
		logger: log.With().Str("component", "export").Logger(),
	}

	if err := w.csv.Write(Header()); err != nil {
		file.Close()
		return nil, fmt.Errorf("write header to %s: %w", path, err)
	}

	w.logger.Info().
		Str("path", path).
		Msg("Output file created, header written")

	return w, nil
}

// Write appends one record as a CSV row and flushes it immediately, so
// rows written before a mid-run failure survive in the file.
func (w *Writer) Write(rec *Record) error {
	if err := w.csv.Write(rec.Row()); err != nil {
		return fmt.Errorf("write record %d to %s: %w", rec.ID, w.path, err)
	}

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush record %d to %s: %w", rec.ID, w.path, err)
	}

	w.rows++
	return nil
}

// Rows returns the number of data rows written so far.
func (w *Writer) Rows() int {
	return w.rows
}

// Path returns the output file path.
func (w *Writer) Path() string {
	return w.path
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.csv.Flush()
	flushErr := w.csv.Error()

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", w.path, err)
	}
	if flushErr != nil {
		return fmt.Errorf("flush %s: %w", w.path, flushErr)
	}
	return nil
}
