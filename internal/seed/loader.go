package seed

import (
	"context"
	"fmt"
	"os"

	"course-market/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for local seed files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a gzipped JSON-lines seed file.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.Draft, error) {
	l.logger.Info().Str("file", path).Msg("loading seed file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer file.Close()

	drafts, err := readDrafts(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read seed file")
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("drafts_loaded", len(drafts)).
		Msg("seed file loaded successfully")

	return drafts, nil
}
