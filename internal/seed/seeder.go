package seed

import (
	"context"
	"fmt"

	"course-market/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Counter reports how many products are stored.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Creator stores a validated draft.
type Creator interface {
	Create(ctx context.Context, draft model.Draft) (*model.Product, error)
}

// Seeder fills an empty catalogue from seed files.
type Seeder struct {
	loader  Loader
	counter Counter
	creator Creator
	logger  zerolog.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(loader Loader, counter Counter, creator Creator, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:  loader,
		counter: counter,
		creator: creator,
		logger:  logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads every file concurrently and inserts the drafts in file order.
// Nothing is inserted when the catalogue already holds products or when any
// file fails to load. Drafts that fail validation are skipped.
func (s *Seeder) Run(ctx context.Context, files []string) (int, error) {
	count, err := s.counter.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		s.logger.Info().Int("existing", count).Msg("catalogue not empty, skipping seed")
		return 0, nil
	}

	batches := make([][]model.Draft, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			drafts, err := s.loader.Load(gctx, path)
			if err != nil {
				return err
			}
			batches[i] = drafts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to load seed files")
		return 0, fmt.Errorf("failed to load seed files: %w", err)
	}

	inserted := 0
	for i, drafts := range batches {
		for _, d := range drafts {
			if err := d.Validate(); err != nil {
				s.logger.Warn().Err(err).Str("file", files[i]).Str("name", d.Name).Msg("skipping invalid draft")
				continue
			}
			if _, err := s.creator.Create(ctx, d); err != nil {
				return inserted, fmt.Errorf("failed to insert seed product %q: %w", d.Name, err)
			}
			inserted++
		}
	}

	s.logger.Info().
		Int("files", len(files)).
		Int("inserted", inserted).
		Msg("catalogue seeded")

	return inserted, nil
}
