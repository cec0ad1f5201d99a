package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/JonnyWalker81/librarium/backend/internal/logger"
	"github.com/JonnyWalker81/librarium/backend/internal/metrics"
	"github.com/JonnyWalker81/librarium/backend/internal/models"
)

// Fixtures names the JSON files seeded into the repositories at startup.
// An empty path skips the collection.
type Fixtures struct {
	Authors string
	Books   string
}

// AutoLoad decodes the fixture files concurrently and stores their content.
// Authors are stored before books so book fixtures can reference them.
func AutoLoad(ctx context.Context, fixtures Fixtures, authors AuthorRepository, books BookRepository) error {
	var (
		authorItems []models.Author
		bookItems   []models.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readFixture(gctx, fixtures.Authors, &authorItems)
	})
	g.Go(func() error {
		return readFixture(gctx, fixtures.Books, &bookItems)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range authorItems {
		if _, err := authors.Create(ctx, &authorItems[i]); err != nil {
			return fmt.Errorf("failed to load author fixture %d: %w", i, err)
		}
	}
	for i := range bookItems {
		found, err := authors.Exists(ctx, bookItems[i].Authors)
		if err != nil {
			return fmt.Errorf("failed to load book fixture %d: %w", i, err)
		}
		for j, ok := range found {
			if !ok {
				return fmt.Errorf("book fixture %d references unknown author %s", i, bookItems[i].Authors[j])
			}
		}
		if _, err := books.Create(ctx, &bookItems[i]); err != nil {
			return fmt.Errorf("failed to load book fixture %d: %w", i, err)
		}
	}

	metrics.RecordFixtures("authors", len(authorItems))
	metrics.RecordFixtures("books", len(bookItems))
	logger.Ctx(ctx).Info("fixtures loaded",
		logger.Int("authors", len(authorItems)),
		logger.Int("books", len(bookItems)),
	)
	return nil
}

func readFixture[T any](ctx context.Context, path string, out *[]T) error {
	if path == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode fixture %s: %w", path, err)
	}
	return nil
}
