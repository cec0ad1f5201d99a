package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/librarium/backend/internal/models"
)

type authorRepository struct {
	authors *store[models.Author]
}

// NewAuthorRepository creates a new in-memory author repository
func NewAuthorRepository() AuthorRepository {
	return &authorRepository{authors: newStore[models.Author]()}
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) (*models.Author, error) {
	if err := r.authors.put(ctx, author.ID, *author); err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	created := *author
	return &created, nil
}

func (r *authorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Author, error) {
	author, err := r.authors.get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get author %s: %w", id, err)
	}
	return &author, nil
}

func (r *authorRepository) List(ctx context.Context, page models.PageRequest) ([]models.Author, int, error) {
	authors, total, err := r.authors.page(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, total, nil
}

// Exists reports, for each id, whether an author with that id is referenced.
func (r *authorRepository) Exists(ctx context.Context, ids []uuid.UUID) ([]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	found := make([]bool, len(ids))
	for i, id := range ids {
		found[i] = r.authors.has(id)
	}
	return found, nil
}
