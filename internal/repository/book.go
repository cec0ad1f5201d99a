package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/librarium/backend/internal/models"
)

type bookRepository struct {
	books *store[models.Book]
}

// NewBookRepository creates a new in-memory book repository
func NewBookRepository() BookRepository {
	return &bookRepository{books: newStore[models.Book]()}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.books.put(ctx, book.ID, *book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	created := *book
	return &created, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, err := r.books.get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book %s: %w", id, err)
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, page models.PageRequest) ([]models.Book, int, error) {
	books, total, err := r.books.page(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	return books, total, nil
}
