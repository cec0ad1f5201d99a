package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/librarium/backend/internal/models"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

// AuthorRepository defines the interface for author data access
type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) (*models.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Author, error)
	List(ctx context.Context, page models.PageRequest) ([]models.Author, int, error)
	Exists(ctx context.Context, ids []uuid.UUID) ([]bool, error)
}

// BookRepository defines the interface for book data access
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	List(ctx context.Context, page models.PageRequest) ([]models.Book, int, error)
}
