package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/librarium/backend/internal/models"
)

var (
	// ErrAuthorNotFound indicates no author has the requested ID
	ErrAuthorNotFound = errors.New("author not found")
	// ErrBookNotFound indicates no book has the requested ID
	ErrBookNotFound = errors.New("book not found")
)

// AuthorService defines the interface for author referencing and consultation
type AuthorService interface {
	ReferenceAuthor(ctx context.Context, req *models.AuthorReferencingRequest) (*models.Author, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (*models.Author, error)
	ListAuthors(ctx context.Context, page models.PageRequest) ([]models.Author, int, error)
}

// BookService defines the interface for book referencing and consultation
type BookService interface {
	ReferenceBook(ctx context.Context, req *models.BookReferencingRequest) (*models.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error)
	ListBooks(ctx context.Context, page models.PageRequest) ([]models.Book, int, error)
}
