package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/librarium/backend/internal/constraint"
	"github.com/JonnyWalker81/librarium/backend/internal/logger"
	"github.com/JonnyWalker81/librarium/backend/internal/models"
	"github.com/JonnyWalker81/librarium/backend/internal/repository"
)

// bookRules are the cross-field rules of a book referencing request.
var bookRules = []constraint.Rule[models.BookReferencingRequest]{
	constraint.UniqueBy(
		"unique-language-in-details",
		"Details",
		"Language",
		"language is duplicated in details",
		func(r models.BookReferencingRequest) []models.BookReferencingDetail { return r.Details },
		func(d models.BookReferencingDetail) string { return d.Language },
	),
}

type bookService struct {
	bookRepo   repository.BookRepository
	authorRepo repository.AuthorRepository
	evaluator  *constraint.Evaluator
}

// NewBookService creates a new book service
func NewBookService(bookRepo repository.BookRepository, authorRepo repository.AuthorRepository, evaluator *constraint.Evaluator) BookService {
	return &bookService{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
		evaluator:  evaluator,
	}
}

func (s *bookService) ReferenceBook(ctx context.Context, req *models.BookReferencingRequest) (*models.Book, error) {
	if err := constraint.Validate(s.evaluator, *req, bookRules...); err != nil {
		return nil, err
	}
	if err := s.checkAuthors(ctx, req.Authors); err != nil {
		return nil, err
	}

	book := &models.Book{
		ID:               NewID(),
		Authors:          req.Authors,
		OriginalLanguage: req.OriginalLanguage,
		Details:          make([]models.LocalizedDetail, 0, len(req.Details)),
	}
	for _, d := range req.Details {
		book.Details = append(book.Details, models.LocalizedDetail{
			Language:    d.Language,
			Title:       d.Title,
			Description: d.Description,
		})
	}

	created, err := s.bookRepo.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("book referenced",
		logger.String("book_id", created.ID.String()),
		logger.Int("authors", len(created.Authors)),
	)
	return created, nil
}

// checkAuthors reports every author reference that does not exist as a
// violation located on its index in the authors list.
func (s *bookService) checkAuthors(ctx context.Context, ids []uuid.UUID) error {
	found, err := s.authorRepo.Exists(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check authors: %w", err)
	}

	var violations []constraint.Violation
	for i, ok := range found {
		if ok {
			continue
		}
		violations = append(violations, constraint.Violation{
			Rule:    "existing-author",
			Field:   fmt.Sprintf("Authors[%d]", i),
			Value:   ids[i].String(),
			Message: "does not reference an existing author",
		})
	}
	if len(violations) > 0 {
		return &constraint.ValidationError{Violations: violations}
	}
	return nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) ListBooks(ctx context.Context, page models.PageRequest) ([]models.Book, int, error) {
	return s.bookRepo.List(ctx, page)
}
