package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/librarium/backend/internal/constraint"
	"github.com/JonnyWalker81/librarium/backend/internal/logger"
	"github.com/JonnyWalker81/librarium/backend/internal/models"
	"github.com/JonnyWalker81/librarium/backend/internal/repository"
)

// authorRules are the cross-field rules of an author referencing request.
var authorRules = []constraint.Rule[models.AuthorReferencingRequest]{
	constraint.Ordered(
		"born-before-dead",
		"/date_of_death",
		"date of death must be after date of birth",
		func(r models.AuthorReferencingRequest) *time.Time { return r.DateOfBirth.TimePtr() },
		func(r models.AuthorReferencingRequest) *time.Time { return r.DateOfDeath.TimePtr() },
	),
}

type authorService struct {
	authorRepo repository.AuthorRepository
	evaluator  *constraint.Evaluator
}

// NewAuthorService creates a new author service
func NewAuthorService(authorRepo repository.AuthorRepository, evaluator *constraint.Evaluator) AuthorService {
	return &authorService{
		authorRepo: authorRepo,
		evaluator:  evaluator,
	}
}

func (s *authorService) ReferenceAuthor(ctx context.Context, req *models.AuthorReferencingRequest) (*models.Author, error) {
	if err := constraint.Validate(s.evaluator, *req, authorRules...); err != nil {
		return nil, err
	}

	author := &models.Author{
		ID:          NewID(),
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		DateOfDeath: req.DateOfDeath,
	}

	created, err := s.authorRepo.Create(ctx, author)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("author referenced",
		logger.String("author_id", created.ID.String()),
		logger.Bool("alive", created.Alive()),
	)
	return created, nil
}

func (s *authorService) GetAuthor(ctx context.Context, id uuid.UUID) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAuthorNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return author, nil
}

func (s *authorService) ListAuthors(ctx context.Context, page models.PageRequest) ([]models.Author, int, error) {
	return s.authorRepo.List(ctx, page)
}
