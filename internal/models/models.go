package models

import "github.com/google/uuid"

// Author represents a referenced author
type Author struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	DateOfBirth Date         `json:"date_of_birth"`
	DateOfDeath NullableDate `json:"date_of_death"`
}

// Alive reports whether the author has no known date of death.
func (a Author) Alive() bool {
	return !a.DateOfDeath.Valid
}

// Book represents a referenced book
type Book struct {
	ID               uuid.UUID         `json:"id"`
	Authors          []uuid.UUID       `json:"authors"`
	OriginalLanguage string            `json:"original_language"`
	Details          []LocalizedDetail `json:"details"`
}

// LocalizedDetail holds the title and description of a book in one language
type LocalizedDetail struct {
	Language    string `json:"language"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AuthorReferencingRequest represents the request to reference an author
type AuthorReferencingRequest struct {
	Name        string       `json:"name" validate:"notblank"`
	DateOfBirth Date         `json:"date_of_birth"`
	DateOfDeath NullableDate `json:"date_of_death"`
}

// BookReferencingRequest represents the request to reference a book
type BookReferencingRequest struct {
	Authors          []uuid.UUID             `json:"authors" validate:"required,min=1"`
	OriginalLanguage string                  `json:"original_language" validate:"notblank"`
	Details          []BookReferencingDetail `json:"details" validate:"required,min=1,dive"`
}

// BookReferencingDetail is one localized detail of a BookReferencingRequest
type BookReferencingDetail struct {
	Language    string `json:"language" validate:"notblank"`
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
}

// PageRequest selects a page of a collection. Page is zero based.
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the index of the first element of the page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PageMetadata describes a page of a collection
type PageMetadata struct {
	Size          int `json:"size"`
	TotalElements int `json:"total_elements"`
	TotalPages    int `json:"total_pages"`
	Number        int `json:"number"`
}

// NewPageMetadata computes the metadata of page req over total elements.
func NewPageMetadata(req PageRequest, total int) PageMetadata {
	pages := 0
	if req.Size > 0 {
		pages = (total + req.Size - 1) / req.Size
	}
	return PageMetadata{
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
		Number:        req.Page,
	}
}

// Link is a hypermedia link
type Link struct {
	Href string `json:"href"`
}

// Links maps link relations to links
type Links map[string]Link

// AuthorModel is the representation of an author
type AuthorModel struct {
	Author
	Links Links `json:"_links"`
}

// BookModel is the representation of a book
type BookModel struct {
	Book
	Links Links `json:"_links"`
}

// AuthorsPage is the representation of a page of authors
type AuthorsPage struct {
	Page     PageMetadata     `json:"page"`
	Links    Links            `json:"_links"`
	Embedded *EmbeddedAuthors `json:"_embedded,omitempty"`
}

// EmbeddedAuthors holds the authors of a page
type EmbeddedAuthors struct {
	Authors []AuthorModel `json:"authors"`
}

// BooksPage is the representation of a page of books
type BooksPage struct {
	Page     PageMetadata   `json:"page"`
	Links    Links          `json:"_links"`
	Embedded *EmbeddedBooks `json:"_embedded,omitempty"`
}

// EmbeddedBooks holds the books of a page
type EmbeddedBooks struct {
	Books []BookModel `json:"books"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Contract string `json:"contract,omitempty"`
}
