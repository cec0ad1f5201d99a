package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/librarium/backend/internal/models"
	"github.com/JonnyWalker81/librarium/backend/internal/service"
	"github.com/JonnyWalker81/librarium/backend/internal/translator"
)

// BooksPath is the collection path of books.
const BooksPath = "/api/v1/books"

type BookHandler struct {
	bookService service.BookService
	translator  *translator.Translator
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService service.BookService, t *translator.Translator) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		translator:  t,
	}
}

// ReferenceBook handles POST /api/v1/books
func (h *BookHandler) ReferenceBook(c *gin.Context) {
	var req models.BookReferencingRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.bookService.ReferenceBook(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.translator, err, "Book", "")
		return
	}

	model := bookModel(*book)
	created(c, model.Links["self"].Href, model)
}

// GetBooks handles GET /api/v1/books
func (h *BookHandler) GetBooks(c *gin.Context) {
	req, errs := pageRequest(c)
	if len(errs) > 0 {
		invalidRequest(c, errs...)
		return
	}

	books, total, err := h.bookService.ListBooks(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.translator, err, "Book", "")
		return
	}

	meta := models.NewPageMetadata(req, total)
	page := models.BooksPage{
		Page:  meta,
		Links: pageLinks(BooksPath, req, meta),
	}
	if len(books) > 0 {
		page.Embedded = &models.EmbeddedBooks{Books: make([]models.BookModel, 0, len(books))}
		for _, b := range books {
			page.Embedded.Books = append(page.Embedded.Books, bookModel(b))
		}
	}

	c.JSON(http.StatusPartialContent, page)
}

// GetBook handles GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	book, err := h.bookService.GetBook(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.translator, err, "Book", id.String())
		return
	}

	c.JSON(http.StatusOK, bookModel(*book))
}

func bookModel(b models.Book) models.BookModel {
	return models.BookModel{Book: b, Links: selfLink(BooksPath, b.ID)}
}
