package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/librarium/backend/internal/models"
	"github.com/JonnyWalker81/librarium/backend/internal/service"
	"github.com/JonnyWalker81/librarium/backend/internal/translator"
)

// AuthorsPath is the collection path of authors.
const AuthorsPath = "/api/v1/authors"

type AuthorHandler struct {
	authorService service.AuthorService
	translator    *translator.Translator
}

// NewAuthorHandler creates a new author handler
func NewAuthorHandler(authorService service.AuthorService, t *translator.Translator) *AuthorHandler {
	return &AuthorHandler{
		authorService: authorService,
		translator:    t,
	}
}

// ReferenceAuthor handles POST /api/v1/authors
func (h *AuthorHandler) ReferenceAuthor(c *gin.Context) {
	var req models.AuthorReferencingRequest
	if !bindJSON(c, &req) {
		return
	}

	author, err := h.authorService.ReferenceAuthor(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.translator, err, "Author", "")
		return
	}

	model := authorModel(*author)
	created(c, model.Links["self"].Href, model)
}

// GetAuthors handles GET /api/v1/authors
func (h *AuthorHandler) GetAuthors(c *gin.Context) {
	req, errs := pageRequest(c)
	if len(errs) > 0 {
		invalidRequest(c, errs...)
		return
	}

	authors, total, err := h.authorService.ListAuthors(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.translator, err, "Author", "")
		return
	}

	meta := models.NewPageMetadata(req, total)
	page := models.AuthorsPage{
		Page:  meta,
		Links: pageLinks(AuthorsPath, req, meta),
	}
	if len(authors) > 0 {
		page.Embedded = &models.EmbeddedAuthors{Authors: make([]models.AuthorModel, 0, len(authors))}
		for _, a := range authors {
			page.Embedded.Authors = append(page.Embedded.Authors, authorModel(a))
		}
	}

	c.JSON(http.StatusPartialContent, page)
}

// GetAuthor handles GET /api/v1/authors/:id
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	author, err := h.authorService.GetAuthor(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.translator, err, "Author", id.String())
		return
	}

	c.JSON(http.StatusOK, authorModel(*author))
}

func authorModel(a models.Author) models.AuthorModel {
	return models.AuthorModel{Author: a, Links: selfLink(AuthorsPath, a.ID)}
}
