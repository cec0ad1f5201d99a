package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
	"github.com/JonnyWalker81/librarium/backend/internal/logger"
	"github.com/JonnyWalker81/librarium/backend/internal/models"
	"github.com/JonnyWalker81/librarium/backend/internal/service"
	"github.com/JonnyWalker81/librarium/backend/internal/translator"
)

// Paging defaults for list endpoints.
const (
	DefaultPage = 0
	DefaultSize = 50
	MaxSize     = 100
)

// pageRequest reads the page and size query parameters.
func pageRequest(c *gin.Context) (models.PageRequest, []apierror.ProblemError) {
	var errs []apierror.ProblemError

	page, pageErr := intQuery(c, "page", DefaultPage)
	size, sizeErr := intQuery(c, "size", DefaultSize)
	sizeOK := sizeErr == nil && size >= 1 && size <= MaxSize

	switch {
	case pageErr != nil || page < 0:
		errs = append(errs, apierror.NewParameterError("page must be a non-negative integer", "page"))
	case sizeOK && page > math.MaxInt/size:
		// page*size must stay a valid offset
		errs = append(errs, apierror.NewParameterError(fmt.Sprintf("page must not exceed %d for size %d", math.MaxInt/size, size), "page"))
	}
	if !sizeOK {
		errs = append(errs, apierror.NewParameterError(fmt.Sprintf("size must be an integer between 1 and %d", MaxSize), "size"))
	}

	return models.PageRequest{Page: page, Size: size}, errs
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// pageLinks builds the navigation links of a page of the collection at path.
func pageLinks(path string, req models.PageRequest, meta models.PageMetadata) models.Links {
	href := func(page int) models.Link {
		return models.Link{Href: fmt.Sprintf("%s?page=%d&size=%d", path, page, req.Size)}
	}

	links := models.Links{
		"self":  href(req.Page),
		"first": href(0),
	}
	if meta.TotalPages > 0 {
		links["last"] = href(meta.TotalPages - 1)
	}
	if req.Page > 0 {
		links["prev"] = href(req.Page - 1)
	}
	if req.Page+1 < meta.TotalPages {
		links["next"] = href(req.Page + 1)
	}
	return links
}

func selfLink(path string, id uuid.UUID) models.Links {
	return models.Links{"self": {Href: fmt.Sprintf("%s/%s", path, id)}}
}

// pathID reads the id path parameter, writing an invalid-request problem
// when it is not a UUID.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		invalidRequest(c, apierror.NewParameterError("id must be a UUID", "id"))
		return uuid.Nil, false
	}
	return id, true
}

func invalidRequest(c *gin.Context, errs ...apierror.ProblemError) {
	problem := apierror.NewInvalidRequestError(apierror.GetRequestID(c), errs)
	problem.Instance = c.Request.URL.Path
	apierror.WriteProblem(c, problem)
}

// writeError maps a service error to a problem response.
func writeError(c *gin.Context, t *translator.Translator, err error, resource, id string) {
	if t.Abort(c, err) {
		return
	}

	requestID := apierror.GetRequestID(c)
	if errors.Is(err, service.ErrAuthorNotFound) || errors.Is(err, service.ErrBookNotFound) {
		problem := apierror.NewNotFoundError(requestID, resource, id)
		problem.Instance = c.Request.URL.Path
		apierror.WriteProblem(c, problem)
		return
	}

	logger.FromContext(c.Request.Context()).Error("request failed",
		logger.Err(err),
		logger.String("path", c.Request.URL.Path),
	)
	apierror.WriteProblem(c, apierror.NewInternalError(requestID))
}

// bindJSON decodes the request body, writing a bad-request problem when the
// body is not a valid JSON document for target.
func bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		problem := apierror.NewBadRequestError(apierror.GetRequestID(c), fmt.Sprintf("Malformed request body: %v", err))
		problem.Instance = c.Request.URL.Path
		apierror.WriteProblem(c, problem)
		return false
	}
	return true
}

func created(c *gin.Context, location string, body any) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, body)
}
