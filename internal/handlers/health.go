package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
	"github.com/JonnyWalker81/librarium/backend/internal/logger"
	"github.com/JonnyWalker81/librarium/backend/internal/models"
	"github.com/JonnyWalker81/librarium/backend/internal/schema"
)

// HealthHandler serves operational endpoints.
type HealthHandler struct {
	contract *schema.Contract
}

// NewHealthHandler creates a new health handler. contract may be nil when
// request validation is disabled.
func NewHealthHandler(contract *schema.Contract) *HealthHandler {
	return &HealthHandler{contract: contract}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	resp := models.HealthResponse{Status: "ok"}
	if h.contract != nil {
		resp.Contract = fmt.Sprintf("%s %s", h.contract.Title(), h.contract.Version())
	}
	c.JSON(http.StatusOK, resp)
}

// Contract handles GET /openapi.yml
func (h *HealthHandler) Contract(c *gin.Context) {
	if h.contract == nil {
		problem := apierror.NewNotFoundError(apierror.GetRequestID(c), "Contract", "openapi.yml")
		apierror.WriteProblem(c, problem)
		return
	}

	doc, err := h.contract.Document()
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("failed to encode contract", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}
	c.Data(http.StatusOK, "application/yaml", doc)
}
