package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ActionHandler struct {
	actionService service.ActionService
}

func NewActionHandler(actionService service.ActionService) *ActionHandler {
	return &ActionHandler{actionService: actionService}
}

// RegisterRoutes binds the audit-trail endpoints. The trail is append-only,
// so only reads are exposed; rows are written by the audit recorder alone.
func (h *ActionHandler) RegisterRoutes(router *gin.RouterGroup) {
	actions := router.Group("/api/actions", middleware.RequireAuth())
	{
		actions.GET("", h.List)
		actions.GET("/:id", h.GetByID)
	}
}

// List returns the audit trail, newest first
// @Summary      List actions
// @Tags         actions
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Router       /api/actions [get]
func (h *ActionHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	entries, total, err := h.actionService.List(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch actions"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(entries, total, p)))
}

// GetByID returns one audit entry
// @Summary      Get action by ID
// @Tags         actions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Action ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/actions/{id} [get]
func (h *ActionHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Action not found"))
		return
	}

	entry, err := h.actionService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrActionNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch action"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}
