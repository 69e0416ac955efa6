package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CodeCenterHandler struct {
	centerService service.CodeCenterService
}

func NewCodeCenterHandler(centerService service.CodeCenterService) *CodeCenterHandler {
	return &CodeCenterHandler{centerService: centerService}
}

func (h *CodeCenterHandler) RegisterRoutes(router *gin.RouterGroup) {
	centers := router.Group("/api/codecenters", middleware.RequireAuth())
	{
		centers.GET("", h.List)
		centers.POST("", h.Create)
		centers.GET("/:id", h.GetByID)
		centers.PUT("/:id", h.Update)
		centers.DELETE("/:id", h.Delete)
	}
}

// Create registers a new organization with a generated sequential code
// @Summary      Create code center
// @Tags         codecenters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateCodeCenterRequest  true  "Code center"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/codecenters [post]
func (h *CodeCenterHandler) Create(c *gin.Context) {
	var req service.CreateCodeCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	center, err := h.centerService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, center))
}

// List returns organizations, newest first
// @Summary      List code centers
// @Tags         codecenters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /api/codecenters [get]
func (h *CodeCenterHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	centers, total, err := h.centerService.List(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch code centers"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(centers, total, p)))
}

// GetByID returns one organization
// @Summary      Get code center by ID
// @Tags         codecenters
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "CodeCenter ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/codecenters/{id} [get]
func (h *CodeCenterHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Code center not found"))
		return
	}

	center, err := h.centerService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Code center not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch code center"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, center))
}

// Update changes name/description; the generated code is immutable
func (h *CodeCenterHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Code center not found"))
		return
	}

	var req service.UpdateCodeCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	center, err := h.centerService.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Code center not found"))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, center))
}

// Delete removes an organization
func (h *CodeCenterHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Code center not found"))
		return
	}

	if err := h.centerService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Code center not found"))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Code center deleted successfully"))
}
