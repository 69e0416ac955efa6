package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	subs := router.Group("/api/subscriptions", middleware.RequireAuth())
	{
		subs.GET("", h.List)
		subs.POST("", h.Create)
		subs.GET("/:id", h.GetByID)
		subs.PUT("/:id", h.Update)
		subs.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /api/subscriptions; end_date defaults to
// start_date + 30 days and status is derived, never accepted
// @Summary      Create subscription
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateSubscriptionRequest  true  "Subscription"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/subscriptions [post]
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req service.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sub, err := h.subscriptionService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sub))
}

// List handles GET /api/subscriptions with optional entreprise_id/user_id
// filters; a present but non-numeric filter yields an empty page
func (h *SubscriptionHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	var filter repository.SubscriptionFilter
	if id, present, ok := filterParam(c, "entreprise_id"); present {
		if !ok {
			c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope([]model.Subscription{}, 0, p)))
			return
		}
		filter.EntrepriseID = &id
	}
	if id, present, ok := filterParam(c, "user_id"); present {
		if !ok {
			c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope([]model.Subscription{}, 0, p)))
			return
		}
		filter.UserID = &id
	}

	subs, total, err := h.subscriptionService.List(c.Request.Context(), filter, p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch subscriptions"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(subs, total, p)))
}

// GetByID handles GET /api/subscriptions/:id
func (h *SubscriptionHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Subscription not found"))
		return
	}

	sub, err := h.subscriptionService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch subscription"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, sub))
}

// Update handles PUT /api/subscriptions/:id; any write, even an unrelated
// field change, re-evaluates expiry
func (h *SubscriptionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Subscription not found"))
		return
	}

	var req service.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	sub, err := h.subscriptionService.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, sub))
}

// Delete handles DELETE /api/subscriptions/:id
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Subscription not found"))
		return
	}

	if err := h.subscriptionService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Subscription deleted successfully"))
}
