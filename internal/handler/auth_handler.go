package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes binds the auth endpoints. Login and refresh are public;
// logout requires a valid access token.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/user-connexion/", h.Login)
	router.POST("/api/user-deconnexion/", middleware.RequireAuth(), h.Logout)
	router.POST("/api/token/refresh/", h.Refresh)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Login authenticates by email and password
// @Summary      Login
// @Description  Authenticates a user, issues an access/refresh token pair and reports the time since the previous login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/user-connexion/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Email and password are required"))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEmail):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInactiveUser):
			c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Login failed"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":               "Connexion réussie !",
		"access":                result.Access,
		"refresh":               result.Refresh,
		"user":                  result.User,
		"time_since_last_login": result.TimeSinceLastLogin.String(),
	})
}

// Logout blacklists a refresh token
// @Summary      Logout
// @Description  Marks the refresh token as blacklisted so it cannot be redeemed again
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      refreshRequest  true  "Refresh token"
// @Success      205      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/user-deconnexion/ [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Refresh token is missing"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.Refresh); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusResetContent, response.Message(http.StatusResetContent, "Déconnexion réussie."))
}

// Refresh rotates an access/refresh token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Refresh token is missing"))
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pair))
}
