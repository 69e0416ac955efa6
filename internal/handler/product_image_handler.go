package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/internal/storage"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProductImageHandler struct {
	imageService service.ProductImageService
	media        *storage.MediaStore
}

func NewProductImageHandler(imageService service.ProductImageService, media *storage.MediaStore) *ProductImageHandler {
	return &ProductImageHandler{imageService: imageService, media: media}
}

func (h *ProductImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/api/productimages", middleware.RequireAuth())
	{
		images.GET("", h.List)
		images.POST("", h.Create)
		images.GET("/:id", h.GetByID)
		images.PUT("/:id", h.Update)
		images.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /api/productimages as a multipart upload
// @Summary      Upload product image
// @Description  Stores the uploaded file and creates a gallery image row
// @Tags         productimages
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image        formData  file    true   "Image file"
// @Param        description  formData  string  false  "Description"
// @Success      201          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Router       /api/productimages [post]
func (h *ProductImageHandler) Create(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "image file is required"))
		return
	}

	path, err := h.media.Save("product_images", fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "failed to store image"))
		return
	}

	image, err := h.imageService.Create(c.Request.Context(), path, c.PostForm("description"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, image))
}

// List handles GET /api/productimages
func (h *ProductImageHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	images, total, err := h.imageService.List(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch images"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(images, total, p)))
}

// GetByID handles GET /api/productimages/:id
func (h *ProductImageHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Image not found"))
		return
	}

	image, err := h.imageService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductImageNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch image"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, image))
}

// Update changes an image's description; the stored file is immutable
func (h *ProductImageHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Image not found"))
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	image, err := h.imageService.UpdateDescription(c.Request.Context(), id, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrProductImageNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, image))
}

// Delete removes the row; products referencing it simply lose the link
func (h *ProductImageHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Image not found"))
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductImageNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Image deleted successfully"))
}
