package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/storage"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService service.ProductService
	media          *storage.MediaStore
}

func NewProductHandler(productService service.ProductService, media *storage.MediaStore) *ProductHandler {
	return &ProductHandler{productService: productService, media: media}
}

// RegisterRoutes binds the catalog endpoints. Reads are public (storefront);
// mutations require authentication but still accept an optional token on the
// public group so the audit trail can name an actor.
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.GetByID)
		products.POST("", middleware.RequireAuth(), h.Create)
		products.PUT("/:id", middleware.RequireAuth(), h.Update)
		products.DELETE("/:id", middleware.RequireAuth(), h.Delete)
	}
}

// parseFormIDs reads repeated or comma-separated integer form values.
func parseFormIDs(values []string) ([]uint, error) {
	var ids []uint
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, errors.New("invalid picture id: " + part)
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}

// bindProductForm maps a multipart form onto the create request, storing the
// photo and gallery uploads through the media store.
func (h *ProductHandler) bindProductForm(c *gin.Context, req *service.CreateProductRequest) error {
	form, err := c.MultipartForm()
	if err != nil {
		return errors.New("invalid multipart form")
	}

	req.Name = c.PostForm("name")
	req.Description = c.PostForm("description")
	req.Comments = c.PostForm("comments")

	if raw := c.PostForm("price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return errors.New("invalid price")
		}
		req.Price = &price
	}
	if raw := c.PostForm("availability"); raw != "" {
		avail, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.New("invalid availability")
		}
		req.Availability = &avail
	}
	if raw := c.PostForm("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return errors.New("invalid user_id")
		}
		uid := uint(id)
		req.UserID = &uid
	}
	if raw := c.PostForm("entreprise_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return errors.New("invalid entreprise_id")
		}
		eid := uint(id)
		req.EntrepriseID = &eid
	}

	ids, err := parseFormIDs(form.Value["picture_ids"])
	if err != nil {
		return err
	}
	req.PictureIDs = ids

	if files := form.File["photo"]; len(files) > 0 {
		path, err := h.media.Save("products", files[0])
		if err != nil {
			return errors.New("failed to store photo")
		}
		req.Photo = path
	}
	for _, fh := range form.File["many_pictures"] {
		path, err := h.media.Save("product_images", fh)
		if err != nil {
			return errors.New("failed to store gallery image")
		}
		req.NewPictures = append(req.NewPictures, service.NewPictureInput{Path: path})
	}

	return nil
}

// Create handles POST /api/products, accepting JSON or multipart with an
// uploaded photo and gallery files
// @Summary      Create product
// @Description  Creates a product; multipart bodies may carry a photo and many_pictures gallery files
// @Tags         products
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateProductRequest  true  "Product"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := h.bindProductForm(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "name is required"))
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
			return
		}
	}

	product, err := h.productService.Create(c.Request.Context(), middleware.ActorID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// List handles GET /api/products. The listing is per owner: a missing or
// non-numeric user_id yields an empty page, never an error. entreprise_id is
// an optional additional filter.
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        user_id        query     int  false  "Owning user ID"
// @Param        entreprise_id  query     int  false  "Owning organization ID"
// @Param        page           query     int  false  "Page number"
// @Param        limit          query     int  false  "Items per page"
// @Success      200            {object}  response.Response
// @Router       /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	p := pagination.Parse(c)

	userID, _, ok := filterParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope([]model.Product{}, 0, p)))
		return
	}
	filter := repository.ProductFilter{UserID: &userID}

	if entrepriseID, present, ok := filterParam(c, "entreprise_id"); present {
		if !ok {
			c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope([]model.Product{}, 0, p)))
			return
		}
		filter.EntrepriseID = &entrepriseID
	}

	products, total, err := h.productService.List(c.Request.Context(), filter, p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(products, total, p)))
}

// GetByID handles GET /api/products/:id
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Product not found"))
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch product"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// Update handles PUT /api/products/:id with a partial field merge
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Product not found"))
		return
	}

	var req service.UpdateProductRequest
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var createReq service.CreateProductRequest
		if err := h.bindProductForm(c, &createReq); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		req = service.UpdateProductRequest(createReq)
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
			return
		}
	}

	product, err := h.productService.Update(c.Request.Context(), middleware.ActorID(c), id, req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// Delete handles DELETE /api/products/:id; the audit Action row outlives the
// product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Product not found"))
		return
	}

	if err := h.productService.Delete(c.Request.Context(), middleware.ActorID(c), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Message(http.StatusOK, "Product deleted successfully"))
}
