package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nurmatov/onlineshop-api/internal/application"
	"github.com/nurmatov/onlineshop-api/pkg/response"
	"github.com/nurmatov/onlineshop-api/pkg/validation"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

type createCategoryRequest struct {
	CategoryName string `json:"category_name" binding:"required,max=16"`
}

type productRequest struct {
	ProductName  string `json:"product_name" binding:"required,max=16"`
	Category     string `json:"category" binding:"required,uuid"`
	Price        int64  `json:"price" binding:"gte=0"`
	Description  string `json:"description"`
	Active       *bool  `json:"active"`
	ProductVideo string `json:"product_video" binding:"omitempty,url"`
}

type rateRequest struct {
	Stars int `json:"stars" binding:"required,stars"`
}

type reviewRequest struct {
	Text         string `json:"text" binding:"required"`
	ParentReview string `json:"parent_review" binding:"omitempty,uuid"`
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	views, err := h.Svc.ListCategories()
	if err != nil {
		h.Logger.WithError(err).Error("list categories failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list categories", nil)
		return
	}
	response.Success(c, http.StatusOK, views, "categories", nil)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.CreateCategory(req.CategoryName)
	if err != nil {
		if errors.Is(err, application.ErrCategoryExists) {
			response.Error[any](c, http.StatusConflict, "category already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("create category failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create category", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": cat.ID, "category_name": cat.Name}, "category created", nil)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	views, err := h.Svc.ListProducts(c.Query("category"))
	if err != nil {
		h.Logger.WithError(err).Error("list products failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list products", nil)
		return
	}
	response.Success(c, http.StatusOK, views, "products", nil)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	view, err := h.Svc.GetProduct(c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get product failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load product", nil)
		return
	}
	response.Success(c, http.StatusOK, view, "product", nil)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	uid := c.GetString("userID")
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), uid, application.ProductInput{
		Name:        req.ProductName,
		CategoryID:  req.Category,
		Price:       req.Price,
		Description: req.Description,
		Active:      active,
		VideoURL:    req.ProductVideo,
	})
	if err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			response.Error[any](c, http.StatusBadRequest, "category not found", nil)
			return
		}
		h.Logger.WithError(err).Error("create product failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create product", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": p.ID}, "product created", nil)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	uid := c.GetString("userID")
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	p, err := h.Svc.UpdateProduct(c.Request.Context(), c.Param("id"), uid, application.ProductInput{
		Name:        req.ProductName,
		CategoryID:  req.Category,
		Price:       req.Price,
		Description: req.Description,
		Active:      active,
		VideoURL:    req.ProductVideo,
	})
	if err != nil {
		h.respondCatalogError(c, err, "update product failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": p.ID}, "product updated", nil)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.DeleteProduct(c.Request.Context(), c.Param("id"), uid); err != nil {
		h.respondCatalogError(c, err, "delete product failed")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "product deleted", nil)
}

func (h *CatalogHandler) UploadPhoto(c *gin.Context) {
	uid := c.GetString("userID")
	file, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read image", nil)
		return
	}
	defer func() { _ = src.Close() }()

	ph, err := h.Svc.UploadPhoto(c.Request.Context(), c.Param("id"), uid, src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		h.respondCatalogError(c, err, "photo upload failed")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": ph.ID, "image": ph.ImageURL}, "photo uploaded", nil)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchProducts(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("product search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func (h *CatalogHandler) RateProduct(c *gin.Context) {
	uid := c.GetString("userID")
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rt, err := h.Svc.RateProduct(c.Param("id"), uid, req.Stars)
	if err != nil {
		if errors.Is(err, application.ErrInvalidStars) {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"stars": "must be between 1 and 5"})
			return
		}
		h.respondCatalogError(c, err, "rate product failed")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": rt.ID, "stars": rt.Stars}, "rating recorded", nil)
}

func (h *CatalogHandler) AddReview(c *gin.Context) {
	uid := c.GetString("userID")
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rv, err := h.Svc.AddReview(c.Param("id"), uid, req.Text, req.ParentReview)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrParentReviewNotFound):
			response.Error[any](c, http.StatusBadRequest, "parent review not found", nil)
		case errors.Is(err, application.ErrParentReviewMismatch):
			response.Error[any](c, http.StatusBadRequest, "parent review belongs to another product", nil)
		default:
			h.respondCatalogError(c, err, "add review failed")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": rv.ID}, "review posted", nil)
}

func (h *CatalogHandler) respondCatalogError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, application.ErrProductNotFound):
		response.Error[any](c, http.StatusNotFound, "product not found", nil)
	case errors.Is(err, application.ErrCategoryNotFound):
		response.Error[any](c, http.StatusBadRequest, "category not found", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Error[any](c, http.StatusForbidden, "not the product owner", nil)
	default:
		h.Logger.WithError(err).Error(logMsg)
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
