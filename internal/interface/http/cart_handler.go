package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nurmatov/onlineshop-api/internal/application"
	"github.com/nurmatov/onlineshop-api/pkg/response"
	"github.com/nurmatov/onlineshop-api/pkg/validation"
)

type CartHandler struct {
	Svc    *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"omitempty,gte=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	uid := c.GetString("userID")
	view, err := h.Svc.GetCart(uid)
	if err != nil {
		h.Logger.WithError(err).Error("load cart failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load cart", nil)
		return
	}
	response.Success(c, http.StatusOK, view, "cart", nil)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	uid := c.GetString("userID")
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	item, err := h.Svc.AddItem(uid, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("add cart item failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to add item", nil)
		return
	}
	response.Success(c, http.StatusCreated, item, "item added", nil)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	item, err := h.Svc.UpdateItem(uid, c.Param("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, application.ErrCartItemNotFound) {
			response.Error[any](c, http.StatusNotFound, "cart item not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update cart item failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update item", nil)
		return
	}
	response.Success(c, http.StatusOK, item, "item updated", nil)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.RemoveItem(uid, c.Param("id")); err != nil {
		if errors.Is(err, application.ErrCartItemNotFound) {
			response.Error[any](c, http.StatusNotFound, "cart item not found", nil)
			return
		}
		h.Logger.WithError(err).Error("remove cart item failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to remove item", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "item removed", nil)
}
