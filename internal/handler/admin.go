package handler

import (
	"errors"
	"net/http"

	"genzmart-be/internal/order"
	"genzmart-be/internal/product"
	"genzmart-be/internal/user"
	"genzmart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	products product.Service
	orders   order.Service
	users    user.Service
}

func NewAdminHandler(products product.Service, orders order.Service, users user.Service) *AdminHandler {
	return &AdminHandler{products: products, orders: orders, users: users}
}

func (h *AdminHandler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var p product.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	created, err := h.products.Create(c.Request.Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrEmptyName),
			errors.Is(err, product.ErrInvalidPrice),
			errors.Is(err, product.ErrNegativeStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": created})
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	var update product.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	updated, err := h.products.Update(c.Request.Context(), id, update)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, product.ErrEmptyName),
			errors.Is(err, product.ErrInvalidPrice),
			errors.Is(err, product.ErrNegativeStock),
			errors.Is(err, product.ErrNoFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": updated})
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	// An admin cannot delete their own account.
	if selfID, ok := utils.GetUserIDFromContext(c.Request.Context()); ok && selfID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete own account"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
