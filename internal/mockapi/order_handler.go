package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop_client/internal/domain"
	"shop_client/internal/validation"
)

type OrderHandler struct {
	repo      *Repository
	validator *validation.Validator
	log       *logrus.Logger
}

func NewOrderHandler(repo *Repository, v *validation.Validator, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, validator: v, log: logger}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/admin/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrderByID)
		orders.PATCH("/:id/status", h.UpdateOrderStatus)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input domain.OrderInput
	if !bindForm(c, h.validator, h.log, &input) {
		return
	}

	order := domain.Order{
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		ShippingAddress: input.ShippingAddress,
		StoreID:         input.StoreID,
		VoucherCode:     input.VoucherCode,
		Note:            input.Note,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, domain.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	created, err := h.repo.PlaceOrder(order)
	if err != nil {
		h.log.Warnf("Failed to create order for '%s': %v", input.CustomerName, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create order: "+err.Error())
		return
	}
	h.log.Infof("Order created successfully: ID %s, Code %s, Total %.2f", created.ID, created.Code, created.Total)
	SuccessResponse(c, http.StatusCreated, "Order created successfully", created)
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.repo.GetOrder(c.Param("id"))
	if err != nil {
		h.log.Warnf("Failed to get order by ID %s: %v", c.Param("id"), err)
		ErrorResponse(c, mapErrorToStatus(err), "Order not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "Order retrieved successfully", order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, limit := pageParams(c)
	status := c.Query("status")
	if status != "" && !domain.IsValidOrderStatus(domain.OrderStatus(status)) {
		ErrorResponse(c, http.StatusBadRequest, "Invalid status filter: "+status)
		return
	}
	orders, meta := h.repo.ListOrders(status, page, limit)
	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", domain.OrderPage{Orders: orders, Pagination: meta})
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var input domain.OrderStatusInput
	if !bindForm(c, h.validator, h.log, &input) {
		return
	}
	id := c.Param("id")
	order, err := h.repo.SetOrderStatus(id, input.Status)
	if err != nil {
		h.log.Warnf("Failed to update status of order %s to '%s': %v", id, input.Status, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update order status: "+err.Error())
		return
	}
	h.log.Infof("Order %s status set to '%s'", id, order.Status)
	SuccessResponse(c, http.StatusOK, "Order status updated", order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.DeleteOrder(id); err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete order: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Order deleted successfully", nil)
}
