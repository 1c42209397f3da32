package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/eshop/internal/order/application"
	"github.com/wyfcoding/eshop/internal/order/domain"
	user "github.com/wyfcoding/eshop/internal/user/domain"
	userhttp "github.com/wyfcoding/eshop/internal/user/interfaces/http"
	"github.com/wyfcoding/eshop/pkg/errs"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

type Handler struct {
	commands *application.OrderCommandService
	queries  *application.OrderQueryService
}

func NewHandler(commands *application.OrderCommandService, queries *application.OrderQueryService) *Handler {
	return &Handler{commands: commands, queries: queries}
}

// RegisterRoutes mounts the order surface. Status updates are admin-only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	g := r.Group("/orders", auth)
	g.POST("", h.CreateOrder)
	g.GET("", h.GetUserOrders)
	g.GET("/:orderId", h.GetOrder)
	g.PUT("/:orderId/status", admin, h.UpdateOrderStatus)
}

type createOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	BillingAddress  string `json:"billing_address"`
	Phone           string `json:"phone" binding:"required"`
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	order, err := h.commands.CreateOrder(c.Request.Context(), application.CreateOrderCommand{
		UserID:          userhttp.UserIDFromContext(c),
		Email:           userhttp.EmailFromContext(c),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Phone:           req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, order)
}

func (h *Handler) GetUserOrders(c *gin.Context) {
	orders, err := h.queries.GetUserOrders(c.Request.Context(), userhttp.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid order id", "")
		return
	}
	admin := userhttp.RoleFromContext(c) == string(user.RoleAdmin)
	order, err := h.queries.GetOrder(c.Request.Context(), uint(orderID), userhttp.UserIDFromContext(c), admin)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid order id", "")
		return
	}
	status, ok := domain.ParseOrderStatus(c.Query("status"))
	if !ok {
		respondError(c, errs.Business(errs.CodeInvalidOrderStatus, "Invalid order status: %s", c.Query("status")))
		return
	}
	order, err := h.commands.UpdateOrderStatus(c.Request.Context(), uint(orderID), status)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, order)
}

func respondError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logging.Error(c.Request.Context(), "order request failed", "error", err)
		response.ErrorWithStatus(c, status, "An unexpected error occurred", errs.CodeUnexpected)
		return
	}
	response.ErrorWithStatus(c, status, err.Error(), errs.CodeOf(err))
}
