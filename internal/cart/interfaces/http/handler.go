package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/eshop/internal/cart/application"
	"github.com/wyfcoding/eshop/internal/cart/domain"
	userhttp "github.com/wyfcoding/eshop/internal/user/interfaces/http"
	"github.com/wyfcoding/eshop/pkg/errs"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

type Handler struct {
	svc *application.CartService
}

func NewHandler(svc *application.CartService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the cart surface; every route requires a resolved
// caller identity.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	g := r.Group("/cart", auth)
	g.GET("", h.GetCart)
	g.DELETE("", h.ClearCart)
	g.POST("/items", h.AddItem)
	g.PUT("/items/:itemId", h.UpdateItem)
	g.DELETE("/items/:itemId", h.RemoveItem)
}

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.svc.GetCart(c.Request.Context(), userhttp.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toCartResponse(cart))
}

type addItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	cart, err := h.svc.AddItem(c.Request.Context(), userhttp.UserIDFromContext(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toCartResponse(cart))
}

func (h *Handler) UpdateItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid item id", "")
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "quantity is required", "")
		return
	}
	cart, err := h.svc.UpdateItem(c.Request.Context(), userhttp.UserIDFromContext(c), uint(itemID), quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toCartResponse(cart))
}

func (h *Handler) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid item id", "")
		return
	}
	cart, err := h.svc.RemoveItem(c.Request.Context(), userhttp.UserIDFromContext(c), uint(itemID))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, toCartResponse(cart))
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.svc.ClearCart(c.Request.Context(), userhttp.UserIDFromContext(c)); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

type cartResponse struct {
	ID         uint               `json:"id"`
	UserID     uint               `json:"user_id"`
	Items      []cartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

type cartItemResponse struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for i := range cart.Items {
		item := cart.Items[i]
		resp := cartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: decimal.Zero,
			LineTotal: decimal.Zero,
		}
		if item.Product != nil {
			resp.ProductName = item.Product.Name
			resp.UnitPrice = item.Product.Price
			resp.LineTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		items = append(items, resp)
	}
	return cartResponse{
		ID:         cart.ID,
		UserID:     cart.UserID,
		Items:      items,
		TotalPrice: cart.Total(),
	}
}

func respondError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logging.Error(c.Request.Context(), "cart request failed", "error", err)
		response.ErrorWithStatus(c, status, "An unexpected error occurred", errs.CodeUnexpected)
		return
	}
	response.ErrorWithStatus(c, status, err.Error(), errs.CodeOf(err))
}
