package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/eshop/internal/catalog/application"
	"github.com/wyfcoding/eshop/pkg/errs"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

type Handler struct {
	cmd   *application.CatalogCommandService
	query *application.CatalogQueryService
}

func NewHandler(cmd *application.CatalogCommandService, query *application.CatalogQueryService) *Handler {
	return &Handler{cmd: cmd, query: query}
}

// RegisterRoutes mounts the public catalog surface. Product writes require
// an authenticated admin.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	g := r.Group("/products")
	g.GET("", h.ListProducts)
	g.GET("/search", h.SearchProducts)
	g.GET("/category/:category", h.ListProductsByCategory)
	g.GET("/:id", h.GetProduct)
	g.POST("", auth, admin, h.CreateProduct)
	g.PUT("/:id", auth, admin, h.UpdateProduct)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.query.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, products)
}

func (h *Handler) ListProductsByCategory(c *gin.Context) {
	products, err := h.query.ListProductsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, products)
}

func (h *Handler) SearchProducts(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "keyword is required", "")
		return
	}
	products, err := h.query.SearchProducts(c.Request.Context(), keyword)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid product id", "")
		return
	}
	product, err := h.query.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, product)
}

type productRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       *int            `json:"stock"`
	Active      *bool           `json:"active"`
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	id, err := h.cmd.CreateProduct(c.Request.Context(), application.CreateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"product_id": id})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid product id", "")
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	err = h.cmd.UpdateProduct(c.Request.Context(), application.UpdateProductCommand{
		ProductID:   uint(id),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"product_id": id})
}

func respondError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logging.Error(c.Request.Context(), "catalog request failed", "error", err)
		response.ErrorWithStatus(c, status, "An unexpected error occurred", errs.CodeUnexpected)
		return
	}
	response.ErrorWithStatus(c, status, err.Error(), errs.CodeOf(err))
}
