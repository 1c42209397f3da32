package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/eshop/internal/user/application"
	"github.com/wyfcoding/eshop/pkg/errs"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

type Handler struct {
	cmd   *application.UserCommandService
	query *application.UserQueryService
}

func NewHandler(cmd *application.UserCommandService, query *application.UserQueryService) *Handler {
	return &Handler{cmd: cmd, query: query}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	g := r.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/me", auth, h.Me)
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	user, err := h.cmd.Register(c.Request.Context(), application.RegisterCommand{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	result, err := h.cmd.Login(c.Request.Context(), application.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      result.Token,
		"type":       "Bearer",
		"expires_at": result.ExpiresAt.Unix(),
		"email":      result.User.Email,
		"first_name": result.User.FirstName,
		"last_name":  result.User.LastName,
		"role":       result.User.Role,
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.query.GetUser(c.Request.Context(), UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, user)
}

func respondError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logging.Error(c.Request.Context(), "user request failed", "error", err)
		response.ErrorWithStatus(c, status, "An unexpected error occurred", errs.CodeUnexpected)
		return
	}
	response.ErrorWithStatus(c, status, err.Error(), errs.CodeOf(err))
}
