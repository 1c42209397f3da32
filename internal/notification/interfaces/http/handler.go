package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/eshop/internal/notification/application"
	userhttp "github.com/wyfcoding/eshop/internal/user/interfaces/http"
	"github.com/wyfcoding/pkg/response"
)

type Handler struct {
	svc *application.NotificationService
}

func NewHandler(svc *application.NotificationService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	g := r.Group("/notifications", auth)
	g.GET("", h.ListNotifications)
}

func (h *Handler) ListNotifications(c *gin.Context) {
	notifications, err := h.svc.ListByUser(c.Request.Context(), userhttp.UserIDFromContext(c))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, "An unexpected error occurred", "")
		return
	}
	response.Success(c, notifications)
}
