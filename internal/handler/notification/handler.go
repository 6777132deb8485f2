package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/altynbek8/ServiceApp/internal/handler"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/service/notification"
)

type Handler struct {
	service *notification.Service
}

func NewHandler(service *notification.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/notifications")
	{
		group.GET("", h.List)
		group.POST("/read", h.MarkRead)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.Query("limit"))

	notifications, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(notifications))
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	var req model.MarkNotificationsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), userID, req.IDs); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
