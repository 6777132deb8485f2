package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/handler"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/service/profile"
)

type Handler struct {
	service *profile.Service
}

func NewHandler(service *profile.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/profile")
	{
		group.GET("/me", h.GetMe)
		group.PATCH("/me", h.UpdateMe)
		group.POST("/push-token", h.RegisterPushToken)
	}
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/admin/users")
	{
		group.GET("", h.List)
		group.POST("/:id/ban", h.Ban)
		group.POST("/:id/unban", h.Unban)
	}
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	p, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) UpdateMe(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.service.Update(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) RegisterPushToken(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	var req model.RegisterPushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.RegisterPushToken(c.Request.Context(), userID, req.PushToken); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.ProfileFilters{Search: c.Query("search")}
	if role := c.Query("role"); role != "" {
		r := model.UserRole(role)
		filters.Role = &r
	}

	profiles, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(profiles))
}

func (h *Handler) Ban(c *gin.Context) {
	h.setBanned(c, true)
}

func (h *Handler) Unban(c *gin.Context) {
	h.setBanned(c, false)
}

func (h *Handler) setBanned(c *gin.Context, banned bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	if err := h.service.SetBanned(c.Request.Context(), id, banned); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
