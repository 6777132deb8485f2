package portfolio

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/handler"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/service/portfolio"
)

type Handler struct {
	service *portfolio.Service
}

func NewHandler(service *portfolio.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProviderRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/provider/portfolio")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.PATCH("/:id", h.UpdateFlags)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	items, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

func (h *Handler) Create(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	var req model.CreatePortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	item, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(item))
}

func (h *Handler) UpdateFlags(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid item ID"))
		return
	}

	var req model.UpdatePortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	item, err := h.service.UpdateFlags(c.Request.Context(), userID, itemID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(item))
}

func (h *Handler) Delete(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid item ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, itemID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
