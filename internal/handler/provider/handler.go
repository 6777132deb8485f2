package provider

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/handler"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/service/provider"
)

type Handler struct {
	service *provider.Service
}

func NewHandler(service *provider.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/providers", h.Search)
	rg.GET("/providers/:id", h.GetDetails)
	rg.GET("/categories", h.ListCategories)
	rg.GET("/categories/:id/subcategories", h.ListSubcategories)
}

func (h *Handler) RegisterProviderRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/provider")
	{
		group.PUT("/specialist", h.UpsertSpecialist)
		group.PUT("/venue", h.UpsertVenue)
	}
}

func (h *Handler) Search(c *gin.Context) {
	filters := &model.ProviderSearchFilters{
		CategoryLike: c.Query("category"),
		CityLike:     c.Query("city"),
		TextQuery:    c.Query("q"),
	}
	if role := c.Query("role"); role != "" {
		r := model.UserRole(role)
		if !r.IsProvider() {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid role filter"))
			return
		}
		filters.Role = &r
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid max_price"))
			return
		}
		filters.MaxPrice = &price
	}
	if raw := c.Query("limit"); raw != "" {
		filters.Limit, _ = strconv.Atoi(raw)
	}

	results, err := h.service.Search(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(results))
}

func (h *Handler) GetDetails(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(details))
}

func (h *Handler) ListCategories(c *gin.Context) {
	var categoryType *model.CategoryType
	if raw := c.Query("type"); raw != "" {
		t := model.CategoryType(raw)
		categoryType = &t
	}

	categories, err := h.service.ListCategories(c.Request.Context(), categoryType)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(categories))
}

func (h *Handler) ListSubcategories(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid category ID"))
		return
	}

	subcategories, err := h.service.ListSubcategories(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(subcategories))
}

func (h *Handler) UpsertSpecialist(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	var req model.UpsertSpecialistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	sp, err := h.service.UpsertSpecialist(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(sp))
}

func (h *Handler) UpsertVenue(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	var req model.UpsertVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	v, err := h.service.UpsertVenue(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(v))
}
