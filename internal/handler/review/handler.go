package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/handler"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/service/review"
)

type Handler struct {
	service *review.Service
}

func NewHandler(service *review.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/providers/:id/reviews", h.ListByTarget)
	rg.GET("/providers/:id/reviews/summary", h.Summary)
}

func (h *Handler) RegisterClientRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.Create)
}

func (h *Handler) Create(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	r, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(r))
}

func (h *Handler) ListByTarget(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid provider ID"))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	reviews, err := h.service.ListByTarget(c.Request.Context(), targetID, limit)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reviews))
}

func (h *Handler) Summary(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), targetID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	avg, count, err := h.service.AverageRating(c.Request.Context(), targetID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"summary":      summary,
		"avg_rating":   avg,
		"review_count": count,
	}))
}
