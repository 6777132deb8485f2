package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/handler"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/service/booking"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	// Day schedules are public: clients need them before booking.
	rg.GET("/providers/:id/slots", h.GetDaySchedule)
	rg.GET("/providers/:id/busy-dates", h.GetBusyDates)
}

func (h *Handler) RegisterClientRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/bookings")
	{
		group.POST("", h.Create)
		group.GET("/my", h.ListMine)
	}
}

func (h *Handler) RegisterProviderRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/provider")
	{
		group.GET("/bookings", h.ListForProvider)
		group.PATCH("/bookings/:id", h.UpdateStatus)
		group.POST("/blocks/toggle", h.ToggleBlock)
	}
}

func (h *Handler) GetDaySchedule(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid provider ID"))
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date is required"))
		return
	}

	schedule, err := h.service.Resolve(c.Request.Context(), providerID, date)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(schedule))
}

func (h *Handler) GetBusyDates(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	dates, err := h.service.FullyBusyDates(c.Request.Context(), providerID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(dates))
}

func (h *Handler) Create(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	b, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(b))
}

func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	filters := &model.BookingFilters{ClientID: &userID}
	if raw := c.Query("status"); raw != "" {
		status := model.BookingStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid status filter"))
			return
		}
		filters.Status = &status
	}

	bookings, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bookings))
}

func (h *Handler) ListForProvider(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	filters := &model.BookingFilters{SpecialistID: &userID}
	if raw := c.Query("status"); raw != "" {
		status := model.BookingStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid status filter"))
			return
		}
		filters.Status = &status
	}

	bookings, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bookings))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking ID"))
		return
	}

	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), userID, bookingID, req.Status)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(b))
}

func (h *Handler) ToggleBlock(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	var req model.ToggleBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result, err := h.service.ToggleBlock(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}
