package favorite

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/handler"
	"github.com/altynbek8/ServiceApp/internal/service/favorite"
)

type Handler struct {
	service *favorite.Service
}

func NewHandler(service *favorite.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/favorites")
	{
		group.GET("", h.List)
		group.POST("/:target_id/toggle", h.Toggle)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	favorites, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(favorites))
}

func (h *Handler) Toggle(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	targetID, err := uuid.Parse(c.Param("target_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid target ID"))
		return
	}

	favorited, err := h.service.Toggle(c.Request.Context(), userID, targetID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"favorited": favorited}))
}
