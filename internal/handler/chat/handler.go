package chat

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/altynbek8/ServiceApp/internal/handler"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/service/chat"
	"github.com/altynbek8/ServiceApp/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Handler struct {
	service  *chat.Service
	logger   *logger.Logger
	upgrader websocket.Upgrader
}

func NewHandler(service *chat.Service, logger *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Mobile clients connect from app webviews; origin checks
			// happen at the token layer.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/chat")
	{
		group.GET("/conversations", h.ListConversations)
		group.GET("/ws", h.Stream)
		group.GET("/:peer_id/messages", h.History)
		group.POST("/:peer_id/messages", h.Send)

		group.GET("/categories/:id/messages", h.CategoryHistory)
		group.POST("/categories/:id/messages", h.SendCategory)
		group.GET("/categories/:id/ws", h.StreamCategory)
	}
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	conversations, err := h.service.Conversations(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(conversations))
}

func (h *Handler) History(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	peerID, err := uuid.Parse(c.Param("peer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid peer ID"))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	messages, err := h.service.History(c.Request.Context(), userID, peerID, limit)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(messages))
}

func (h *Handler) Send(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	peerID, err := uuid.Parse(c.Param("peer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid peer ID"))
		return
	}

	var req model.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	m, err := h.service.Send(c.Request.Context(), userID, peerID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(m))
}

func (h *Handler) CategoryHistory(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid category ID"))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	messages, err := h.service.CategoryHistory(c.Request.Context(), categoryID, limit)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(messages))
}

func (h *Handler) SendCategory(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid category ID"))
		return
	}

	var req model.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	m, err := h.service.SendCategory(c.Request.Context(), userID, categoryID, req.Content)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(m))
}

// Stream upgrades to a websocket and forwards the caller's chat events
// until either side disconnects.
func (h *Handler) Stream(c *gin.Context) {
	userID, _ := handler.CurrentUserID(c)

	events, err := h.service.Subscribe(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	h.stream(c, events)
}

// StreamCategory streams a public category room.
func (h *Handler) StreamCategory(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid category ID"))
		return
	}

	events, err := h.service.SubscribeCategory(c.Request.Context(), categoryID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	h.stream(c, events)
}

func (h *Handler) stream(c *gin.Context, events <-chan []byte) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(err, "websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Drain client frames so pongs and close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-events:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
