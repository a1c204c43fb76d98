package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"jumparena/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // configure in prod
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterClientRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.POST("/notifications/read", h.MarkAllRead)
	rg.GET("/notifications/ws", h.Live)
}

func (h *Handler) List(c *gin.Context) {
	clientID := c.GetInt64("client_id")
	if clientID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "No client profile bound to this account")
		return
	}

	items, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notifications": items})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	clientID := c.GetInt64("client_id")
	if clientID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "No client profile bound to this account")
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), clientID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notifications read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked": true})
}

// Live upgrades the request to a websocket and registers it with the hub.
// New notifications for the client are pushed as JSON until the peer closes.
func (h *Handler) Live(c *gin.Context) {
	clientID := c.GetInt64("client_id")
	if clientID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "No client profile bound to this account")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Register(clientID, conn)
	defer h.hub.Unregister(clientID)

	// Drain reads so pings and close frames are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
