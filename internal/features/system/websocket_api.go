package system

import (
	"go-permit/internal/common/api"
	"go-permit/internal/features/notification"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// WebSocketApi subscribes clients to the permit event stream
type WebSocketApi struct {
	Hub *notification.Hub
}

func NewWebSocketApi(hub *notification.Hub) api.Route {
	return &WebSocketApi{Hub: hub}
}

func (h *WebSocketApi) Setup(app *fiber.App) {
	app.Get("/api/ws", websocket.New(func(c *websocket.Conn) {
		h.Hub.Register(c)
		defer func() {
			h.Hub.Unregister(c)
			c.Close()
		}()

		// Drain until the client goes away; events flow server -> client only
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
