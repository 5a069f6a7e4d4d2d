package controller

import (
	"github.com/Indrajitpadhiyar/Bagify/internal/notification"
	"github.com/labstack/echo/v4"
)

// CreateNotificationController mounts the order notification socket. Joining
// a room needs only the order id, so the route is public.
func CreateNotificationController(g *echo.Group, hub *notification.Hub, allowedOrigins []string) {
	g.GET("/ws", hub.Handler(allowedOrigins))
}
