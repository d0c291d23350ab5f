package routes

import (
	socket "github.com/Vishkec/monopoly/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func RelayRoutes(a *fiber.App, reg *socket.Registry, log *logrus.Entry) {
	a.Use("/ws", socket.WebsocketUpgrade)
	a.Get("/ws", socket.WebsocketHandler(reg, log))
}
