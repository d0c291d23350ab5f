package routes

import (
	"github.com/Vishkec/monopoly/app/controllers"
	socket "github.com/Vishkec/monopoly/platform/sockets"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

func SeatRoutes(a *fiber.App, reg *socket.Registry, secret string) {
	a.Get("/seat", jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
	}), controllers.Seat(reg))
}
