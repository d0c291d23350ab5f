package controllers

import (
	socket "github.com/Vishkec/monopoly/platform/sockets"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// Seat reports the caller's current seat, identified by the token issued
// when they created or joined the room.
func Seat(reg *socket.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals("user").(*jwt.Token)
		claims := user.Claims.(jwt.MapClaims)
		room, _ := claims["room"].(string)
		member, _ := claims["member"].(string)

		entry, err := reg.Seat(room, member)
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.JSON(fiber.Map{"roomCode": room, "player": entry})
	}
}
