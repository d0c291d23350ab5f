package routes

import (
	"github.com/Vishkec/monopoly/app/controllers"
	"github.com/Vishkec/monopoly/platform/database"
	socket "github.com/Vishkec/monopoly/platform/sockets"
	"github.com/gofiber/fiber/v2"
)

func GameRoutes(a *fiber.App, reg *socket.Registry, archive database.ResultsArchive) {
	a.Get("/board", controllers.GetBoard)
	a.Get("/results", controllers.GetResults(archive))

	route := a.Group("/rooms")
	route.Get("/", controllers.GetRooms(reg))
	route.Get("/verify", controllers.VerifyRoom(reg))
}
