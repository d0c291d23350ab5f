package controllers

import (
	"strconv"

	"github.com/Vishkec/monopoly/app/models"
	"github.com/Vishkec/monopoly/platform/board"
	"github.com/Vishkec/monopoly/platform/database"
	socket "github.com/Vishkec/monopoly/platform/sockets"
	"github.com/gofiber/fiber/v2"
)

func GetBoard(c *fiber.Ctx) error {
	return c.JSON(board.Tiles())
}

func GetRooms(reg *socket.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(reg.List())
	}
}

func VerifyRoom(reg *socket.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		verifyRoomDto := new(models.VerifyRoomDto)
		if err := c.QueryParser(verifyRoomDto); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		info, err := reg.Get(verifyRoomDto.Code)
		if err != nil {
			return c.JSON(fiber.Map{"status": false})
		}
		return c.JSON(fiber.Map{"status": true, "started": info.Started, "players": len(info.Players)})
	}
}

func GetResults(archive database.ResultsArchive) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil || limit < 1 {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		records, err := archive.Recent(limit)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(records)
	}
}
