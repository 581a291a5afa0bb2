package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/uniadvisor-api/database"
)

func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
