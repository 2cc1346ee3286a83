package handler

import "github.com/gofiber/fiber/v2"

// Semua respons API memakai amplop {success, message, data} agar klien cukup
// mengecek satu flag.

func sukses(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func gagal(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}
