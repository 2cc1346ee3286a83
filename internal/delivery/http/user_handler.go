package http

import (
	"simagang-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	usecase *usecase.UserUsecase
}

func NewUserHandler(u *usecase.UserUsecase) *UserHandler {
	return &UserHandler{usecase: u}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Nama     string `json:"nama"`
		NIP      string `json:"nip"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Input tidak valid"})
	}

	// Registrasi publik selalu role user; admin/superadmin dibuat lewat seeder
	if err := h.usecase.Register(input.Nama, input.NIP, input.Email, input.Password, ""); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Gagal registrasi: " + err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "message": "User berhasil terdaftar"})
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var input struct {
		NIP      string `json:"nip"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Input tidak valid"})
	}

	token, nama, err := h.usecase.Login(input.NIP, input.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login Berhasil!",
		"data":    fiber.Map{"token": token, "nama": nama},
	})
}
