package handler

import (
	"errors"
	"strconv"

	"simagang-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type QRTokenHandler struct {
	svc *service.QRTokenService
}

func NewQRTokenHandler(svc *service.QRTokenService) *QRTokenHandler {
	return &QRTokenHandler{svc: svc}
}

// Generate membuat token baru untuk hari ini (admin). Token lama otomatis nonaktif.
func (h *QRTokenHandler) Generate(c *fiber.Ctx) error {
	adminID := uint(c.Locals("user_id").(float64))

	token, err := h.svc.Generate(adminID)
	if err != nil {
		return gagal(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return sukses(c, "Token berhasil dibuat", fiber.Map{
		"token": token,
		// Payload yang di-encode jadi QR di sisi admin
		"qr_payload": token.Nilai,
	})
}

func (h *QRTokenHandler) TokenHariIni(c *fiber.Ctx) error {
	token, err := h.svc.TokenHariIni()
	if err != nil {
		if errors.Is(err, service.ErrTokenTidakDitemukan) {
			return gagal(c, fiber.StatusNotFound, err.Error())
		}
		return gagal(c, fiber.StatusInternalServerError, "Gagal mengambil token")
	}
	return sukses(c, "Token hari ini", token)
}

func (h *QRTokenHandler) Riwayat(c *fiber.Ctx) error {
	hari, _ := strconv.Atoi(c.Query("days", "7"))

	ringkasan, err := h.svc.Riwayat(hari)
	if err != nil {
		return gagal(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat token")
	}
	return sukses(c, "Riwayat token", ringkasan)
}

// Scan: user menempelkan hasil scan QR untuk check-in.
func (h *QRTokenHandler) Scan(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return gagal(c, fiber.StatusBadRequest, "Token wajib diisi")
	}

	absensi, err := h.svc.Scan(req.Token, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenTidakValid), errors.Is(err, service.ErrTokenKadaluarsa):
			return gagal(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSudahAbsen):
			return gagal(c, fiber.StatusConflict, err.Error())
		default:
			return gagal(c, fiber.StatusInternalServerError, "Gagal memproses scan")
		}
	}

	return sukses(c, "Check-in via QR berhasil", absensi)
}
