package handler

import (
	"errors"

	"simagang-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PengaturanHandler struct {
	svc *service.AbsensiService
}

func NewPengaturanHandler(svc *service.AbsensiService) *PengaturanHandler {
	return &PengaturanHandler{svc: svc}
}

func (h *PengaturanHandler) GetBatasTelat(c *fiber.Ctx) error {
	return sukses(c, "Batas telat saat ini", fiber.Map{"batas_telat": h.svc.BatasTelat()})
}

// SetBatasTelat mengubah batas telat global. Record lama tetap memakai batas
// yang tersimpan di masing-masing record.
func (h *PengaturanHandler) SetBatasTelat(c *fiber.Ctx) error {
	var req struct {
		BatasTelat string `json:"batas_telat"`
	}
	if err := c.BodyParser(&req); err != nil {
		return gagal(c, fiber.StatusBadRequest, "Data tidak valid")
	}

	batas, err := h.svc.SetBatasTelat(req.BatasTelat)
	if err != nil {
		if errors.Is(err, service.ErrFormatJamTidakValid) {
			return gagal(c, fiber.StatusBadRequest, err.Error())
		}
		return gagal(c, fiber.StatusInternalServerError, "Gagal menyimpan batas telat")
	}

	return sukses(c, "Batas telat berhasil diperbarui", fiber.Map{"batas_telat": batas})
}
