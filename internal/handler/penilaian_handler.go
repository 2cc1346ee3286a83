package handler

import (
	"errors"
	"strconv"

	"simagang-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PenilaianHandler struct {
	svc *service.PenilaianService
}

func NewPenilaianHandler(svc *service.PenilaianService) *PenilaianHandler {
	return &PenilaianHandler{svc: svc}
}

func parsePeriode(c *fiber.Ctx) (int, int, error) {
	bulan, err := strconv.Atoi(c.Query("bulan"))
	if err != nil {
		return 0, 0, errors.New("parameter bulan wajib angka 1-12")
	}
	tahun, err := strconv.Atoi(c.Query("tahun"))
	if err != nil {
		return 0, 0, errors.New("parameter tahun wajib angka")
	}
	return bulan, tahun, nil
}

// Hitung menampilkan rincian komponen absen tanpa menyimpannya.
func (h *PenilaianHandler) Hitung(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Query("user_id"))
	if err != nil {
		return gagal(c, fiber.StatusBadRequest, "parameter user_id wajib angka")
	}
	bulan, tahun, err := parsePeriode(c)
	if err != nil {
		return gagal(c, fiber.StatusBadRequest, err.Error())
	}

	hasil, err := h.svc.Hitung(uint(userID), bulan, tahun)
	if err != nil {
		if errors.Is(err, service.ErrPeriodeTidakValid) {
			return gagal(c, fiber.StatusBadRequest, err.Error())
		}
		return gagal(c, fiber.StatusInternalServerError, "Gagal menghitung penilaian")
	}

	return sukses(c, "Perhitungan penilaian", hasil)
}

func (h *PenilaianHandler) Simpan(c *fiber.Ctx) error {
	var req service.SimpanPenilaianRequest
	if err := c.BodyParser(&req); err != nil {
		return gagal(c, fiber.StatusBadRequest, "Data tidak valid")
	}

	penilaian, err := h.svc.Simpan(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPenilaianSudahFinal),
			errors.Is(err, service.ErrPenilaianSedangDisimpan):
			return gagal(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrPeriodeTidakValid),
			errors.Is(err, service.ErrNilaiDiLuarRentang),
			errors.Is(err, service.ErrStatusPenilaianTidakValid):
			return gagal(c, fiber.StatusBadRequest, err.Error())
		default:
			return gagal(c, fiber.StatusInternalServerError, "Gagal menyimpan penilaian")
		}
	}

	return sukses(c, "Penilaian berhasil disimpan", penilaian)
}

func (h *PenilaianHandler) Daftar(c *fiber.Ctx) error {
	bulan, tahun, err := parsePeriode(c)
	if err != nil {
		return gagal(c, fiber.StatusBadRequest, err.Error())
	}

	list, err := h.svc.Daftar(bulan, tahun)
	if err != nil {
		if errors.Is(err, service.ErrPeriodeTidakValid) {
			return gagal(c, fiber.StatusBadRequest, err.Error())
		}
		return gagal(c, fiber.StatusInternalServerError, "Gagal mengambil penilaian")
	}

	return sukses(c, "Daftar penilaian", list)
}

func (h *PenilaianHandler) Peringkat(c *fiber.Ctx) error {
	bulan, tahun, err := parsePeriode(c)
	if err != nil {
		return gagal(c, fiber.StatusBadRequest, err.Error())
	}

	list, err := h.svc.Peringkat(bulan, tahun)
	if err != nil {
		if errors.Is(err, service.ErrPeriodeTidakValid) {
			return gagal(c, fiber.StatusBadRequest, err.Error())
		}
		return gagal(c, fiber.StatusInternalServerError, "Gagal mengambil peringkat")
	}

	return sukses(c, "Peringkat penilaian final", list)
}

func (h *PenilaianHandler) HapusDraft(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	if err := h.svc.HapusDraft(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrPenilaianTidakDitemukan):
			return gagal(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPenilaianBukanDraft):
			return gagal(c, fiber.StatusConflict, err.Error())
		default:
			return gagal(c, fiber.StatusInternalServerError, "Gagal menghapus penilaian")
		}
	}

	return sukses(c, "Penilaian berhasil dihapus", nil)
}

// HapusSemuaFinal mereset seluruh penilaian Final satu periode ke Draft
// (bukan hard delete, angka tetap tersimpan).
func (h *PenilaianHandler) HapusSemuaFinal(c *fiber.Ctx) error {
	bulan, tahun, err := parsePeriode(c)
	if err != nil {
		return gagal(c, fiber.StatusBadRequest, err.Error())
	}

	jumlah, err := h.svc.HapusSemuaFinal(bulan, tahun)
	if err != nil {
		if errors.Is(err, service.ErrPeriodeTidakValid) {
			return gagal(c, fiber.StatusBadRequest, err.Error())
		}
		return gagal(c, fiber.StatusInternalServerError, "Gagal mereset penilaian final")
	}

	return sukses(c, "Penilaian final periode direset ke Draft", fiber.Map{"jumlah": jumlah})
}

// ResetKeDraft hanya untuk superadmin (dijaga di route).
func (h *PenilaianHandler) ResetKeDraft(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	penilaian, err := h.svc.ResetKeDraft(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPenilaianTidakDitemukan) {
			return gagal(c, fiber.StatusNotFound, err.Error())
		}
		return gagal(c, fiber.StatusInternalServerError, "Gagal mereset penilaian")
	}

	return sukses(c, "Penilaian direset ke Draft", penilaian)
}
