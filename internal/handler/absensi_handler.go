package handler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"simagang-backend/internal/repository"
	"simagang-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AbsensiHandler struct {
	svc           *service.AbsensiService
	hariLiburRepo repository.HariLiburRepository
}

func NewAbsensiHandler(svc *service.AbsensiService, hariLiburRepo repository.HariLiburRepository) *AbsensiHandler {
	return &AbsensiHandler{svc: svc, hariLiburRepo: hariLiburRepo}
}

type checkInRequest struct {
	Foto      string   `json:"foto"`
	Timestamp string   `json:"timestamp"`
	Timezone  string   `json:"timezone"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Akurasi   *float64 `json:"akurasi"`
}

func parseFloatOpsional(nilai string) *float64 {
	if nilai == "" {
		return nil
	}
	v, err := strconv.ParseFloat(nilai, 64)
	if err != nil {
		return nil
	}
	return &v
}

// CheckIn menerima absensi berbasis foto: multipart (file "foto") atau JSON
// dengan foto base64 inline.
func (h *AbsensiHandler) CheckIn(c *fiber.Ctx) error {
	// 1. Ambil Data User dari Middleware
	userID := uint(c.Locals("user_id").(float64))

	var req checkInRequest

	// 2. Handle File Upload (multipart) atau body JSON
	if file, err := c.FormFile("foto"); err == nil {
		uploadDir := "./uploads/absensi"
		if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
			os.MkdirAll(uploadDir, 0755)
		}
		filename := fmt.Sprintf("absen_%s%s", uuid.NewString(), filepath.Ext(file.Filename))
		pathFile := fmt.Sprintf("uploads/absensi/%s", filename)
		if err := c.SaveFile(file, pathFile); err != nil {
			return gagal(c, fiber.StatusInternalServerError, "Gagal menyimpan foto bukti")
		}
		req.Foto = pathFile
		req.Timestamp = c.FormValue("timestamp")
		req.Timezone = c.FormValue("timezone")
		req.Latitude = parseFloatOpsional(c.FormValue("latitude"))
		req.Longitude = parseFloatOpsional(c.FormValue("longitude"))
		req.Akurasi = parseFloatOpsional(c.FormValue("akurasi"))
	} else if err := c.BodyParser(&req); err != nil {
		return gagal(c, fiber.StatusBadRequest, "Data tidak valid")
	}

	// 3. Proses Check-in
	absensi, err := h.svc.CheckIn(service.CheckInRequest{
		UserID:    userID,
		Modalitas: "",
		FotoBukti: req.Foto,
		Timestamp: req.Timestamp,
		Zona:      req.Timezone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Akurasi:   req.Akurasi,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSudahAbsen):
			return gagal(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrFormatWaktuTidakValid):
			return gagal(c, fiber.StatusBadRequest, err.Error())
		default:
			return gagal(c, fiber.StatusInternalServerError, "Gagal menyimpan absensi")
		}
	}

	return sukses(c, "Check-in berhasil", absensi)
}

func (h *AbsensiHandler) CheckOut(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	role, _ := c.Locals("role").(string)
	id, _ := strconv.Atoi(c.Params("id"))

	var req struct {
		Timestamp string `json:"timestamp"`
		Timezone  string `json:"timezone"`
	}
	c.BodyParser(&req) // body opsional, default jam server

	absensi, err := h.svc.CheckOut(userID, role, uint(id), req.Timestamp, req.Timezone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAbsensiTidakDitemukan):
			return gagal(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrBukanPemilikAbsensi):
			return gagal(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrBelumCheckIn), errors.Is(err, service.ErrSudahCheckOut):
			return gagal(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrFormatWaktuTidakValid):
			return gagal(c, fiber.StatusBadRequest, err.Error())
		default:
			return gagal(c, fiber.StatusInternalServerError, "Gagal menyimpan check-out")
		}
	}

	return sukses(c, "Check-out berhasil", absensi)
}

func (h *AbsensiHandler) Riwayat(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))
	bulan := c.Query("bulan")
	tahun := c.Query("tahun")

	history, err := h.svc.Riwayat(userID, bulan, tahun)
	if err != nil {
		return gagal(c, fiber.StatusInternalServerError, "Gagal mengambil data riwayat")
	}

	return sukses(c, "Berhasil mengambil riwayat", history)
}

func (h *AbsensiHandler) StatusHariIni(c *fiber.Ctx) error {
	userID := uint(c.Locals("user_id").(float64))

	absensi, batas, err := h.svc.StatusHariIni(userID)
	if err != nil {
		return gagal(c, fiber.StatusInternalServerError, "Gagal mengambil status hari ini")
	}

	return sukses(c, "Status hari ini", fiber.Map{
		"absensi":     absensi, // nil jika belum absen
		"batas_telat": batas,
	})
}

// Override: koreksi status/jam masuk oleh admin.
func (h *AbsensiHandler) Override(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var req struct {
		Status   string `json:"status"`
		JamMasuk string `json:"jam_masuk"`
	}
	if err := c.BodyParser(&req); err != nil {
		return gagal(c, fiber.StatusBadRequest, "Data tidak valid")
	}

	absensi, err := h.svc.Override(uint(id), req.Status, req.JamMasuk)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAbsensiTidakDitemukan):
			return gagal(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrStatusAbsensiTidakValid), errors.Is(err, service.ErrFormatJamTidakValid):
			return gagal(c, fiber.StatusBadRequest, err.Error())
		default:
			return gagal(c, fiber.StatusInternalServerError, "Gagal menyimpan koreksi")
		}
	}

	return sukses(c, "Absensi berhasil dikoreksi", absensi)
}

func (h *AbsensiHandler) TetapkanHariLibur(c *fiber.Ctx) error {
	var req struct {
		Tanggal    string `json:"tanggal"`
		Keterangan string `json:"keterangan"`
	}
	if err := c.BodyParser(&req); err != nil {
		return gagal(c, fiber.StatusBadRequest, "Data tidak valid")
	}

	hasil, err := h.svc.TetapkanHariLibur(req.Tanggal, req.Keterangan)
	if err != nil {
		if errors.Is(err, service.ErrFormatTanggalTidakValid) {
			return gagal(c, fiber.StatusBadRequest, err.Error())
		}
		return gagal(c, fiber.StatusInternalServerError, "Gagal menetapkan hari libur")
	}

	return sukses(c, "Hari libur berhasil ditetapkan", hasil)
}

func (h *AbsensiHandler) BatalkanHariLibur(c *fiber.Ctx) error {
	tanggal := c.Params("tanggal")

	deleted, err := h.svc.BatalkanHariLibur(tanggal)
	if err != nil {
		if errors.Is(err, service.ErrFormatTanggalTidakValid) {
			return gagal(c, fiber.StatusBadRequest, err.Error())
		}
		return gagal(c, fiber.StatusInternalServerError, "Gagal membatalkan hari libur")
	}

	return sukses(c, "Hari libur berhasil dibatalkan", fiber.Map{"deleted": deleted})
}

func (h *AbsensiHandler) DaftarHariLibur(c *fiber.Ctx) error {
	liburs, err := h.hariLiburRepo.GetAll()
	if err != nil {
		return gagal(c, fiber.StatusInternalServerError, "Gagal mengambil data hari libur")
	}
	return sukses(c, "Daftar hari libur", liburs)
}
