package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"simagang-backend/internal/model"
	"simagang-backend/internal/repository"
	"simagang-backend/pkg/harikerja"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPenilaianTidakDitemukan   = errors.New("data penilaian tidak ditemukan")
	ErrPenilaianSudahFinal       = errors.New("penilaian sudah final, reset dulu sebelum mengubah")
	ErrPenilaianBukanDraft       = errors.New("hanya penilaian berstatus Draft yang bisa dihapus")
	ErrNilaiDiLuarRentang        = errors.New("nilai di luar rentang yang diizinkan")
	ErrPeriodeTidakValid         = errors.New("periode tidak valid")
	ErrPenilaianSedangDisimpan   = errors.New("penilaian periode ini baru saja disimpan request lain, muat ulang lalu coba lagi")
	ErrStatusPenilaianTidakValid = errors.New("status penilaian harus Draft atau Final")
)

// PoinStatus memetakan status kehadiran ke bobot poinnya. Status dengan poin
// di atas nol dihitung sebagai hari hadir.
var PoinStatus = map[string]float64{
	model.StatusHadir: 1.0,
	model.StatusTelat: 0.75,
	model.StatusIzin:  0.5,
	model.StatusSakit: 0.5,
	model.StatusAlpha: 0.0,
}

// PenilaianMailer mengirim notifikasi saat penilaian difinalkan; pkg/mailer
// memenuhi kontrak ini. Boleh nil (fitur email mati).
type PenilaianMailer interface {
	KirimHasilPenilaian(tujuan, nama string, bulan, tahun int, hasil float64) error
}

type PenilaianService struct {
	penilaianRepo repository.PenilaianRepository
	absensiRepo   repository.AbsensiRepository
	hariLiburRepo repository.HariLiburRepository
	userRepo      repository.UserRepository
	mailer        PenilaianMailer
	logger        *logrus.Logger
}

func NewPenilaianService(
	penilaianRepo repository.PenilaianRepository,
	absensiRepo repository.AbsensiRepository,
	hariLiburRepo repository.HariLiburRepository,
	userRepo repository.UserRepository,
	mailer PenilaianMailer,
) *PenilaianService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &PenilaianService{
		penilaianRepo: penilaianRepo,
		absensiRepo:   absensiRepo,
		hariLiburRepo: hariLiburRepo,
		userRepo:      userRepo,
		mailer:        mailer,
		logger:        logger,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// PerhitunganPenilaian adalah hasil kalkulasi komponen absen; tidak pernah
// dipersist, hanya untuk ditampilkan ke evaluator.
type PerhitunganPenilaian struct {
	UserID         uint    `json:"user_id"`
	Bulan          int     `json:"bulan"`
	Tahun          int     `json:"tahun"`
	TotalHariKerja int     `json:"total_hari_kerja"`
	JumlahHadir    int     `json:"jumlah_hadir"`
	TotalPoin      float64 `json:"total_poin"`
	RataRataPoin   float64 `json:"rata_rata_poin"`
	Absen          float64 `json:"absen"`
}

// Hitung menghitung komponen absen untuk satu user dan periode:
// absen = round(totalPoin / totalHariKerja * 35, 2), dibatasi [0, 35].
func (s *PenilaianService) Hitung(userID uint, bulan, tahun int) (*PerhitunganPenilaian, error) {
	if bulan < 1 || bulan > 12 {
		return nil, fmt.Errorf("%w: bulan %d", ErrPeriodeTidakValid, bulan)
	}

	liburs, err := s.hariLiburRepo.GetByPeriode(bulan, tahun)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil hari libur: %w", err)
	}
	liburSet := make(map[string]bool, len(liburs))
	for _, l := range liburs {
		liburSet[l.Tanggal] = true
	}

	hariKerja := harikerja.HariKerja(time.Month(bulan), tahun, liburSet)

	records, err := s.absensiRepo.GetByUserAndBulan(userID, fmt.Sprintf("%02d", bulan), strconv.Itoa(tahun))
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil absensi: %w", err)
	}

	jumlahHadir := 0
	totalPoin := 0.0
	for _, rec := range records {
		poin, ok := PoinStatus[rec.Status]
		if !ok {
			// HariLibur dan status tak dikenal tidak masuk hitungan
			continue
		}
		if poin > 0 {
			jumlahHadir++
		}
		totalPoin += poin
	}

	absen := 0.0
	if len(hariKerja) > 0 {
		absen = clamp(round2(totalPoin/float64(len(hariKerja))*35), 0, 35)
	}

	pembagi := jumlahHadir
	if pembagi < 1 {
		pembagi = 1
	}

	return &PerhitunganPenilaian{
		UserID:         userID,
		Bulan:          bulan,
		Tahun:          tahun,
		TotalHariKerja: len(hariKerja),
		JumlahHadir:    jumlahHadir,
		TotalPoin:      totalPoin,
		RataRataPoin:   round2(totalPoin / float64(pembagi)),
		Absen:          absen,
	}, nil
}

type SimpanPenilaianRequest struct {
	UserID    uint    `json:"user_id"`
	Bulan     int     `json:"bulan"`
	Tahun     int     `json:"tahun"`
	Absen     float64 `json:"absen"`
	Kuantitas float64 `json:"kuantitas"`
	Kualitas  float64 `json:"kualitas"`
	Laporan   bool    `json:"laporan"`
	Status    string  `json:"status"`
}

// Simpan meng-upsert penilaian satu (user, bulan, tahun). Menimpa row yang
// sudah Final ditolak: finalisasi hanya bisa dibatalkan lewat ResetKeDraft.
func (s *PenilaianService) Simpan(req SimpanPenilaianRequest) (*model.Penilaian, error) {
	if req.Bulan < 1 || req.Bulan > 12 {
		return nil, fmt.Errorf("%w: bulan %d", ErrPeriodeTidakValid, req.Bulan)
	}
	if req.Absen < 0 || req.Absen > 35 {
		return nil, fmt.Errorf("%w: absen %.2f (harus 0-35)", ErrNilaiDiLuarRentang, req.Absen)
	}
	if req.Kuantitas < 0 || req.Kuantitas > 30 {
		return nil, fmt.Errorf("%w: kuantitas %.2f (harus 0-30)", ErrNilaiDiLuarRentang, req.Kuantitas)
	}
	if req.Kualitas < 0 || req.Kualitas > 30 {
		return nil, fmt.Errorf("%w: kualitas %.2f (harus 0-30)", ErrNilaiDiLuarRentang, req.Kualitas)
	}
	if req.Status != model.PenilaianDraft && req.Status != model.PenilaianFinal {
		return nil, ErrStatusPenilaianTidakValid
	}

	poinLaporan := 0.0
	if req.Laporan {
		poinLaporan = 5
	}
	hasil := clamp(round2(req.Absen+req.Kuantitas+req.Kualitas+poinLaporan), 0, 100)

	existing, err := s.penilaianRepo.GetByUserPeriode(req.UserID, req.Bulan, req.Tahun)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("gagal mengambil penilaian: %w", err)
	}

	var penilaian *model.Penilaian
	if err == nil {
		if existing.Status == model.PenilaianFinal {
			return nil, ErrPenilaianSudahFinal
		}
		existing.Absen = req.Absen
		existing.Kuantitas = req.Kuantitas
		existing.Kualitas = req.Kualitas
		existing.Laporan = req.Laporan
		existing.Hasil = hasil
		existing.Status = req.Status
		if err := s.penilaianRepo.Update(existing); err != nil {
			return nil, fmt.Errorf("gagal memperbarui penilaian: %w", err)
		}
		penilaian = existing
	} else {
		penilaian = &model.Penilaian{
			UserID:    req.UserID,
			Bulan:     req.Bulan,
			Tahun:     req.Tahun,
			Absen:     req.Absen,
			Kuantitas: req.Kuantitas,
			Kualitas:  req.Kualitas,
			Laporan:   req.Laporan,
			Hasil:     hasil,
			Status:    req.Status,
		}
		if err := s.penilaianRepo.Create(penilaian); err != nil {
			// Kalah balapan dengan request simpan paralel untuk (user, periode)
			// yang sama: unique index menolak insert kedua
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrPenilaianSedangDisimpan
			}
			return nil, fmt.Errorf("gagal menyimpan penilaian: %w", err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": req.UserID,
		"periode": fmt.Sprintf("%d-%02d", req.Tahun, req.Bulan),
		"hasil":   hasil,
		"status":  req.Status,
	}).Info("Penilaian disimpan")

	if req.Status == model.PenilaianFinal {
		s.kirimNotifikasiFinal(penilaian)
	}

	return penilaian, nil
}

// kirimNotifikasiFinal best-effort: kegagalan email tidak membatalkan simpan.
func (s *PenilaianService) kirimNotifikasiFinal(p *model.Penilaian) {
	if s.mailer == nil {
		return
	}
	user, err := s.userRepo.GetByID(p.UserID)
	if err != nil || user.Email == "" {
		return
	}
	if err := s.mailer.KirimHasilPenilaian(user.Email, user.Nama, p.Bulan, p.Tahun, p.Hasil); err != nil {
		s.logger.WithError(err).WithField("user_id", p.UserID).Warn("Gagal mengirim email penilaian final")
	}
}

// ResetKeDraft membatalkan finalisasi satu penilaian; seluruh angka dipertahankan.
func (s *PenilaianService) ResetKeDraft(id uint) (*model.Penilaian, error) {
	penilaian, err := s.penilaianRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPenilaianTidakDitemukan
		}
		return nil, fmt.Errorf("gagal mengambil penilaian: %w", err)
	}

	penilaian.Status = model.PenilaianDraft
	if err := s.penilaianRepo.Update(penilaian); err != nil {
		return nil, fmt.Errorf("gagal mereset penilaian: %w", err)
	}

	s.logger.WithField("penilaian_id", id).Info("Penilaian direset ke Draft")
	return penilaian, nil
}

// Daftar mengembalikan semua penilaian satu periode (Draft maupun Final).
func (s *PenilaianService) Daftar(bulan, tahun int) ([]model.Penilaian, error) {
	if bulan < 1 || bulan > 12 {
		return nil, fmt.Errorf("%w: bulan %d", ErrPeriodeTidakValid, bulan)
	}
	return s.penilaianRepo.GetByPeriode(bulan, tahun)
}

// Peringkat mengembalikan penilaian Final satu periode, hasil tertinggi dulu.
func (s *PenilaianService) Peringkat(bulan, tahun int) ([]model.Penilaian, error) {
	if bulan < 1 || bulan > 12 {
		return nil, fmt.Errorf("%w: bulan %d", ErrPeriodeTidakValid, bulan)
	}
	return s.penilaianRepo.GetFinalByPeriode(bulan, tahun)
}

// HapusDraft menghapus satu penilaian, hanya jika masih Draft.
func (s *PenilaianService) HapusDraft(id uint) error {
	penilaian, err := s.penilaianRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPenilaianTidakDitemukan
		}
		return fmt.Errorf("gagal mengambil penilaian: %w", err)
	}

	if penilaian.Status != model.PenilaianDraft {
		return ErrPenilaianBukanDraft
	}

	if err := s.penilaianRepo.Delete(id); err != nil {
		return fmt.Errorf("gagal menghapus penilaian: %w", err)
	}
	return nil
}

// HapusSemuaFinal mereset seluruh penilaian Final satu periode ke Draft.
// Dibatasi ketat ke satu (bulan, tahun) agar periode lain tidak ikut terhapus.
func (s *PenilaianService) HapusSemuaFinal(bulan, tahun int) (int64, error) {
	if bulan < 1 || bulan > 12 {
		return 0, fmt.Errorf("%w: bulan %d", ErrPeriodeTidakValid, bulan)
	}

	jumlah, err := s.penilaianRepo.ResetFinalByPeriode(bulan, tahun)
	if err != nil {
		return 0, fmt.Errorf("gagal mereset penilaian final: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"periode": fmt.Sprintf("%d-%02d", tahun, bulan),
		"jumlah":  jumlah,
	}).Info("Seluruh penilaian final periode direset ke Draft")

	return jumlah, nil
}
