package service

import (
	"errors"
	"fmt"
	"time"

	"simagang-backend/internal/model"
	"simagang-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTokenTidakValid     = errors.New("token tidak valid")
	ErrTokenKadaluarsa     = errors.New("token sudah kadaluarsa")
	ErrTokenTidakDitemukan = errors.New("belum ada token untuk hari ini")
)

type QRTokenService struct {
	qrRepo      repository.QRTokenRepository
	absensiSvc  *AbsensiService
	loc         *time.Location
	logger      *logrus.Logger
	now         func() time.Time
}

func NewQRTokenService(qrRepo repository.QRTokenRepository, absensiSvc *AbsensiService, loc *time.Location) *QRTokenService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &QRTokenService{
		qrRepo:     qrRepo,
		absensiSvc: absensiSvc,
		loc:        loc,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *QRTokenService) tanggalHariIni() string {
	// Hari kalender lokal organisasi, bukan UTC
	return s.now().In(s.loc).Format("2006-01-02")
}

// Generate membuat token baru untuk hari ini. Token aktif lama di tanggal yang
// sama dinonaktifkan dalam transaksi yang sama (CreateExclusive), jadi setelah
// pemanggilan ini selalu tepat satu token aktif per tanggal.
func (s *QRTokenService) Generate(adminID uint) (*model.QRToken, error) {
	token := model.QRToken{
		Tanggal:    s.tanggalHariIni(),
		Nilai:      uuid.NewString(),
		Aktif:      true,
		DibuatOleh: adminID,
	}

	if err := s.qrRepo.CreateExclusive(&token); err != nil {
		return nil, fmt.Errorf("gagal membuat token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"token_id": token.ID,
		"tanggal":  token.Tanggal,
		"admin_id": adminID,
	}).Info("Token QR baru dibuat")

	return &token, nil
}

// Validate memastikan token ada, masih aktif, dan bertanggal hari ini.
// Tidak ada mutasi apa pun di jalur gagal.
func (s *QRTokenService) Validate(nilai string) (*model.QRToken, error) {
	token, err := s.qrRepo.GetByNilai(nilai)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenTidakValid
		}
		return nil, fmt.Errorf("gagal mengambil token: %w", err)
	}

	if !token.Aktif {
		return nil, ErrTokenTidakValid
	}
	if token.Tanggal != s.tanggalHariIni() {
		return nil, ErrTokenKadaluarsa
	}

	return token, nil
}

// Scan memvalidasi token lalu mendelegasikan check-in ke AbsensiService.
// Penambahan ke himpunan scan idempoten, tetapi check-in tetap menolak user
// yang sudah absen hari ini (lewat jalur mana pun).
func (s *QRTokenService) Scan(nilai string, userID uint) (*model.Absensi, error) {
	token, err := s.Validate(nilai)
	if err != nil {
		return nil, err
	}

	absensi, err := s.absensiSvc.CheckIn(CheckInRequest{
		UserID:    userID,
		Modalitas: model.ModalitasQR,
		TokenID:   &token.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.qrRepo.AddScan(token.ID, userID); err != nil {
		// Check-in sudah tersimpan; kegagalan mencatat scan cukup dilog
		s.logger.WithError(err).WithFields(logrus.Fields{
			"token_id": token.ID,
			"user_id":  userID,
		}).Error("Gagal mencatat scan token")
	}

	return absensi, nil
}

// TokenHariIni mengembalikan token aktif hari ini untuk ditampilkan admin.
func (s *QRTokenService) TokenHariIni() (*model.QRToken, error) {
	token, err := s.qrRepo.GetAktifByTanggal(s.tanggalHariIni())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenTidakDitemukan
		}
		return nil, fmt.Errorf("gagal mengambil token hari ini: %w", err)
	}
	return token, nil
}

type RingkasanToken struct {
	Tanggal    string `json:"tanggal"`
	JumlahScan int    `json:"jumlah_scan"`
	Aktif      bool   `json:"aktif"`
}

// Riwayat merangkum token beberapa hari terakhir, terbaru dulu.
func (s *QRTokenService) Riwayat(hari int) ([]RingkasanToken, error) {
	if hari <= 0 {
		hari = 7
	}

	batas := s.now().In(s.loc).AddDate(0, 0, -(hari - 1)).Format("2006-01-02")
	tokens, err := s.qrRepo.GetSejak(batas)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil riwayat token: %w", err)
	}

	ringkasan := make([]RingkasanToken, 0, len(tokens))
	for _, t := range tokens {
		ringkasan = append(ringkasan, RingkasanToken{
			Tanggal:    t.Tanggal,
			JumlahScan: len(t.Scans),
			Aktif:      t.Aktif,
		})
	}
	return ringkasan, nil
}
