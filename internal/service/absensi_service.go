package service

import (
	"errors"
	"fmt"
	"time"

	"simagang-backend/internal/model"
	"simagang-backend/internal/repository"
	"simagang-backend/pkg/geocode"
	"simagang-backend/pkg/harikerja"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const BatasTelatDefault = "08:00"

var (
	ErrSudahAbsen              = errors.New("sudah melakukan check-in hari ini")
	ErrAbsensiTidakDitemukan   = errors.New("data absensi tidak ditemukan")
	ErrBukanPemilikAbsensi     = errors.New("bukan pemilik data absensi")
	ErrBelumCheckIn            = errors.New("belum melakukan check-in")
	ErrSudahCheckOut           = errors.New("sudah melakukan check-out")
	ErrStatusAbsensiTidakValid = errors.New("status absensi tidak valid")
	ErrFormatJamTidakValid     = errors.New("format jam tidak valid, gunakan HH:MM")
	ErrFormatTanggalTidakValid = errors.New("format tanggal tidak valid, gunakan YYYY-MM-DD")
	ErrFormatWaktuTidakValid   = errors.New("format timestamp tidak valid")
)

// Geocoder adalah kontrak reverse geocoding; implementasinya pkg/geocode.
type Geocoder interface {
	ReverseGeocode(lat, lon float64) (*geocode.Lokasi, error)
}

type AbsensiService struct {
	absensiRepo    repository.AbsensiRepository
	userRepo       repository.UserRepository
	hariLiburRepo  repository.HariLiburRepository
	pengaturanRepo repository.PengaturanRepository
	geocoder       Geocoder
	loc            *time.Location
	logger         *logrus.Logger
	now            func() time.Time
}

func NewAbsensiService(
	absensiRepo repository.AbsensiRepository,
	userRepo repository.UserRepository,
	hariLiburRepo repository.HariLiburRepository,
	pengaturanRepo repository.PengaturanRepository,
	geocoder Geocoder,
	loc *time.Location,
) *AbsensiService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AbsensiService{
		absensiRepo:    absensiRepo,
		userRepo:       userRepo,
		hariLiburRepo:  hariLiburRepo,
		pengaturanRepo: pengaturanRepo,
		geocoder:       geocoder,
		loc:            loc,
		logger:         logger,
		now:            time.Now,
	}
}

type CheckInRequest struct {
	UserID    uint
	Modalitas string // qr/photo
	FotoBukti string
	TokenID   *uint
	Timestamp string // opsional, waktu dari perangkat klien
	Zona      string // opsional, nama timezone klien (contoh: Asia/Jakarta)
	Latitude  *float64
	Longitude *float64
	Akurasi   *float64
}

// resolveWaktu memilih waktu kedatangan: timestamp klien (di zona klien) jika
// dikirim, kalau tidak jam server di zona organisasi.
func (s *AbsensiService) resolveWaktu(timestamp, zona string) (time.Time, error) {
	if timestamp == "" {
		return s.now().In(s.loc), nil
	}

	loc := s.loc
	if zona != "" {
		if l, err := time.LoadLocation(zona); err == nil {
			loc = l
		}
	}

	if t, err := time.Parse(time.RFC3339, timestamp); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", timestamp, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", timestamp, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrFormatWaktuTidakValid, timestamp)
}

// BatasTelat membaca batas telat yang tersimpan; fallback ke default 08:00.
func (s *AbsensiService) BatasTelat() string {
	nilai, err := s.pengaturanRepo.Get(model.PengaturanBatasTelat)
	if err != nil || nilai == "" {
		return BatasTelatDefault
	}
	return nilai
}

func (s *AbsensiService) SetBatasTelat(batas string) (string, error) {
	menit, err := harikerja.ParseJam(batas)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrFormatJamTidakValid, batas)
	}
	normal := harikerja.FormatMenit(menit)
	if err := s.pengaturanRepo.Set(model.PengaturanBatasTelat, normal); err != nil {
		return "", fmt.Errorf("gagal menyimpan batas telat: %w", err)
	}

	s.logger.WithField("batas_telat", normal).Info("Batas telat diperbarui")
	return normal, nil
}

// CheckIn membuat record absensi hari itu. Pencegahan double check-in TIDAK
// dilakukan dengan baca-lalu-tulis: insert langsung, dan pelanggaran unique
// index (user_id, tanggal) diterjemahkan menjadi ErrSudahAbsen.
func (s *AbsensiService) CheckIn(req CheckInRequest) (*model.Absensi, error) {
	waktu, err := s.resolveWaktu(req.Timestamp, req.Zona)
	if err != nil {
		return nil, err
	}

	if req.Modalitas == "" {
		req.Modalitas = model.ModalitasFoto
	}

	tanggal := waktu.Format("2006-01-02")
	jamMasuk := waktu.Format("15:04")

	// Status dihitung dengan batas telat yang berlaku SAAT INI, lalu batas itu
	// ikut disimpan di record. Perubahan batas di kemudian hari tidak boleh
	// mengklasifikasi ulang riwayat.
	batas := s.BatasTelat()
	status := model.StatusHadir
	if telat, _ := harikerja.IsTelat(jamMasuk, batas); telat {
		status = model.StatusTelat
	}

	absensi := model.Absensi{
		UserID:     req.UserID,
		Tanggal:    tanggal,
		JamMasuk:   jamMasuk,
		Status:     status,
		Modalitas:  req.Modalitas,
		FotoBukti:  req.FotoBukti,
		TokenID:    req.TokenID,
		BatasTelat: batas,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Akurasi:    req.Akurasi,
		Bulan:      waktu.Format("01"),
		Tahun:      waktu.Format("2006"),
	}

	// Pengayaan lokasi best-effort: gagal geocoding tidak menggagalkan absensi
	if req.Latitude != nil && req.Longitude != nil && s.geocoder != nil {
		lokasi, err := s.geocoder.ReverseGeocode(*req.Latitude, *req.Longitude)
		if err != nil {
			s.logger.WithError(err).Warn("Reverse geocoding gagal, lanjut tanpa alamat")
		} else {
			absensi.Alamat = lokasi.Alamat
			if absensi.Akurasi == nil && lokasi.Akurasi > 0 {
				absensi.Akurasi = &lokasi.Akurasi
			}
		}
	}

	if err := s.absensiRepo.Create(&absensi); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.WithFields(logrus.Fields{
				"user_id": req.UserID,
				"tanggal": tanggal,
			}).Warn("Check-in ditolak: sudah ada record hari ini")
			return nil, ErrSudahAbsen
		}
		return nil, fmt.Errorf("gagal menyimpan absensi: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   req.UserID,
		"tanggal":   tanggal,
		"jam_masuk": jamMasuk,
		"status":    status,
		"modalitas": req.Modalitas,
	}).Info("Check-in berhasil")

	return &absensi, nil
}

// CheckOut mengisi jam pulang. Hanya pemilik record atau admin yang boleh,
// dan harus sudah check-in lebih dulu (state machine: CheckedIn -> CheckedOut).
func (s *AbsensiService) CheckOut(pemanggilID uint, rolePemanggil string, absensiID uint, timestamp, zona string) (*model.Absensi, error) {
	absensi, err := s.absensiRepo.GetByID(absensiID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAbsensiTidakDitemukan
		}
		return nil, fmt.Errorf("gagal mengambil absensi: %w", err)
	}

	if absensi.UserID != pemanggilID && rolePemanggil != model.RoleAdmin && rolePemanggil != model.RoleSuperadmin {
		return nil, ErrBukanPemilikAbsensi
	}
	if absensi.JamMasuk == "" {
		return nil, ErrBelumCheckIn
	}
	if absensi.JamPulang != "" {
		return nil, ErrSudahCheckOut
	}

	waktu, err := s.resolveWaktu(timestamp, zona)
	if err != nil {
		return nil, err
	}

	absensi.JamPulang = waktu.Format("15:04")
	if err := s.absensiRepo.Update(absensi); err != nil {
		return nil, fmt.Errorf("gagal menyimpan jam pulang: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"absensi_id": absensi.ID,
		"user_id":    absensi.UserID,
		"jam_pulang": absensi.JamPulang,
	}).Info("Check-out berhasil")

	return absensi, nil
}

// statusOverride adalah status yang boleh dipasang admin lewat koreksi manual.
// HariLibur sengaja tidak ada di sini: hanya lewat TetapkanHariLibur.
var statusOverride = map[string]bool{
	model.StatusHadir: true,
	model.StatusTelat: true,
	model.StatusIzin:  true,
	model.StatusSakit: true,
	model.StatusAlpha: true,
}

// Override mengoreksi status (dan opsional jam masuk) satu record oleh admin.
func (s *AbsensiService) Override(absensiID uint, status string, jamMasuk string) (*model.Absensi, error) {
	if !statusOverride[status] {
		return nil, fmt.Errorf("%w: %q", ErrStatusAbsensiTidakValid, status)
	}

	absensi, err := s.absensiRepo.GetByID(absensiID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAbsensiTidakDitemukan
		}
		return nil, fmt.Errorf("gagal mengambil absensi: %w", err)
	}

	if jamMasuk != "" {
		menit, err := harikerja.ParseJam(jamMasuk)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrFormatJamTidakValid, jamMasuk)
		}
		absensi.JamMasuk = harikerja.FormatMenit(menit)
	}

	absensi.Status = status
	if err := s.absensiRepo.Update(absensi); err != nil {
		return nil, fmt.Errorf("gagal menyimpan koreksi absensi: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"absensi_id": absensi.ID,
		"status":     status,
	}).Info("Status absensi dikoreksi admin")

	return absensi, nil
}

type HasilHariLibur struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// TetapkanHariLibur menulis kalender libur untuk satu tanggal dan meng-upsert
// record absensi berstatus HariLibur untuk semua user aktif.
func (s *AbsensiService) TetapkanHariLibur(tanggal string, keterangan string) (*HasilHariLibur, error) {
	waktu, err := time.Parse("2006-01-02", tanggal)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrFormatTanggalTidakValid, tanggal)
	}

	if err := s.hariLiburRepo.Upsert(&model.HariLibur{Tanggal: tanggal, Keterangan: keterangan}); err != nil {
		return nil, fmt.Errorf("gagal menyimpan hari libur: %w", err)
	}

	users, err := s.userRepo.GetAllAktif()
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil daftar user: %w", err)
	}

	hasil := HasilHariLibur{}
	for _, u := range users {
		if u.Role != model.RoleUser {
			continue
		}

		existing, err := s.absensiRepo.GetByUserAndTanggal(u.ID, tanggal)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("gagal mengecek absensi user %d: %w", u.ID, err)
			}
			absensi := model.Absensi{
				UserID:  u.ID,
				Tanggal: tanggal,
				Status:  model.StatusHariLibur,
				Bulan:   waktu.Format("01"),
				Tahun:   waktu.Format("2006"),
			}
			if err := s.absensiRepo.Create(&absensi); err != nil {
				return nil, fmt.Errorf("gagal membuat record libur user %d: %w", u.ID, err)
			}
			hasil.Created++
			continue
		}

		existing.Status = model.StatusHariLibur
		if err := s.absensiRepo.Update(existing); err != nil {
			return nil, fmt.Errorf("gagal memperbarui record libur user %d: %w", u.ID, err)
		}
		hasil.Updated++
	}

	hasil.Total = hasil.Created + hasil.Updated
	s.logger.WithFields(logrus.Fields{
		"tanggal": tanggal,
		"created": hasil.Created,
		"updated": hasil.Updated,
	}).Info("Hari libur ditetapkan")

	return &hasil, nil
}

// BatalkanHariLibur menghapus kalender libur beserta record absensi HariLibur
// di tanggal itu. Record status lain tidak tersentuh.
func (s *AbsensiService) BatalkanHariLibur(tanggal string) (int64, error) {
	if _, err := time.Parse("2006-01-02", tanggal); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrFormatTanggalTidakValid, tanggal)
	}

	if _, err := s.hariLiburRepo.DeleteByTanggal(tanggal); err != nil {
		return 0, fmt.Errorf("gagal menghapus hari libur: %w", err)
	}

	deleted, err := s.absensiRepo.DeleteHariLiburByTanggal(tanggal)
	if err != nil {
		return 0, fmt.Errorf("gagal menghapus record libur: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"tanggal": tanggal,
		"deleted": deleted,
	}).Info("Hari libur dibatalkan")

	return deleted, nil
}

// Riwayat mengembalikan riwayat absensi milik user, opsional difilter periode.
func (s *AbsensiService) Riwayat(userID uint, bulan, tahun string) ([]model.Absensi, error) {
	if bulan != "" && tahun != "" {
		return s.absensiRepo.GetByUserAndBulan(userID, bulan, tahun)
	}
	return s.absensiRepo.GetHistory(userID)
}

// StatusHariIni mengembalikan record hari ini (nil jika belum absen) plus
// batas telat yang sedang berlaku.
func (s *AbsensiService) StatusHariIni(userID uint) (*model.Absensi, string, error) {
	tanggal := s.now().In(s.loc).Format("2006-01-02")
	absensi, err := s.absensiRepo.GetByUserAndTanggal(userID, tanggal)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.BatasTelat(), nil
		}
		return nil, "", fmt.Errorf("gagal mengambil absensi hari ini: %w", err)
	}
	return absensi, s.BatasTelat(), nil
}
