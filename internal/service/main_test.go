package service

import (
	"io"
	"testing"
	"time"

	"simagang-backend/internal/model"
	"simagang-backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB membuat database SQLite in-memory terisolasi per test.
// TranslateError wajib aktif supaya pelanggaran unique index diterjemahkan ke
// gorm.ErrDuplicatedKey, sama seperti driver MySQL di produksi.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Absensi{},
		&model.QRToken{},
		&model.QRTokenScan{},
		&model.Penilaian{},
		&model.HariLibur{},
		&model.Pengaturan{},
	))

	return db
}

func newTestAbsensiService(t *testing.T, db *gorm.DB) *AbsensiService {
	t.Helper()

	svc := NewAbsensiService(
		repository.NewAbsensiRepository(db),
		repository.NewUserRepository(db),
		repository.NewHariLiburRepository(db),
		repository.NewPengaturanRepository(db),
		nil, // geocoder dimatikan di test
		time.UTC,
	)
	svc.logger.SetOutput(io.Discard)
	return svc
}

func newTestQRTokenService(t *testing.T, db *gorm.DB, absensiSvc *AbsensiService) *QRTokenService {
	t.Helper()

	svc := NewQRTokenService(repository.NewQRTokenRepository(db), absensiSvc, time.UTC)
	svc.logger.SetOutput(io.Discard)
	return svc
}

func newTestPenilaianService(t *testing.T, db *gorm.DB) *PenilaianService {
	t.Helper()

	svc := NewPenilaianService(
		repository.NewPenilaianRepository(db),
		repository.NewAbsensiRepository(db),
		repository.NewHariLiburRepository(db),
		repository.NewUserRepository(db),
		nil, // email dimatikan di test
	)
	svc.logger.SetOutput(io.Discard)
	return svc
}

func buatUser(t *testing.T, db *gorm.DB, nama, nip, role string) model.User {
	t.Helper()

	user := model.User{
		Nama:     nama,
		NIP:      nip,
		Email:    nip + "@simagang.local",
		Password: "rahasia",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// jamTetap mengunci jam service supaya hasil test tidak bergantung jam dinding.
func jamTetap(waktu time.Time) func() time.Time {
	return func() time.Time { return waktu }
}
