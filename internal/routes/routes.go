package routes

import (
	"time"

	"simagang-backend/config"
	"simagang-backend/internal/repository"
	"simagang-backend/internal/service"
	"simagang-backend/pkg/geocode"
	"simagang-backend/pkg/mailer"

	"gorm.io/gorm"
)

// appLocation menentukan hari kalender lokal organisasi ("hari ini" untuk
// token QR dan absensi dihitung di zona ini, bukan UTC).
func appLocation() *time.Location {
	loc, err := time.LoadLocation(config.GetEnv("APP_TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		loc = time.FixedZone("WIB", 7*3600)
	}
	return loc
}

func newAbsensiService(db *gorm.DB) *service.AbsensiService {
	return service.NewAbsensiService(
		repository.NewAbsensiRepository(db),
		repository.NewUserRepository(db),
		repository.NewHariLiburRepository(db),
		repository.NewPengaturanRepository(db),
		geocode.NewClient(config.GetEnv("NOMINATIM_URL", "")),
		appLocation(),
	)
}

// newPenilaianMailer mengembalikan interface nil ketika SMTP tidak dikonfigurasi,
// supaya pengecekan nil di service benar-benar jalan.
func newPenilaianMailer() service.PenilaianMailer {
	m := mailer.New(
		config.GetEnv("SMTP_HOST", ""),
		config.GetEnvAsInt("SMTP_PORT", 587),
		config.GetEnv("SMTP_USER", ""),
		config.GetEnv("SMTP_PASS", ""),
		config.GetEnv("SMTP_FROM", "no-reply@simagang.local"),
	)
	if m == nil {
		return nil
	}
	return m
}
