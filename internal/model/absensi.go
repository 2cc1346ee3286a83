package model

import "gorm.io/gorm"

const (
	StatusHadir     = "Hadir"
	StatusTelat     = "Telat"
	StatusIzin      = "Izin"
	StatusSakit     = "Sakit"
	StatusAlpha     = "Alpha"
	StatusHariLibur = "HariLibur"
)

const (
	ModalitasQR   = "qr"
	ModalitasFoto = "photo"
)

// Absensi adalah satu record kehadiran per (user, tanggal).
// Unique index gabungan menjamin maksimal satu record per hari, termasuk saat
// dua request check-in masuk bersamaan (double-tap / retry jaringan).
type Absensi struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"uniqueIndex:idx_absensi_user_tanggal;not null"`
	Tanggal string `json:"tanggal" gorm:"uniqueIndex:idx_absensi_user_tanggal;size:10;not null"` // Format YYYY-MM-DD

	JamMasuk  string `json:"jam_masuk"`  // Format HH:MM, kosong jika belum check-in
	JamPulang string `json:"jam_pulang"` // Format HH:MM, kosong jika belum check-out
	Status    string `json:"status"`     // Hadir/Telat/Izin/Sakit/Alpha/HariLibur

	Modalitas string `json:"modalitas"` // qr/photo
	FotoBukti string `json:"foto_bukti"`
	TokenID   *uint  `json:"token_id"` // Hanya terisi untuk modalitas qr

	// Batas telat yang berlaku SAAT check-in. Status di record ini final,
	// tidak boleh dihitung ulang memakai batas yang berubah belakangan.
	BatasTelat string `json:"batas_telat"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Alamat    string   `json:"alamat"`
	Akurasi   *float64 `json:"akurasi"`

	Bulan string `json:"bulan"` // "01".."12"
	Tahun string `json:"tahun"` // "2025"
}
