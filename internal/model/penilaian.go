package model

import "gorm.io/gorm"

const (
	PenilaianDraft = "Draft"
	PenilaianFinal = "Final"
)

// Penilaian adalah evaluasi kinerja bulanan: absen (turunan kehadiran, 0-35),
// kuantitas & kualitas (manual, 0-30), laporan (0/5), hasil = totalnya (0-100).
type Penilaian struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_penilaian_user_periode;not null"`
	Bulan  int  `json:"bulan" gorm:"uniqueIndex:idx_penilaian_user_periode;not null"` // 1-12
	Tahun  int  `json:"tahun" gorm:"uniqueIndex:idx_penilaian_user_periode;not null"`

	Absen     float64 `json:"absen"`
	Kuantitas float64 `json:"kuantitas"`
	Kualitas  float64 `json:"kualitas"`
	Laporan   bool    `json:"laporan"`
	Hasil     float64 `json:"hasil"`
	Status    string  `json:"status" gorm:"default:Draft"` // Draft/Final

	User User `json:"user" gorm:"foreignKey:UserID"`
}
