package model

import "gorm.io/gorm"

// HariLibur adalah kalender libur eksplisit per tanggal. Kalkulator hari kerja
// membaca tabel ini, bukan memindai record absensi.
type HariLibur struct {
	gorm.Model
	Tanggal    string `json:"tanggal" gorm:"uniqueIndex;size:10;not null"` // Format YYYY-MM-DD
	Keterangan string `json:"keterangan"`
}
