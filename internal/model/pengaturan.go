package model

import "gorm.io/gorm"

const PengaturanBatasTelat = "batas_telat"

// Pengaturan adalah key-value setting aplikasi yang dipersist
// (batas telat tidak boleh hilang saat proses restart).
type Pengaturan struct {
	gorm.Model
	Nama  string `json:"nama" gorm:"uniqueIndex;size:64;not null"`
	Nilai string `json:"nilai"`
}
