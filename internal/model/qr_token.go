package model

import "gorm.io/gorm"

// QRToken adalah token absensi harian. Maksimal satu token aktif per tanggal;
// invariant dijaga lewat transaksi deactivate-lalu-create di repository.
type QRToken struct {
	gorm.Model
	Tanggal    string `json:"tanggal" gorm:"size:10;index;not null"` // Format YYYY-MM-DD
	Nilai      string `json:"nilai" gorm:"uniqueIndex;size:64;not null"`
	Aktif      bool   `json:"aktif" gorm:"default:true"`
	DibuatOleh uint   `json:"dibuat_oleh"`

	Scans []QRTokenScan `json:"scans" gorm:"foreignKey:QRTokenID"`
}

// QRTokenScan mencatat user yang sudah scan token (semantik himpunan:
// unique index membuat scan ulang oleh user yang sama jadi no-op).
type QRTokenScan struct {
	gorm.Model
	QRTokenID uint `json:"qr_token_id" gorm:"uniqueIndex:idx_scan_token_user;not null"`
	UserID    uint `json:"user_id" gorm:"uniqueIndex:idx_scan_token_user;not null"`
}
