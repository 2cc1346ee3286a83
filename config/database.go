package config

import (
	"fmt"
	"simagang-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	// Format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := GetEnv("DATABASE_DSN", "root:@tcp(127.0.0.1:3306)/simagang_db?charset=utf8mb4&parseTime=True&loc=Local")

	// TranslateError wajib aktif: pelanggaran unique index harus muncul sebagai
	// gorm.ErrDuplicatedKey (dipakai untuk mencegah double check-in)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("Gagal koneksi ke database!")
	}

	fmt.Println("Koneksi Database Berhasil!")

	// Auto Migration: Membuat tabel otomatis berdasarkan struct di folder model
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.Absensi{})
	db.AutoMigrate(&model.QRToken{})
	db.AutoMigrate(&model.QRTokenScan{})
	db.AutoMigrate(&model.Penilaian{})
	db.AutoMigrate(&model.HariLibur{})
	db.AutoMigrate(&model.Pengaturan{})

	DB = db
}
