package database

import (
	"log"

	"simagang-backend/internal/model"
	"simagang-backend/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedAll(db *gorm.DB) {
	// 1. Seed Pengaturan Default
	pengaturan := model.Pengaturan{
		Nama:  model.PengaturanBatasTelat,
		Nilai: service.BatasTelatDefault,
	}
	db.FirstOrCreate(&pengaturan, model.Pengaturan{Nama: pengaturan.Nama})

	// 2. Seed Akun Superadmin & Admin
	seedUser(db, model.User{
		Nama:  "Super Admin",
		NIP:   "000000",
		Email: "superadmin@simagang.local",
		Role:  model.RoleSuperadmin,
	}, "superadmin123")

	seedUser(db, model.User{
		Nama:  "Admin Magang",
		NIP:   "000001",
		Email: "admin@simagang.local",
		Role:  model.RoleAdmin,
	}, "admin123")

	// 3. Seed Contoh Peserta Magang
	seedUser(db, model.User{
		Nama:  "Budi Santoso",
		NIP:   "100001",
		Email: "budi@simagang.local",
		Role:  model.RoleUser,
	}, "magang123")

	seedUser(db, model.User{
		Nama:  "Siti Rahma",
		NIP:   "100002",
		Email: "siti@simagang.local",
		Role:  model.RoleUser,
	}, "magang123")
}

func seedUser(db *gorm.DB, user model.User, password string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Gagal hashing password untuk %s: %v", user.NIP, err)
		return
	}
	user.Password = string(hashed)
	user.IsActive = true
	db.FirstOrCreate(&user, model.User{NIP: user.NIP})
}
