package repository

import (
	"simagang-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PengaturanRepository interface {
	Get(nama string) (string, error)
	Set(nama string, nilai string) error
}

type pengaturanRepository struct {
	db *gorm.DB
}

func NewPengaturanRepository(db *gorm.DB) PengaturanRepository {
	return &pengaturanRepository{db}
}

func (r *pengaturanRepository) Get(nama string) (string, error) {
	var pengaturan model.Pengaturan
	err := r.db.Where("nama = ?", nama).First(&pengaturan).Error
	if err != nil {
		return "", err
	}
	return pengaturan.Nilai, nil
}

func (r *pengaturanRepository) Set(nama string, nilai string) error {
	pengaturan := model.Pengaturan{Nama: nama, Nilai: nilai}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nama"}},
		DoUpdates: clause.AssignmentColumns([]string{"nilai", "updated_at"}),
	}).Create(&pengaturan).Error
}
