package repository

import (
	"simagang-backend/internal/model"

	"gorm.io/gorm"
)

type AbsensiRepository interface {
	Create(absensi *model.Absensi) error
	GetByID(id uint) (*model.Absensi, error)
	GetByUserAndTanggal(userID uint, tanggal string) (*model.Absensi, error)
	Update(absensi *model.Absensi) error
	GetHistory(userID uint) ([]model.Absensi, error)
	GetByUserAndBulan(userID uint, bulan string, tahun string) ([]model.Absensi, error)
	DeleteHariLiburByTanggal(tanggal string) (int64, error)
}

type absensiRepository struct {
	db *gorm.DB
}

func NewAbsensiRepository(db *gorm.DB) AbsensiRepository {
	return &absensiRepository{db}
}

// Create mengandalkan unique index (user_id, tanggal): insert kedua untuk hari
// yang sama gagal dengan gorm.ErrDuplicatedKey, bukan lewat cek-baca-tulis.
func (r *absensiRepository) Create(absensi *model.Absensi) error {
	return r.db.Create(absensi).Error
}

func (r *absensiRepository) GetByID(id uint) (*model.Absensi, error) {
	var absensi model.Absensi
	err := r.db.First(&absensi, id).Error
	if err != nil {
		return nil, err
	}
	return &absensi, nil
}

func (r *absensiRepository) GetByUserAndTanggal(userID uint, tanggal string) (*model.Absensi, error) {
	var absensi model.Absensi
	err := r.db.Where("user_id = ? AND tanggal = ?", userID, tanggal).First(&absensi).Error
	if err != nil {
		return nil, err
	}
	return &absensi, nil
}

func (r *absensiRepository) Update(absensi *model.Absensi) error {
	return r.db.Save(absensi).Error
}

func (r *absensiRepository) GetHistory(userID uint) ([]model.Absensi, error) {
	var history []model.Absensi
	err := r.db.Where("user_id = ?", userID).Order("tanggal desc").Find(&history).Error
	return history, err
}

func (r *absensiRepository) GetByUserAndBulan(userID uint, bulan string, tahun string) ([]model.Absensi, error) {
	var list []model.Absensi
	err := r.db.Where("user_id = ? AND bulan = ? AND tahun = ?", userID, bulan, tahun).Find(&list).Error
	return list, err
}

// DeleteHariLiburByTanggal menghapus permanen (Unscoped). Soft delete akan
// meninggalkan baris di unique index (user_id, tanggal) dan memblokir check-in
// user di tanggal itu setelah libur dibatalkan.
func (r *absensiRepository) DeleteHariLiburByTanggal(tanggal string) (int64, error) {
	res := r.db.Unscoped().Where("tanggal = ? AND status = ?", tanggal, model.StatusHariLibur).Delete(&model.Absensi{})
	return res.RowsAffected, res.Error
}
