package repository

import (
	"simagang-backend/internal/model"

	"gorm.io/gorm"
)

type PenilaianRepository interface {
	Create(penilaian *model.Penilaian) error
	Update(penilaian *model.Penilaian) error
	GetByID(id uint) (*model.Penilaian, error)
	GetByUserPeriode(userID uint, bulan int, tahun int) (*model.Penilaian, error)
	GetByPeriode(bulan int, tahun int) ([]model.Penilaian, error)
	GetFinalByPeriode(bulan int, tahun int) ([]model.Penilaian, error)
	Delete(id uint) error
	ResetFinalByPeriode(bulan int, tahun int) (int64, error)
}

type penilaianRepository struct {
	db *gorm.DB
}

func NewPenilaianRepository(db *gorm.DB) PenilaianRepository {
	return &penilaianRepository{db}
}

func (r *penilaianRepository) Create(penilaian *model.Penilaian) error {
	return r.db.Create(penilaian).Error
}

func (r *penilaianRepository) Update(penilaian *model.Penilaian) error {
	return r.db.Save(penilaian).Error
}

func (r *penilaianRepository) GetByID(id uint) (*model.Penilaian, error) {
	var penilaian model.Penilaian
	err := r.db.Preload("User").First(&penilaian, id).Error
	if err != nil {
		return nil, err
	}
	return &penilaian, nil
}

func (r *penilaianRepository) GetByUserPeriode(userID uint, bulan int, tahun int) (*model.Penilaian, error) {
	var penilaian model.Penilaian
	err := r.db.Where("user_id = ? AND bulan = ? AND tahun = ?", userID, bulan, tahun).First(&penilaian).Error
	if err != nil {
		return nil, err
	}
	return &penilaian, nil
}

func (r *penilaianRepository) GetByPeriode(bulan int, tahun int) ([]model.Penilaian, error) {
	var list []model.Penilaian
	err := r.db.Preload("User").
		Where("bulan = ? AND tahun = ?", bulan, tahun).
		Order("hasil desc").
		Find(&list).Error
	return list, err
}

// GetFinalByPeriode mengurutkan peringkat: hasil tertinggi dulu, seri dipecah
// dengan nama user (urutan stabil antar pemanggilan).
func (r *penilaianRepository) GetFinalByPeriode(bulan int, tahun int) ([]model.Penilaian, error) {
	var list []model.Penilaian
	err := r.db.Preload("User").
		Joins("JOIN users ON users.id = penilaians.user_id").
		Where("penilaians.bulan = ? AND penilaians.tahun = ? AND penilaians.status = ?", bulan, tahun, model.PenilaianFinal).
		Order("penilaians.hasil desc, users.nama asc").
		Find(&list).Error
	return list, err
}

// Delete menghapus permanen supaya unique index (user_id, bulan, tahun)
// benar-benar kosong dan periode yang sama bisa dinilai ulang dari awal.
func (r *penilaianRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&model.Penilaian{}, id).Error
}

// ResetFinalByPeriode membatalkan finalisasi satu periode (bukan hard delete,
// angka penilaian tetap tersimpan untuk jejak audit).
func (r *penilaianRepository) ResetFinalByPeriode(bulan int, tahun int) (int64, error) {
	res := r.db.Model(&model.Penilaian{}).
		Where("bulan = ? AND tahun = ? AND status = ?", bulan, tahun, model.PenilaianFinal).
		Update("status", model.PenilaianDraft)
	return res.RowsAffected, res.Error
}
