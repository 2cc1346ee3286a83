package repository

import (
	"fmt"
	"simagang-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HariLiburRepository interface {
	Upsert(libur *model.HariLibur) error
	DeleteByTanggal(tanggal string) (int64, error)
	GetAll() ([]model.HariLibur, error)
	GetByPeriode(bulan int, tahun int) ([]model.HariLibur, error)
}

type hariLiburRepository struct {
	db *gorm.DB
}

func NewHariLiburRepository(db *gorm.DB) HariLiburRepository {
	return &hariLiburRepository{db}
}

func (r *hariLiburRepository) Upsert(libur *model.HariLibur) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tanggal"}},
		DoUpdates: clause.AssignmentColumns([]string{"keterangan", "updated_at"}),
	}).Create(libur).Error
}

// DeleteByTanggal menghapus permanen. Baris soft-deleted tetap menduduki
// unique index tanggal, sehingga penetapan ulang tanggal yang sama hanya akan
// meng-update baris terhapus dan kalender tidak pernah muncul kembali.
func (r *hariLiburRepository) DeleteByTanggal(tanggal string) (int64, error) {
	res := r.db.Unscoped().Where("tanggal = ?", tanggal).Delete(&model.HariLibur{})
	return res.RowsAffected, res.Error
}

func (r *hariLiburRepository) GetAll() ([]model.HariLibur, error) {
	var liburs []model.HariLibur
	err := r.db.Order("tanggal desc").Find(&liburs).Error
	return liburs, err
}

func (r *hariLiburRepository) GetByPeriode(bulan int, tahun int) ([]model.HariLibur, error) {
	var liburs []model.HariLibur
	prefix := fmt.Sprintf("%04d-%02d-", tahun, bulan)
	err := r.db.Where("tanggal LIKE ?", prefix+"%").Find(&liburs).Error
	return liburs, err
}
