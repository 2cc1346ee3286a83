package repository

import (
	"simagang-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QRTokenRepository interface {
	CreateExclusive(token *model.QRToken) error
	GetByNilai(nilai string) (*model.QRToken, error)
	GetAktifByTanggal(tanggal string) (*model.QRToken, error)
	GetSejak(tanggal string) ([]model.QRToken, error)
	AddScan(tokenID uint, userID uint) error
}

type qrTokenRepository struct {
	db *gorm.DB
}

func NewQRTokenRepository(db *gorm.DB) QRTokenRepository {
	return &qrTokenRepository{db}
}

// CreateExclusive menonaktifkan semua token aktif di tanggal yang sama lalu
// membuat token baru, dalam SATU transaksi. Dua admin yang generate bersamaan
// tetap berakhir dengan tepat satu token aktif per tanggal.
func (r *qrTokenRepository) CreateExclusive(token *model.QRToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.QRToken{}).
			Where("tanggal = ? AND aktif = ?", token.Tanggal, true).
			Update("aktif", false).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *qrTokenRepository) GetByNilai(nilai string) (*model.QRToken, error) {
	var token model.QRToken
	err := r.db.Where("nilai = ?", nilai).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *qrTokenRepository) GetAktifByTanggal(tanggal string) (*model.QRToken, error) {
	var token model.QRToken
	err := r.db.Preload("Scans").Where("tanggal = ? AND aktif = ?", tanggal, true).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *qrTokenRepository) GetSejak(tanggal string) ([]model.QRToken, error) {
	var tokens []model.QRToken
	err := r.db.Preload("Scans").
		Where("tanggal >= ?", tanggal).
		Order("tanggal desc, created_at desc").
		Find(&tokens).Error
	return tokens, err
}

// AddScan idempoten: scan ulang oleh user yang sama ditelan oleh OnConflict.
func (r *qrTokenRepository) AddScan(tokenID uint, userID uint) error {
	scan := model.QRTokenScan{QRTokenID: tokenID, UserID: userID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&scan).Error
}
