package repository

import (
	"simagang-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByNIP(nip string) (*model.User, error)
	GetAllAktif() ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *userRepository) GetByNIP(nip string) (*model.User, error) {
	var user model.User
	err := r.db.Where("nip = ?", nip).First(&user).Error
	return &user, err
}

func (r *userRepository) GetAllAktif() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("is_active = ?", true).Find(&users).Error
	return users, err
}
