package usecase

import (
	"errors"
	"time"

	"simagang-backend/config"
	"simagang-backend/internal/model"
	"simagang-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrLoginGagal = errors.New("NIP atau password salah")

type UserUsecase struct {
	repo repository.UserRepository
}

func NewUserUsecase(repo repository.UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

func (u *UserUsecase) Register(nama, nip, email, password, role string) error {
	// 1. Hashing Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if role == "" {
		role = model.RoleUser
	}

	// 2. Simpan ke Database
	user := model.User{
		Nama:     nama,
		NIP:      nip,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		IsActive: true,
	}
	return u.repo.Create(&user)
}

func (u *UserUsecase) Login(nip, password string) (string, string, error) {
	// 1. Cari user berdasarkan NIP
	user, err := u.repo.GetByNIP(nip)
	if err != nil {
		return "", "", ErrLoginGagal
	}

	// 2. Bandingkan Password (Input vs Hash di DB)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", ErrLoginGagal
	}

	// 3. Jika benar, buat Token JWT
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"nip":     user.NIP,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 24).Unix(), // Token expired dalam 24 jam
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(config.GetEnv("JWT_SECRET", "rahasia-negara-sangat-kuat")))
	if err != nil {
		return "", "", err
	}

	return t, user.Nama, nil
}
