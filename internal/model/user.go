package model

import "gorm.io/gorm"

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type User struct {
	gorm.Model
	Nama     string `json:"nama"`
	NIP      string `json:"nip" gorm:"column:nip;unique;not null"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"default:user"` // user/admin/superadmin
	IsActive bool   `json:"is_active" gorm:"default:true"`
}
