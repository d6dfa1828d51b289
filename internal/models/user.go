package models

import "time"

// User & role models. Role and User are soft-deleted via the State flag;
// a disabled user (State=false) cannot log in but keeps its history.
type Role struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:25;not null;unique"`
	Users     []User `gorm:"foreignKey:RoleID"`
	State     bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Canonical role names, matching the seeded rows.
const (
	RoleEmployee      = "Employee"
	RoleAdministrator = "Administrator"
	RoleManager       = "Manager"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"size:20;not null"`
	LastName     string `gorm:"size:20;not null"`
	RoleID       uint   `gorm:"not null;index"`
	Role         Role   `gorm:"foreignKey:RoleID"`
	Username     string `gorm:"size:20;not null;unique"`
	PasswordHash string `gorm:"not null"`
	State        bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName is the "first last" form stored in the session identity.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
