package models

import "time"

// PaymentMethod entity (e.g. cash, credit card). Details is free text.
type PaymentMethod struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:20;not null"`
	Details   string `gorm:"type:text"`
	Bills     []Bill `gorm:"foreignKey:PaymentMethodID;constraint:OnDelete:RESTRICT"`
	State     bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
