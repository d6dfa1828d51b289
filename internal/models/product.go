package models

import "time"

// Category and Product. Prices are whole currency units (Bs), stored as
// integers like the original schema.
type Category struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:20;not null"`
	Description string    `gorm:"size:40"`
	Products    []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	State       bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Product struct {
	ID         uint     `gorm:"primaryKey"`
	CategoryID uint     `gorm:"not null;index"`
	Category   Category `gorm:"foreignKey:CategoryID"`
	Name       string   `gorm:"size:30;not null"`
	Price      int      `gorm:"not null"`
	Stock      int      `gorm:"not null"`
	Details    []Detail `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	State      bool     `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
