package models

import "time"

// Bill is an invoice header linking a client and a payment method.
// There is deliberately no delete route for bills.
type Bill struct {
	ID              uint          `gorm:"primaryKey"`
	ClientID        uint          `gorm:"not null;index"`
	Client          Client        `gorm:"foreignKey:ClientID"`
	PaymentMethodID uint          `gorm:"not null;index"`
	PaymentMethod   PaymentMethod `gorm:"foreignKey:PaymentMethodID"`
	Date            time.Time     `gorm:"not null"`
	Details         []Detail      `gorm:"foreignKey:BillID;constraint:OnDelete:RESTRICT"`
	State           bool          `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Detail is one line item of a bill. Quantity and UnitPrice were absent from
// the legacy schema (which is why its PDF export used placeholder rows); the
// unit price is captured from the product at creation time so later price
// changes do not rewrite past bills.
type Detail struct {
	ID        uint    `gorm:"primaryKey"`
	BillID    uint    `gorm:"not null;index"`
	Bill      Bill    `gorm:"foreignKey:BillID"`
	ProductID uint    `gorm:"not null;index"`
	Product   Product `gorm:"foreignKey:ProductID"`
	Quantity  int     `gorm:"not null;default:1"`
	UnitPrice int     `gorm:"not null"`
	State     bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total is the line total in whole currency units.
func (d *Detail) Total() int { return d.Quantity * d.UnitPrice }
