package models

import "time"

// Client entity. Email is unique across clients; delete is a hard delete and
// is restricted while bills reference the client.
type Client struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:15;not null"`
	LastName  string `gorm:"size:15;not null"`
	Address   string `gorm:"size:50"`
	BirthDate string `gorm:"size:30"`
	Phone     string `gorm:"size:20"`
	Email     string `gorm:"size:30;unique"`
	Bills     []Bill `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	State     bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName is the form shown in bill headers and the PDF export.
func (c *Client) DisplayName() string {
	return c.FirstName + " " + c.LastName
}
