// Package services holds business logic shared by handlers.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/models"
	"github.com/diewo77/billing-admin/internal/pdf"
)

var ErrBillNotFound = errors.New("bill not found")

// InvoiceService assembles a bill with its client, payment method and line
// items into a renderable invoice.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{db: db} }

// Build loads the bill graph and computes line and grand totals.
func (s *InvoiceService) Build(ctx context.Context, billID uint) (*pdf.Invoice, error) {
	var bill models.Bill
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("PaymentMethod").
		Preload("Details").
		Preload("Details.Product").
		First(&bill, billID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("load bill %d: %w", billID, err)
	}

	inv := &pdf.Invoice{
		Number:        bill.ID,
		Client:        bill.Client.DisplayName(),
		PaymentMethod: bill.PaymentMethod.Name,
		Date:          bill.Date,
	}
	total := decimal.Zero
	for _, d := range bill.Details {
		unit := decimal.NewFromInt(int64(d.UnitPrice))
		lineTotal := unit.Mul(decimal.NewFromInt(int64(d.Quantity)))
		inv.Lines = append(inv.Lines, pdf.Line{
			Product:   d.Product.Name,
			Quantity:  d.Quantity,
			UnitPrice: unit,
			Total:     lineTotal,
		})
		total = total.Add(lineTotal)
	}
	inv.Total = total
	return inv, nil
}

// RenderPDF builds the invoice and renders it as a PDF document.
func (s *InvoiceService) RenderPDF(ctx context.Context, billID uint) ([]byte, error) {
	inv, err := s.Build(ctx, billID)
	if err != nil {
		return nil, err
	}
	return pdf.Render(inv)
}
