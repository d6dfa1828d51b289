package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Client{}, &models.PaymentMethod{},
		&models.Category{}, &models.Product{},
		&models.Bill{}, &models.Detail{},
	))
	return db
}

func seedBill(t *testing.T, db *gorm.DB) models.Bill {
	t.Helper()
	client := models.Client{FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com", State: true}
	require.NoError(t, db.Create(&client).Error)
	method := models.PaymentMethod{Name: "Efectivo", State: true}
	require.NoError(t, db.Create(&method).Error)
	cat := models.Category{Name: "Bebidas", State: true}
	require.NoError(t, db.Create(&cat).Error)
	coffee := models.Product{CategoryID: cat.ID, Name: "Café", Price: 15, Stock: 100, State: true}
	require.NoError(t, db.Create(&coffee).Error)
	tea := models.Product{CategoryID: cat.ID, Name: "Té", Price: 10, Stock: 50, State: true}
	require.NoError(t, db.Create(&tea).Error)

	bill := models.Bill{ClientID: client.ID, PaymentMethodID: method.ID, Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), State: true}
	require.NoError(t, db.Create(&bill).Error)
	require.NoError(t, db.Create(&models.Detail{BillID: bill.ID, ProductID: coffee.ID, Quantity: 2, UnitPrice: coffee.Price, State: true}).Error)
	require.NoError(t, db.Create(&models.Detail{BillID: bill.ID, ProductID: tea.ID, Quantity: 3, UnitPrice: tea.Price, State: true}).Error)
	return bill
}

func TestBuild_ComputesTotals(t *testing.T) {
	db := setupDB(t)
	bill := seedBill(t, db)
	svc := NewInvoiceService(db)

	inv, err := svc.Build(context.Background(), bill.ID)
	require.NoError(t, err)

	require.Equal(t, bill.ID, inv.Number)
	require.Equal(t, "Ana Rojas", inv.Client)
	require.Equal(t, "Efectivo", inv.PaymentMethod)
	require.Len(t, inv.Lines, 2)
	require.Equal(t, "30.00", inv.Lines[0].Total.StringFixed(2))
	require.Equal(t, "30.00", inv.Lines[1].Total.StringFixed(2))
	require.Equal(t, "60.00", inv.Total.StringFixed(2))
}

func TestBuild_EmptyBillHasZeroTotal(t *testing.T) {
	db := setupDB(t)
	client := models.Client{FirstName: "B", LastName: "C", Email: "b@example.com", State: true}
	require.NoError(t, db.Create(&client).Error)
	method := models.PaymentMethod{Name: "Tarjeta", State: true}
	require.NoError(t, db.Create(&method).Error)
	bill := models.Bill{ClientID: client.ID, PaymentMethodID: method.ID, Date: time.Now(), State: true}
	require.NoError(t, db.Create(&bill).Error)

	inv, err := NewInvoiceService(db).Build(context.Background(), bill.ID)
	require.NoError(t, err)
	require.Empty(t, inv.Lines)
	require.Equal(t, "0.00", inv.Total.StringFixed(2))
}

func TestBuild_NotFound(t *testing.T) {
	db := setupDB(t)
	_, err := NewInvoiceService(db).Build(context.Background(), 404)
	require.ErrorIs(t, err, ErrBillNotFound)
}

func TestRenderPDF_ProducesPDFDocument(t *testing.T) {
	db := setupDB(t)
	bill := seedBill(t, db)

	out, err := NewInvoiceService(db).RenderPDF(context.Background(), bill.ID)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must start with the PDF magic header")
}
