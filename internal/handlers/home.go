package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/models"
)

type HomeHandler struct {
	DB *gorm.DB
}

func NewHomeHandler(db *gorm.DB) *HomeHandler { return &HomeHandler{DB: db} }

// Index is the post-login dashboard with entity counts.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	var products, clients, bills, methods int64
	h.DB.Model(&models.Product{}).Count(&products)
	h.DB.Model(&models.Client{}).Count(&clients)
	h.DB.Model(&models.Bill{}).Count(&bills)
	h.DB.Model(&models.PaymentMethod{}).Count(&methods)
	render(w, r, "index.html", map[string]any{
		"Products":       products,
		"Clients":        clients,
		"Bills":          bills,
		"PaymentMethods": methods,
	})
}
