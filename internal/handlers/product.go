package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/middleware"
	"github.com/diewo77/billing-admin/internal/models"
	"github.com/diewo77/billing-admin/validation"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if err := h.DB.Preload("Category").Order("id").Find(&products).Error; err != nil {
		log.Error().Err(err).Msg("list products")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	render(w, r, "products/index.html", map[string]any{"Products": products})
}

func (h *ProductHandler) categories() []models.Category {
	var cats []models.Category
	h.DB.Order("name").Find(&cats)
	return cats
}

func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "products/add.html", map[string]any{"Categories": h.categories()})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := validation.Violations{}
	validation.Required("name", r.FormValue("name"), v)
	price := validation.NonNegativeInt("price", r.FormValue("price"), v)
	stock := validation.NonNegativeInt("stock", r.FormValue("stock"), v)
	categoryID := validation.ReferenceID("category", r.FormValue("category"), v)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "products/add.html", map[string]any{
			"Categories": h.categories(),
			"Errors":     v,
			"Form":       r.PostForm,
		})
		return
	}
	product := models.Product{
		CategoryID: categoryID,
		Name:       r.FormValue("name"),
		Price:      price,
		Stock:      stock,
		State:      true,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		log.Warn().Err(err).Msg("create product")
		if isFKViolation(err) {
			middleware.Flash(w, r, "invalid_reference")
		} else {
			middleware.Flash(w, r, "duplicate_value")
		}
		http.Redirect(w, r, "/add_product", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if !findOr404(h.DB, w, r, &product) {
		return
	}
	if r.Method == http.MethodGet {
		render(w, r, "products/edit.html", map[string]any{
			"Product":    product,
			"Categories": h.categories(),
		})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := validation.Violations{}
	validation.Required("name", r.FormValue("name"), v)
	price := validation.NonNegativeInt("price", r.FormValue("price"), v)
	stock := validation.NonNegativeInt("stock", r.FormValue("stock"), v)
	categoryID := validation.ReferenceID("category", r.FormValue("category"), v)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "products/edit.html", map[string]any{
			"Product":    product,
			"Categories": h.categories(),
			"Errors":     v,
		})
		return
	}
	product.Name = r.FormValue("name")
	product.Price = price
	product.Stock = stock
	product.CategoryID = categoryID
	if err := h.DB.Save(&product).Error; err != nil {
		log.Warn().Err(err).Uint("id", product.ID).Msg("update product")
		middleware.Flash(w, r, "invalid_reference")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if !findOr404(h.DB, w, r, &product) {
		return
	}
	if err := h.DB.Delete(&product).Error; err != nil {
		log.Warn().Err(err).Uint("id", product.ID).Msg("delete product")
		if isFKViolation(err) {
			middleware.Flash(w, r, "reference_in_use")
		}
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "deleted")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}
