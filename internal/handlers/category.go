package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/middleware"
	"github.com/diewo77/billing-admin/internal/models"
	"github.com/diewo77/billing-admin/validation"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler { return &CategoryHandler{DB: db} }

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := h.DB.Order("id").Find(&categories).Error; err != nil {
		log.Error().Err(err).Msg("list categories")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	render(w, r, "categories/index.html", map[string]any{"Categories": categories})
}

func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "categories/add.html", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := validation.Violations{}
	validation.Required("name", r.FormValue("name"), v)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "categories/add.html", map[string]any{"Errors": v, "Form": r.PostForm})
		return
	}
	category := models.Category{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		State:       true,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		log.Warn().Err(err).Msg("create category")
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/add_category", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *CategoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if !findOr404(h.DB, w, r, &category) {
		return
	}
	if r.Method == http.MethodGet {
		render(w, r, "categories/edit.html", map[string]any{"Category": category})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := validation.Violations{}
	validation.Required("name", r.FormValue("name"), v)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "categories/edit.html", map[string]any{"Category": category, "Errors": v})
		return
	}
	category.Name = r.FormValue("name")
	category.Description = r.FormValue("description")
	if err := h.DB.Save(&category).Error; err != nil {
		log.Warn().Err(err).Uint("id", category.ID).Msg("update category")
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if !findOr404(h.DB, w, r, &category) {
		return
	}
	if err := h.DB.Delete(&category).Error; err != nil {
		log.Warn().Err(err).Uint("id", category.ID).Msg("delete category")
		if isFKViolation(err) {
			middleware.Flash(w, r, "reference_in_use")
		}
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "deleted")
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}
