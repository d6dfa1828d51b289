package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/middleware"
	"github.com/diewo77/billing-admin/internal/models"
	"github.com/diewo77/billing-admin/validation"
)

type PaymentMethodHandler struct {
	DB *gorm.DB
}

func NewPaymentMethodHandler(db *gorm.DB) *PaymentMethodHandler {
	return &PaymentMethodHandler{DB: db}
}

func (h *PaymentMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	var methods []models.PaymentMethod
	if err := h.DB.Order("id").Find(&methods).Error; err != nil {
		log.Error().Err(err).Msg("list payment methods")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	render(w, r, "payment_methods/index.html", map[string]any{"PaymentMethods": methods})
}

func (h *PaymentMethodHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "payment_methods/add.html", nil)
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
		render(w, r, "payment_methods/add.html", map[string]any{"Errors": v, "Form": r.PostForm})
		return
	}
	method := models.PaymentMethod{
		Name:    r.FormValue("name"),
		Details: r.FormValue("details"),
		State:   true,
	}
	if err := h.DB.Create(&method).Error; err != nil {
		log.Warn().Err(err).Msg("create payment method")
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/add_payment_method", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/payment_methods", http.StatusSeeOther)
}

func (h *PaymentMethodHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var method models.PaymentMethod
	if !findOr404(h.DB, w, r, &method) {
		return
	}
	if r.Method == http.MethodGet {
		render(w, r, "payment_methods/edit.html", map[string]any{"PaymentMethod": method})
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
		render(w, r, "payment_methods/edit.html", map[string]any{"PaymentMethod": method, "Errors": v})
		return
	}
	method.Name = r.FormValue("name")
	method.Details = r.FormValue("details")
	if err := h.DB.Save(&method).Error; err != nil {
		log.Warn().Err(err).Uint("id", method.ID).Msg("update payment method")
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/payment_methods", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/payment_methods", http.StatusSeeOther)
}

func (h *PaymentMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var method models.PaymentMethod
	if !findOr404(h.DB, w, r, &method) {
		return
	}
	if err := h.DB.Delete(&method).Error; err != nil {
		log.Warn().Err(err).Uint("id", method.ID).Msg("delete payment method")
		if isFKViolation(err) {
			middleware.Flash(w, r, "reference_in_use")
		}
		http.Redirect(w, r, "/payment_methods", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "deleted")
	http.Redirect(w, r, "/payment_methods", http.StatusSeeOther)
}
