package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/middleware"
	"github.com/diewo77/billing-admin/internal/models"
	"github.com/diewo77/billing-admin/validation"
)

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := h.DB.Order("id").Find(&clients).Error; err != nil {
		log.Error().Err(err).Msg("list clients")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	render(w, r, "clients/index.html", map[string]any{"Clients": clients})
}

func clientFromForm(r *http.Request, c *models.Client, v validation.Violations) {
	validation.Required("first_name", r.FormValue("first_name"), v)
	validation.Required("last_name", r.FormValue("last_name"), v)
	c.FirstName = r.FormValue("first_name")
	c.LastName = r.FormValue("last_name")
	c.Address = r.FormValue("address")
	c.BirthDate = r.FormValue("birth_date")
	c.Phone = r.FormValue("phone")
	c.Email = r.FormValue("email")
}

func (h *ClientHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "clients/add.html", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	client := models.Client{State: true}
	v := validation.Violations{}
	clientFromForm(r, &client, v)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "clients/add.html", map[string]any{"Errors": v, "Form": r.PostForm})
		return
	}
	if err := h.DB.Create(&client).Error; err != nil {
		log.Warn().Err(err).Msg("create client")
		if isDuplicate(err) {
			middleware.Flash(w, r, "duplicate_value")
		}
		http.Redirect(w, r, "/add_client", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

func (h *ClientHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if !findOr404(h.DB, w, r, &client) {
		return
	}
	if r.Method == http.MethodGet {
		render(w, r, "clients/edit.html", map[string]any{"Client": client})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := validation.Violations{}
	clientFromForm(r, &client, v)
	if !v.Empty() {
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "clients/edit.html", map[string]any{"Client": client, "Errors": v})
		return
	}
	if err := h.DB.Save(&client).Error; err != nil {
		log.Warn().Err(err).Uint("id", client.ID).Msg("update client")
		if isDuplicate(err) {
			middleware.Flash(w, r, "duplicate_value")
		}
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if !findOr404(h.DB, w, r, &client) {
		return
	}
	if err := h.DB.Delete(&client).Error; err != nil {
		log.Warn().Err(err).Uint("id", client.ID).Msg("delete client")
		if isFKViolation(err) {
			middleware.Flash(w, r, "reference_in_use")
		}
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "deleted")
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}
