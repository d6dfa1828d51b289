package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/middleware"
	"github.com/diewo77/billing-admin/internal/models"
	"github.com/diewo77/billing-admin/internal/services"
	"github.com/diewo77/billing-admin/validation"
)

type BillHandler struct {
	DB       *gorm.DB
	Invoices *services.InvoiceService
}

func NewBillHandler(db *gorm.DB) *BillHandler {
	return &BillHandler{DB: db, Invoices: services.NewInvoiceService(db)}
}

func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	var bills []models.Bill
	if err := h.DB.Preload("Client").Preload("PaymentMethod").Order("id").Find(&bills).Error; err != nil {
		log.Error().Err(err).Msg("list bills")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	render(w, r, "bills/index.html", map[string]any{"Bills": bills})
}

func (h *BillHandler) formRefs() (clients []models.Client, methods []models.PaymentMethod) {
	h.DB.Order("last_name").Find(&clients)
	h.DB.Order("name").Find(&methods)
	return clients, methods
}

func (h *BillHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		clients, methods := h.formRefs()
		render(w, r, "bills/add.html", map[string]any{"Clients": clients, "PaymentMethods": methods})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := validation.Violations{}
	clientID := validation.ReferenceID("client", r.FormValue("client"), v)
	methodID := validation.ReferenceID("payment_method", r.FormValue("payment_method"), v)
	if !v.Empty() {
		log.Warn().
			Str("client", r.FormValue("client")).
			Str("payment_method", r.FormValue("payment_method")).
			Msg("bill create rejected: invalid references")
		middleware.Flash(w, r, "bill_reference_invalid")
		http.Redirect(w, r, "/add_bill", http.StatusSeeOther)
		return
	}
	bill := models.Bill{
		ClientID:        clientID,
		PaymentMethodID: methodID,
		Date:            time.Now(),
		State:           true,
	}
	if err := h.DB.Create(&bill).Error; err != nil {
		log.Warn().Err(err).Msg("create bill")
		middleware.Flash(w, r, "bill_reference_invalid")
		http.Redirect(w, r, "/add_bill", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/bills", http.StatusSeeOther)
}

func (h *BillHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var bill models.Bill
	if !findOr404(h.DB, w, r, &bill) {
		return
	}
	if r.Method == http.MethodGet {
		clients, methods := h.formRefs()
		render(w, r, "bills/edit.html", map[string]any{"Bill": bill, "Clients": clients, "PaymentMethods": methods})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := validation.Violations{}
	clientID := validation.ReferenceID("client", r.FormValue("client"), v)
	methodID := validation.ReferenceID("payment_method", r.FormValue("payment_method"), v)
	if !v.Empty() {
		log.Warn().Uint("id", bill.ID).Msg("bill update rejected: invalid references")
		middleware.Flash(w, r, "bill_reference_invalid")
		http.Redirect(w, r, fmt.Sprintf("/edit_bill/%d", bill.ID), http.StatusSeeOther)
		return
	}
	bill.ClientID = clientID
	bill.PaymentMethodID = methodID
	if err := h.DB.Save(&bill).Error; err != nil {
		log.Warn().Err(err).Uint("id", bill.ID).Msg("update bill")
		middleware.Flash(w, r, "bill_reference_invalid")
		http.Redirect(w, r, "/bills", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/bills", http.StatusSeeOther)
}

// View renders one bill with its line items.
func (h *BillHandler) View(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if id == 0 {
		http.NotFound(w, r)
		return
	}
	invoice, err := h.Invoices.Build(r.Context(), id)
	if err != nil {
		if err == services.ErrBillNotFound {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Uint("id", id).Msg("load bill")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	render(w, r, "bills/view.html", map[string]any{"Invoice": invoice})
}

// ExportPDF streams the invoice as an attached PDF named factura_{id}.pdf.
func (h *BillHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if id == 0 {
		http.NotFound(w, r)
		return
	}
	out, err := h.Invoices.RenderPDF(r.Context(), id)
	if err != nil {
		if err == services.ErrBillNotFound {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Uint("id", id).Msg("render invoice pdf")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="factura_%d.pdf"`, id))
	if _, err := w.Write(out); err != nil {
		log.Debug().Err(err).Msg("pdf write interrupted")
	}
}
