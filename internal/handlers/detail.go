package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/middleware"
	"github.com/diewo77/billing-admin/internal/models"
	"github.com/diewo77/billing-admin/validation"
)

type DetailHandler struct {
	DB *gorm.DB
}

func NewDetailHandler(db *gorm.DB) *DetailHandler { return &DetailHandler{DB: db} }

func (h *DetailHandler) List(w http.ResponseWriter, r *http.Request) {
	var details []models.Detail
	if err := h.DB.Preload("Bill").Preload("Product").Order("id").Find(&details).Error; err != nil {
		log.Error().Err(err).Msg("list details")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	render(w, r, "details/index.html", map[string]any{"Details": details})
}

func (h *DetailHandler) formRefs() (bills []models.Bill, products []models.Product) {
	h.DB.Order("id").Find(&bills)
	h.DB.Order("name").Find(&products)
	return bills, products
}

// parseDetailForm validates bill/product references and quantity. Quantity is
// optional and defaults to 1; an explicit quantity must be at least 1.
func parseDetailForm(r *http.Request, v validation.Violations) (billID, productID uint, quantity int) {
	billID = validation.ReferenceID("bill", r.FormValue("bill"), v)
	productID = validation.ReferenceID("product", r.FormValue("product"), v)
	quantity = 1
	if raw := r.FormValue("quantity"); raw != "" {
		quantity = validation.NonNegativeInt("quantity", raw, v)
		if _, bad := v["quantity"]; !bad && quantity < 1 {
			v["quantity"] = "must_be_positive"
		}
	}
	return billID, productID, quantity
}

func (h *DetailHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		bills, products := h.formRefs()
		render(w, r, "details/add.html", map[string]any{"Bills": bills, "Products": products})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := validation.Violations{}
	billID, productID, quantity := parseDetailForm(r, v)
	if !v.Empty() {
		bills, products := h.formRefs()
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "details/add.html", map[string]any{"Bills": bills, "Products": products, "Errors": v})
		return
	}
	var product models.Product
	if err := h.DB.First(&product, productID).Error; err != nil {
		middleware.Flash(w, r, "invalid_reference")
		http.Redirect(w, r, "/add_detail", http.StatusSeeOther)
		return
	}
	detail := models.Detail{
		BillID:    billID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		State:     true,
	}
	if err := h.DB.Create(&detail).Error; err != nil {
		log.Warn().Err(err).Msg("create detail")
		middleware.Flash(w, r, "invalid_reference")
		http.Redirect(w, r, "/add_detail", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/details", http.StatusSeeOther)
}

func (h *DetailHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var detail models.Detail
	if !findOr404(h.DB, w, r, &detail) {
		return
	}
	if r.Method == http.MethodGet {
		bills, products := h.formRefs()
		render(w, r, "details/edit.html", map[string]any{"Detail": detail, "Bills": bills, "Products": products})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := validation.Violations{}
	billID, productID, quantity := parseDetailForm(r, v)
	if !v.Empty() {
		bills, products := h.formRefs()
		w.WriteHeader(http.StatusBadRequest)
		render(w, r, "details/edit.html", map[string]any{"Detail": detail, "Bills": bills, "Products": products, "Errors": v})
		return
	}
	if productID != detail.ProductID {
		var product models.Product
		if err := h.DB.First(&product, productID).Error; err != nil {
			middleware.Flash(w, r, "invalid_reference")
			http.Redirect(w, r, "/details", http.StatusSeeOther)
			return
		}
		detail.UnitPrice = product.Price
	}
	detail.BillID = billID
	detail.ProductID = productID
	detail.Quantity = quantity
	if err := h.DB.Save(&detail).Error; err != nil {
		log.Warn().Err(err).Uint("id", detail.ID).Msg("update detail")
		middleware.Flash(w, r, "invalid_reference")
		http.Redirect(w, r, "/details", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/details", http.StatusSeeOther)
}

func (h *DetailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var detail models.Detail
	if !findOr404(h.DB, w, r, &detail) {
		return
	}
	if err := h.DB.Delete(&detail).Error; err != nil {
		log.Warn().Err(err).Uint("id", detail.ID).Msg("delete detail")
		http.Redirect(w, r, "/details", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "deleted")
	http.Redirect(w, r, "/details", http.StatusSeeOther)
}
