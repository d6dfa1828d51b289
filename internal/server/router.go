// Package server wires handlers, policy and middleware into the HTTP router.
package server

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/auth"
	"github.com/diewo77/billing-admin/gate"
	"github.com/diewo77/billing-admin/httpx"
	"github.com/diewo77/billing-admin/internal/handlers"
	"github.com/diewo77/billing-admin/internal/middleware"
	"github.com/diewo77/billing-admin/internal/models"
	"github.com/diewo77/billing-admin/internal/policy"
	"github.com/diewo77/billing-admin/view"
)

const profileCacheTTL = 5 * time.Minute

// New builds the full application handler: routes, per-route permission
// checks, session resolution and request logging.
func New(db *gorm.DB) http.Handler {
	auth.SetIdentityResolver(identityResolver(db))

	access := policy.NewAccessGate(db, profileCacheTTL)
	view.SetLangResolver(middleware.LangFrom)
	view.SetCanResolver(func(r *http.Request, resource, action string) bool {
		return access.Can(r.Context(), gate.Action(action), resource)
	})

	home := handlers.NewHomeHandler(db)
	authH := handlers.NewAuthHandler(db)
	products := handlers.NewProductHandler(db)
	clients := handlers.NewClientHandler(db)
	categories := handlers.NewCategoryHandler(db)
	details := handlers.NewDetailHandler(db)
	bills := handlers.NewBillHandler(db)
	methods := handlers.NewPaymentMethodHandler(db)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", authH.Login)
	mux.HandleFunc("POST /login", authH.Login)
	mux.HandleFunc("GET /logout", authH.Logout)

	mux.Handle("GET /{$}", auth.RequireAuth(http.HandlerFunc(home.Index)))

	route := func(pattern, resource string, action gate.Action, h http.HandlerFunc) {
		mux.Handle(pattern, access.Require(resource, action)(h))
	}

	route("GET /products", policy.ResProduct, gate.ActionList, products.List)
	route("GET /add_product", policy.ResProduct, gate.ActionCreate, products.Add)
	route("POST /add_product", policy.ResProduct, gate.ActionCreate, products.Add)
	route("GET /edit_product/{id}", policy.ResProduct, gate.ActionUpdate, products.Edit)
	route("POST /edit_product/{id}", policy.ResProduct, gate.ActionUpdate, products.Edit)
	route("POST /delete_product/{id}", policy.ResProduct, gate.ActionDelete, products.Delete)

	route("GET /clients", policy.ResClient, gate.ActionList, clients.List)
	route("GET /add_client", policy.ResClient, gate.ActionCreate, clients.Add)
	route("POST /add_client", policy.ResClient, gate.ActionCreate, clients.Add)
	route("GET /edit_client/{id}", policy.ResClient, gate.ActionUpdate, clients.Edit)
	route("POST /edit_client/{id}", policy.ResClient, gate.ActionUpdate, clients.Edit)
	route("POST /delete_client/{id}", policy.ResClient, gate.ActionDelete, clients.Delete)

	route("GET /categories", policy.ResCategory, gate.ActionList, categories.List)
	route("GET /add_category", policy.ResCategory, gate.ActionCreate, categories.Add)
	route("POST /add_category", policy.ResCategory, gate.ActionCreate, categories.Add)
	route("GET /edit_category/{id}", policy.ResCategory, gate.ActionUpdate, categories.Edit)
	route("POST /edit_category/{id}", policy.ResCategory, gate.ActionUpdate, categories.Edit)
	route("POST /delete_category/{id}", policy.ResCategory, gate.ActionDelete, categories.Delete)

	route("GET /details", policy.ResDetail, gate.ActionList, details.List)
	route("GET /add_detail", policy.ResDetail, gate.ActionCreate, details.Add)
	route("POST /add_detail", policy.ResDetail, gate.ActionCreate, details.Add)
	route("GET /edit_detail/{id}", policy.ResDetail, gate.ActionUpdate, details.Edit)
	route("POST /edit_detail/{id}", policy.ResDetail, gate.ActionUpdate, details.Edit)
	route("POST /delete_detail/{id}", policy.ResDetail, gate.ActionDelete, details.Delete)

	route("GET /payment_methods", policy.ResPaymentMethod, gate.ActionList, methods.List)
	route("GET /add_payment_method", policy.ResPaymentMethod, gate.ActionCreate, methods.Add)
	route("POST /add_payment_method", policy.ResPaymentMethod, gate.ActionCreate, methods.Add)
	route("GET /edit_payment_method/{id}", policy.ResPaymentMethod, gate.ActionUpdate, methods.Edit)
	route("POST /edit_payment_method/{id}", policy.ResPaymentMethod, gate.ActionUpdate, methods.Edit)
	route("POST /delete_payment_method/{id}", policy.ResPaymentMethod, gate.ActionDelete, methods.Delete)

	route("GET /bills", policy.ResBill, gate.ActionList, bills.List)
	route("GET /add_bill", policy.ResBill, gate.ActionCreate, bills.Add)
	route("POST /add_bill", policy.ResBill, gate.ActionCreate, bills.Add)
	route("GET /edit_bill/{id}", policy.ResBill, gate.ActionUpdate, bills.Edit)
	route("POST /edit_bill/{id}", policy.ResBill, gate.ActionUpdate, bills.Edit)
	route("GET /bill/{id}", policy.ResBill, gate.ActionView, bills.View)
	route("GET /bill/{id}/pdf", policy.ResBill, gate.ActionExport, bills.ExportPDF)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "db_unreachable", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return middleware.Prefs(middleware.Recover(middleware.RequestLog(auth.Middleware(mux))))
}

// identityResolver resolves a session user id into an Identity, enforcing the
// active-state flags on both the user and its role.
func identityResolver(db *gorm.DB) auth.IdentityResolver {
	return func(ctx context.Context, userID uint) (*auth.Identity, error) {
		var user models.User
		err := db.WithContext(ctx).Preload("Role").First(&user, userID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, nil
			}
			return nil, err
		}
		if !user.State || !user.Role.State {
			return nil, nil
		}
		return &auth.Identity{
			UserID:      user.ID,
			DisplayName: user.DisplayName(),
			Role:        user.Role.Name,
		}, nil
	}
}
