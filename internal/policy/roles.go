// Package policy wires the gate library to the application's fixed roles.
//
// The permission matrix is deliberately static: the three roles and what
// they may do are part of the product definition, not admin-editable data.
package policy

import (
	"github.com/diewo77/billing-admin/gate"
	"github.com/diewo77/billing-admin/internal/models"
)

// Resource type names used in permissions and route wiring.
const (
	ResProduct       = "product"
	ResClient        = "client"
	ResCategory      = "category"
	ResDetail        = "detail"
	ResBill          = "bill"
	ResPaymentMethod = "payment_method"
)

// profiles holds one static profile per role name.
var profiles = map[string]gate.Profile{
	// Employees see the sales-facing lists and can register clients;
	// everything else is off limits (categories included).
	models.RoleEmployee: gate.NewStaticProfile(models.RoleEmployee,
		gate.NewPermission(ResProduct, gate.ActionList),
		gate.NewPermission(ResClient, gate.ActionList),
		gate.NewPermission(ResClient, gate.ActionCreate),
		gate.NewPermission(ResBill, gate.ActionList),
		gate.NewPermission(ResBill, gate.ActionView),
		gate.NewPermission(ResPaymentMethod, gate.ActionList),
	),
	// Administrators manage day-to-day billing, including every payment
	// method operation, but cannot touch the catalog (category/product
	// writes) and cannot delete clients or details.
	models.RoleAdministrator: gate.NewStaticProfile(models.RoleAdministrator,
		gate.NewPermission(ResProduct, gate.ActionList),
		gate.NewPermission(ResClient, gate.ActionList),
		gate.NewPermission(ResClient, gate.ActionCreate),
		gate.NewPermission(ResClient, gate.ActionUpdate),
		gate.NewPermission(ResCategory, gate.ActionList),
		gate.NewPermission(ResDetail, gate.ActionList),
		gate.NewPermission(ResDetail, gate.ActionCreate),
		gate.NewPermission(ResDetail, gate.ActionUpdate),
		gate.NewPermission(ResBill, gate.ActionList),
		gate.NewPermission(ResBill, gate.ActionView),
		gate.NewPermission(ResBill, gate.ActionCreate),
		gate.NewPermission(ResBill, gate.ActionUpdate),
		gate.NewPermission(ResBill, gate.ActionExport),
		gate.NewPermission(ResPaymentMethod, gate.WildcardAll),
	),
	// Managers can do everything that has a route.
	models.RoleManager: gate.NewStaticProfile(models.RoleManager, gate.PermissionSuperAdmin),
}

// ProfileForRole returns the static profile for a role name, or nil.
func ProfileForRole(name string) gate.Profile {
	return profiles[name]
}
