// Package i18n provides the es/en message catalog for rendered views.
// Spanish is the default; English is a best-effort fallback.
package i18n

import "strings"

const defaultLang = "es"

var translations = map[string]map[string]string{
	"es": {
		"app_title":               "Administración de Facturación",
		"login":                   "Iniciar sesión",
		"logout":                  "Cerrar sesión",
		"username":                "Usuario",
		"password":                "Contraseña",
		"invalid_credentials":     "Credenciales incorrectas",
		"home":                    "Inicio",
		"products":                "Productos",
		"clients":                 "Clientes",
		"categories":              "Categorías",
		"details":                 "Detalles",
		"bills":                   "Facturas",
		"payment_methods":         "Métodos de Pago",
		"add":                     "Agregar",
		"edit":                    "Editar",
		"delete":                  "Eliminar",
		"save":                    "Guardar",
		"name":                    "Nombre",
		"first_name":              "Nombre",
		"last_name":               "Apellido",
		"address":                 "Dirección",
		"birth_date":              "Fecha de nacimiento",
		"phone":                   "Teléfono",
		"email":                   "Correo electrónico",
		"description":             "Descripción",
		"price":                   "Precio",
		"stock":                   "Existencias",
		"category":                "Categoría",
		"client":                  "Cliente",
		"payment_method":          "Método de pago",
		"date":                    "Fecha",
		"bill":                    "Factura",
		"product":                 "Producto",
		"quantity":                "Cantidad",
		"unit_price":              "Precio unitario",
		"total":                   "Total",
		"download_pdf":            "Descargar PDF",
		"required":                "Requerido",
		"must_be_number":          "Debe ser un número",
		"must_not_be_negative":    "No puede ser negativo",
		"must_be_positive":        "Debe ser mayor que cero",
		"invalid_reference":       "Referencia inválida",
		"duplicate_value":         "Ya existe un registro con ese valor",
		"reference_in_use":        "No se puede eliminar: hay registros que dependen de éste",
		"bill_reference_invalid":  "Cliente o método de pago inválido",
		"save_failed":             "No se pudo guardar el registro",
		"saved":                   "Guardado correctamente",
		"deleted":                 "Eliminado correctamente",
	},
	"en": {
		"app_title":               "Billing Administration",
		"login":                   "Log in",
		"logout":                  "Log out",
		"username":                "Username",
		"password":                "Password",
		"invalid_credentials":     "Invalid credentials",
		"home":                    "Home",
		"products":                "Products",
		"clients":                 "Clients",
		"categories":              "Categories",
		"details":                 "Details",
		"bills":                   "Bills",
		"payment_methods":         "Payment Methods",
		"add":                     "Add",
		"edit":                    "Edit",
		"delete":                  "Delete",
		"save":                    "Save",
		"name":                    "Name",
		"first_name":              "First name",
		"last_name":               "Last name",
		"address":                 "Address",
		"birth_date":              "Birth date",
		"phone":                   "Phone",
		"email":                   "Email",
		"description":             "Description",
		"price":                   "Price",
		"stock":                   "Stock",
		"category":                "Category",
		"client":                  "Client",
		"payment_method":          "Payment method",
		"date":                    "Date",
		"bill":                    "Bill",
		"product":                 "Product",
		"quantity":                "Quantity",
		"unit_price":              "Unit price",
		"total":                   "Total",
		"download_pdf":            "Download PDF",
		"required":                "Required",
		"must_be_number":          "Must be a number",
		"must_not_be_negative":    "Must not be negative",
		"must_be_positive":        "Must be greater than zero",
		"invalid_reference":       "Invalid reference",
		"duplicate_value":         "A record with that value already exists",
		"reference_in_use":        "Cannot delete: other records depend on this one",
		"bill_reference_invalid":  "Invalid client or payment method",
		"save_failed":             "The record could not be saved",
		"saved":                   "Saved",
		"deleted":                 "Deleted",
	},
}

// T translates code for lang, falling back to Spanish, then to the code itself.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations[defaultLang][code]; ok {
		return s
	}
	return code
}

// DetectLanguage maps an Accept-Language header to a supported language.
func DetectLanguage(header string) string {
	h := strings.ToLower(header)
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if strings.HasPrefix(tag, "en") {
			return "en"
		}
		if strings.HasPrefix(tag, "es") {
			return "es"
		}
	}
	return defaultLang
}
