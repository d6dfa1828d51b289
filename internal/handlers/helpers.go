// Package handlers contains the server-rendered resource controllers.
// Every controller follows the same shape: List, Add (GET form / POST
// create), Edit (GET form / POST update) and Delete, with 303 redirects
// after successful writes (Post/Redirect/Get).
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/middleware"
	"github.com/diewo77/billing-admin/view"
)

// render executes a template, injecting any pending flash message.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Flash"]; !exists {
		if msg := middleware.PopFlash(w, r); msg != "" {
			data["Flash"] = msg
		}
	}
	if err := view.Render(w, r, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("template render failed")
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template error")); werr != nil {
			_ = werr
		}
	}
}

// pathID parses the {id} path segment; 0 means invalid.
func pathID(r *http.Request) uint {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id64 == 0 {
		return 0
	}
	return uint(id64)
}

// findOr404 loads the record or writes a 404 and returns false.
// Edits and deletes of nonexistent ids must fail hard, never proceed.
func findOr404[T any](db *gorm.DB, w http.ResponseWriter, r *http.Request, dest *T) bool {
	id := pathID(r)
	if id == 0 {
		http.NotFound(w, r)
		return false
	}
	if err := db.First(dest, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Uint("id", id).Msg("lookup failed")
		}
		http.NotFound(w, r)
		return false
	}
	return true
}

// isDuplicate reports a uniqueness violation surfaced by the store.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// isFKViolation reports a foreign-key violation surfaced by the store.
func isFKViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key") || strings.Contains(msg, "violates")
}
