// Package view renders html/template pages with a shared layout and helpers.
// Templates live under templates/; pages that contain a full document
// (<!doctype ...>) are rendered standalone, everything else is wrapped in
// layout.html.
package view

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/diewo77/billing-admin/auth"
	"github.com/diewo77/billing-admin/i18n"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	langResolver = func(_ *http.Request) string { return "es" }
	// canResolver lets templates hide links the current user may not follow.
	canResolver func(r *http.Request, resource, action string) bool
)

// SetLangResolver lets the host app provide the request language
// (e.g. from the prefs middleware).
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetCanResolver sets the callback backing the template "can" func.
func SetCanResolver(f func(*http.Request, string, string) bool) {
	if f != nil {
		canResolver = f
	}
}

// SetBaseDir overrides the template base directory (tests, custom setups).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
}

// detectBase finds the templates dir whether tests run from the repo root or
// from a package subdirectory.
func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the standard template func map.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		"can": func(resource, action string) bool {
			if canResolver == nil {
				return false
			}
			return canResolver(r, resource, action)
		},
		"year": func() int { return time.Now().Year() },
		"mul":  func(a, b int) int { return a * b },
	}
}

// Render parses and executes a template file with the shared layout and funcs.
// name is relative to the templates dir (e.g. "products/index.html").
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	if baseDir == "" {
		once.Do(detectBase)
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Identity"]; !exists {
		if id, ok := auth.FromContext(r.Context()); ok {
			data["Identity"] = id
		}
	}
	_, data["IsLoggedIn"] = auth.FromContext(r.Context())

	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && t != nil {
			return t.Execute(w, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return err
	}
	content, err := os.ReadFile(mainPath)
	if err != nil {
		return err
	}
	funcMap := Funcs(r)

	var t *template.Template
	layoutPath := filepath.Join(baseDir, "layout.html")
	useLayout := !bytes.Contains(bytes.ToLower(content), []byte("<!doctype"))
	if useLayout {
		if fi, statErr := os.Stat(layoutPath); statErr != nil || fi.IsDir() {
			useLayout = false
		}
	}
	if useLayout {
		t, err = template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, mainPath)
	} else {
		t, err = template.New(filepath.Base(name)).Funcs(funcMap).ParseFiles(mainPath)
	}
	if err != nil {
		return err
	}
	if t == nil {
		return errors.New("template not parsed")
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = t
		tplCache.Unlock()
	}
	return t.Execute(w, data)
}
