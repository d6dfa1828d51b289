package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/models"
)

// setupDB opens a per-test in-memory database with foreign keys enforced,
// so RESTRICT violations actually surface like they do on postgres.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{}, &models.User{},
		&models.Client{}, &models.PaymentMethod{},
		&models.Category{}, &models.Product{},
		&models.Bill{}, &models.Detail{},
	))
	return db
}

func postForm(t *testing.T, h http.HandlerFunc, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name, State: true}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func TestLogin_Success(t *testing.T) {
	db := setupDB(t)
	role := models.Role{Name: models.RoleManager, State: true}
	require.NoError(t, db.Create(&role).Error)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{FirstName: "M", LastName: "G", RoleID: role.ID, Username: "mgr", PasswordHash: string(hash), State: true}
	require.NoError(t, db.Create(&user).Error)

	w := postForm(t, NewAuthHandler(db).Login, "/login", url.Values{"username": {"mgr"}, "password": {"s3cret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	var hasSession bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			hasSession = true
		}
	}
	require.True(t, hasSession, "expected a session cookie on successful login")
}

// Wrong password, unknown username and disabled account must be
// indistinguishable from the outside.
func TestLogin_FailuresAreGeneric(t *testing.T) {
	db := setupDB(t)
	role := models.Role{Name: models.RoleManager, State: true}
	require.NoError(t, db.Create(&role).Error)
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, db.Create(&models.User{FirstName: "A", LastName: "B", RoleID: role.ID, Username: "active", PasswordHash: string(hash), State: true}).Error)
	require.NoError(t, db.Create(&models.User{FirstName: "C", LastName: "D", RoleID: role.ID, Username: "disabled", PasswordHash: string(hash), State: false}).Error)

	h := NewAuthHandler(db).Login
	cases := map[string]url.Values{
		"wrong password":   {"username": {"active"}, "password": {"nope"}},
		"unknown username": {"username": {"ghost"}, "password": {"s3cret"}},
		"disabled account": {"username": {"disabled"}, "password": {"s3cret"}},
	}
	var bodies []string
	for name, form := range cases {
		w := postForm(t, h, "/login", form)
		require.Equal(t, http.StatusOK, w.Code, name)
		require.Contains(t, w.Body.String(), "Credenciales incorrectas", name)
		bodies = append(bodies, w.Body.String())
	}
	for _, b := range bodies[1:] {
		require.Equal(t, bodies[0], b, "failure responses must be identical")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	db := setupDB(t)
	r := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	NewAuthHandler(db).Logout(w, r)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			require.True(t, c.MaxAge < 0 || c.Value == "")
		}
	}
}

func TestProductAdd_CreatesAndRedirects(t *testing.T) {
	db := setupDB(t)
	cat := seedCategory(t, db, "Bebidas")

	w := postForm(t, NewProductHandler(db).Add, "/add_product", url.Values{
		"name": {"Café"}, "price": {"15"}, "stock": {"100"},
		"category": {intStr(cat.ID)},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/products", w.Header().Get("Location"))

	var p models.Product
	require.NoError(t, db.Where("name = ?", "Café").First(&p).Error)
	require.Equal(t, 15, p.Price)
	require.Equal(t, cat.ID, p.CategoryID)
}

func TestProductAdd_NonexistentCategoryRedirectsBack(t *testing.T) {
	db := setupDB(t)

	w := postForm(t, NewProductHandler(db).Add, "/add_product", url.Values{
		"name": {"Café"}, "price": {"15"}, "stock": {"100"},
		"category": {"999"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/add_product", w.Header().Get("Location"))

	var count int64
	db.Model(&models.Product{}).Count(&count)
	require.Zero(t, count, "a product with an unknown category must not be created")
}

func TestProductAdd_RejectsNegativePrice(t *testing.T) {
	db := setupDB(t)
	cat := seedCategory(t, db, "Bebidas")

	w := postForm(t, NewProductHandler(db).Add, "/add_product", url.Values{
		"name": {"Café"}, "price": {"-5"}, "stock": {"1"},
		"category": {intStr(cat.ID)},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	require.Zero(t, count)
}

func TestProductEdit_RefreshesUpdatedAt(t *testing.T) {
	db := setupDB(t)
	cat := seedCategory(t, db, "Bebidas")
	p := models.Product{CategoryID: cat.ID, Name: "Café", Price: 15, Stock: 10, State: true}
	require.NoError(t, db.Create(&p).Error)
	before := p.UpdatedAt
	created := p.CreatedAt

	time.Sleep(10 * time.Millisecond)
	r := httptest.NewRequest(http.MethodPost, "/edit_product/"+intStr(p.ID), strings.NewReader(url.Values{
		"name": {"Café Grande"}, "price": {"20"}, "stock": {"10"},
		"category": {intStr(cat.ID)},
	}.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.SetPathValue("id", intStr(p.ID))
	w := httptest.NewRecorder()
	NewProductHandler(db).Edit(w, r)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var updated models.Product
	require.NoError(t, db.First(&updated, p.ID).Error)
	require.Equal(t, "Café Grande", updated.Name)
	require.True(t, updated.UpdatedAt.After(before), "UpdatedAt must refresh on save")
	require.True(t, updated.CreatedAt.Equal(created), "CreatedAt must not change on save")
}

func TestProductEdit_UnknownID404(t *testing.T) {
	db := setupDB(t)
	r := httptest.NewRequest(http.MethodGet, "/edit_product/999", nil)
	r.SetPathValue("id", "999")
	w := httptest.NewRecorder()
	NewProductHandler(db).Edit(w, r)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductDelete_UnknownID404(t *testing.T) {
	db := setupDB(t)
	r := httptest.NewRequest(http.MethodPost, "/delete_product/999", nil)
	r.SetPathValue("id", "999")
	w := httptest.NewRecorder()
	NewProductHandler(db).Delete(w, r)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryDelete_RestrictedWhileProductsExist(t *testing.T) {
	db := setupDB(t)
	cat := seedCategory(t, db, "Bebidas")
	require.NoError(t, db.Create(&models.Product{CategoryID: cat.ID, Name: "Café", Price: 1, Stock: 1, State: true}).Error)

	r := httptest.NewRequest(http.MethodPost, "/delete_category/"+intStr(cat.ID), nil)
	r.SetPathValue("id", intStr(cat.ID))
	w := httptest.NewRecorder()
	NewCategoryHandler(db).Delete(w, r)

	// redirect either way, but the row must survive
	require.Equal(t, http.StatusSeeOther, w.Code)
	var count int64
	db.Model(&models.Category{}).Count(&count)
	require.EqualValues(t, 1, count, "category with products must not be deleted")
}

func TestClientDelete_RestrictedWhileBillsExist(t *testing.T) {
	db := setupDB(t)
	client := models.Client{FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com", State: true}
	require.NoError(t, db.Create(&client).Error)
	method := models.PaymentMethod{Name: "Efectivo", State: true}
	require.NoError(t, db.Create(&method).Error)
	require.NoError(t, db.Create(&models.Bill{ClientID: client.ID, PaymentMethodID: method.ID, Date: time.Now(), State: true}).Error)

	r := httptest.NewRequest(http.MethodPost, "/delete_client/"+intStr(client.ID), nil)
	r.SetPathValue("id", intStr(client.ID))
	w := httptest.NewRecorder()
	NewClientHandler(db).Delete(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	var count int64
	db.Model(&models.Client{}).Count(&count)
	require.EqualValues(t, 1, count, "client with bills must not be deleted")
}

func TestBillAdd_InvalidReferencesRedirectBack(t *testing.T) {
	db := setupDB(t)
	w := postForm(t, NewBillHandler(db).Add, "/add_bill", url.Values{
		"client": {"abc"}, "payment_method": {""},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/add_bill", w.Header().Get("Location"))

	var count int64
	db.Model(&models.Bill{}).Count(&count)
	require.Zero(t, count)
}

func TestBillAdd_CreatesWithCurrentDate(t *testing.T) {
	db := setupDB(t)
	client := models.Client{FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com", State: true}
	require.NoError(t, db.Create(&client).Error)
	method := models.PaymentMethod{Name: "Efectivo", State: true}
	require.NoError(t, db.Create(&method).Error)

	w := postForm(t, NewBillHandler(db).Add, "/add_bill", url.Values{
		"client": {intStr(client.ID)}, "payment_method": {intStr(method.ID)},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/bills", w.Header().Get("Location"))

	var bill models.Bill
	require.NoError(t, db.First(&bill).Error)
	require.WithinDuration(t, time.Now(), bill.Date, 5*time.Second)
}

func TestBillExportPDF(t *testing.T) {
	db := setupDB(t)
	client := models.Client{FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com", State: true}
	require.NoError(t, db.Create(&client).Error)
	method := models.PaymentMethod{Name: "Efectivo", State: true}
	require.NoError(t, db.Create(&method).Error)
	bill := models.Bill{ClientID: client.ID, PaymentMethodID: method.ID, Date: time.Now(), State: true}
	require.NoError(t, db.Create(&bill).Error)

	r := httptest.NewRequest(http.MethodGet, "/bill/"+intStr(bill.ID)+"/pdf", nil)
	r.SetPathValue("id", intStr(bill.ID))
	w := httptest.NewRecorder()
	NewBillHandler(db).ExportPDF(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "factura_"+intStr(bill.ID)+".pdf")
	require.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestBillExportPDF_UnknownBill404(t *testing.T) {
	db := setupDB(t)
	r := httptest.NewRequest(http.MethodGet, "/bill/999/pdf", nil)
	r.SetPathValue("id", "999")
	w := httptest.NewRecorder()
	NewBillHandler(db).ExportPDF(w, r)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailAdd_CapturesUnitPriceFromProduct(t *testing.T) {
	db := setupDB(t)
	cat := seedCategory(t, db, "Bebidas")
	product := models.Product{CategoryID: cat.ID, Name: "Café", Price: 15, Stock: 10, State: true}
	require.NoError(t, db.Create(&product).Error)
	client := models.Client{FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com", State: true}
	require.NoError(t, db.Create(&client).Error)
	method := models.PaymentMethod{Name: "Efectivo", State: true}
	require.NoError(t, db.Create(&method).Error)
	bill := models.Bill{ClientID: client.ID, PaymentMethodID: method.ID, Date: time.Now(), State: true}
	require.NoError(t, db.Create(&bill).Error)

	w := postForm(t, NewDetailHandler(db).Add, "/add_detail", url.Values{
		"bill": {intStr(bill.ID)}, "product": {intStr(product.ID)}, "quantity": {"3"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	var d models.Detail
	require.NoError(t, db.First(&d).Error)
	require.Equal(t, 3, d.Quantity)
	require.Equal(t, 15, d.UnitPrice)

	// later price changes must not rewrite the captured unit price
	require.NoError(t, db.Model(&product).Update("price", 99).Error)
	require.NoError(t, db.First(&d, d.ID).Error)
	require.Equal(t, 15, d.UnitPrice)
}

func TestDetailAdd_ZeroQuantityRejected(t *testing.T) {
	db := setupDB(t)
	cat := seedCategory(t, db, "Bebidas")
	product := models.Product{CategoryID: cat.ID, Name: "Café", Price: 15, Stock: 10, State: true}
	require.NoError(t, db.Create(&product).Error)
	client := models.Client{FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com", State: true}
	require.NoError(t, db.Create(&client).Error)
	method := models.PaymentMethod{Name: "Efectivo", State: true}
	require.NoError(t, db.Create(&method).Error)
	bill := models.Bill{ClientID: client.ID, PaymentMethodID: method.ID, Date: time.Now(), State: true}
	require.NoError(t, db.Create(&bill).Error)

	w := postForm(t, NewDetailHandler(db).Add, "/add_detail", url.Values{
		"bill": {intStr(bill.ID)}, "product": {intStr(product.ID)}, "quantity": {"0"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Debe ser mayor que cero")

	var count int64
	db.Model(&models.Detail{}).Count(&count)
	require.Zero(t, count)
}

func TestCategoryAdd_StoreFailureFlashes(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.Category{}))

	w := postForm(t, NewCategoryHandler(db).Add, "/add_category", url.Values{"name": {"Bebidas"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/add_category", w.Header().Get("Location"))

	var flashed bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" && c.Value != "" {
			flashed = true
		}
	}
	require.True(t, flashed, "a store failure must leave a flash message")
}

func TestClientAdd_DuplicateEmailFlashes(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.Client{FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com", State: true}).Error)

	w := postForm(t, NewClientHandler(db).Add, "/add_client", url.Values{
		"first_name": {"Otra"}, "last_name": {"Ana"}, "email": {"ana@example.com"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/add_client", w.Header().Get("Location"))

	var count int64
	db.Model(&models.Client{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func intStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
