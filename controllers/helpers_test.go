package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edims-backend/config"
	"edims-backend/database"
	"edims-backend/middlewares"
	"edims-backend/models"
	"edims-backend/routes"
)

var dbSeq int64

// testEnv wires a fresh in-memory database, the full route table and two
// authenticated users (one Admin, one Staff) for a single test.
type testEnv struct {
	app        *fiber.App
	db         *gorm.DB
	admin      models.User
	staff      models.User
	adminToken string
	staffToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Each test gets its own named in-memory database; cache=shared keeps it
	// alive across the pool's connections.
	dsn := fmt.Sprintf("file:edims_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	database.Set(db)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret"},
		Env: "development",
	}
	middlewares.Init(cfg)
	middlewares.SetDevMode(true)

	if err := database.SeedAdmin(db, "admin", "admin-pass-1"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	env := &testEnv{db: db}
	if err := db.Where("username = ?", "admin").First(&env.admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}

	env.staff = models.User{Username: "clerk", FullName: "Stock Clerk", Role: models.RoleStaff}
	if err := env.staff.SetPassword("clerk-pass-1"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := db.Create(&env.staff).Error; err != nil {
		t.Fatalf("create staff: %v", err)
	}

	if env.adminToken, err = middlewares.GenerateToken(&env.admin); err != nil {
		t.Fatalf("admin token: %v", err)
	}
	if env.staffToken, err = middlewares.GenerateToken(&env.staff); err != nil {
		t.Fatalf("staff token: %v", err)
	}

	env.app = fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	routes.Register(env.app)
	return env
}

// request runs an HTTP request through the app. A non-nil body is JSON-encoded.
func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return res
}

func decodeBody(t *testing.T, res *http.Response, dst any) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func wantStatus(t *testing.T, res *http.Response, want int) {
	t.Helper()
	if res.StatusCode != want {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("status = %d, want %d (body: %s)", res.StatusCode, want, b)
	}
}

// wantErrorCode asserts the status and the taxonomy code in the error body.
func wantErrorCode(t *testing.T, res *http.Response, status int, code string) {
	t.Helper()
	if res.StatusCode != status {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("status = %d, want %d (body: %s)", res.StatusCode, status, b)
	}
	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, res, &body)
	if body.Code != code {
		t.Fatalf("error code = %q, want %q", body.Code, code)
	}
}

// Fixture helpers write master data directly so endpoint tests stay focused.

func (e *testEnv) mustVendor(t *testing.T, name, gst string) models.Vendor {
	t.Helper()
	v := models.Vendor{VendorName: name, GstNo: gst, ContactPerson: "Contact", Phone: "9876543210"}
	if err := e.db.Create(&v).Error; err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	return v
}

func (e *testEnv) mustItem(t *testing.T, name, size, color string, stock int) models.Item {
	t.Helper()
	it := models.Item{ItemName: name, Size: size, Color: color, CurrentStock: stock}
	if err := e.db.Create(&it).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return it
}

func (e *testEnv) mustDepartment(t *testing.T, name string) models.Department {
	t.Helper()
	d := models.Department{DeptName: name}
	if err := e.db.Create(&d).Error; err != nil {
		t.Fatalf("create department: %v", err)
	}
	return d
}

func (e *testEnv) mustPO(t *testing.T, vendorID uint, purchaseNo string, lines map[uint]int) models.PurchaseOrder {
	t.Helper()
	po := models.PurchaseOrder{
		PurchaseNo: purchaseNo,
		VendorID:   vendorID,
		UserID:     e.admin.ID,
		OrderDate:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:     models.POStatusPending,
	}
	if err := e.db.Create(&po).Error; err != nil {
		t.Fatalf("create po: %v", err)
	}
	for itemID, qty := range lines {
		line := models.PurchaseOrderItem{POID: po.ID, ItemID: itemID, QuantityOrdered: qty}
		if err := e.db.Create(&line).Error; err != nil {
			t.Fatalf("create po line: %v", err)
		}
	}
	return po
}

func (e *testEnv) mustChallan(t *testing.T, poID uint, challanNo string, lines map[uint]int) models.Challan {
	t.Helper()
	ch := models.Challan{
		ChallanNo:    challanNo,
		POID:         poID,
		UserID:       e.admin.ID,
		DeliveryDate: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := e.db.Create(&ch).Error; err != nil {
		t.Fatalf("create challan: %v", err)
	}
	for itemID, qty := range lines {
		line := models.ChallanItem{ChallanID: ch.ID, ItemID: itemID, QuantityReceived: qty}
		if err := e.db.Create(&line).Error; err != nil {
			t.Fatalf("create challan line: %v", err)
		}
	}
	return ch
}

func (e *testEnv) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func (e *testEnv) reloadItem(t *testing.T, id uint) models.Item {
	t.Helper()
	var it models.Item
	if err := e.db.First(&it, id).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	return it
}
