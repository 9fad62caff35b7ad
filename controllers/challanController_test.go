package controllers_test

import (
	"fmt"
	"testing"

	"edims-backend/models"
)

func TestCreateChallanPartialDelivery(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustVendor(t, "Acme Textiles", "27AAPFU0939F1ZV")
	shirt := env.mustItem(t, "Shirt", "L", "Blue", 0)
	po := env.mustPO(t, vendor.ID, "PO-2025-001", map[uint]int{shirt.ID: 100})

	res := env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no":    "CH-001",
		"po_id":         po.ID,
		"delivery_date": "2025-07-10",
		"items": []map[string]any{
			{"item_id": shirt.ID, "quantity_received": 60},
		},
	})
	wantStatus(t, res, 201)

	var body struct {
		ChallanID uint `json:"challan_id"`
	}
	decodeBody(t, res, &body)
	if body.ChallanID == 0 {
		t.Fatal("expected a challan_id in the response")
	}

	if got := env.reloadItem(t, shirt.ID).CurrentStock; got != 60 {
		t.Errorf("current_stock = %d, want 60", got)
	}

	var line models.PurchaseOrderItem
	if err := env.db.Where("po_id = ? AND item_id = ?", po.ID, shirt.ID).First(&line).Error; err != nil {
		t.Fatalf("load po line: %v", err)
	}
	if line.QuantityReceived != 60 {
		t.Errorf("quantity_received = %d, want 60", line.QuantityReceived)
	}

	var reloaded models.PurchaseOrder
	if err := env.db.First(&reloaded, po.ID).Error; err != nil {
		t.Fatalf("reload po: %v", err)
	}
	if reloaded.Status != models.POStatusPending {
		t.Errorf("po status = %q, want %q after partial delivery", reloaded.Status, models.POStatusPending)
	}
}

func TestCreateChallanCompletesPurchaseOrder(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustVendor(t, "Acme Textiles", "27AAPFU0939F1ZV")
	shirt := env.mustItem(t, "Shirt", "L", "Blue", 0)
	pants := env.mustItem(t, "Pants", "32", "Black", 0)
	po := env.mustPO(t, vendor.ID, "PO-2025-002", map[uint]int{shirt.ID: 100, pants.ID: 50})

	res := env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no":    "CH-010",
		"po_id":         po.ID,
		"delivery_date": "2025-07-10",
		"items": []map[string]any{
			{"item_id": shirt.ID, "quantity_received": 100},
		},
	})
	wantStatus(t, res, 201)

	var reloaded models.PurchaseOrder
	if err := env.db.First(&reloaded, po.ID).Error; err != nil {
		t.Fatalf("reload po: %v", err)
	}
	if reloaded.Status != models.POStatusPending {
		t.Fatalf("po completed while a line is still open")
	}

	res = env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no":    "CH-011",
		"po_id":         po.ID,
		"delivery_date": "2025-07-15",
		"items": []map[string]any{
			{"item_id": pants.ID, "quantity_received": 50},
		},
	})
	wantStatus(t, res, 201)

	if err := env.db.First(&reloaded, po.ID).Error; err != nil {
		t.Fatalf("reload po: %v", err)
	}
	if reloaded.Status != models.POStatusCompleted {
		t.Errorf("po status = %q, want %q once every line is full", reloaded.Status, models.POStatusCompleted)
	}
	if got := env.reloadItem(t, shirt.ID).CurrentStock; got != 100 {
		t.Errorf("shirt stock = %d, want 100", got)
	}
	if got := env.reloadItem(t, pants.ID).CurrentStock; got != 50 {
		t.Errorf("pants stock = %d, want 50", got)
	}
}

func TestCreateChallanOverDeliveryRollsBack(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustVendor(t, "Acme Textiles", "27AAPFU0939F1ZV")
	shirt := env.mustItem(t, "Shirt", "L", "Blue", 0)
	po := env.mustPO(t, vendor.ID, "PO-2025-003", map[uint]int{shirt.ID: 100})

	res := env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no":    "CH-020",
		"po_id":         po.ID,
		"delivery_date": "2025-07-10",
		"items": []map[string]any{
			{"item_id": shirt.ID, "quantity_received": 90},
		},
	})
	wantStatus(t, res, 201)

	// 90 received, 20 more would overflow the 100 ordered.
	res = env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no":    "CH-021",
		"po_id":         po.ID,
		"delivery_date": "2025-07-12",
		"items": []map[string]any{
			{"item_id": shirt.ID, "quantity_received": 20},
		},
	})
	wantErrorCode(t, res, 400, "INVALID_QUANTITY")

	if n := env.count(t, &models.Challan{}, "challan_no = ?", "CH-021"); n != 0 {
		t.Errorf("rejected challan was persisted")
	}
	if got := env.reloadItem(t, shirt.ID).CurrentStock; got != 90 {
		t.Errorf("current_stock = %d, want 90 after rollback", got)
	}
	var line models.PurchaseOrderItem
	if err := env.db.Where("po_id = ?", po.ID).First(&line).Error; err != nil {
		t.Fatalf("load po line: %v", err)
	}
	if line.QuantityReceived != 90 {
		t.Errorf("quantity_received = %d, want 90 after rollback", line.QuantityReceived)
	}
}

func TestCreateChallanItemNotOnPO(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustVendor(t, "Acme Textiles", "27AAPFU0939F1ZV")
	shirt := env.mustItem(t, "Shirt", "L", "Blue", 0)
	other := env.mustItem(t, "Cap", "", "Red", 0)
	po := env.mustPO(t, vendor.ID, "PO-2025-004", map[uint]int{shirt.ID: 10})

	res := env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no":    "CH-030",
		"po_id":         po.ID,
		"delivery_date": "2025-07-10",
		"items": []map[string]any{
			{"item_id": other.ID, "quantity_received": 5},
		},
	})
	wantErrorCode(t, res, 404, "NOT_FOUND")

	if n := env.count(t, &models.Challan{}, ""); n != 0 {
		t.Errorf("challan persisted despite rollback")
	}
	if got := env.reloadItem(t, other.ID).CurrentStock; got != 0 {
		t.Errorf("stock moved for an item not on the PO")
	}
}

func TestCreateChallanUnknownPO(t *testing.T) {
	env := newTestEnv(t)
	shirt := env.mustItem(t, "Shirt", "L", "Blue", 0)

	res := env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no":    "CH-040",
		"po_id":         999,
		"delivery_date": "2025-07-10",
		"items": []map[string]any{
			{"item_id": shirt.ID, "quantity_received": 5},
		},
	})
	wantErrorCode(t, res, 404, "NOT_FOUND")
}

func TestCreateChallanDuplicateNumber(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustVendor(t, "Acme Textiles", "27AAPFU0939F1ZV")
	shirt := env.mustItem(t, "Shirt", "L", "Blue", 0)
	po := env.mustPO(t, vendor.ID, "PO-2025-005", map[uint]int{shirt.ID: 100})

	payload := map[string]any{
		"challan_no":    "CH-050",
		"po_id":         po.ID,
		"delivery_date": "2025-07-10",
		"items": []map[string]any{
			{"item_id": shirt.ID, "quantity_received": 10},
		},
	}
	wantStatus(t, env.request(t, "POST", "/api/challans", env.staffToken, payload), 201)

	res := env.request(t, "POST", "/api/challans", env.staffToken, payload)
	wantErrorCode(t, res, 400, "DUPLICATE_KEY")

	if got := env.reloadItem(t, shirt.ID).CurrentStock; got != 10 {
		t.Errorf("current_stock = %d, want 10 (duplicate must not move stock)", got)
	}
}

func TestChallanItemsSummary(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustVendor(t, "Acme Textiles", "27AAPFU0939F1ZV")
	shirt := env.mustItem(t, "Shirt", "L", "Blue", 0)
	pants := env.mustItem(t, "Pants", "32", "Black", 0)
	po := env.mustPO(t, vendor.ID, "PO-2025-006", map[uint]int{shirt.ID: 100, pants.ID: 50})

	wantStatus(t, env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no": "CH-060", "po_id": po.ID, "delivery_date": "2025-07-10",
		"items": []map[string]any{{"item_id": shirt.ID, "quantity_received": 60}},
	}), 201)
	wantStatus(t, env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no": "CH-061", "po_id": po.ID, "delivery_date": "2025-07-12",
		"items": []map[string]any{
			{"item_id": shirt.ID, "quantity_received": 40},
			{"item_id": pants.ID, "quantity_received": 50},
		},
	}), 201)

	var challans []models.Challan
	if err := env.db.Order("id ASC").Find(&challans).Error; err != nil {
		t.Fatalf("load challans: %v", err)
	}

	path := fmt.Sprintf("/api/challans/items-summary/query?challan_ids=%d,%d", challans[0].ID, challans[1].ID)
	res := env.request(t, "GET", path, env.staffToken, nil)
	wantStatus(t, res, 200)

	var rows []struct {
		ItemID        uint   `json:"item_id"`
		ItemName      string `json:"item_name"`
		TotalQuantity int    `json:"total_quantity"`
	}
	decodeBody(t, res, &rows)
	if len(rows) != 2 {
		t.Fatalf("summary rows = %d, want 2", len(rows))
	}
	got := map[uint]int{}
	for _, r := range rows {
		got[r.ItemID] = r.TotalQuantity
	}
	if got[shirt.ID] != 100 {
		t.Errorf("shirt total = %d, want 100", got[shirt.ID])
	}
	if got[pants.ID] != 50 {
		t.Errorf("pants total = %d, want 50", got[pants.ID])
	}
}

func TestChallanItemsSummaryValidation(t *testing.T) {
	env := newTestEnv(t)

	res := env.request(t, "GET", "/api/challans/items-summary/query", env.staffToken, nil)
	wantErrorCode(t, res, 400, "VALIDATION_ERROR")

	res = env.request(t, "GET", "/api/challans/items-summary/query?challan_ids=1,abc", env.staffToken, nil)
	wantErrorCode(t, res, 400, "VALIDATION_ERROR")
}
