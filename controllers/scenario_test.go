package controllers_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"edims-backend/models"
)

// TestProcurementLifecycle walks the whole flow over HTTP: order, receive in
// two deliveries, reconcile the vendor bill, disburse stock, and verify the
// ledger identity at the end.
func TestProcurementLifecycle(t *testing.T) {
	env := newTestEnv(t)

	// Masters (admin).
	res := env.request(t, "POST", "/api/vendors", env.adminToken, map[string]any{
		"vendor_name": "Acme Textiles", "gst_no": "27AAPFU0939F1ZV",
	})
	wantStatus(t, res, 201)
	var vendor models.Vendor
	decodeBody(t, res, &vendor)

	res = env.request(t, "POST", "/api/items", env.adminToken, map[string]any{
		"item_name": "Shirt", "size": "L", "color": "Blue",
	})
	wantStatus(t, res, 201)
	var item models.Item
	decodeBody(t, res, &item)

	res = env.request(t, "POST", "/api/departments", env.adminToken, map[string]any{
		"dept_name": "Housekeeping",
	})
	wantStatus(t, res, 201)
	var dept models.Department
	decodeBody(t, res, &dept)

	// Order 100 (staff).
	res = env.request(t, "POST", "/api/purchase-orders", env.staffToken, map[string]any{
		"purchase_no": "PO-2025-900",
		"vendor_id":   vendor.ID,
		"order_date":  "2025-07-01",
		"items":       []map[string]any{{"item_id": item.ID, "quantity_ordered": 100}},
	})
	wantStatus(t, res, 201)
	var po struct {
		POID uint `json:"po_id"`
	}
	decodeBody(t, res, &po)

	// First delivery: 60 of 100.
	res = env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no": "CH-900", "po_id": po.POID, "delivery_date": "2025-07-10",
		"items": []map[string]any{{"item_id": item.ID, "quantity_received": 60}},
	})
	wantStatus(t, res, 201)
	var ch1 struct {
		ChallanID uint `json:"challan_id"`
	}
	decodeBody(t, res, &ch1)

	var poRow models.PurchaseOrder
	if err := env.db.First(&poRow, po.POID).Error; err != nil {
		t.Fatalf("reload po: %v", err)
	}
	if poRow.Status != models.POStatusPending {
		t.Fatalf("po status = %q after partial delivery", poRow.Status)
	}
	if got := env.reloadItem(t, item.ID).CurrentStock; got != 60 {
		t.Fatalf("stock = %d after first delivery, want 60", got)
	}

	// Second delivery: the remaining 40 completes the order.
	res = env.request(t, "POST", "/api/challans", env.staffToken, map[string]any{
		"challan_no": "CH-901", "po_id": po.POID, "delivery_date": "2025-07-12",
		"items": []map[string]any{{"item_id": item.ID, "quantity_received": 40}},
	})
	wantStatus(t, res, 201)
	var ch2 struct {
		ChallanID uint `json:"challan_id"`
	}
	decodeBody(t, res, &ch2)

	if err := env.db.First(&poRow, po.POID).Error; err != nil {
		t.Fatalf("reload po: %v", err)
	}
	if poRow.Status != models.POStatusCompleted {
		t.Fatalf("po status = %q after full delivery, want %q", poRow.Status, models.POStatusCompleted)
	}
	if got := env.reloadItem(t, item.ID).CurrentStock; got != 100 {
		t.Fatalf("stock = %d after full delivery, want 100", got)
	}

	// The bill must declare exactly 100; 90 and 110 are rejected.
	billFor := func(qty int, billNo string) map[string]any {
		return map[string]any{
			"bill_no":     billNo,
			"vendor_id":   vendor.ID,
			"bill_date":   "2025-07-20",
			"challan_ids": []uint{ch1.ChallanID, ch2.ChallanID},
			"items":       []map[string]any{{"item_id": item.ID, "quantity": qty, "rate": "12.50"}},
		}
	}
	wantErrorCode(t, env.request(t, "POST", "/api/bills", env.staffToken, billFor(90, "BILL-900")), 400, "INVALID_QUANTITY")
	wantErrorCode(t, env.request(t, "POST", "/api/bills", env.staffToken, billFor(110, "BILL-900")), 400, "INVALID_QUANTITY")

	res = env.request(t, "POST", "/api/bills", env.staffToken, billFor(100, "BILL-900"))
	wantStatus(t, res, 201)
	var bill struct {
		BillID uint            `json:"bill_id"`
		Amount decimal.Decimal `json:"bill_amount"`
	}
	decodeBody(t, res, &bill)
	if want := decimal.RequireFromString("1250.00"); !bill.Amount.Equal(want) {
		t.Errorf("bill_amount = %s, want %s", bill.Amount, want)
	}

	// Disburse 30 to housekeeping.
	wantStatus(t, env.request(t, "POST", "/api/stock-issues", env.staffToken, map[string]any{
		"item_id": item.ID, "quantity_issued": 30, "dept_id": dept.ID,
		"purpose": "Uniforms", "issue_date": "2025-08-01",
	}), 201)

	// Ledger identity: received 100, issued 30.
	if got := env.reloadItem(t, item.ID).CurrentStock; got != 70 {
		t.Errorf("final stock = %d, want 70", got)
	}
	res = env.request(t, "GET", fmt.Sprintf("/api/reports/item-ledger/%d", item.ID), env.staffToken, nil)
	wantStatus(t, res, 200)
	var ledger struct {
		Ledger []struct {
			Quantity string `json:"quantity"`
		} `json:"ledger"`
	}
	decodeBody(t, res, &ledger)
	if len(ledger.Ledger) != 3 {
		t.Errorf("ledger entries = %d, want 3", len(ledger.Ledger))
	}

	// Settle and lock the bill.
	wantStatus(t, env.request(t, "PUT", fmt.Sprintf("/api/bills/%d/complete", bill.BillID), env.adminToken, nil), 200)
	wantErrorCode(t, env.request(t, "DELETE", fmt.Sprintf("/api/bills/%d", bill.BillID), env.staffToken, nil), 400, "LOCKED")
}
