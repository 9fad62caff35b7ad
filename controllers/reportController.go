package controllers

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"edims-backend/database"
	"edims-backend/models"
	"edims-backend/utils"
)

// GET /api/reports/stock
func GetStockReport(c *fiber.Ctx) error {
	var items []models.Item
	if err := database.DB.Order("item_name ASC").Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(items)
}

// LedgerEntry is one stock-affecting event for an item, signed by direction.
type LedgerEntry struct {
	Date     string `json:"date"`
	Type     string `json:"type"` // INCOMING | OUTGOING
	Details  string `json:"details"`
	Quantity string `json:"quantity"` // signed, e.g. "+60" / "-10"
}

// GET /api/reports/item-ledger/:id
// Merges incoming challan lines and outgoing stock issues, sorted by date.
func GetItemLedger(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var item models.Item
	if err := database.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Item not found")
		}
		return err
	}

	var incoming []models.ChallanItem
	if err := database.DB.
		Preload("Challan.PurchaseOrder").
		Where("item_id = ?", id).
		Find(&incoming).Error; err != nil {
		return err
	}

	var outgoing []models.StockIssue
	if err := database.DB.
		Preload("Department").
		Where("item_id = ?", id).
		Find(&outgoing).Error; err != nil {
		return err
	}

	ledger := make([]LedgerEntry, 0, len(incoming)+len(outgoing))
	for _, tx := range incoming {
		purchaseNo := ""
		if tx.Challan != nil && tx.Challan.PurchaseOrder != nil {
			purchaseNo = tx.Challan.PurchaseOrder.PurchaseNo
		}
		challanNo := ""
		date := ""
		if tx.Challan != nil {
			challanNo = tx.Challan.ChallanNo
			date = tx.Challan.DeliveryDate.Format(dateLayout)
		}
		ledger = append(ledger, LedgerEntry{
			Date:     date,
			Type:     "INCOMING",
			Details:  fmt.Sprintf("Received via Challan #%s (PO #%s)", challanNo, purchaseNo),
			Quantity: fmt.Sprintf("+%d", tx.QuantityReceived),
		})
	}
	for _, tx := range outgoing {
		deptName := ""
		if tx.Department != nil {
			deptName = tx.Department.DeptName
		}
		ledger = append(ledger, LedgerEntry{
			Date:     tx.IssueDate.Format(dateLayout),
			Type:     "OUTGOING",
			Details:  fmt.Sprintf("Issued to %s for %s", deptName, tx.Purpose),
			Quantity: fmt.Sprintf("-%d", tx.QuantityIssued),
		})
	}
	sort.SliceStable(ledger, func(i, j int) bool { return ledger[i].Date < ledger[j].Date })

	return c.JSON(fiber.Map{
		"item_details": item,
		"ledger":       ledger,
	})
}

// GET /api/reports/vendor-ledger/:id
// Sums billed vs paid (Completed) amounts into an outstanding balance.
func GetVendorLedger(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var vendor models.Vendor
	if err := database.DB.First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Vendor not found")
		}
		return err
	}

	var bills []models.Bill
	if err := database.DB.
		Where("vendor_id = ?", id).
		Order("bill_date ASC").
		Find(&bills).Error; err != nil {
		return err
	}

	totalBilled := decimal.Zero
	totalPaid := decimal.Zero
	for _, b := range bills {
		totalBilled = totalBilled.Add(b.Amount)
		if b.Status == models.BillStatusCompleted {
			totalPaid = totalPaid.Add(b.Amount)
		}
	}

	return c.JSON(fiber.Map{
		"vendor_details": vendor,
		"summary": fiber.Map{
			"totalBilled":        totalBilled.StringFixed(2),
			"totalPaid":          totalPaid.StringFixed(2),
			"outstandingBalance": totalBilled.Sub(totalPaid).StringFixed(2),
		},
		"bills": bills,
	})
}

// GET /api/reports/bill-summary
func GetBillSummary(c *fiber.Ctx) error {
	var bills []models.Bill
	if err := database.DB.
		Preload("Vendor").
		Order("bill_date DESC").
		Find(&bills).Error; err != nil {
		return err
	}
	return c.JSON(bills)
}
