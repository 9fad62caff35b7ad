package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"edims-backend/database"
	"edims-backend/middlewares"
	"edims-backend/models"
	"edims-backend/utils"
)

type BillItemDTO struct {
	ItemID   uint            `json:"item_id" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
	Rate     decimal.Decimal `json:"rate"`
}

type BillCreateDTO struct {
	BillNo     string        `json:"bill_no" validate:"required,min=1"`
	VendorID   uint          `json:"vendor_id" validate:"required"`
	BillDate   string        `json:"bill_date" validate:"required"`
	ChallanIDs []uint        `json:"challan_ids" validate:"required,min=1"`
	Items      []BillItemDTO `json:"items" validate:"required,min=1,dive"`
}

// POST /api/bills
// Line quantities and the total are client-supplied and therefore untrusted:
// each submitted quantity must exactly equal the sum of quantity_received for
// that item across the selected challans, and the amount is recomputed
// server-side. Any mismatch fails the whole request and persists nothing.
func CreateBill(c *fiber.Ctx) error {
	var in BillCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	billDate, err := parseDate(in.BillDate)
	if err != nil {
		return utils.Validation("invalid bill_date, expected YYYY-MM-DD")
	}
	for _, it := range in.Items {
		if it.Rate.IsNegative() {
			return utils.Validation("rate must not be negative for item %d", it.ItemID)
		}
	}

	var billID uint
	err = database.WithTransaction(func(tx *gorm.DB) error {
		var vendor models.Vendor
		if err := tx.First(&vendor, in.VendorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Vendor %d not found", in.VendorID)
			}
			return err
		}

		var challanCount int64
		if err := tx.Model(&models.Challan{}).
			Where("id IN ?", in.ChallanIDs).
			Count(&challanCount).Error; err != nil {
			return err
		}
		if challanCount != int64(len(in.ChallanIDs)) {
			return utils.NotFound("one or more challans do not exist")
		}

		// Lock the challan lines before summing so a concurrent bill over
		// overlapping challans cannot validate against a moving target.
		// Aggregation happens on the locked rows, not in SQL: FOR UPDATE
		// cannot be combined with GROUP BY.
		var lines []models.ChallanItem
		if err := database.ForUpdate(tx).
			Where("challan_id IN ?", in.ChallanIDs).
			Find(&lines).Error; err != nil {
			return err
		}
		correctQty := make(map[uint]int, len(lines))
		for _, l := range lines {
			correctQty[l.ItemID] += l.QuantityReceived
		}

		amount := decimal.Zero
		for _, it := range in.Items {
			want, ok := correctQty[it.ItemID]
			if !ok || it.Quantity != want {
				return utils.InvalidQuantity(
					"Invalid quantity for item_id %d. Submitted %d, but challans only have %d.",
					it.ItemID, it.Quantity, want)
			}
			amount = amount.Add(utils.LineTotal(it.Quantity, it.Rate))
		}

		bill := models.Bill{
			BillNo:   in.BillNo,
			VendorID: in.VendorID,
			UserID:   middlewares.CurrentUserID(c),
			BillDate: billDate,
			Amount:   amount,
			Status:   models.BillStatusPending,
		}
		if err := tx.Create(&bill).Error; err != nil {
			if utils.IsDuplicateKey(err) {
				return utils.Duplicate("Bill number already exists")
			}
			return err
		}
		billID = bill.ID

		billItems := make([]models.BillItem, 0, len(in.Items))
		for _, it := range in.Items {
			billItems = append(billItems, models.BillItem{
				BillID:   bill.ID,
				ItemID:   it.ItemID,
				Quantity: it.Quantity,
				Rate:     it.Rate.Round(2),
			})
		}
		if err := tx.Create(&billItems).Error; err != nil {
			return err
		}

		links := make([]models.BillChallan, 0, len(in.ChallanIDs))
		for _, cid := range in.ChallanIDs {
			links = append(links, models.BillChallan{BillID: bill.ID, ChallanID: cid})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return err
	}

	full, err := loadFullBill(billID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(full)
}

// GET /api/bills
func GetBills(c *fiber.Ctx) error {
	var bills []models.Bill
	if err := database.DB.
		Preload("Vendor").
		Preload("Creator").
		Order("bill_date DESC").
		Find(&bills).Error; err != nil {
		return err
	}
	return c.JSON(bills)
}

// GET /api/bills/:id
func GetBillByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	full, err := loadFullBill(id)
	if err != nil {
		return err
	}
	return c.JSON(full)
}

// PUT /api/bills/:id/complete (admin only)
func CompleteBill(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	userID := middlewares.CurrentUserID(c)

	var bill models.Bill
	err = database.WithTransaction(func(tx *gorm.DB) error {
		if err := tx.First(&bill, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Bill not found")
			}
			return err
		}
		if bill.Status == models.BillStatusCompleted {
			return utils.Locked("Bill is already completed")
		}

		if err := tx.Model(&bill).Update("status", models.BillStatusCompleted).Error; err != nil {
			return err
		}
		bill.Status = models.BillStatusCompleted

		log := models.AuditLog{
			UserID:     userID,
			ActionType: "UPDATE",
			Module:     "Bill",
			RecordID:   bill.ID,
			Details: models.AuditDetails(map[string]any{
				"bill_no": bill.BillNo,
				"change":  "marked as Completed",
			}),
		}
		return tx.Create(&log).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Bill marked as completed and audit log created",
		"bill":    bill,
	})
}

// DELETE /api/bills/:id
// Permitted only while the bill is Pending; a Completed bill is locked.
func DeleteBill(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	userID := middlewares.CurrentUserID(c)

	err = database.WithTransaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.First(&bill, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Bill not found")
			}
			return err
		}
		if bill.Status == models.BillStatusCompleted {
			return utils.Locked("Cannot delete a completed bill. It is locked.")
		}

		if err := tx.Where("bill_id = ?", id).Delete(&models.BillItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", id).Delete(&models.BillChallan{}).Error; err != nil {
			return err
		}

		log := models.AuditLog{
			UserID:     userID,
			ActionType: "DELETE",
			Module:     "Bill",
			RecordID:   bill.ID,
			Details: models.AuditDetails(map[string]any{
				"bill_no": bill.BillNo,
				"change":  "pending bill deleted",
			}),
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		return tx.Delete(&bill).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Pending bill deleted successfully"})
}

func loadFullBill(id uint) (*models.Bill, error) {
	var bill models.Bill
	err := database.DB.
		Preload("Vendor").
		Preload("Creator").
		Preload("Items.Item").
		Preload("Challans").
		First(&bill, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Bill not found")
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}
