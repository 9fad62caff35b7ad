package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edims-backend/database"
	"edims-backend/middlewares"
	"edims-backend/models"
	"edims-backend/utils"
)

type ChallanItemDTO struct {
	ItemID           uint `json:"item_id" validate:"required"`
	QuantityReceived int  `json:"quantity_received" validate:"required,gt=0"`
}

type ChallanCreateDTO struct {
	ChallanNo    string           `json:"challan_no" validate:"required,min=1"`
	POID         uint             `json:"po_id" validate:"required"`
	DeliveryDate string           `json:"delivery_date" validate:"required"`
	Items        []ChallanItemDTO `json:"items" validate:"required,min=1,dive"`
}

// POST /api/challans
// Creates the delivery record and, in the same transaction, moves the matching
// PO lines and item stock. Any failure rolls back everything: no partial stock
// increments, no orphaned challan.
func CreateChallan(c *fiber.Ctx) error {
	var in ChallanCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	deliveryDate, err := parseDate(in.DeliveryDate)
	if err != nil {
		return utils.Validation("invalid delivery_date, expected YYYY-MM-DD")
	}

	var challanID uint
	err = database.WithTransaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := database.ForUpdate(tx).First(&po, in.POID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Purchase Order %d not found", in.POID)
			}
			return err
		}

		challan := models.Challan{
			ChallanNo:    in.ChallanNo,
			POID:         in.POID,
			UserID:       middlewares.CurrentUserID(c),
			DeliveryDate: deliveryDate,
		}
		if err := tx.Create(&challan).Error; err != nil {
			if utils.IsDuplicateKey(err) {
				return utils.Duplicate("Challan number already exists")
			}
			return err
		}
		challanID = challan.ID

		for _, it := range in.Items {
			line := models.ChallanItem{
				ChallanID:        challan.ID,
				ItemID:           it.ItemID,
				QuantityReceived: it.QuantityReceived,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}

			// The PO line is locked so two concurrent challans against the
			// same line cannot both pass the overflow check on stale reads.
			var poItem models.PurchaseOrderItem
			err := database.ForUpdate(tx).
				Where("po_id = ? AND item_id = ?", in.POID, it.ItemID).
				First(&poItem).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NotFound("Item %d not found on PO %d", it.ItemID, in.POID)
				}
				return err
			}

			newReceived := poItem.QuantityReceived + it.QuantityReceived
			if newReceived > poItem.QuantityOrdered {
				return utils.InvalidQuantity(
					"Cannot receive more than ordered for Item %d: ordered %d, already received %d, delivering %d",
					it.ItemID, poItem.QuantityOrdered, poItem.QuantityReceived, it.QuantityReceived)
			}
			if err := tx.Model(&poItem).Update("quantity_received", newReceived).Error; err != nil {
				return err
			}

			var item models.Item
			if err := database.ForUpdate(tx).First(&item, it.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NotFound("Item %d not found", it.ItemID)
				}
				return err
			}
			if err := tx.Model(&item).
				Update("current_stock", gorm.Expr("current_stock + ?", it.QuantityReceived)).Error; err != nil {
				return err
			}
		}

		// Re-read all lines; the PO completes only when every line is full.
		var allLines []models.PurchaseOrderItem
		if err := tx.Where("po_id = ?", in.POID).Find(&allLines).Error; err != nil {
			return err
		}
		complete := true
		for _, l := range allLines {
			if l.QuantityReceived < l.QuantityOrdered {
				complete = false
				break
			}
		}
		if complete {
			if err := tx.Model(&po).Update("status", models.POStatusCompleted).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Challan created and stock updated successfully",
		"challan_id": challanID,
	})
}

// GET /api/challans
func GetChallans(c *fiber.Ctx) error {
	var challans []models.Challan
	if err := database.DB.
		Preload("PurchaseOrder").
		Preload("Creator").
		Order("delivery_date DESC").
		Find(&challans).Error; err != nil {
		return err
	}
	return c.JSON(challans)
}

// GET /api/challans/:id
func GetChallanByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var challan models.Challan
	err = database.DB.
		Preload("PurchaseOrder").
		Preload("Creator").
		Preload("Items.Item").
		First(&challan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound("Challan not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(challan)
}

// ChallanItemSummary is one row of the authoritative per-item sums the bill UI
// builds its lines from.
type ChallanItemSummary struct {
	ItemID        uint   `json:"item_id"`
	ItemName      string `json:"item_name"`
	Size          string `json:"size"`
	Color         string `json:"color"`
	TotalQuantity int    `json:"total_quantity"`
}

// GET /api/challans/items-summary/query?challan_ids=1,2,3
func GetChallanItemsSummary(c *fiber.Ctx) error {
	ids, err := parseChallanIDs(c.Query("challan_ids"))
	if err != nil {
		return err
	}

	var rows []ChallanItemSummary
	err = database.DB.
		Table("challan_items").
		Select("challan_items.item_id, items.item_name, items.size, items.color, SUM(challan_items.quantity_received) AS total_quantity").
		Joins("JOIN items ON items.id = challan_items.item_id").
		Where("challan_items.challan_id IN ?", ids).
		Group("challan_items.item_id, items.item_name, items.size, items.color").
		Order("challan_items.item_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func parseChallanIDs(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, utils.Validation("challan_ids query parameter is required")
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || n == 0 {
			return nil, utils.Validation("invalid challan id %q", p)
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}
