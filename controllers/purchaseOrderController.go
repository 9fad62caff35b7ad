package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edims-backend/database"
	"edims-backend/middlewares"
	"edims-backend/models"
	"edims-backend/utils"
)

type POItemDTO struct {
	ItemID          uint `json:"item_id" validate:"required"`
	QuantityOrdered int  `json:"quantity_ordered" validate:"required,gt=0"`
}

type POCreateDTO struct {
	PurchaseNo string      `json:"purchase_no" validate:"required,min=1"`
	VendorID   uint        `json:"vendor_id" validate:"required"`
	OrderDate  string      `json:"order_date" validate:"required"`
	Remarks    string      `json:"remarks"`
	Items      []POItemDTO `json:"items" validate:"required,min=1,dive"`
}

// POST /api/purchase-orders
// Header and lines commit together or not at all.
func CreatePurchaseOrder(c *fiber.Ctx) error {
	var in POCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	orderDate, err := parseDate(in.OrderDate)
	if err != nil {
		return utils.Validation("invalid order_date, expected YYYY-MM-DD")
	}

	var poID uint
	err = database.WithTransaction(func(tx *gorm.DB) error {
		var vendor models.Vendor
		if err := tx.First(&vendor, in.VendorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Vendor %d not found", in.VendorID)
			}
			return err
		}

		po := models.PurchaseOrder{
			PurchaseNo: in.PurchaseNo,
			VendorID:   in.VendorID,
			UserID:     middlewares.CurrentUserID(c),
			OrderDate:  orderDate,
			Status:     models.POStatusPending,
			Remarks:    in.Remarks,
		}
		if err := tx.Create(&po).Error; err != nil {
			if utils.IsDuplicateKey(err) {
				return utils.Duplicate("Purchase Order number already exists")
			}
			return err
		}
		poID = po.ID

		lines := make([]models.PurchaseOrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			var item models.Item
			if err := tx.First(&item, it.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NotFound("Item %d not found", it.ItemID)
				}
				return err
			}
			lines = append(lines, models.PurchaseOrderItem{
				POID:            po.ID,
				ItemID:          it.ItemID,
				QuantityOrdered: it.QuantityOrdered,
			})
		}
		if err := tx.Create(&lines).Error; err != nil {
			if utils.IsDuplicateKey(err) {
				return utils.Validation("duplicate item on purchase order")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	full, err := loadFullPO(poID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(full)
}

// GET /api/purchase-orders
func GetPurchaseOrders(c *fiber.Ctx) error {
	var orders []models.PurchaseOrder
	if err := database.DB.
		Preload("Vendor").
		Preload("Creator").
		Order("order_date DESC").
		Find(&orders).Error; err != nil {
		return err
	}
	return c.JSON(orders)
}

// GET /api/purchase-orders/:id
func GetPurchaseOrderByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	full, err := loadFullPO(id)
	if err != nil {
		return err
	}
	return c.JSON(full)
}

func loadFullPO(id uint) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := database.DB.
		Preload("Vendor").
		Preload("Creator").
		Preload("Items.Item").
		First(&po, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Purchase Order not found")
	}
	if err != nil {
		return nil, err
	}
	return &po, nil
}
