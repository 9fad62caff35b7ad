package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edims-backend/database"
	"edims-backend/middlewares"
	"edims-backend/models"
	"edims-backend/utils"
)

type VendorCreateDTO struct {
	VendorName    string `json:"vendor_name" validate:"required,min=1"`
	GstNo         string `json:"gst_no" validate:"required,len=15,alphanum"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
}

type VendorUpdateDTO struct {
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
}

// POST /api/vendors (admin only)
func CreateVendor(c *fiber.Ctx) error {
	var in VendorCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	vendor := models.Vendor{
		VendorName:    in.VendorName,
		GstNo:         strings.ToUpper(in.GstNo),
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
	}
	if err := database.DB.Create(&vendor).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			msg := "Vendor name or GST number already exists"
			if strings.Contains(err.Error(), "vendor_name") {
				msg = "Vendor name already exists"
			} else if strings.Contains(err.Error(), "gst_no") {
				msg = "GST number already exists"
			}
			return utils.Duplicate(msg)
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(vendor)
}

// GET /api/vendors
func GetVendors(c *fiber.Ctx) error {
	var vendors []models.Vendor
	if err := database.DB.Order("vendor_name ASC").Find(&vendors).Error; err != nil {
		return err
	}
	return c.JSON(vendors)
}

// GET /api/vendors/:id
func GetVendorByID(c *fiber.Ctx) error {
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
	return c.JSON(vendor)
}

// PUT /api/vendors/:id (admin only)
func UpdateVendor(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var in VendorUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	var vendor models.Vendor
	if err := database.DB.First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Vendor not found")
		}
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := database.DB.Model(&vendor).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := database.DB.First(&vendor, id).Error; err != nil {
		return err
	}
	return c.JSON(vendor)
}

// DELETE /api/vendors/:id (admin only)
func DeleteVendor(c *fiber.Ctx) error {
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

	// A vendor with purchase history stays on the books.
	var poCount int64
	if err := database.DB.Model(&models.PurchaseOrder{}).
		Where("vendor_id = ?", id).Count(&poCount).Error; err != nil {
		return err
	}
	if poCount > 0 {
		return utils.Locked("Cannot delete vendor with existing purchase orders")
	}

	if err := database.DB.Delete(&vendor).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Vendor deleted successfully"})
}
