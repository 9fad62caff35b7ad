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

type ItemCreateDTO struct {
	ItemName string `json:"item_name" validate:"required,min=1"`
	Size     string `json:"size"`
	Color    string `json:"color"`
}

type ItemUpdateDTO struct {
	ItemName *string `json:"item_name" validate:"omitempty,min=1"`
	Size     *string `json:"size"`
	Color    *string `json:"color"`
}

// POST /api/items (admin only)
func CreateItem(c *fiber.Ctx) error {
	var in ItemCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	item := models.Item{
		ItemName: in.ItemName,
		Size:     in.Size,
		Color:    in.Color,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return utils.Duplicate("Item with this name, size, and color already exists")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GET /api/items
func GetItems(c *fiber.Ctx) error {
	var items []models.Item
	if err := database.DB.Order("id ASC").Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(items)
}

// GET /api/items/:id
func GetItemByID(c *fiber.Ctx) error {
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
	return c.JSON(item)
}

// PUT /api/items/:id (admin only)
func UpdateItem(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var in ItemUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	var item models.Item
	if err := database.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Item not found")
		}
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := database.DB.Model(&item).Updates(updates).Error; err != nil {
			if utils.IsDuplicateKey(err) {
				return utils.Duplicate("Item with this name, size, and color already exists")
			}
			return err
		}
	}

	if err := database.DB.First(&item, id).Error; err != nil {
		return err
	}
	return c.JSON(item)
}

// DELETE /api/items/:id (admin only)
// An item holding stock cannot be removed; the stock would become untraceable.
func DeleteItem(c *fiber.Ctx) error {
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
	if item.CurrentStock > 0 {
		return utils.Locked("Cannot delete item with stock > 0")
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}
