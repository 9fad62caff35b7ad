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

type StockIssueCreateDTO struct {
	ItemID         uint   `json:"item_id" validate:"required"`
	QuantityIssued int    `json:"quantity_issued" validate:"required,gt=0"`
	DeptID         uint   `json:"dept_id" validate:"required"`
	Purpose        string `json:"purpose" validate:"required,min=1"`
	IssueDate      string `json:"issue_date" validate:"required"`
}

// POST /api/stock-issues
// The item row is locked for the transaction so two concurrent issues cannot
// both pass the sufficiency check against stale stock.
func CreateStockIssue(c *fiber.Ctx) error {
	var in StockIssueCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	issueDate, err := parseDate(in.IssueDate)
	if err != nil {
		return utils.Validation("invalid issue_date, expected YYYY-MM-DD")
	}

	var issue models.StockIssue
	err = database.WithTransaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := database.ForUpdate(tx).First(&item, in.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Item not found")
			}
			return err
		}

		var dept models.Department
		if err := tx.First(&dept, in.DeptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Department not found")
			}
			return err
		}

		if item.CurrentStock < in.QuantityIssued {
			return utils.InsufficientStock(item.CurrentStock)
		}

		issue = models.StockIssue{
			ItemID:         in.ItemID,
			QuantityIssued: in.QuantityIssued,
			DeptID:         in.DeptID,
			Purpose:        in.Purpose,
			UserID:         middlewares.CurrentUserID(c),
			IssueDate:      issueDate,
		}
		if err := tx.Create(&issue).Error; err != nil {
			return err
		}

		return tx.Model(&item).
			Update("current_stock", item.CurrentStock-in.QuantityIssued).Error
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Stock issued successfully and inventory updated",
		"stock_issue": issue,
	})
}

// GET /api/stock-issues
func GetStockIssues(c *fiber.Ctx) error {
	var issues []models.StockIssue
	if err := database.DB.
		Preload("Item").
		Preload("Department").
		Preload("Creator").
		Order("issue_date DESC").
		Find(&issues).Error; err != nil {
		return err
	}
	return c.JSON(issues)
}
