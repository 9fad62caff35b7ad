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

type DepartmentDTO struct {
	DeptName string `json:"dept_name" validate:"required,min=1"`
}

// POST /api/departments (admin only)
func CreateDepartment(c *fiber.Ctx) error {
	var in DepartmentDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	dept := models.Department{DeptName: in.DeptName}
	if err := database.DB.Create(&dept).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return utils.Duplicate("Department name already exists")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dept)
}

// GET /api/departments
func GetDepartments(c *fiber.Ctx) error {
	var depts []models.Department
	if err := database.DB.Order("dept_name ASC").Find(&depts).Error; err != nil {
		return err
	}
	return c.JSON(depts)
}

// GET /api/departments/:id
func GetDepartmentByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var dept models.Department
	if err := database.DB.First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Department not found")
		}
		return err
	}
	return c.JSON(dept)
}

// PUT /api/departments/:id (admin only)
func UpdateDepartment(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var in DepartmentDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	var dept models.Department
	if err := database.DB.First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Department not found")
		}
		return err
	}

	if err := database.DB.Model(&dept).Update("dept_name", in.DeptName).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return utils.Duplicate("Department name already exists")
		}
		return err
	}
	return c.JSON(dept)
}

// DELETE /api/departments/:id (admin only)
func DeleteDepartment(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var dept models.Department
	if err := database.DB.First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Department not found")
		}
		return err
	}

	var issueCount int64
	if err := database.DB.Model(&models.StockIssue{}).
		Where("dept_id = ?", id).Count(&issueCount).Error; err != nil {
		return err
	}
	if issueCount > 0 {
		return utils.Locked("Cannot delete department with stock issue history")
	}

	if err := database.DB.Delete(&dept).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Department deleted successfully"})
}
