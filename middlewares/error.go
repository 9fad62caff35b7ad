package middlewares

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edims-backend/config"
	"edims-backend/utils"
)

var devMode bool

// SetDevMode controls whether 500 responses carry the underlying error text.
func SetDevMode(on bool) {
	devMode = on
}

// ErrorHandler centralizes error responses and keeps messages sanitized.
// Transactions have already been rolled back by the time an error reaches here.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Application taxonomy errors carry their own status and code.
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(appErr)
	}

	// 2) Fiber errors (auth middleware, bad routes).
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "SERVER_ERROR"
		switch fe.Code {
		case fiber.StatusUnauthorized:
			code = "UNAUTHORIZED"
		case fiber.StatusForbidden:
			code = "FORBIDDEN"
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusBadRequest:
			code = "VALIDATION_ERROR"
		case fiber.StatusConflict:
			code = "CONFLICT"
		}
		return c.Status(fe.Code).JSON(fiber.Map{"code": code, "message": fe.Message})
	}

	// 3) Validation errors (400 + per-field info).
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make(map[string]string, len(ve))
		for _, f := range ve {
			out[f.Field()] = f.Tag()
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "VALIDATION_ERROR",
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 4) Database errors that map cleanly onto the taxonomy.
	if utils.IsDuplicateKey(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code": "DUPLICATE_KEY", "message": "duplicate value violates a unique constraint",
		})
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"code": "NOT_FOUND", "message": "record not found",
		})
	}

	// 5) Unknown errors (500).
	config.GetLogger().WithError(err).WithFields(map[string]any{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("internal error")

	body := fiber.Map{"code": "SERVER_ERROR", "message": "internal server error"}
	if devMode {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
