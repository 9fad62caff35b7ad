package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AppError is the application error taxonomy. Controllers return these and the
// central error handler renders them as {code, message} JSON.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func Validation(format string, args ...any) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "VALIDATION_ERROR", Message: fmt.Sprintf(format, args...)}
}

func Duplicate(format string, args ...any) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "DUPLICATE_KEY", Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Code: "NOT_FOUND", Message: fmt.Sprintf(format, args...)}
}

func InvalidQuantity(format string, args ...any) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "INVALID_QUANTITY", Message: fmt.Sprintf(format, args...)}
}

func InsufficientStock(available int) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "INSUFFICIENT_STOCK",
		Message: fmt.Sprintf("Not enough stock. Only %d available.", available)}
}

func Locked(format string, args ...any) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "LOCKED", Message: fmt.Sprintf(format, args...)}
}

func Server(format string, args ...any) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Code: "SERVER_ERROR", Message: fmt.Sprintf(format, args...)}
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
// gorm.ErrDuplicatedKey covers drivers with translated errors; the string
// checks cover postgres (23505) and sqlite messages that slip through.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
