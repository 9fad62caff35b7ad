package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"edims-backend/config"
	"edims-backend/database"
	"edims-backend/middlewares"
	"edims-backend/models"
	"edims-backend/utils"
)

// Mailer delivers password-reset mail. Set at startup; nil means mail is
// unconfigured and forgot-password reports a send failure.
var Mailer *utils.Mailer

const resetTokenTTL = time.Hour

// forgotPasswordReply is returned whether or not the account exists, so the
// endpoint cannot be used to enumerate users.
const forgotPasswordReply = "If an account with that username or email exists, a password reset link has been sent."

type RegisterDTO struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=1"`
	Role     string `json:"role" validate:"required,oneof=Admin Staff"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordDTO struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
}

type ResetPasswordDTO struct {
	Token       string `json:"token" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// userView strips credential fields from API responses.
type userView struct {
	UserID   uint    `json:"user_id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Role     string  `json:"role"`
	Email    *string `json:"email"`
}

func viewOf(u *models.User) userView {
	return userView{
		UserID:   u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		Email:    u.Email,
	}
}

// POST /api/auth/register (admin only)
func Register(c *fiber.Ctx) error {
	var in RegisterDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	user := models.User{
		Username: in.Username,
		FullName: in.FullName,
		Role:     in.Role,
	}
	if in.Email != "" {
		user.Email = &in.Email
	}
	if err := user.SetPassword(in.Password); err != nil {
		return err
	}

	if err := database.DB.Create(&user).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return utils.Duplicate("Username or email already exists")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    viewOf(&user),
	})
}

// GET /api/auth/users (admin only)
func GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("id ASC").Find(&users).Error; err != nil {
		return err
	}
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, viewOf(&users[i]))
	}
	return c.JSON(out)
}

// POST /api/auth/login
func Login(c *fiber.Ctx) error {
	var in LoginDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	var user models.User
	err := database.DB.Where("username = ?", in.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !user.CheckPassword(in.Password)) {
		// Same message for unknown user and wrong password.
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return err
	}

	// Best effort; a failed timestamp write must not block login.
	now := time.Now()
	if err := database.DB.Model(&user).Update("last_login", &now).Error; err != nil {
		config.GetLogger().WithError(err).Warn("could not update last_login")
	}

	token, err := middlewares.GenerateToken(&user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    viewOf(&user),
	})
}

// POST /api/auth/forgot-password
func ForgotPassword(c *fiber.Ctx) error {
	var in ForgotPasswordDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	var user models.User
	err := database.DB.
		Where("username = ? OR email = ?", in.UsernameOrEmail, in.UsernameOrEmail).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"message": forgotPasswordReply})
	}
	if err != nil {
		return err
	}
	if user.Email == nil || *user.Email == "" {
		return utils.Validation("No email address is associated with this account. Please contact administrator.")
	}

	token := uuid.NewString()
	expiry := time.Now().Add(resetTokenTTL)
	if err := database.DB.Model(&user).Updates(map[string]any{
		"reset_token":        token,
		"reset_token_expiry": &expiry,
	}).Error; err != nil {
		return err
	}

	var sendErr error
	if Mailer.Configured() {
		sendErr = Mailer.SendPasswordResetEmail(*user.Email, user.Username, token)
	} else {
		sendErr = errors.New("mailer not configured")
	}
	if sendErr != nil {
		config.GetLogger().WithError(sendErr).Error("password reset email failed")
		// Do not leave a live token behind a failed delivery.
		_ = database.DB.Model(&user).Updates(map[string]any{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
		return utils.Server("Failed to send reset email. Please try again later.")
	}

	return c.JSON(fiber.Map{"message": forgotPasswordReply})
}

// POST /api/auth/reset-password
func ResetPassword(c *fiber.Ctx) error {
	var in ResetPasswordDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	var user models.User
	err := database.DB.
		Where("email = ? AND reset_token = ?", in.Email, in.Token).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Validation("Invalid or expired reset token")
	}
	if err != nil {
		return err
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		_ = database.DB.Model(&user).Updates(map[string]any{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
		return utils.Validation("Reset token has expired. Please request a new one.")
	}

	if err := user.SetPassword(in.NewPassword); err != nil {
		return err
	}
	if err := database.DB.Model(&user).Updates(map[string]any{
		"password_hash":      user.PasswordHash,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Password has been reset successfully. You can now login with your new password.",
	})
}
