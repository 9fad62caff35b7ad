package utils

import (
	"fmt"
	"net/url"

	"gopkg.in/gomail.v2"

	"edims-backend/config"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Configured reports whether SMTP credentials are present.
func (m *Mailer) Configured() bool {
	return m != nil && m.cfg.Host != "" && m.cfg.User != ""
}

// SendPasswordResetEmail delivers the reset link for the given token.
// The link points at the frontend, which posts the token back to the API.
func (m *Mailer) SendPasswordResetEmail(to, username, token string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp is not configured")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		m.cfg.ClientURL, token, url.QueryEscape(to))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request - EDIMS")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\n"+
			"You have requested to reset your password for your EDIMS account.\n\n"+
			"Open the following link to choose a new password:\n%s\n\n"+
			"This link will expire in 1 hour.\n\n"+
			"If you did not request this reset, you can ignore this email.\n",
		username, resetLink))
	msg.AddAlternative("text/html", fmt.Sprintf(
		"<p>Hello %s,</p>"+
			"<p>You have requested to reset your password for your EDIMS account.</p>"+
			"<p><a href=%q>Reset Password</a></p>"+
			"<p>This link will expire in 1 hour. If you did not request this reset, "+
			"you can ignore this email.</p>",
		username, resetLink))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	return dialer.DialAndSend(msg)
}
