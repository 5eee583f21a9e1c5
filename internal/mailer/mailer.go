// Package mailer sends account email over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers transactional email
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New creates an SMTP mailer
func New(host string, port int, user, password string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   user,
	}
}

// SendPasswordResetOTP emails a password-reset code that expires in
// 10 minutes
func (m *Mailer) SendPasswordResetOTP(email, otp string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Password Reset OTP")
	msg.SetBody("text/html", fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Password Reset Request</h2>
			<p>You have requested to reset your password. Please use the following OTP to proceed:</p>
			<div style="background-color: #f4f4f4; padding: 10px; text-align: center; font-size: 24px; letter-spacing: 5px; margin: 20px 0;">
				<strong>%s</strong>
			</div>
			<p>This OTP will expire in 10 minutes.</p>
			<p>If you didn't request this password reset, please ignore this email.</p>
		</div>
	`, otp))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
