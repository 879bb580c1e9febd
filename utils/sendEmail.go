package utils

import (
	"fmt"
	"io"
	"strconv"

	"items-admin-backend/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Initialize the SMTP mailer once and store it in a global variable
var mailer *gomail.Dialer

// Attachment is an in-memory file attached to an outgoing email.
type Attachment struct {
	FileName string
	Content  []byte
}

// InitializeMailer sets up the mailer from SMTP_* settings. Without
// SMTP_HOST mail stays disabled and InitializeMailer reports false.
func InitializeMailer() bool {
	mailHost := config.GetEnv("SMTP_HOST")
	if mailHost == "" {
		config.Logger.Info("SMTP_HOST not set, email reports disabled")
		return false
	}

	mailPort := config.GetEnv("SMTP_PORT")
	port, err := strconv.Atoi(mailPort)
	if err != nil {
		config.Logger.Error("Invalid SMTP_PORT value, defaulting to port 25",
			zap.String("provided_port", mailPort),
			zap.Error(err),
		)
		port = 25
	}

	mailer = gomail.NewDialer(mailHost, port, config.GetEnv("SMTP_USER"), config.GetEnv("SMTP_PASSWORD"))
	config.Logger.Info("Mailer initialized successfully")
	return true
}

// BuildEmail assembles a plain text message with an optional attachment.
func BuildEmail(from, to, subject, body string, attachment *Attachment) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if attachment != nil && len(attachment.Content) > 0 {
		content := attachment.Content
		m.Attach(attachment.FileName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}
	return m
}

// SendEmail sends body to email, attaching attachment when given.
func SendEmail(email, subject, body string, attachment *Attachment) error {
	if mailer == nil {
		err := fmt.Errorf("mailer is not initialized")
		config.Logger.Error("Email send failed: mailer is not initialized",
			zap.String("to_email", email),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	m := BuildEmail(config.GetEnv("SMTP_FROM"), email, subject, body, attachment)

	if err := mailer.DialAndSend(m); err != nil {
		config.Logger.Error("Failed to send email via SMTP",
			zap.String("to_email", email),
			zap.String("subject", subject),
			zap.Bool("has_attachment", attachment != nil),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	config.Logger.Info("Email sent successfully",
		zap.String("to_email", email),
		zap.String("subject", subject),
	)
	return nil
}
