// Package mailer delivers account lifecycle emails over SMTP. Dispatch is
// fire-and-forget: failures are logged and never block the request that
// triggered them.
package mailer

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/taskforge-dev/taskforge/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer represents an email sender.
type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
}

// New creates a Mailer from the SMTP settings in cfg.
func New(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:        cfg.SMTPFrom,
		frontendURL: cfg.FrontendURL,
	}
}

// SendConfirmation mails the account confirmation code. Runs asynchronously.
func (m *Mailer) SendConfirmation(name, email, code string) {
	htmlBody := fmt.Sprintf(`<p>Hi %s,</p>
<p>To confirm your account, follow this link:</p>
<a href="%s/auth/confirm-account">Confirm account</a>
<p>and enter the following code: <b>%s</b></p>
<p>This code expires in 15 minutes.</p>
<p>If you did not request this email, please ignore it.</p>`, name, m.frontendURL, code)

	m.dispatch(email, "Confirm your account", htmlBody)
}

// SendPasswordReset mails the password reset code. Runs asynchronously.
func (m *Mailer) SendPasswordReset(name, email, code string) {
	htmlBody := fmt.Sprintf(`<p>Hi %s,</p>
<p>To reset your password, follow this link:</p>
<a href="%s/auth/new-password">Reset password</a>
<p>and enter the following code: <b>%s</b></p>
<p>This code expires in 15 minutes.</p>
<p>If you did not request this email, please ignore it.</p>`, name, m.frontendURL, code)

	m.dispatch(email, "Reset your password", htmlBody)
}

func (m *Mailer) dispatch(to, subject, htmlBody string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	go func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")
		}
	}()
}
