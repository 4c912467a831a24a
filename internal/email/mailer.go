// Package email sends transactional mail over SMTP. The mailer is disabled
// unless EMAIL_HOST is configured, so development instances silently skip
// sending. All sends are best-effort: callers fire them after the response
// has been committed and only log failures.
package email

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer wraps an SMTP dialer and the sender address.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

// NewFromEnv builds a Mailer from EMAIL_HOST, EMAIL_PORT, EMAIL_USER,
// EMAIL_PASS and EMAIL_FROM. Returns a disabled mailer when EMAIL_HOST is
// unset.
func NewFromEnv(log *zap.Logger) *Mailer {
	host := os.Getenv("EMAIL_HOST")
	if host == "" {
		return &Mailer{log: log}
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("EMAIL_PORT")); err == nil && p > 0 {
		port = p
	}
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = os.Getenv("EMAIL_USER")
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, os.Getenv("EMAIL_USER"), os.Getenv("EMAIL_PASS")),
		from:   from,
		log:    log,
	}
}

// Enabled reports whether SMTP is configured.
func (m *Mailer) Enabled() bool { return m.dialer != nil }

// SendRegistrationConfirmation welcomes a new member. No-op when disabled.
func (m *Mailer) SendRegistrationConfirmation(to, firstName, termStart, termEnd string) {
	body := fmt.Sprintf(
		"<h1>Nylöse SportCenter</h1>"+
			"<p>Hej %s!</p>"+
			"<p>Tack för att du registrerat dig hos Nylöse SportCenter. Din registrering har mottagits.</p>"+
			"<p>Medlemsperiod: %s till %s. Medlemskapet aktiveras när betalningen är genomförd.</p>",
		firstName, termStart, termEnd)
	m.send(to, "Välkommen till Nylöse SportCenter!", body)
}

// SendPaymentConfirmation confirms a completed payment. No-op when disabled.
func (m *Mailer) SendPaymentConfirmation(to, firstName, transactionID string, amount float64) {
	body := fmt.Sprintf(
		"<h1>Nylöse SportCenter</h1>"+
			"<p>Hej %s!</p>"+
			"<p>Vi har tagit emot din betalning på %.2f SEK.</p>"+
			"<p>Transaktions-id: %s</p>",
		firstName, amount, transactionID)
	m.send(to, "Betalning bekräftad - Nylöse SportCenter", body)
}

func (m *Mailer) send(to, subject, htmlBody string) {
	if !m.Enabled() {
		return
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Warn("email: send failed", zap.String("to", to), zap.Error(err))
	}
}
