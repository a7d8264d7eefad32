package smtp

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/findr-api/internal/config"
	"github.com/findr-api/internal/pkg/id"
)

// Mailer sends plain-text match alerts.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

var errHeaderInjection = errors.New("header value contains a line break")

type mailer struct {
	addr     string
	host     string
	from     string
	username string
	password string
	now      func() time.Time
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		addr:     fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		host:     cfg.SMTPHost,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		now:      time.Now,
	}
}

// SendEmail delivers one message. Auth is skipped for relays without
// credentials, such as a local MailHog.
func (m *mailer) SendEmail(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("smtp: empty recipient")
	}
	msg, err := buildMessage(m.from, to, subject, body, m.now())
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	return smtp.SendMail(m.addr, auth, m.from, []string{to}, msg)
}

func buildMessage(from, to, subject, body string, at time.Time) ([]byte, error) {
	for _, h := range []string{from, to, subject} {
		if strings.ContainsAny(h, "\r\n") {
			return nil, errHeaderInjection
		}
	}
	domain := "findr.local"
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		domain = from[i+1:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", at.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", id.New(), domain)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String()), nil
}
