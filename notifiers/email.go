package notifiers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/google/uuid"

	"github.com/kova98/hndigest/digest"
	"github.com/kova98/hndigest/models"
)

//go:embed templates/digest.html
var emailTemplates embed.FS

// html/template so story titles are escaped on output.
var digestTemplate = template.Must(template.New("emails").ParseFS(emailTemplates, "templates/*.html"))

// Mailer sends rendered digests over SMTP.
type Mailer struct {
	smtpHost string
	smtpPort string
	from     string
	password string
}

func NewMailer(smtpHost, smtpPort, from, password string) *Mailer {
	return &Mailer{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		from:     from,
		password: password,
	}
}

// DigestEmail renders the digest body for the given stories, one block per
// story in input order, headed by the run date.
func DigestEmail(recipient string, stories []models.Story, now time.Time) (models.Email, error) {
	if len(stories) == 0 {
		return models.Email{}, fmt.Errorf("no stories to render")
	}

	var buf bytes.Buffer
	tmplData := struct {
		Date    string
		Stories []models.Story
	}{
		Date:    digest.LongDate(now),
		Stories: stories,
	}
	if err := digestTemplate.ExecuteTemplate(&buf, "digest.html", tmplData); err != nil {
		return models.Email{}, fmt.Errorf("render digest template: %w", err)
	}

	return models.Email{
		To:      recipient,
		Subject: digest.Subject(now),
		Body:    buf.String(),
	}, nil
}

// Send performs exactly one delivery attempt. No retry; the next scheduled
// run covers transient failures.
func (m *Mailer) Send(mail models.Email) error {
	message := fmt.Sprintf(`From: hndigest <%s>
To: %s
Subject: %s
Date: %s
Message-ID: <%s@hndigest>
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, m.from, mail.To, mail.Subject, time.Now().Format(time.RFC1123Z), uuid.NewString(), mail.Body)

	auth := smtp.PlainAuth("", m.from, m.password, m.smtpHost)
	addr := fmt.Sprintf("%s:%s", m.smtpHost, m.smtpPort)
	if err := smtp.SendMail(addr, auth, m.from, []string{mail.To}, []byte(message)); err != nil {
		slog.Error("Failed to send email", "error", err)
		return err
	}

	slog.Info("email sent", "recipient", mail.To, "subject", mail.Subject)
	return nil
}
