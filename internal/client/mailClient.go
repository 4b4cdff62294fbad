package client

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"audio-marketplace/internal/config"
)

// Mailer sends exactly one transactional email per call. No queue, no
// retry; the caller decides whether a relay failure is fatal to the larger
// operation.
type Mailer interface {
	Send(mail *Mail) error
}

type Mail struct {
	To       string
	Subject  string
	HTMLBody string
	// Attachment is optional; nil means link-only delivery.
	Attachment *Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(smtpCfg *config.SMTP) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(smtpCfg.Host, smtpCfg.Port, smtpCfg.Username, smtpCfg.Password),
		from:   smtpCfg.From,
	}
}

func (m *smtpMailer) Send(mail *Mail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.HTMLBody)

	if att := mail.Attachment; att != nil {
		msg.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(att.Data)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}),
		)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", mail.To, err)
	}
	return nil
}
