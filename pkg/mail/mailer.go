package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"localmarket/pkg/utils"
)

// Mailer sends formatted messages to an external email address
type Mailer interface {
	SendOTP(to, name, code string, validity time.Duration) error
}

const otpTemplate = `<p>Hi {{.Name}},</p>
<p>Your OTP is: <strong>{{.Code}}</strong></p>
<p>Please enter it to complete your registration. OTP valid for {{.Minutes}} minutes.</p>`

type smtpMailer struct {
	cfg  utils.EmailConfig
	tmpl *template.Template
}

func NewSMTPMailer(cfg utils.EmailConfig) Mailer {
	return &smtpMailer{
		cfg:  cfg,
		tmpl: template.Must(template.New("otp").Parse(otpTemplate)),
	}
}

func (m *smtpMailer) SendOTP(to, name, code string, validity time.Duration) error {
	var body bytes.Buffer
	err := m.tmpl.Execute(&body, map[string]any{
		"Name":    name,
		"Code":    code,
		"Minutes": int(validity.Minutes()),
	})
	if err != nil {
		return fmt.Errorf("render otp email: %w", err)
	}

	return m.send(to, "Email Verification OTP", body.String())
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n",
		m.cfg.From, to, subject)

	message := []byte(headers + htmlBody)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, message); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}
