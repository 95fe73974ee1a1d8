package pkg

import (
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"campusanon/config"
)

// SendEmail does a blocking SMTP send. Callers that must not wait go
// through the Mailer pool instead.
func SendEmail(cfg config.MailConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// OTPEmailHTML renders the verification mail body.
func OTPEmailHTML(code string, ttl time.Duration) string {
	mins := int(ttl.Minutes())
	return fmt.Sprintf(`<p>Your OTP is: <strong style="font-size:18px;">%s</strong></p><p>It expires in %d minutes. Do not share it with anyone.</p>`, code, mins)
}
