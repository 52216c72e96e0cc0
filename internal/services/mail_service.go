package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// MailService sends transactional email over SMTP. It disables itself when
// the SMTP environment is not configured, so local development works without
// a mail server.
type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

// NewMailService builds a MailService from SMTP_* environment variables.
func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables.")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: EcoTrack <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		}
	}()
}

var resetCodeTemplate = template.Must(template.New("reset-code").Parse(`
<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2 style="color: #16a34a;">EcoTrack Password Reset</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset the password for your EcoTrack account.
  Enter this code to continue:</p>
  <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold; text-align: center;">{{.Code}}</p>
  <p>The code expires in 15 minutes. If you didn't request a reset, you can
  safely ignore this email.</p>
</div>`))

// SendPasswordResetEmail delivers a reset code to the given address.
func (s *MailService) SendPasswordResetEmail(email, name, code string) {
	var buf bytes.Buffer
	if err := resetCodeTemplate.Execute(&buf, map[string]string{"Name": name, "Code": code}); err != nil {
		log.Printf("Error rendering reset email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "Your EcoTrack password reset code", buf.String())
}
