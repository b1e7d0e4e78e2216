package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"path/filepath"
	"strings"

	"github.com/LucaZH/webcup2025-backend/internal/config"
)

type MailService struct {
	cfg config.SMTPConfig
}

func NewMailService(cfg config.SMTPConfig) *MailService {
	if !cfg.Enabled() {
		log.Println("MailService disabled: missing SMTP configuration")
	}
	return &MailService{cfg: cfg}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.cfg.Enabled() {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: TheEnd.page <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.cfg.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.cfg.From, to, msg); err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		}
	}()
}

func (s *MailService) parseTemplate(templateName string, data interface{}) (string, error) {
	path := filepath.Join("web", "templates", "email", templateName)
	t, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

// SendActivationEmail mails the account activation code after registration.
func (s *MailService) SendActivationEmail(email, code string) {
	body, err := s.parseTemplate("activation.html", map[string]string{
		"Code": code,
	})
	if err != nil {
		log.Printf("Error rendering activation email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "Welcome to TheEnd.page — confirm your email", body)
}

// SendPasswordResetEmail mails the password reset code.
func (s *MailService) SendPasswordResetEmail(email, code string) {
	body, err := s.parseTemplate("reset.html", map[string]string{
		"Code": code,
	})
	if err != nil {
		log.Printf("Error rendering reset email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "TheEnd.page password reset", body)
}
