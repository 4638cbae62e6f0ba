package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"sync"

	"github.com/Kariqs/kartdaily-api/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type MailConfig struct {
	Host     string
	Port     string
	From     string
	Password string
}

type EmailData struct {
	Name  string
	Items []models.OrderItem
	Total float64
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer delivers account and order emails in the background. Delivery errors
// are logged and never reach the request that triggered them.
type Mailer struct {
	cfg  MailConfig
	send sendFunc
	wg   sync.WaitGroup
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

func (m *Mailer) enabled() bool {
	return m.cfg.Host != "" && m.cfg.From != ""
}

func RenderEmail(templateName string, data EmailData) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

func (m *Mailer) SendEmail(emailTo, emailSubject, templateName string, data EmailData) error {
	body, err := RenderEmail(templateName, data)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.From,
		emailTo,
		emailSubject,
		body,
	)

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *Mailer) sendAsync(emailTo, emailSubject, templateName string, data EmailData) {
	if !m.enabled() {
		log.Printf("Mail not configured, skipping %q to %s", emailSubject, emailTo)
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.SendEmail(emailTo, emailSubject, templateName, data); err != nil {
			log.Println("Error sending email:", err)
			return
		}
		log.Println("Email sent successfully to:", emailTo)
	}()
}

func (m *Mailer) NotifyRegistered(user models.User) {
	m.sendAsync(user.Email, "Registration successful!! Welcome to kartdaily", "register.html", EmailData{Name: user.Name})
}

func (m *Mailer) NotifyOrderPlaced(user models.User, order models.Order) {
	m.sendAsync(user.Email, "Order placed!! Congratulations", "order.html", EmailData{
		Name:  user.Name,
		Items: order.OrderItems,
		Total: order.TotalPrice,
	})
}

// Wait blocks until in-flight emails finish. Used on shutdown.
func (m *Mailer) Wait() {
	m.wg.Wait()
}
