package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/example/mangal/internal/models"
)

// OrderMailer delivers the two checkout notifications: an alert to the shop
// operator and a confirmation to the purchaser.
type OrderMailer interface {
	SendAdminOrderAlert(n OrderNotification) error
	SendCustomerConfirmation(n OrderNotification) error
}

// OrderNotification carries everything the notification emails render.
type OrderNotification struct {
	OrderID   uint
	UserName  string
	UserEmail string
	UserPhone string
	Details   string
	Total     float64
}

// RenderOrderDetails produces the human-readable breakdown used in both
// emails: one line per item, a blank line, then the totals line.
func RenderOrderDetails(items []models.OrderItem, total float64) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s — %d шт. — %.2f ₽\n", item.Name, item.Quantity, item.Subtotal())
	}
	fmt.Fprintf(&b, "\nИтого: %.2f ₽", total)
	return b.String()
}

var adminTemplate = template.Must(template.New("admin").Parse(`<h2>Новый заказ №{{.OrderID}}</h2>
<p><b>Покупатель:</b> {{.UserName}}</p>
<p><b>Email:</b> {{.UserEmail}}</p>
<p><b>Телефон:</b> {{.UserPhone}}</p>
<pre>{{.Details}}</pre>`))

var customerTemplate = template.Must(template.New("customer").Parse(`<h2>Спасибо за заказ, {{.UserName}}!</h2>
<p>Ваш заказ №{{.OrderID}} принят. Наш специалист свяжется с вами в течение дня.</p>
<pre>{{.Details}}</pre>`))

// SMTPMailer sends notifications through a plain SMTP relay.
type SMTPMailer struct {
	address    string
	host       string
	username   string
	password   string
	from       string
	adminEmail string
}

// NewSMTPMailer constructs an SMTPMailer.
func NewSMTPMailer(address, host, username, password, from, adminEmail string) *SMTPMailer {
	return &SMTPMailer{
		address:    address,
		host:       host,
		username:   username,
		password:   password,
		from:       from,
		adminEmail: adminEmail,
	}
}

// SendAdminOrderAlert emails the full order breakdown and purchaser contact
// details to the operator address.
func (m *SMTPMailer) SendAdminOrderAlert(n OrderNotification) error {
	return m.send(m.adminEmail, fmt.Sprintf("Новый заказ №%d", n.OrderID), adminTemplate, n)
}

// SendCustomerConfirmation emails the order confirmation to the purchaser.
func (m *SMTPMailer) SendCustomerConfirmation(n OrderNotification) error {
	return m.send(n.UserEmail, fmt.Sprintf("Ваш заказ №%d принят", n.OrderID), customerTemplate, n)
}

func (m *SMTPMailer) send(to, subject string, tmpl *template.Template, data OrderNotification) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.from,
		to,
		subject,
		body.String(),
	)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(m.address, auth, m.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
