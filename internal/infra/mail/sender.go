package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var welcomeTemplate = template.Must(template.ParseFS(templatesFS, "templates/welcome.html"))

type WelcomeEmailData struct {
	Name string
	City string
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	Dialer Dialer
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		From:   from,
		Dialer: gomail.NewDialer(host, port, user, password),
	}
}

func (s *EmailSender) SendWelcome(to, name, city string) error {
	msg, err := s.buildWelcome(to, name, city)
	if err != nil {
		return err
	}

	if err := s.Dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send smtp email: %w", err)
	}
	return nil
}

func (s *EmailSender) buildWelcome(to, name, city string) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, WelcomeEmailData{Name: name, City: city}); err != nil {
		return nil, fmt.Errorf("render welcome template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Welcome aboard, %s! Your application is in", name))
	m.SetBody("text/html", body.String())
	return m, nil
}
