package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/altynbek8/ServiceApp/internal/config"
)

// Sender delivers transactional mail. A nil-configured sender (no SMTP
// host) degrades to a no-op so local development works without a relay.
type Sender interface {
	SendWelcome(to, fullName string) error
	SendBookingConfirmed(to, providerName, date, slot string) error
}

type smtpSender struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

func NewSender(cfg config.EmailConfig) Sender {
	if cfg.Host == "" {
		return &noopSender{}
	}
	return &smtpSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpSender) SendWelcome(to, fullName string) error {
	body := fmt.Sprintf(`<p>Здравствуйте, %s!</p><p>Ваш аккаунт создан. Выберите роль в приложении, чтобы начать.</p>`, fullName)
	return s.send(to, "Добро пожаловать", body)
}

func (s *smtpSender) SendBookingConfirmed(to, providerName, date, slot string) error {
	body := fmt.Sprintf(`<p>Ваша запись к %s подтверждена.</p><p>Дата: %s, время: %s.</p>`, providerName, date, slot)
	return s.send(to, "Запись подтверждена", body)
}

type noopSender struct{}

func (noopSender) SendWelcome(string, string) error                         { return nil }
func (noopSender) SendBookingConfirmed(string, string, string, string) error { return nil }
