package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config параметры SMTP
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Sender отправляет собранное сообщение (gomail.Dialer в бою)
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Message письмо для отправки
type Message struct {
	To      []string
	Subject string
	Body    string // text/plain
}

// Mailer SMTP-отправитель уведомлений
type Mailer struct {
	from   string
	sender Sender
}

// New создает отправителя поверх gomail.Dialer
func New(cfg Config) *Mailer {
	return NewWithSender(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password))
}

// NewWithSender создает отправителя с произвольным транспортом
func NewWithSender(from string, sender Sender) *Mailer {
	return &Mailer{from: from, sender: sender}
}

// Send отправляет письмо; контекст проверяется только до начала SMTP сессии
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", msg.To...)
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/plain", msg.Body)

	if err := m.sender.DialAndSend(message); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}
