package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	messages []*gomail.Message
	err      error
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	s.messages = append(s.messages, m...)
	return s.err
}

func TestSendBuildsMessage(t *testing.T) {
	sender := &recordingSender{}
	m := NewWithSender("meetings@example.com", sender)

	err := m.Send(context.Background(), Message{
		To:      []string{"jane@example.com", "bob@example.com"},
		Subject: "Booking confirmed",
		Body:    "See you soon",
	})
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, []string{"meetings@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"jane@example.com", "bob@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Booking confirmed"}, msg.GetHeader("Subject"))
}

func TestSendErrors(t *testing.T) {
	m := NewWithSender("meetings@example.com", &recordingSender{err: errors.New("connection refused")})

	err := m.Send(context.Background(), Message{To: []string{"jane@example.com"}})
	assert.ErrorIs(t, err, ErrSendFailed)

	err = m.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrNoRecipients)
}
