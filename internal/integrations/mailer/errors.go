package mailer

import "errors"

var (
	// ErrSendFailed возвращается при ошибке отправки письма
	ErrSendFailed = errors.New("mailer: failed to send message")

	// ErrNoRecipients возвращается, если не указан ни один получатель
	ErrNoRecipients = errors.New("mailer: no recipients")
)
