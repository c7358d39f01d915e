package twilio

import "errors"

var (
	// ErrInvalidRecipient возвращается при пустом номере получателя
	ErrInvalidRecipient = errors.New("twilio client: invalid recipient")

	// ErrSendFailed возвращается, когда Twilio отклонил сообщение
	ErrSendFailed = errors.New("twilio client: failed to send message")

	// ErrInvalidResponse возвращается при ответе без SID
	ErrInvalidResponse = errors.New("twilio client: invalid response")
)
