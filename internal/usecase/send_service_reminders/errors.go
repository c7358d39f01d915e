package send_service_reminders

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("send_service_reminders: internal error")
)
