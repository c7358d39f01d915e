package scheduler

import "errors"

var (
	// ErrInvalidSpec возвращается при некорректном cron выражении
	ErrInvalidSpec = errors.New("scheduler: invalid cron spec")
)
