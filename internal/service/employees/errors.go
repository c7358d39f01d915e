package employees

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("employees: employee not found")

	// ErrUsernameTaken возвращается при занятом username
	ErrUsernameTaken = errors.New("employees: username already taken")

	// ErrCannotDeleteSelf возвращается при попытке удалить собственную учетную запись
	ErrCannotDeleteSelf = errors.New("employees: cannot delete own account")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("employees: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("employees: internal error")
)
