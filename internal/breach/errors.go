package breach

import (
	"errors"
	"fmt"
)

// ErrNoPasswords возвращается, когда передан пустой список паролей
var ErrNoPasswords = errors.New("no passwords to check")

// TransportError означает, что запрос к range endpoint не удалось выполнить
// (DNS, соединение, таймаут). Фатальна для текущей проверки.
type TransportError struct {
	Err    error
	Prefix string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("range request for prefix %s failed: %v", e.Prefix, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteServiceError означает, что сервис ответил статусом вне класса 2xx.
// Тело такого ответа никогда не разбирается как данные.
type RemoteServiceError struct {
	Body       string
	StatusCode int
}

func (e *RemoteServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("range service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("range service returned status %d: %s", e.StatusCode, e.Body)
}

// ParseError описывает строку ответа, не соответствующую формату SUFFIX:COUNT
type ParseError struct {
	Err  error
	Text string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed range line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InputError сообщает о некорректном вводе вызывающей стороны.
// Возникает до любой сетевой активности.
type InputError struct {
	Err   error
	Index int // позиция пароля в батче, -1 для ошибок всего батча
}

func (e *InputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid input: %v", e.Err)
	}
	return fmt.Sprintf("invalid input at #%d: %v", e.Index+1, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
