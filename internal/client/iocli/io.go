package iocli

//go:generate moq -out io_mock.go . IO

// IO консольный ввод/вывод CLI
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadPassword(prompt string) (string, error)
	// ReadLines читает ввод до EOF, по паролю на строку
	ReadLines() ([]string, error)
	IsTerminal() bool
}
