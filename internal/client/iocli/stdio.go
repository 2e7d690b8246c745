package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх stdin/stdout
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	inFile *os.File // nil, если ввод не файл (тесты)
}

// NewStdio создает IO для стандартных потоков процесса
func NewStdio() *Stdio {
	s := NewStdioWith(os.Stdin, os.Stdout)
	s.inFile = os.Stdin
	return s
}

// NewStdioWith создает IO поверх произвольных потоков
func NewStdioWith(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

// ReadPassword читает пароль без эха, если stdin терминал.
// Иначе читает строку как есть: пробелы в пароле значимы.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if s.IsTerminal() {
		s.Printf("%s", prompt)
		pwBytes, err := term.ReadPassword(int(s.inFile.Fd()))
		s.Println("")
		if err != nil {
			return "", err
		}
		return string(pwBytes), nil
	}

	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return trimEOL(line), nil
}

func (s *Stdio) ReadLines() ([]string, error) {
	return ReadLines(s.in)
}

func (s *Stdio) IsTerminal() bool {
	return s.inFile != nil && term.IsTerminal(int(s.inFile.Fd()))
}

// ReadLines читает строки до EOF. Пустые строки пропускаются,
// остальные сохраняются без изменений, кроме перевода строки.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := trimEOL(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, nil
}

func trimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}
