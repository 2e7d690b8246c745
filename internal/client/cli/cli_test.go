package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/pwnedcheck/internal/client/iocli"
)

// newTestIO возвращает IOMock, который пишет вывод в out.
// stdin эмулируется строками lines, terminal включает интерактивный режим.
func newTestIO(lines []string, terminal bool) (*iocli.IOMock, *strings.Builder) {
	out := &strings.Builder{}
	return &iocli.IOMock{
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(out, format, a...)
		},
		PrintlnFunc: func(a ...any) {
			fmt.Fprintln(out, a...)
		},
		IsTerminalFunc: func() bool {
			return terminal
		},
		ReadLinesFunc: func() ([]string, error) {
			return lines, nil
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			if len(lines) == 0 {
				return "", nil
			}
			return lines[0], nil
		},
	}, out
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "passwords.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestGetPasswords_FromEnvVar проверяет чтение паролей из переменной окружения
func TestGetPasswords_FromEnvVar(t *testing.T) {
	t.Setenv(PasswordsEnv, "env_password_1\nenv_password_2\n")
	io, _ := newTestIO(nil, true)
	cli := New(io, nil)

	passwords, err := cli.getPasswords(Passwords{})

	require.NoError(t, err)
	assert.Equal(t, []string{"env_password_1", "env_password_2"}, passwords)
}

// TestGetPasswords_FromFile проверяет чтение паролей из файла
func TestGetPasswords_FromFile(t *testing.T) {
	t.Setenv(PasswordsEnv, "")
	io, _ := newTestIO(nil, true)
	cli := New(io, nil)

	path := writeTempFile(t, "file_password\r\n\r\n with spaces \n")

	passwords, err := cli.getPasswords(Passwords{FromFile: path})

	require.NoError(t, err)
	// пробелы внутри строки значимы и не обрезаются
	assert.Equal(t, []string{"file_password", " with spaces "}, passwords)
}

func TestGetPasswords_FromArgs(t *testing.T) {
	t.Setenv(PasswordsEnv, "")
	io, _ := newTestIO(nil, true)
	cli := New(io, nil)

	passwords, err := cli.getPasswords(Passwords{FromArgs: []string{"a", "b"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, passwords)
	assert.Empty(t, io.ReadPasswordCalls())
}

// TestGetPasswords_Priority проверяет приоритет источников:
// env var > файл > аргументы
func TestGetPasswords_Priority(t *testing.T) {
	path := writeTempFile(t, "file_password\n")
	src := Passwords{FromFile: path, FromArgs: []string{"cli_password"}}

	t.Run("env over file and args", func(t *testing.T) {
		t.Setenv(PasswordsEnv, "env_password")
		io, _ := newTestIO(nil, true)

		passwords, err := New(io, nil).getPasswords(src)
		require.NoError(t, err)
		assert.Equal(t, []string{"env_password"}, passwords)
	})

	t.Run("file over args", func(t *testing.T) {
		t.Setenv(PasswordsEnv, "")
		io, _ := newTestIO(nil, true)

		passwords, err := New(io, nil).getPasswords(src)
		require.NoError(t, err)
		assert.Equal(t, []string{"file_password"}, passwords)
	})
}

func TestGetPasswords_Stdin(t *testing.T) {
	t.Setenv(PasswordsEnv, "")

	t.Run("piped stdin", func(t *testing.T) {
		io, _ := newTestIO([]string{"one", "two"}, false)

		passwords, err := New(io, nil).getPasswords(Passwords{})
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, passwords)
		assert.Empty(t, io.ReadPasswordCalls())
	})

	t.Run("interactive prompt", func(t *testing.T) {
		io, _ := newTestIO([]string{"secret"}, true)

		passwords, err := New(io, nil).getPasswords(Passwords{})
		require.NoError(t, err)
		assert.Equal(t, []string{"secret"}, passwords)
		require.Len(t, io.ReadPasswordCalls(), 1)
		assert.Empty(t, io.ReadLinesCalls())
	})

	t.Run("empty prompt", func(t *testing.T) {
		io, _ := newTestIO(nil, true)

		_, err := New(io, nil).getPasswords(Passwords{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password cannot be empty")
	})

	t.Run("empty pipe", func(t *testing.T) {
		io, _ := newTestIO(nil, false)

		_, err := New(io, nil).getPasswords(Passwords{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no passwords on stdin")
	})

	t.Run("read failure", func(t *testing.T) {
		io, _ := newTestIO(nil, false)
		io.ReadLinesFunc = func() ([]string, error) {
			return nil, errors.New("broken pipe")
		}

		_, err := New(io, nil).getPasswords(Passwords{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken pipe")
	})
}

// TestGetPasswords_EmptyFile проверяет обработку пустого файла
func TestGetPasswords_EmptyFile(t *testing.T) {
	t.Setenv(PasswordsEnv, "")
	io, _ := newTestIO(nil, true)

	path := writeTempFile(t, "\n\n")

	passwords, err := New(io, nil).getPasswords(Passwords{FromFile: path})

	require.Error(t, err)
	assert.Empty(t, passwords)
	assert.Contains(t, err.Error(), "password file is empty")
}

// TestGetPasswords_FileNotFound проверяет обработку несуществующего файла
func TestGetPasswords_FileNotFound(t *testing.T) {
	t.Setenv(PasswordsEnv, "")
	io, _ := newTestIO(nil, true)

	passwords, err := New(io, nil).getPasswords(Passwords{FromFile: "/nonexistent/file/path.txt"})

	require.Error(t, err)
	assert.Empty(t, passwords)
	assert.Contains(t, err.Error(), "failed to read password file")
}

func TestMaskPassword(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "password", expected: "p*****"},
		{input: "пароль", expected: "п*****"},
		{input: "abc", expected: "*****"},
		{input: "", expected: "*****"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskPassword(tt.input))
		})
	}
}

func TestParseInterleaved(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		positional []string
		passwords  []string
		show       bool
	}{
		{
			name:       "flag after positional",
			args:       []string{"-p", "abc", "password", "--show"},
			passwords:  []string{"abc"},
			positional: []string{"password"},
			show:       true,
		},
		{
			name:       "positional around flags",
			args:       []string{"one", "--show", "two", "-p", "three", "four"},
			passwords:  []string{"three"},
			positional: []string{"one", "two", "four"},
			show:       true,
		},
		{
			name:       "terminator keeps dashes",
			args:       []string{"one", "--", "--show", "-p"},
			positional: []string{"one", "--show", "-p"},
		},
		{
			name:       "double dash as flag value",
			args:       []string{"-p", "--", "abc", "--show"},
			passwords:  []string{"--"},
			positional: []string{"abc"},
			show:       true,
		},
		{
			name:       "terminator after bool flag",
			args:       []string{"--show", "--", "--show"},
			positional: []string{"--show"},
			show:       true,
		},
		{
			name: "no args",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var passwords stringList
			fs := flag.NewFlagSet("check", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			fs.Var(&passwords, "p", "")
			show := fs.Bool("show", false, "")

			positional, err := parseInterleaved(fs, tt.args)

			require.NoError(t, err)
			assert.Equal(t, tt.positional, positional)
			assert.Equal(t, tt.passwords, []string(passwords))
			assert.Equal(t, tt.show, *show)
		})
	}

	t.Run("unknown flag after positional", func(t *testing.T) {
		fs := flag.NewFlagSet("check", flag.ContinueOnError)
		fs.SetOutput(io.Discard)

		_, err := parseInterleaved(fs, []string{"abc", "--bogus"})
		assert.Error(t, err)
	})
}
