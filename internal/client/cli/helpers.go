package cli

import (
	"flag"
	"strings"
	"unicode/utf8"
)

// maskPassword оставляет первый символ пароля, остальное скрывает.
// Длина маски фиксирована и не выдает длину пароля.
func maskPassword(password string) string {
	if utf8.RuneCountInString(password) < 4 {
		return "*****" // Полностью маскируем короткие пароли
	}
	r, _ := utf8.DecodeRuneInString(password)
	return string(r) + "*****"
}

// stringList флаг, который можно указать несколько раз
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// parseInterleaved разбирает флаги, перемешанные с позиционными аргументами,
// и возвращает позиционные в исходном порядке. После "--" флагов нет
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for rest := args; ; {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		left := fs.Args()
		if endsWithTerminator(fs, rest[:len(rest)-len(left)]) {
			return append(positional, left...), nil
		}
		if len(left) == 0 {
			return positional, nil
		}
		positional = append(positional, left[0])
		rest = left[1:]
	}
}

// endsWithTerminator сообщает, что разбор остановился на "--",
// а не на "--" как значении предыдущего флага (-p --)
func endsWithTerminator(fs *flag.FlagSet, consumed []string) bool {
	n := len(consumed)
	if n == 0 || consumed[n-1] != "--" {
		return false
	}
	if n == 1 {
		return true
	}
	name := strings.TrimLeft(consumed[n-2], "-")
	if name == "" || strings.Contains(name, "=") || !strings.HasPrefix(consumed[n-2], "-") {
		return true
	}
	f := fs.Lookup(name)
	if f == nil {
		return true
	}
	if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
		return true
	}
	return false
}
