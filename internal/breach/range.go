package breach

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineSize ограничивает длину строки ответа (HTML-обертка может склеить строки)
const maxLineSize = 1 << 20

var (
	errMissingSeparator = errors.New("missing ':' separator")
	errInvalidSuffix    = errors.New("suffix must be 35 hex characters")
	errInvalidCount     = errors.New("count must be a non-negative integer")
)

// ParsePolicy определяет поведение при встрече некорректной строки ответа
type ParsePolicy int

const (
	// SkipMalformed пропускает некорректные строки и продолжает разбор
	SkipMalformed ParsePolicy = iota
	// StrictParse прерывает разбор на первой некорректной строке
	StrictParse
)

func (p ParsePolicy) String() string {
	switch p {
	case SkipMalformed:
		return "skip"
	case StrictParse:
		return "strict"
	default:
		return fmt.Sprintf("ParsePolicy(%d)", int(p))
	}
}

// Entry одна строка range-ответа: суффикс и число утечек
type Entry struct {
	Suffix string
	Count  int64
}

// Result итог проверки одного пароля.
// Found=false означает "не найден"; Found=true с Count=0 это найденная
// запись без зафиксированных утечек (например, padding-строка).
type Result struct {
	Count int64
	Found bool
}

// NotFound возвращает результат "не найден"
func NotFound() Result {
	return Result{}
}

// FoundTimes возвращает результат "найден n раз"
func FoundTimes(n int64) Result {
	return Result{Found: true, Count: n}
}

func (r Result) String() string {
	if !r.Found {
		return "safe"
	}
	return fmt.Sprintf("found %d times", r.Count)
}

// ParseRange разбирает тело range-ответа: по одной паре SUFFIX:COUNT на строку,
// терминаторы \n или \r\n. Пустые строки игнорируются, HTML-разметка вокруг
// строк вырезается. Повторяющиеся суффиксы: побеждает последний.
//
// При SkipMalformed некорректные строки возвращаются во втором значении,
// при StrictParse первая из них возвращается как *ParseError.
func ParseRange(r io.Reader, policy ParsePolicy) (map[string]int64, []*ParseError, error) {
	entries := make(map[string]int64)
	var skipped []*ParseError

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if strings.ContainsRune(line, '<') {
			line = strings.TrimSpace(stripMarkup(line))
		}
		if line == "" {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			perr := &ParseError{Line: lineNo, Text: line, Err: err}
			if policy == StrictParse {
				return nil, nil, perr
			}
			skipped = append(skipped, perr)
			continue
		}
		entries[entry.Suffix] = entry.Count
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read range body: %w", err)
	}

	return entries, skipped, nil
}

// parseLine разбирает одну строку формата SUFFIX:COUNT
func parseLine(line string) (Entry, error) {
	suffix, countText, ok := strings.Cut(line, ":")
	if !ok {
		return Entry{}, errMissingSeparator
	}
	suffix = strings.TrimSpace(suffix)
	if !IsSuffix(suffix) {
		return Entry{}, errInvalidSuffix
	}
	count, err := strconv.ParseInt(strings.TrimSpace(countText), 10, 64)
	if err != nil || count < 0 {
		return Entry{}, errInvalidCount
	}
	return Entry{Suffix: strings.ToUpper(suffix), Count: count}, nil
}

// stripMarkup вырезает теги вида <...> из строки
func stripMarkup(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	inTag := false
	for _, r := range line {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchSuffix ищет суффикс среди разобранных записей
func MatchSuffix(entries map[string]int64, suffix string) Result {
	count, ok := entries[strings.ToUpper(suffix)]
	if !ok {
		return NotFound()
	}
	return FoundTimes(count)
}

// FormatRange сериализует записи в формат range-ответа
func FormatRange(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s:%d\r\n", e.Suffix, e.Count); err != nil {
			return fmt.Errorf("failed to write range entry: %w", err)
		}
	}
	return bw.Flush()
}
