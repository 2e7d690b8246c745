package breach

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/pwnedcheck/internal/validation"
)

// BatchResult результат проверки одного пароля из батча
type BatchResult struct {
	Err      error
	Password string
	Result   Result
	Index    int
}

// CheckBatch проверяет пароли на ограниченном пуле воркеров.
// Результаты упорядочены по входному индексу. Ошибка одного пароля
// не прерывает проверку остальных, она сохраняется в BatchResult.Err.
// Отмена ctx отменяет запросы, которые еще выполняются.
func (l *Lookup) CheckBatch(ctx context.Context, passwords []string) ([]BatchResult, error) {
	if len(passwords) == 0 {
		return nil, &InputError{Index: -1, Err: ErrNoPasswords}
	}

	results := make([]BatchResult, len(passwords))

	// Входные ошибки фиксируем до запуска сетевых запросов
	pending := make([]int, 0, len(passwords))
	for i, password := range passwords {
		results[i] = BatchResult{Index: i, Password: password}
		if err := validation.ValidatePassword(password); err != nil {
			results[i].Err = &InputError{Index: i, Err: err}
			continue
		}
		pending = append(pending, i)
	}

	var g errgroup.Group
	g.SetLimit(l.concurrency)

	for _, i := range pending {
		g.Go(func() error {
			res, err := l.check(ctx, results[i].Password)
			results[i].Result = res
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	l.logger.Debug("batch finished", "total", len(passwords), "checked", len(pending))

	return results, nil
}
