package breach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/iudanet/pwnedcheck/internal/validation"
)

// DefaultConcurrency размер пула для пакетной проверки
const DefaultConcurrency = 4

//go:generate moq -out fetcher_mock.go . RangeFetcher

// RangeFetcher возвращает тело range-ответа для префикса.
// Реализации: HTTP клиент удаленного сервиса и локальный корпус.
type RangeFetcher interface {
	FetchRange(ctx context.Context, prefix string) (io.ReadCloser, error)
}

// Lookup выполняет k-anonymity проверку паролей.
// Не хранит состояния между проверками, безопасен для конкурентного использования.
type Lookup struct {
	fetcher     RangeFetcher
	logger      *slog.Logger
	limiter     *rate.Limiter
	flights     map[string]*flight
	group       singleflight.Group
	policy      ParsePolicy
	concurrency int
	mu          sync.Mutex
}

// flight общий контекст запроса диапазона.
// Отменяется, только когда результат перестали ждать все вызывающие.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// Option настраивает Lookup
type Option func(*Lookup)

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lookup) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithConcurrency задает размер пула для CheckBatch
func WithConcurrency(n int) Option {
	return func(l *Lookup) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithParsePolicy задает политику для некорректных строк ответа
func WithParsePolicy(p ParsePolicy) Option {
	return func(l *Lookup) {
		l.policy = p
	}
}

// WithLimiter ограничивает частоту исходящих range-запросов
func WithLimiter(limiter *rate.Limiter) Option {
	return func(l *Lookup) {
		l.limiter = limiter
	}
}

// NewLookup создает Lookup поверх fetcher
func NewLookup(fetcher RangeFetcher, opts ...Option) *Lookup {
	l := &Lookup{
		fetcher:     fetcher,
		logger:      slog.New(slog.DiscardHandler),
		flights:     make(map[string]*flight),
		policy:      SkipMalformed,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check проверяет один пароль: hash -> split -> fetchRange -> MatchSuffix.
// Пустой или некорректный пароль отклоняется с *InputError до сетевого запроса.
func (l *Lookup) Check(ctx context.Context, password string) (Result, error) {
	if err := validation.ValidatePassword(password); err != nil {
		return Result{}, &InputError{Index: -1, Err: err}
	}
	return l.check(ctx, password)
}

func (l *Lookup) check(ctx context.Context, password string) (Result, error) {
	prefix, suffix := Split(Hash(password))

	entries, err := l.fetchRange(ctx, prefix)
	if err != nil {
		return Result{}, err
	}

	return MatchSuffix(entries, suffix), nil
}

// fetchRange запрашивает и разбирает диапазон для префикса.
// Одновременные запросы одного префикса внутри процесса схлопываются в один.
// Отмена ctx возвращает управление только этому вызывающему,
// общий запрос продолжается, пока его ждет кто-то еще.
func (l *Lookup) fetchRange(ctx context.Context, prefix string) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Prefix: prefix, Err: err}
	}

	l.mu.Lock()
	f, ok := l.flights[prefix]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		l.flights[prefix] = f
	}
	f.waiters++
	ch := l.group.DoChan(prefix, func() (any, error) {
		return l.doFetchRange(f.ctx, prefix)
	})
	l.mu.Unlock()

	select {
	case res := <-ch:
		l.leave(prefix, f, false)
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			l.logger.Debug("range request shared", "prefix", prefix)
		}
		return res.Val.(map[string]int64), nil
	case <-ctx.Done():
		l.leave(prefix, f, true)
		return nil, &TransportError{Prefix: prefix, Err: ctx.Err()}
	}
}

// leave снимает вызывающего с flight. Последний ушедший отменяет запрос;
// если он ушел по отмене, префикс забывается, чтобы следующий вызов
// не получил чужую ошибку отмены.
func (l *Lookup) leave(prefix string, f *flight, abandoned bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	if l.flights[prefix] == f {
		delete(l.flights, prefix)
	}
	if abandoned {
		l.group.Forget(prefix)
	}
	f.cancel()
}

func (l *Lookup) doFetchRange(ctx context.Context, prefix string) (map[string]int64, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Prefix: prefix, Err: err}
		}
	}

	body, err := l.fetcher.FetchRange(ctx, prefix)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = body.Close()
	}()

	entries, skipped, err := ParseRange(body, l.policy)
	if err != nil {
		// обрыв при чтении тела остается транспортной ошибкой
		var terr *TransportError
		if errors.As(err, &terr) {
			return nil, terr
		}
		return nil, fmt.Errorf("failed to parse range %s: %w", prefix, err)
	}

	if len(skipped) > 0 {
		l.logger.Warn("skipped malformed range lines",
			"prefix", prefix,
			"count", len(skipped),
			"first_line", skipped[0].Line,
		)
	}

	l.logger.Debug("range fetched", "prefix", prefix, "entries", len(entries))

	return entries, nil
}
