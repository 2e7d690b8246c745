package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/pwnedcheck/internal/breach"
	wire "github.com/iudanet/pwnedcheck/pkg/api"
)

const (
	// DefaultBaseURL публичный range API корпуса утечек
	DefaultBaseURL = "https://api.pwnedpasswords.com/range"

	// DefaultTimeout таймаут одного range-запроса
	DefaultTimeout = 10 * time.Second

	// maxErrorBody сколько байт тела ошибки сохраняем для диагностики
	maxErrorBody = 256

	// maxRangeBody ограничение на размер range-ответа
	maxRangeBody = 8 << 20
)

// ErrRangeTooLarge range-ответ превысил допустимый размер
var ErrRangeTooLarge = errors.New("range response too large")

// Client представляет HTTP клиент для range endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxBody    int64
	padding    bool
}

// Option настраивает Client
type Option func(*Client)

// WithTimeout задает таймаут запроса
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient подменяет http.Client (например, для тестов)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent задает заголовок User-Agent
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithPadding включает заголовок Add-Padding: сервис дополняет ответ
// фиктивными суффиксами с count=0, чтобы размер ответа не выдавал префикс
func WithPadding(enabled bool) Option {
	return func(c *Client) {
		c.padding = enabled
	}
}

// NewClient создает новый клиент range API
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "pwnedcheck",
		maxBody:   maxRangeBody,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL возвращает base URL клиента
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchRange выполняет GET <base>/<PREFIX> и возвращает тело успешного ответа.
// Статус вне 2xx возвращается как *breach.RemoteServiceError,
// сетевые ошибки как *breach.TransportError. Повторов нет.
func (c *Client) FetchRange(ctx context.Context, prefix string) (io.ReadCloser, error) {
	prefix = strings.ToUpper(prefix)
	if !breach.IsPrefix(prefix) {
		return nil, fmt.Errorf("invalid range prefix %q", prefix)
	}

	url := c.baseURL + "/" + prefix

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/plain")
	if c.padding {
		req.Header.Set(wire.PaddingHeader, "true")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &breach.TransportError{Prefix: prefix, Err: err}
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() {
			_ = resp.Body.Close()
		}()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &breach.RemoteServiceError{
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(snippet)),
		}
	}

	return &limitedBody{
		r:      io.LimitReader(resp.Body, c.maxBody+1),
		closer: resp.Body,
		prefix: prefix,
		limit:  c.maxBody,
	}, nil
}

// limitedBody превращает ошибки чтения тела (обрыв соединения, таймаут)
// в *breach.TransportError. Тело длиннее limit не обрезается молча,
// а завершается ошибкой ErrRangeTooLarge
type limitedBody struct {
	r      io.Reader
	closer io.Closer
	prefix string
	limit  int64
	read   int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	b.read += int64(n)
	if b.read > b.limit {
		n = max(n-int(b.read-b.limit), 0)
		return n, &breach.TransportError{
			Prefix: b.prefix,
			Err:    fmt.Errorf("%w: more than %d bytes", ErrRangeTooLarge, b.limit),
		}
	}
	if err != nil && err != io.EOF {
		return n, &breach.TransportError{Prefix: b.prefix, Err: err}
	}
	return n, err
}

func (b *limitedBody) Close() error {
	return b.closer.Close()
}
