// Package api описывает wire-контракт range API, общий для клиента и сервера.
package api

const (
	// RangePath путь range endpoint, за ним следует префикс из 5 hex символов
	RangePath = "/range/"

	// PaddingHeader запрашивает дополнение ответа суффиксами с count=0
	PaddingHeader = "Add-Padding"

	// InvalidPrefixMessage тело ответа 400 на некорректный префикс
	InvalidPrefixMessage = "The hash prefix was not in a valid format"

	// RangeContentType тип тела успешного range ответа
	RangeContentType = "text/plain; charset=utf-8"
)

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status   string `json:"status"`            // ok или unavailable
	Version  string `json:"version,omitempty"` // версия сервера
	Prefixes int64  `json:"prefixes"`          // число диапазонов в корпусе
	Entries  int64  `json:"entries"`           // число суффиксов в корпусе
}
