package domain

const (
	// DefaultPageSize применяется, если размер страницы не задан или некорректен.
	DefaultPageSize = 10
	// MaxPageSize — жёсткий потолок размера страницы; большие значения
	// молча обрезаются, а не отклоняются.
	MaxPageSize = 50
)

// PageParams задаёт параметры постраничной выборки (нумерация с 1).
type PageParams struct {
	Page     int
	PageSize int
}

// Normalize приводит параметры к допустимым границам:
// номер страницы меньше 1 становится 1, неположительный размер —
// значением по умолчанию, превышение потолка обрезается.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset возвращает смещение выборки для нормализованных параметров.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page представляет одну страницу выборки вместе со сводкой пагинации.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// NewPage собирает страницу, вычисляя количество страниц как
// ceiling(totalItems / pageSize).
func NewPage[T any](items []T, params PageParams, totalItems int) Page[T] {
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = (totalItems + params.PageSize - 1) / params.PageSize
	}
	return Page[T]{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// HasPrev сообщает, существует ли предыдущая страница.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext сообщает, существует ли следующая страница.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }
