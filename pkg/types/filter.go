package types

// Filter описывает параметры выборки списка: поисковая строка,
// точные фильтры по разрешённым полям и пагинация (1-based).
type Filter struct {
	Search   string            `json:"search,omitempty"`
	Filter   map[string]string `json:"filter,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func NewFilter() Filter {
	return Filter{
		Filter:   make(map[string]string),
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Normalize приводит пагинацию к допустимым значениям.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.Filter == nil {
		f.Filter = make(map[string]string)
	}
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
