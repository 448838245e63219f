package pagination

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

func New(number, size int) Page {
	if number <= 0 {
		number = 1
	}
	if size <= 0 || size > MaxSize {
		size = DefaultSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

type Result[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

func NewResult[T any](items []T, total int64, p Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items, Total: total, Page: p.Number, Size: p.Size}
}

// Map converts the items of a result while keeping its paging metadata.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	out := make([]U, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, fn(it))
	}
	return Result[U]{Items: out, Total: r.Total, Page: r.Page, Size: r.Size}
}
