package feed

import (
	"math"
	"strconv"
	"strings"
)

const (
	MinPageSize     = 5
	MaxPageSize     = 200
	DefaultPageSize = 25
)

// Page is the view's page selection.
type Page struct {
	Index int
	Size  int
}

// Offset is the first server index of the page.
func (p Page) Offset() int {
	return p.Index * p.Size
}

// Pagination is derived from (total, page index, page size) on every render.
// It is never stored.
type Pagination struct {
	PageCount  int
	Index      int // requested index clamped into range
	HasPrev    bool
	HasNext    bool
	RangeStart int // 1-based, inclusive; 0 when empty
	RangeEnd   int // inclusive; 0 when empty
}

// Paginate computes page count, clamped index, prev/next availability and the
// displayed range for a feed of total items.
func Paginate(total, pageIndex, pageSize int) Pagination {
	if pageSize < 1 {
		pageSize = 1
	}
	if total < 0 {
		total = 0
	}
	if pageIndex < 0 {
		pageIndex = 0
	}

	p := Pagination{PageCount: 1}
	if total == 0 {
		return p
	}

	p.PageCount = ceilDiv(total, pageSize)
	p.Index = min(pageIndex, p.PageCount-1)
	p.HasPrev = p.Index > 0
	p.HasNext = (p.Index+1)*pageSize < total
	p.RangeStart = min(total, p.Index*pageSize+1)
	p.RangeEnd = min(total, (p.Index+1)*pageSize)
	return p
}

// LastPage is the index of the last page holding any of total items.
func LastPage(total, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 0
	}
	return max(0, ceilDiv(total, pageSize)-1)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// ClampPageSize turns raw user input into a page size. Input that is not a
// finite, non-negative number leaves prev in place; anything else is rounded
// and clamped to [MinPageSize, MaxPageSize].
func ClampPageSize(raw string, prev int) int {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return prev
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return clampSize(int(math.Round(n)))
}

// ClampPageSizeInt clamps a configured page size. Negative values fall back
// to prev, like ClampPageSize.
func ClampPageSizeInt(n, prev int) int {
	if n < 0 {
		return prev
	}
	return clampSize(n)
}

func clampSize(n int) int {
	return min(MaxPageSize, max(MinPageSize, n))
}
