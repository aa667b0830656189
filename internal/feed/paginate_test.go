package feed

import "testing"

func TestPaginate(t *testing.T) {
	tests := []struct {
		name             string
		total, idx, size int
		want             Pagination
	}{
		{
			"clamps past last page", 47, 5, 25,
			Pagination{PageCount: 2, Index: 1, HasPrev: true, HasNext: false, RangeStart: 26, RangeEnd: 47},
		},
		{
			"first page", 47, 0, 25,
			Pagination{PageCount: 2, Index: 0, HasPrev: false, HasNext: true, RangeStart: 1, RangeEnd: 25},
		},
		{
			"empty feed", 0, 3, 25,
			Pagination{PageCount: 1},
		},
		{
			"exact multiple", 50, 1, 25,
			Pagination{PageCount: 2, Index: 1, HasPrev: true, RangeStart: 26, RangeEnd: 50},
		},
		{
			"single partial page", 3, 0, 25,
			Pagination{PageCount: 1, RangeStart: 1, RangeEnd: 3},
		},
		{
			"negative index", 30, -2, 10,
			Pagination{PageCount: 3, HasNext: true, RangeStart: 1, RangeEnd: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.total, tt.idx, tt.size)
			if got != tt.want {
				t.Errorf("Paginate(%d, %d, %d) = %+v, want %+v", tt.total, tt.idx, tt.size, got, tt.want)
			}
		})
	}
}

func TestLastPage(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{10, 25, 0},
		{47, 25, 1},
		{50, 25, 1},
		{51, 25, 2},
		{0, 25, 0},
	}
	for _, tt := range tests {
		if got := LastPage(tt.total, tt.size); got != tt.want {
			t.Errorf("LastPage(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestClampPageSize(t *testing.T) {
	const prev = 40
	tests := []struct {
		in   string
		want int
	}{
		{"3", 5},
		{"500", 200},
		{"abc", prev},
		{"", prev},
		{"-10", prev},
		{"0", 5},
		{"12.4", 12},
		{"12.5", 13},
		{" 30 ", 30},
		{"NaN", prev},
		{"Inf", prev},
		{"1e9", 200},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ClampPageSize(tt.in, prev); got != tt.want {
				t.Errorf("ClampPageSize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampPageSizeInt(t *testing.T) {
	if got := ClampPageSizeInt(-1, 25); got != 25 {
		t.Errorf("ClampPageSizeInt(-1) = %d, want 25", got)
	}
	if got := ClampPageSizeInt(1000, 25); got != MaxPageSize {
		t.Errorf("ClampPageSizeInt(1000) = %d, want %d", got, MaxPageSize)
	}
	if got := ClampPageSizeInt(0, 25); got != MinPageSize {
		t.Errorf("ClampPageSizeInt(0) = %d, want %d", got, MinPageSize)
	}
}
