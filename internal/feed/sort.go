package feed

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
)

// SortKey names a sortable field of an entry.
type SortKey string

const (
	SortScore     SortKey = "score"
	SortPublished SortKey = "published"
	SortVenue     SortKey = "venue"
	SortAuthors   SortKey = "authors"
	SortFetchedAt SortKey = "fetched_at"
	SortTitle     SortKey = "title"
)

// SortKeys lists the known keys in the order the dashboard cycles through them.
var SortKeys = []SortKey{SortScore, SortPublished, SortVenue, SortAuthors, SortFetchedAt, SortTitle}

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec is the view's sort selection.
type SortSpec struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort is highest score first.
var DefaultSort = SortSpec{Key: SortScore, Direction: Desc}

// ParseSortKey returns the key named s, or false if s is not a known key.
func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, k) {
		return k, true
	}
	return "", false
}

// ParseDirection returns Asc for "asc" and Desc for anything else.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Asc)) {
		return Asc
	}
	return Desc
}

// Next returns the key after k in SortKeys, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)
	return SortKeys[(i+1)%len(SortKeys)]
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// sortValue is the extracted comparison value of one entry. A null value
// could not be extracted and always sorts last.
type sortValue struct {
	null bool
	num  float64
	text string
}

// Sort returns a new slice of entries ordered by spec. The input is not
// modified. Values that cannot be extracted sort after every other value in
// both directions; ties keep their input order.
func Sort(entries []Entry, spec SortSpec) []Entry {
	fold := cases.Fold()
	type keyed struct {
		entry Entry
		value sortValue
	}
	rows := make([]keyed, len(entries))
	for i, e := range entries {
		rows[i] = keyed{entry: e, value: extract(e, spec.Key, fold)}
	}

	desc := spec.Direction != Asc
	slices.SortStableFunc(rows, func(a, b keyed) int {
		return compareValues(a.value, b.value, desc)
	})

	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[i] = r.entry
	}
	return out
}

func compareValues(a, b sortValue, desc bool) int {
	switch {
	case a.null && b.null:
		return 0
	case a.null:
		return 1
	case b.null:
		return -1
	}
	c := cmp.Compare(a.num, b.num)
	if c == 0 {
		c = strings.Compare(a.text, b.text)
	}
	if desc {
		return -c
	}
	return c
}

func extract(e Entry, key SortKey, fold cases.Caser) sortValue {
	switch key {
	case SortScore:
		return sortValue{num: e.Score}
	case SortPublished:
		raw := e.Item.Published
		if raw == "" {
			raw = string(e.Item.Year)
		}
		return timeValue(raw)
	case SortFetchedAt:
		return timeValue(e.FetchedAt)
	case SortVenue:
		return sortValue{text: fold.String(e.Item.Venue)}
	case SortAuthors:
		return sortValue{text: fold.String(strings.Join(e.Item.Authors, ", "))}
	case SortTitle:
		return sortValue{text: fold.String(e.Item.Title)}
	default:
		return sortValue{null: true}
	}
}

func timeValue(raw string) sortValue {
	t, ok := ParseTime(raw)
	if !ok {
		return sortValue{null: true}
	}
	return sortValue{num: float64(t.UnixMilli())}
}

var yearRe = regexp.MustCompile(`^\d{4}$`)

// ParseTime parses the loosely formatted dates the API emits: RFC 3339
// timestamps, bare years and anything dateparse understands.
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	if yearRe.MatchString(raw) {
		y, _ := strconv.Atoi(raw)
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
