package feed

import (
	"fmt"
	"testing"
)

func dated(key, published string) Entry {
	return Entry{PaperKey: key, Item: Item{Published: published}}
}

func TestSortByScore(t *testing.T) {
	entries := []Entry{entry("a", 0.2), entry("b", 0.9), entry("c", 0.5)}

	tests := []struct {
		dir  Direction
		want string
	}{
		{Desc, "[b c a]"},
		{Asc, "[a c b]"},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			got := keys(Sort(entries, SortSpec{Key: SortScore, Direction: tt.dir}))
			if fmt.Sprint(got) != tt.want {
				t.Errorf("Sort() = %v, want %s", got, tt.want)
			}
		})
	}

	if fmt.Sprint(keys(entries)) != "[a b c]" {
		t.Error("Sort mutated its input")
	}
}

func TestSortMissingScoreIsZero(t *testing.T) {
	var noScore Entry
	noScore.PaperKey = "none"
	entries := []Entry{noScore, entry("neg", -0.1), entry("pos", 0.1)}

	got := keys(Sort(entries, SortSpec{Key: SortScore, Direction: Asc}))

	if fmt.Sprint(got) != "[neg none pos]" {
		t.Errorf("Sort() = %v, want [neg none pos]", got)
	}
}

func TestSortNullsLastBothDirections(t *testing.T) {
	entries := []Entry{
		dated("bad1", "not a date"),
		dated("d2024", "2024-03-01"),
		dated("empty", ""),
		dated("d2021", "2021-07-15T10:00:00Z"),
		dated("bad2", "??"),
	}

	tests := []struct {
		dir  Direction
		want string
	}{
		{Asc, "[d2021 d2024 bad1 empty bad2]"},
		{Desc, "[d2024 d2021 bad1 empty bad2]"},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			got := keys(Sort(entries, SortSpec{Key: SortPublished, Direction: tt.dir}))
			if fmt.Sprint(got) != tt.want {
				t.Errorf("Sort() = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestSortPublishedFallsBackToYear(t *testing.T) {
	withYear := Entry{PaperKey: "y2019", Item: Item{Year: "2019"}}
	entries := []Entry{dated("d2022", "2022-01-10"), withYear}

	got := keys(Sort(entries, SortSpec{Key: SortPublished, Direction: Asc}))

	if fmt.Sprint(got) != "[y2019 d2022]" {
		t.Errorf("Sort() = %v, want [y2019 d2022]", got)
	}
}

func TestSortFetchedAt(t *testing.T) {
	entries := []Entry{
		{PaperKey: "late", FetchedAt: "2025-05-02T08:00:00.123456+00:00"},
		{PaperKey: "none"},
		{PaperKey: "early", FetchedAt: "2025-05-01T08:00:00+00:00"},
	}

	got := keys(Sort(entries, SortSpec{Key: SortFetchedAt, Direction: Desc}))

	if fmt.Sprint(got) != "[late early none]" {
		t.Errorf("Sort() = %v, want [late early none]", got)
	}
}

func TestSortTextCaseFolded(t *testing.T) {
	entries := []Entry{
		{PaperKey: "b", Item: Item{Venue: "beta"}},
		{PaperKey: "A", Item: Item{Venue: "ALPHA"}},
		{PaperKey: "a", Item: Item{Venue: "alpha"}},
		{PaperKey: "none"},
	}

	got := keys(Sort(entries, SortSpec{Key: SortVenue, Direction: Asc}))

	// Empty venue is a comparable value, not null.
	if fmt.Sprint(got) != "[none A a b]" {
		t.Errorf("Sort() = %v, want [none A a b]", got)
	}
}

func TestSortAuthorsJoined(t *testing.T) {
	entries := []Entry{
		{PaperKey: "z", Item: Item{Authors: []string{"Zhang", "Abe"}}},
		{PaperKey: "a", Item: Item{Authors: []string{"abe", "Zhang"}}},
	}

	got := keys(Sort(entries, SortSpec{Key: SortAuthors, Direction: Asc}))

	if fmt.Sprint(got) != "[a z]" {
		t.Errorf("Sort() = %v, want [a z]", got)
	}
}

func TestSortStableTies(t *testing.T) {
	entries := []Entry{entry("first", 0.5), entry("second", 0.5), entry("third", 0.5)}

	for _, dir := range []Direction{Asc, Desc} {
		got := keys(Sort(entries, SortSpec{Key: SortScore, Direction: dir}))
		if fmt.Sprint(got) != "[first second third]" {
			t.Errorf("%s: Sort() = %v, want input order", dir, got)
		}
	}
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	entries := []Entry{entry("b", 1), entry("a", 2)}

	got := keys(Sort(entries, SortSpec{Key: "nope", Direction: Asc}))

	if fmt.Sprint(got) != "[b a]" {
		t.Errorf("Sort() = %v, want [b a]", got)
	}
}

func TestSortIdempotent(t *testing.T) {
	entries := []Entry{
		dated("x", "2020-01-01"),
		{PaperKey: "y", Score: 0.7, Item: Item{Venue: "Nature", Title: "b"}},
		dated("bad", "garbage"),
		{PaperKey: "z", Score: 0.7, Item: Item{Venue: "nature", Title: "A"}},
		entry("w", 0.1),
		dated("x2", "2020-01-01"),
	}

	for _, key := range SortKeys {
		for _, dir := range []Direction{Asc, Desc} {
			spec := SortSpec{Key: key, Direction: dir}
			once := Sort(entries, spec)
			twice := Sort(once, spec)
			if fmt.Sprint(keys(once)) != fmt.Sprint(keys(twice)) {
				t.Errorf("%s/%s: not idempotent: %v then %v", key, dir, keys(once), keys(twice))
			}
		}
	}
}

func TestSortKeyHelpers(t *testing.T) {
	if k, ok := ParseSortKey(" Venue "); !ok || k != SortVenue {
		t.Errorf("ParseSortKey(Venue) = %q, %v", k, ok)
	}
	if _, ok := ParseSortKey("rank"); ok {
		t.Error("ParseSortKey(rank) should fail")
	}
	if got := SortTitle.Next(); got != SortScore {
		t.Errorf("SortTitle.Next() = %q, want %q", got, SortScore)
	}
	if ParseDirection("ASC") != Asc || ParseDirection("whatever") != Desc {
		t.Error("ParseDirection mismatch")
	}
	if Asc.Flip() != Desc || Desc.Flip() != Asc {
		t.Error("Flip mismatch")
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in     string
		ok     bool
		wantYr int
	}{
		{"2024-05-01T12:00:00Z", true, 2024},
		{"2024-05-01T12:00:00.123456+00:00", true, 2024},
		{"2019", true, 2019},
		{"2023-11-20", true, 2023},
		{"", false, 0},
		{"   ", false, 0},
		{"not a date", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTime(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseTime(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got.Year() != tt.wantYr {
				t.Errorf("ParseTime(%q) year = %d, want %d", tt.in, got.Year(), tt.wantYr)
			}
		})
	}
}
