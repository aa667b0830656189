package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/jpreyes/paperradar/internal/api"
	"github.com/jpreyes/paperradar/internal/feed"
)

func TestPaperColumns(t *testing.T) {
	tests := []struct {
		width     int
		wantTitle int
	}{
		{160, 160 - 78 - 2*len(paperColumnSpec)},
		{40, minTitleWidth},
	}
	for _, tt := range tests {
		cols := paperColumns(tt.width)
		if len(cols) != len(paperColumnSpec) {
			t.Fatalf("got %d columns", len(cols))
		}
		if cols[titleColumn].Width != tt.wantTitle {
			t.Errorf("width %d: title = %d, want %d", tt.width, cols[titleColumn].Width, tt.wantTitle)
		}
	}
	if paperColumnSpec[titleColumn].Width != 0 {
		t.Error("paperColumns must not modify the column spec")
	}
}

func TestPaperRows(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []feed.Entry{
		{
			Score:     0.91234,
			PaperKey:  "k1",
			Liked:     true,
			FetchedAt: "2026-05-01T09:00:00Z",
			Bullets:   feed.Bullets{Tag: "llm"},
			Item: feed.Item{
				Title:     "A  very\nlong title about graphs",
				Source:    "arxiv",
				Published: "2026-04-30T10:00:00Z",
				Venue:     "NeurIPS",
				Authors:   []string{"Ada", "Grace"},
			},
		},
		{Score: 0.5, PaperKey: "k2", Item: feed.Item{Year: "2019"}},
	}
	cols := paperColumns(160)
	rows := paperRows(entries, func(e feed.Entry) bool { return e.PaperKey == "k2" }, cols, now)

	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	first := rows[0]
	want := []string{"+", "0.912", "llm", "A very long title about graphs", "arxiv", "2026-04-30", "NeurIPS", "Ada et al.", "3 hours ago"}
	for i := range want {
		if first[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, first[i], want[i])
		}
	}

	second := rows[1]
	if second[0] != "•" || second[5] != "2019" || second[7] != "" || second[8] != "" {
		t.Errorf("second row = %q", second)
	}

	for _, row := range rows {
		for i, cell := range row {
			if runewidth.StringWidth(cell) > cols[i].Width {
				t.Errorf("cell %q wider than column %d", cell, cols[i].Width)
			}
		}
	}
}

func TestMarkCell(t *testing.T) {
	tests := []struct {
		e     feed.Entry
		fresh bool
		want  string
	}{
		{feed.Entry{}, false, ""},
		{feed.Entry{}, true, "•"},
		{feed.Entry{Liked: true}, true, "•+"},
		{feed.Entry{Disliked: true}, false, "-"},
	}
	for _, tt := range tests {
		if got := markCell(tt.e, tt.fresh); got != tt.want {
			t.Errorf("markCell(%+v, %v) = %q, want %q", tt.e, tt.fresh, got, tt.want)
		}
	}
}

func TestPublishedCell(t *testing.T) {
	tests := []struct {
		item feed.Item
		want string
	}{
		{feed.Item{Published: "2024-02-03T00:00:00Z"}, "2024-02-03"},
		{feed.Item{Published: "sometime"}, "sometime"},
		{feed.Item{Year: "2020"}, "2020"},
		{feed.Item{}, ""},
	}
	for _, tt := range tests {
		if got := publishedCell(feed.Entry{Item: tt.item}); got != tt.want {
			t.Errorf("publishedCell(%+v) = %q, want %q", tt.item, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo wörld", 6); runewidth.StringWidth(got) > 6 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("anything", 0); got != "" {
		t.Errorf("truncate to 0 = %q", got)
	}
}

func TestSortLine(t *testing.T) {
	if got := sortLine(feed.DefaultSort); got != "sort: score ↓" {
		t.Errorf("sortLine = %q", got)
	}
	if got := sortLine(feed.SortSpec{Key: feed.SortVenue, Direction: feed.Asc}); got != "sort: venue ↑" {
		t.Errorf("sortLine = %q", got)
	}
}

func TestRenderDetail(t *testing.T) {
	e := feed.Entry{
		Item:    feed.Item{Title: "Graph Transformers", Authors: []string{"Ada"}, Venue: "ICML", URL: "https://example.org/p"},
		Bullets: feed.Bullets{Ideas: []string{"attention over edges"}, Similarities: []string{"like GAT"}, Tag: "gnn"},
	}
	out := renderDetail(e, true, 100, 10)
	for _, want := range []string{"Graph Transformers", "gnn", "new", "Ada · ICML", "https://example.org/p", "• attention over edges", "≈ like GAT"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q", want)
		}
	}
	if renderDetail(e, false, 100, 0) != "" {
		t.Error("no room should render nothing")
	}
}

func TestRenderJournalsEmpty(t *testing.T) {
	out := renderJournals(feed.JournalState{}, 0, 80, 10, time.Now())
	if !strings.Contains(out, "No journals yet") {
		t.Errorf("out = %q", out)
	}
}

func TestRenderConfig(t *testing.T) {
	if !strings.Contains(renderConfig(nil, "boom", 80), "boom") {
		t.Error("config error should be shown")
	}

	th := 0.42
	on := true
	out := renderConfig(&api.UserConfig{
		ChatID:              5,
		ActiveProfile:       "bio",
		Profiles:            []string{"default", "bio"},
		ProfileTopicWeights: map[string]float64{"proteins": 0.5, "rna": 0.9, "dna": 0.5},
		SimThreshold:        &th,
		LLMEnabled:          &on,
		LikesTotal:          1200,
	}, "", 120)
	for _, want := range []string{"default, bio", "rna 0.90, dna 0.50, proteins 0.50", "0.42", "on", "1,200"} {
		if !strings.Contains(out, want) {
			t.Errorf("config view missing %q", want)
		}
	}
}
