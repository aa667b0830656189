package store

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jpreyes/paperradar/internal/feed"
)

func paper(key, title string, score float64) feed.Entry {
	return feed.Entry{
		Score:    score,
		PaperKey: key,
		Item:     feed.Item{Title: title, URL: "https://example.org/" + key},
	}
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "seen.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	var name string
	err = st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='seen'").Scan(&name)
	if err != nil {
		t.Fatalf("seen table not created: %v", err)
	}
	if name != "seen" {
		t.Errorf("expected table name 'seen', got %q", name)
	}
}

func TestMarkSeenReportsFreshOnce(t *testing.T) {
	st := openTemp(t)

	fresh, err := st.MarkSeen("42", []feed.Entry{paper("a", "A", 0.9), paper("b", "B", 0.8)})
	if err != nil {
		t.Fatalf("MarkSeen failed: %v", err)
	}
	if len(fresh) != 2 || !fresh["a"] || !fresh["b"] {
		t.Errorf("first MarkSeen fresh = %v, want a and b", fresh)
	}

	fresh, err = st.MarkSeen("42", []feed.Entry{paper("b", "B", 0.7), paper("c", "C", 0.6)})
	if err != nil {
		t.Fatalf("MarkSeen failed: %v", err)
	}
	if len(fresh) != 1 || !fresh["c"] {
		t.Errorf("second MarkSeen fresh = %v, want only c", fresh)
	}

	n, err := st.SeenCount("42")
	if err != nil {
		t.Fatalf("SeenCount failed: %v", err)
	}
	if n != 3 {
		t.Errorf("SeenCount = %d, want 3", n)
	}
}

func TestMarkSeenScopedBySubject(t *testing.T) {
	st := openTemp(t)

	if _, err := st.MarkSeen("42", []feed.Entry{paper("a", "A", 1)}); err != nil {
		t.Fatal(err)
	}
	fresh, err := st.MarkSeen("42/bio", []feed.Entry{paper("a", "A", 1)})
	if err != nil {
		t.Fatal(err)
	}
	if !fresh["a"] {
		t.Error("paper seen under another subject should still be fresh")
	}
}

func TestMarkSeenSkipsMissingIdentityAndDuplicates(t *testing.T) {
	st := openTemp(t)

	fresh, err := st.MarkSeen("1", []feed.Entry{
		{Score: 1, Item: feed.Item{Title: "no identity"}},
		paper("a", "A", 1),
		paper("a", "A again", 0.5),
	})
	if err != nil {
		t.Fatalf("MarkSeen failed: %v", err)
	}
	if len(fresh) != 1 || !fresh["a"] {
		t.Errorf("fresh = %v, want only a", fresh)
	}

	n, _ := st.SeenCount("1")
	if n != 1 {
		t.Errorf("SeenCount = %d, want 1", n)
	}
}

func TestMarkSeenEmpty(t *testing.T) {
	st := openTemp(t)

	fresh, err := st.MarkSeen("1", nil)
	if err != nil {
		t.Fatalf("MarkSeen failed: %v", err)
	}
	if fresh == nil || len(fresh) != 0 {
		t.Errorf("fresh = %v, want empty map", fresh)
	}
}

func TestRecentOrderAndShownCount(t *testing.T) {
	st := openTemp(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	st.now = func() time.Time { return clock }

	if _, err := st.MarkSeen("7", []feed.Entry{paper("old", "Old", 0.1)}); err != nil {
		t.Fatal(err)
	}
	clock = base.Add(time.Hour)
	if _, err := st.MarkSeen("7", []feed.Entry{paper("new", "New", 0.2)}); err != nil {
		t.Fatal(err)
	}
	clock = base.Add(2 * time.Hour)
	if _, err := st.MarkSeen("7", []feed.Entry{paper("old", "Old", 0.3)}); err != nil {
		t.Fatal(err)
	}

	rows, err := st.Recent("7", 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Recent returned %d rows, want 2", len(rows))
	}
	if rows[0].Identity != "old" || rows[1].Identity != "new" {
		t.Errorf("order = %s, %s; want old, new", rows[0].Identity, rows[1].Identity)
	}
	if rows[0].Shown != 2 {
		t.Errorf("old.Shown = %d, want 2", rows[0].Shown)
	}
	if rows[0].Score != 0.3 {
		t.Errorf("old.Score = %v, want latest score 0.3", rows[0].Score)
	}
	if !rows[0].FirstSeen.Equal(base) {
		t.Errorf("old.FirstSeen = %v, want %v", rows[0].FirstSeen, base)
	}
	if rows[0].URL != "https://example.org/old" {
		t.Errorf("old.URL = %q", rows[0].URL)
	}

	limited, err := st.Recent("7", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("Recent(limit 1) returned %d rows", len(limited))
	}
}

func TestConcurrentMarkSeen(t *testing.T) {
	st := openTemp(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.MarkSeen("c", []feed.Entry{paper("shared", "Shared", 1)}); err != nil {
				t.Errorf("MarkSeen failed: %v", err)
			}
		}()
	}
	wg.Wait()

	n, err := st.SeenCount("c")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("SeenCount = %d, want 1", n)
	}
}
