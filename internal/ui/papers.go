package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/jpreyes/paperradar/internal/coord"
	"github.com/jpreyes/paperradar/internal/feed"
)

const (
	minTitleWidth = 16
	cellPadding   = 2 // table cells are padded one column each side
)

// Fixed-width columns; the title takes what is left.
var paperColumnSpec = []table.Column{
	{Title: "", Width: 2},
	{Title: "Score", Width: 5},
	{Title: "Tag", Width: 8},
	{Title: "Title", Width: 0},
	{Title: "Source", Width: 10},
	{Title: "Published", Width: 10},
	{Title: "Venue", Width: 14},
	{Title: "Authors", Width: 16},
	{Title: "Fetched", Width: 13},
}

const titleColumn = 3

// paperColumns sizes the papers table for a terminal width.
func paperColumns(width int) []table.Column {
	cols := make([]table.Column, len(paperColumnSpec))
	copy(cols, paperColumnSpec)

	used := 0
	for i, c := range cols {
		if i != titleColumn {
			used += c.Width
		}
		used += cellPadding
	}
	cols[titleColumn].Width = max(minTitleWidth, width-used)
	return cols
}

// paperRows renders entries (already in display order) as table rows.
func paperRows(entries []feed.Entry, isFresh func(feed.Entry) bool, cols []table.Column, now time.Time) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		row := table.Row{
			markCell(e, isFresh != nil && isFresh(e)),
			fmt.Sprintf("%.3f", e.Score),
			e.Bullets.Tag,
			e.Item.Title,
			e.Item.Source,
			publishedCell(e),
			e.Item.Venue,
			authorsCell(e.Item.Authors),
			fetchedCell(e.FetchedAt, now),
		}
		for j := range row {
			row[j] = truncate(row[j], cols[j].Width)
		}
		rows[i] = row
	}
	return rows
}

// markCell is "•" for a paper never shown before, then "+" or "-" for
// the reader's feedback.
func markCell(e feed.Entry, fresh bool) string {
	var b strings.Builder
	if fresh {
		b.WriteString("•")
	}
	switch {
	case e.Liked:
		b.WriteString("+")
	case e.Disliked:
		b.WriteString("-")
	}
	return b.String()
}

func publishedCell(e feed.Entry) string {
	if t, ok := feed.ParseTime(e.Item.Published); ok {
		return t.Format("2006-01-02")
	}
	if e.Item.Published != "" {
		return e.Item.Published
	}
	return string(e.Item.Year)
}

func authorsCell(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	}
	return authors[0] + " et al."
}

func fetchedCell(raw string, now time.Time) string {
	t, ok := feed.ParseTime(raw)
	if !ok {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// truncate shortens s to fit width terminal cells.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// showingLine is the "Showing a-b of N" summary.
func showingLine(s *coord.Session) string {
	start, end := s.ShownRange()
	total := s.Papers().TotalCount
	if total == 0 {
		return "Showing 0 of 0"
	}
	return fmt.Sprintf("Showing %d-%d of %d", start, end, total)
}

// pageLine is the "Page x of y" summary. Live snapshots are not paged.
func pageLine(s *coord.Session) string {
	if s.Mode() == feed.Live {
		return "Live snapshot"
	}
	p := s.Pagination()
	return fmt.Sprintf("Page %d of %d", p.Index+1, p.PageCount)
}

// sortLine describes the active sort.
func sortLine(spec feed.SortSpec) string {
	arrow := "↓"
	if spec.Direction == feed.Asc {
		arrow = "↑"
	}
	return fmt.Sprintf("sort: %s %s", spec.Key, arrow)
}

// renderDetail shows the selected paper's metadata and annotations.
func renderDetail(e feed.Entry, fresh bool, width, height int) string {
	if height <= 0 {
		return ""
	}
	inner := max(10, width-4)

	var lines []string
	head := SectionTitle.Render(truncate(e.Item.Title, inner))
	if e.Bullets.Tag != "" {
		head += " " + TagBadge.Render(e.Bullets.Tag)
	}
	if fresh {
		head += " " + NewMarker.Render("new")
	}
	lines = append(lines, head)

	var meta []string
	if len(e.Item.Authors) > 0 {
		meta = append(meta, strings.Join(e.Item.Authors, ", "))
	}
	if e.Item.Venue != "" {
		meta = append(meta, e.Item.Venue)
	}
	if e.Item.Year != "" {
		meta = append(meta, string(e.Item.Year))
	}
	if len(meta) > 0 {
		lines = append(lines, MutedText.Render(truncate(strings.Join(meta, " · "), inner)))
	}
	if e.Item.URL != "" {
		lines = append(lines, MutedText.Render(truncate(e.Item.URL, inner)))
	}
	for _, idea := range e.Bullets.Ideas {
		lines = append(lines, truncate("• "+idea, inner))
	}
	for _, sim := range e.Bullets.Similarities {
		lines = append(lines, MutedText.Render(truncate("≈ "+sim, inner)))
	}
	if len(e.Bullets.Ideas) == 0 && e.Item.Abstract != "" {
		lines = append(lines, truncate(e.Item.Abstract, inner))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return DetailPane.Width(width).Render(strings.Join(lines, "\n"))
}
