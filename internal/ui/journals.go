package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jpreyes/paperradar/internal/feed"
)

// renderJournals lists the journals snapshot, one block per journal, with
// the block at cursor highlighted.
func renderJournals(js feed.JournalState, cursor, width, height int, now time.Time) string {
	var b strings.Builder

	summary := fmt.Sprintf("%d journals", len(js.Items))
	if js.CatalogSize > 0 {
		summary += fmt.Sprintf(" from a catalog of %d", js.CatalogSize)
	}
	if t, ok := feed.ParseTime(js.GeneratedAt); ok {
		summary += " · generated " + humanize.RelTime(t, now, "ago", "from now")
	}
	if js.UsedEmbeddings {
		summary += " · embeddings"
	}
	b.WriteString(MutedText.Render(summary))
	b.WriteString("\n")
	lines := 1

	if len(js.Items) == 0 {
		if !js.Loading && js.LastError == "" {
			b.WriteString(HelpStyle.Render("No journals yet. Press ctrl+r to load recommendations."))
		}
		return b.String()
	}

	inner := max(10, width-4)
	for i, j := range js.Items {
		block := journalBlock(j, inner)
		if lines+len(block) > height && i > cursor {
			break
		}
		style := NormalItem
		if i == cursor {
			style = SelectedItem
		}
		b.WriteString(style.Render(block[0]))
		b.WriteString("\n")
		for _, l := range block[1:] {
			b.WriteString(MutedText.Render("   " + l))
			b.WriteString("\n")
		}
		lines += len(block)
	}
	return b.String()
}

func journalBlock(j feed.JournalEntry, width int) []string {
	title := j.Journal.Title
	if title == "" {
		title = j.JournalID
	}
	head := fmt.Sprintf("%2d. %s  %.3f", j.Rank, title, j.Score)
	if j.Analysis.Tag != "" {
		head += "  [" + j.Analysis.Tag + "]"
	}

	block := []string{truncate(head, width)}
	var meta []string
	if j.Journal.Publisher != "" {
		meta = append(meta, j.Journal.Publisher)
	}
	if len(j.Journal.ISSN) > 0 {
		meta = append(meta, "ISSN "+strings.Join(j.Journal.ISSN, ", "))
	}
	meta = append(meta, fmt.Sprintf("sim %.2f · topics %.2f", j.Similarity, j.TopicOverlap))
	block = append(block, truncate(strings.Join(meta, " · "), width-3))

	if j.Analysis.FitSummary != "" {
		block = append(block, truncate(j.Analysis.FitSummary, width-3))
	}
	return block
}
