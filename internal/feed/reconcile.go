package feed

import (
	"context"
	"errors"
)

// Correction asks the caller to re-fetch history at Page because the
// requested page fell past the end of a shrunken ranking.
type Correction struct {
	Needed bool
	Page   int
}

// BeginLoading marks a fetch as in flight. Items stay visible.
func BeginLoading(prev State) State {
	next := prev
	next.Loading = true
	return next
}

// ApplyHistory reconciles a history page. The response replaces the held
// items wholesale.
//
// If the ranking shrank so that the reported offset is at or past the total,
// the page is not accepted: prev is returned still loading, together with the
// corrected page to fetch. A corrective fetch is accepted whatever it returns
// so the correction runs at most once per originating request.
func ApplyHistory(prev State, resp Response, page Page, corrective bool) (State, Correction) {
	items := resp.Items
	if items == nil {
		items = []Entry{}
	}

	total := len(items)
	if resp.TotalRanked != nil {
		total = max(0, *resp.TotalRanked)
	}
	offset := page.Offset()
	if resp.Offset != nil {
		offset = max(0, *resp.Offset)
	}
	hasMore := false
	if resp.HasMore != nil {
		hasMore = *resp.HasMore
	}

	if !corrective && total > 0 && offset >= total {
		return BeginLoading(prev), Correction{Needed: true, Page: LastPage(total, page.Size)}
	}

	return State{
		Items:      items,
		TotalCount: total,
		Offset:     offset,
		HasMore:    hasMore,
	}, Correction{}
}

// ApplyLive merges a live response into the held items. Live state is a
// single growing snapshot: offset 0, nothing more to page.
func ApplyLive(prev State, resp Response) State {
	items := MergeLive(prev.Items, resp.Items)
	return State{
		Items:      items,
		TotalCount: len(items),
	}
}

// MergeLive returns fresh entries in server order followed by the previous
// entries whose identity was not already seen. For a repeated identity the
// first fresh copy wins. Entries with an empty identity never deduplicate.
func MergeLive(prev, fresh []Entry) []Entry {
	merged := make([]Entry, 0, len(fresh)+len(prev))
	known := make(map[string]struct{}, len(fresh)+len(prev))

	for _, e := range fresh {
		key := Identity(e)
		if key == "" {
			merged = append(merged, e)
			continue
		}
		if _, dup := known[key]; dup {
			continue
		}
		known[key] = struct{}{}
		merged = append(merged, e)
	}

	for _, e := range prev {
		key := Identity(e)
		if key != "" {
			if _, dup := known[key]; dup {
				continue
			}
			known[key] = struct{}{}
		}
		merged = append(merged, e)
	}
	return merged
}

// ApplyError records a failed fetch. Cancellation is not a failure: a newer
// request superseded this one, so prev is returned untouched. Other errors
// keep the held items visible.
func ApplyError(prev State, err error) State {
	if err == nil || errors.Is(err, context.Canceled) {
		return prev
	}
	next := prev
	next.Loading = false
	next.LastError = err.Error()
	return next
}

// ApplyFeedback returns a copy of prev in which every entry with the given
// identity carries the new feedback flags.
func ApplyFeedback(prev State, key string, liked, disliked bool) State {
	if key == "" {
		return prev
	}
	next := prev
	next.Items = make([]Entry, len(prev.Items))
	for i, e := range prev.Items {
		if Identity(e) == key {
			e.Liked = liked
			e.Disliked = disliked
		}
		next.Items[i] = e
	}
	return next
}

// ApplyJournals replaces the journals snapshot.
func ApplyJournals(_ JournalState, resp JournalsResponse) JournalState {
	items := resp.Items
	if items == nil {
		items = []JournalEntry{}
	}
	return JournalState{
		Items:          items,
		CatalogSize:    resp.CatalogSize,
		GeneratedAt:    resp.GeneratedAt,
		UsedEmbeddings: resp.UsedEmbeddings,
	}
}

// ApplyJournalsError is ApplyError for the journals snapshot.
func ApplyJournalsError(prev JournalState, err error) JournalState {
	if err == nil || errors.Is(err, context.Canceled) {
		return prev
	}
	next := prev
	next.Loading = false
	next.LastError = err.Error()
	return next
}
