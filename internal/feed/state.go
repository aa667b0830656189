package feed

import "fmt"

// Mode selects how a papers fetch is reconciled.
type Mode string

const (
	// History fetches a stable server-paginated slice of the full ranking.
	History Mode = "history"
	// Live fetches the newest items, merged with everything already held.
	Live Mode = "live"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case History, Live:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want history or live)", s)
}

// State is the held papers feed. Items are in server/merge order; display
// order comes from Sort. A zero State is the empty feed.
type State struct {
	Items      []Entry
	TotalCount int
	Offset     int
	HasMore    bool
	Loading    bool
	LastError  string
}

// Response is the body of the papers endpoint. Pointer fields are optional
// and fall back to derived values when absent.
type Response struct {
	ChatID      int64   `json:"chat_id,omitempty"`
	Limit       int     `json:"limit,omitempty"`
	Items       []Entry `json:"items"`
	TotalRanked *int    `json:"total_ranked,omitempty"`
	Offset      *int    `json:"offset,omitempty"`
	HasMore     *bool   `json:"has_more,omitempty"`
}
