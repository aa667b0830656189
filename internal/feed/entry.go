// Package feed holds the dashboard's feed model and the pure functions that
// reconcile, sort and paginate it.
//
// Nothing in this package performs I/O. Every operation takes a value and
// returns a new one; slices held by a previous State are never written to.
package feed

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Entry is one ranked paper as returned by the papers endpoint.
type Entry struct {
	Score     float64 `json:"score"`
	Item      Item    `json:"item"`
	Bullets   Bullets `json:"bullets"`
	FetchedAt string  `json:"fetched_at,omitempty"`
	PaperKey  string  `json:"paper_key,omitempty"`
	Liked     bool    `json:"liked,omitempty"`
	Disliked  bool    `json:"disliked,omitempty"`
}

// Item is the paper metadata. Display only.
type Item struct {
	ID        string   `json:"id,omitempty"`
	Title     string   `json:"title,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
	URL       string   `json:"url,omitempty"`
	Source    string   `json:"source,omitempty"`
	Published string   `json:"published,omitempty"`
	Venue     string   `json:"venue,omitempty"`
	Year      Year     `json:"year,omitempty"`
	Authors   []string `json:"authors,omitempty"`
}

// Bullets are the server-side annotations attached to an entry.
type Bullets struct {
	Ideas        []string `json:"ideas,omitempty"`
	Similarities []string `json:"similarities,omitempty"`
	Tag          string   `json:"tag,omitempty"`
}

// Year is a publication year that the API sends either as a number or as a string.
type Year string

// UnmarshalJSON accepts 2021, "2021" and null.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*y = Year(strconv.FormatInt(i, 10))
		return nil
	}
	*y = Year(n.String())
	return nil
}

// Identity returns the deduplication key of an entry: the server-assigned
// paper key, else the item id, else the item URL. An empty result means the
// entry cannot be deduplicated and is always treated as new.
func Identity(e Entry) string {
	if e.PaperKey != "" {
		return e.PaperKey
	}
	if e.Item.ID != "" {
		return e.Item.ID
	}
	return e.Item.URL
}
