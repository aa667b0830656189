package coord

import (
	"github.com/jpreyes/paperradar/internal/api"
	"github.com/jpreyes/paperradar/internal/feed"
)

// PapersFetched carries a papers response (or failure) back to Update.
type PapersFetched struct {
	Ticket     Ticket
	Mode       feed.Mode
	Page       feed.Page
	Corrective bool // issued by a shrink correction
	Resp       feed.Response
	Err        error
}

// JournalsFetched carries a journals snapshot back to Update.
type JournalsFetched struct {
	Ticket Ticket
	Resp   feed.JournalsResponse
	Err    error
}

// ConfigFetched carries a user config back to Update.
type ConfigFetched struct {
	Ticket Ticket
	Config api.UserConfig
	Err    error
}

// FeedbackApplied is sent when a like/dislike toggle completes.
type FeedbackApplied struct {
	Subject Subject
	Key     string
	Result  api.FeedbackResult
	Err     error
}

// ProfileSwitched is sent when a profile switch completes.
type ProfileSwitched struct {
	Subject Subject // subject the switch was requested from
	Config  api.UserConfig
	Err     error
}

// SeenMarked is sent after shown entries were recorded in the seen ledger.
// Fresh holds the identities seen for the first time. Gen is the papers
// ticket generation whose entries were recorded.
type SeenMarked struct {
	Subject string
	Gen     uint64
	Fresh   map[string]bool
	Err     error
}
