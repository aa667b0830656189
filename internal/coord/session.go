package coord

import (
	"context"
	"errors"
	"slices"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpreyes/paperradar/internal/api"
	"github.com/jpreyes/paperradar/internal/feed"
	"github.com/jpreyes/paperradar/internal/logging"
)

// Source is the remote API as the session sees it. *api.Client implements it.
type Source interface {
	Papers(ctx context.Context, chatID int64, q api.PapersQuery) (feed.Response, error)
	Journals(ctx context.Context, chatID int64, limit int) (feed.JournalsResponse, error)
	Config(ctx context.Context, chatID int64) (api.UserConfig, error)
	Feedback(ctx context.Context, chatID int64, paperID, action string) (api.FeedbackResult, error)
	UseProfile(ctx context.Context, chatID int64, profile string) (api.UserConfig, error)
}

// Ledger records which entries have been shown. Optional.
type Ledger interface {
	MarkSeen(subject string, entries []feed.Entry) (map[string]bool, error)
}

// Subject is the chat/profile whose feed is shown.
type Subject struct {
	ChatID  int64
	Profile string
}

// Key scopes requests and ledger rows to the subject.
func (s Subject) Key() string {
	k := strconv.FormatInt(s.ChatID, 10)
	if s.Profile != "" {
		k += "/" + s.Profile
	}
	return k
}

// IsZero reports whether no subject is selected.
func (s Subject) IsZero() bool {
	return s == Subject{}
}

// SessionConfig holds the initial view settings.
type SessionConfig struct {
	PageSize      int
	Sort          feed.SortSpec
	JournalsLimit int
}

// Session is the dashboard's view-state engine: the papers feed, the
// journals snapshot, the page and sort selection and the active subject.
// NOT safe for concurrent use: call it only from the Update goroutine.
type Session struct {
	src    Source
	ledger Ledger
	orch   *Orchestrator

	subject   Subject
	papers    feed.State
	mode      feed.Mode
	journals  feed.JournalState
	config    *api.UserConfig
	configErr string
	notice    string
	fresh     map[string]bool
	seenGen   uint64 // papers generation of the latest ledger update

	page          feed.Page
	sort          feed.SortSpec
	journalsLimit int
}

// NewSession creates a Session. ledger may be nil. Cancelling ctx cancels
// every request the session issues.
func NewSession(ctx context.Context, src Source, ledger Ledger, cfg SessionConfig) *Session {
	sort := cfg.Sort
	if _, ok := feed.ParseSortKey(string(sort.Key)); !ok {
		sort = feed.DefaultSort
	}
	return &Session{
		src:           src,
		ledger:        ledger,
		orch:          NewOrchestrator(ctx),
		mode:          feed.History,
		page:          feed.Page{Size: feed.ClampPageSizeInt(cfg.PageSize, feed.DefaultPageSize)},
		sort:          sort,
		journalsLimit: cfg.JournalsLimit,
	}
}

// Subject returns the active subject.
func (s *Session) Subject() Subject { return s.subject }

// Papers returns the held papers feed.
func (s *Session) Papers() feed.State { return s.papers }

// Mode returns the mode the held papers were last reconciled in.
func (s *Session) Mode() feed.Mode { return s.mode }

// Journals returns the held journals snapshot.
func (s *Session) Journals() feed.JournalState { return s.journals }

// Config returns the subject's config, or nil if not loaded.
func (s *Session) Config() *api.UserConfig { return s.config }

// ConfigError returns the last config fetch failure.
func (s *Session) ConfigError() string { return s.configErr }

// Page returns the page selection.
func (s *Session) Page() feed.Page { return s.page }

// SortSpec returns the sort selection.
func (s *Session) SortSpec() feed.SortSpec { return s.sort }

// Notice returns the last feedback/profile failure, if any.
func (s *Session) Notice() string { return s.notice }

// ClearNotice dismisses the notice.
func (s *Session) ClearNotice() { s.notice = "" }

// InFlight returns the number of outstanding orchestrated requests.
func (s *Session) InFlight() int { return s.orch.InFlight() }

// Pagination derives the pager from the held total and the page selection.
func (s *Session) Pagination() feed.Pagination {
	return feed.Paginate(s.papers.TotalCount, s.page.Index, s.page.Size)
}

// ShownRange is the 1-based inclusive range of held items within the total,
// based on the server offset. Live snapshots show everything at once.
func (s *Session) ShownRange() (start, end int) {
	total := s.papers.TotalCount
	if total == 0 {
		return 0, 0
	}
	return min(total, s.papers.Offset+1), min(total, s.papers.Offset+len(s.papers.Items))
}

// Visible returns the held papers in display order.
func (s *Session) Visible() []feed.Entry {
	return feed.Sort(s.papers.Items, s.sort)
}

// IsFresh reports whether the entry was shown for the first time by the
// latest fetch.
func (s *Session) IsFresh(e feed.Entry) bool {
	key := feed.Identity(e)
	return key != "" && s.fresh[key]
}

// SelectSubject switches to subj. All state of the previous subject is
// dropped and its requests cancelled before the first fetch is issued.
func (s *Session) SelectSubject(subj Subject) tea.Cmd {
	s.orch.CancelAll()
	s.subject = subj
	s.papers = feed.State{}
	s.journals = feed.JournalState{}
	s.mode = feed.History
	s.config = nil
	s.configErr = ""
	s.notice = ""
	s.fresh = nil
	s.seenGen = 0
	s.page.Index = 0

	logging.Info("subject selected", "subject", subj.Key())
	if subj.IsZero() {
		return nil
	}
	return s.Refresh(feed.History)
}

// Refresh reloads the config and the first papers page in mode.
func (s *Session) Refresh(mode feed.Mode) tea.Cmd {
	if s.subject.IsZero() {
		return nil
	}
	s.page.Index = 0
	return tea.Batch(s.loadConfig(), s.loadPapers(mode, false))
}

// LoadPapers fetches the current page in mode.
func (s *Session) LoadPapers(mode feed.Mode) tea.Cmd {
	if s.subject.IsZero() {
		return nil
	}
	return s.loadPapers(mode, false)
}

// NextPage moves to the following history page, if there is one.
func (s *Session) NextPage() tea.Cmd {
	p := s.Pagination()
	if !p.HasNext {
		return nil
	}
	s.page.Index = p.Index + 1
	return s.LoadPapers(feed.History)
}

// PrevPage moves to the previous history page, if there is one.
func (s *Session) PrevPage() tea.Cmd {
	p := s.Pagination()
	if !p.HasPrev {
		return nil
	}
	s.page.Index = p.Index - 1
	return s.LoadPapers(feed.History)
}

// GoToPage loads history page index. A page past the end is corrected by
// the reconciler once the total is known.
func (s *Session) GoToPage(index int) tea.Cmd {
	s.page.Index = max(0, index)
	return s.LoadPapers(feed.History)
}

// SetPageSize applies raw page-size input and reloads the first page.
// Invalid input keeps the current size.
func (s *Session) SetPageSize(raw string) tea.Cmd {
	s.page.Size = feed.ClampPageSize(raw, s.page.Size)
	s.page.Index = 0
	return s.LoadPapers(feed.History)
}

// SetSort changes the sort selection. Sorting never fetches.
func (s *Session) SetSort(spec feed.SortSpec) {
	if _, ok := feed.ParseSortKey(string(spec.Key)); !ok {
		return
	}
	if spec.Direction != feed.Asc {
		spec.Direction = feed.Desc
	}
	s.sort = spec
}

// CycleSortKey moves to the next sort key.
func (s *Session) CycleSortKey() {
	s.sort.Key = s.sort.Key.Next()
}

// ToggleSortDirection flips asc/desc.
func (s *Session) ToggleSortDirection() {
	s.sort.Direction = s.sort.Direction.Flip()
}

// LoadJournals fetches the journals snapshot.
func (s *Session) LoadJournals() tea.Cmd {
	if s.subject.IsZero() {
		return nil
	}
	t, ctx := s.orch.Begin(KindJournals, s.subject.Key())
	s.journals.Loading = true
	src, chatID, limit := s.src, s.subject.ChatID, s.journalsLimit
	logging.Debug("journals requested", "req", t.RequestID, "subject", t.Subject)

	return func() tea.Msg {
		resp, err := src.Journals(ctx, chatID, limit)
		return JournalsFetched{Ticket: t, Resp: resp, Err: err}
	}
}

// Feedback toggles "like" or "dislike" on the paper with identity key.
func (s *Session) Feedback(key, action string) tea.Cmd {
	if s.subject.IsZero() || key == "" {
		return nil
	}
	src, subj := s.src, s.subject
	return func() tea.Msg {
		res, err := src.Feedback(context.Background(), subj.ChatID, key, action)
		return FeedbackApplied{Subject: subj, Key: key, Result: res, Err: err}
	}
}

// UseProfile switches the chat's active profile. On success the session
// performs a subject change to the new profile.
func (s *Session) UseProfile(profile string) tea.Cmd {
	if s.subject.IsZero() || profile == "" || profile == s.subject.Profile {
		return nil
	}
	src, subj := s.src, s.subject
	return func() tea.Msg {
		cfg, err := src.UseProfile(context.Background(), subj.ChatID, profile)
		return ProfileSwitched{Subject: subj, Config: cfg, Err: err}
	}
}

// NextProfile switches to the profile after the active one, if the config
// lists more than one.
func (s *Session) NextProfile() tea.Cmd {
	if s.config == nil || len(s.config.Profiles) < 2 {
		return nil
	}
	current := s.subject.Profile
	if current == "" {
		current = s.config.ActiveProfile
	}
	i := slices.Index(s.config.Profiles, current)
	return s.UseProfile(s.config.Profiles[(i+1)%len(s.config.Profiles)])
}

// Close cancels every outstanding request.
func (s *Session) Close() {
	s.orch.CancelAll()
}

func (s *Session) loadPapers(mode feed.Mode, corrective bool) tea.Cmd {
	if mode == feed.Live {
		// A live snapshot is never paged.
		s.page.Index = 0
	}
	t, ctx := s.orch.Begin(KindPapers, s.subject.Key())
	s.papers = feed.BeginLoading(s.papers)
	src, chatID, page := s.src, s.subject.ChatID, s.page
	logging.Debug("papers requested",
		"req", t.RequestID, "subject", t.Subject, "mode", mode,
		"page", page.Index, "size", page.Size, "corrective", corrective)

	return func() tea.Msg {
		resp, err := src.Papers(ctx, chatID, api.PapersQuery{
			Limit:  page.Size,
			Offset: page.Offset(),
			Mode:   mode,
		})
		return PapersFetched{Ticket: t, Mode: mode, Page: page, Corrective: corrective, Resp: resp, Err: err}
	}
}

func (s *Session) loadConfig() tea.Cmd {
	t, ctx := s.orch.Begin(KindConfig, s.subject.Key())
	src, chatID := s.src, s.subject.ChatID
	return func() tea.Msg {
		cfg, err := src.Config(ctx, chatID)
		return ConfigFetched{Ticket: t, Config: cfg, Err: err}
	}
}

// markSeen records the entries settled by papers ticket t. Only the update
// for the latest settled ticket is applied.
func (s *Session) markSeen(t Ticket) tea.Cmd {
	if s.ledger == nil || len(s.papers.Items) == 0 {
		return nil
	}
	s.seenGen = t.Gen
	ledger, subject, items := s.ledger, s.subject.Key(), s.papers.Items
	return func() tea.Msg {
		fresh, err := ledger.MarkSeen(subject, items)
		return SeenMarked{Subject: subject, Gen: t.Gen, Fresh: fresh, Err: err}
	}
}

// Update applies a session message. It reports whether msg belonged to the
// session and returns any follow-up command.
func (s *Session) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case PapersFetched:
		return true, s.handlePapers(msg)

	case JournalsFetched:
		if !s.accept(msg.Ticket) {
			return true, nil
		}
		if msg.Err != nil {
			s.journals = feed.ApplyJournalsError(s.journals, msg.Err)
			logFailure("journals", msg.Ticket, msg.Err)
			return true, nil
		}
		s.journals = feed.ApplyJournals(s.journals, msg.Resp)
		return true, nil

	case ConfigFetched:
		if !s.accept(msg.Ticket) {
			return true, nil
		}
		if msg.Err != nil {
			if !errors.Is(msg.Err, context.Canceled) {
				s.configErr = msg.Err.Error()
				logFailure("config", msg.Ticket, msg.Err)
			}
			return true, nil
		}
		cfg := msg.Config
		s.config = &cfg
		s.configErr = ""
		return true, nil

	case FeedbackApplied:
		if msg.Subject != s.subject {
			return true, nil
		}
		if msg.Err != nil {
			s.notice = msg.Err.Error()
			logging.Warn("feedback failed", "subject", msg.Subject.Key(), "paper", msg.Key, "err", msg.Err)
			return true, nil
		}
		s.papers = feed.ApplyFeedback(s.papers, msg.Key, msg.Result.Liked, msg.Result.Disliked)
		if s.config != nil {
			cfg := *s.config
			cfg.LikesTotal = msg.Result.LikesTotal
			cfg.DislikesTotal = msg.Result.DislikesTotal
			s.config = &cfg
		}
		return true, nil

	case ProfileSwitched:
		if msg.Subject != s.subject {
			return true, nil
		}
		if msg.Err != nil {
			s.notice = msg.Err.Error()
			logging.Warn("profile switch failed", "subject", msg.Subject.Key(), "err", msg.Err)
			return true, nil
		}
		profile := msg.Config.ActiveProfile
		if profile == "" {
			return true, nil
		}
		return true, s.SelectSubject(Subject{ChatID: msg.Subject.ChatID, Profile: profile})

	case SeenMarked:
		if msg.Subject != s.subject.Key() || msg.Gen != s.seenGen {
			logging.Debug("dropped stale seen update", "subject", msg.Subject, "gen", msg.Gen)
			return true, nil
		}
		if msg.Err != nil {
			logging.Warn("seen ledger update failed", "subject", msg.Subject, "err", msg.Err)
			return true, nil
		}
		s.fresh = msg.Fresh
		return true, nil
	}
	return false, nil
}

func (s *Session) handlePapers(msg PapersFetched) tea.Cmd {
	if !s.accept(msg.Ticket) {
		return nil
	}
	if msg.Err != nil {
		s.papers = feed.ApplyError(s.papers, msg.Err)
		logFailure("papers", msg.Ticket, msg.Err)
		return nil
	}

	if msg.Mode == feed.Live {
		s.papers = feed.ApplyLive(s.papers, msg.Resp)
		s.mode = feed.Live
		logging.Debug("papers merged", "req", msg.Ticket.RequestID, "fresh", len(msg.Resp.Items), "total", s.papers.TotalCount)
		return s.markSeen(msg.Ticket)
	}

	next, corr := feed.ApplyHistory(s.papers, msg.Resp, msg.Page, msg.Corrective)
	s.papers = next
	if corr.Needed {
		logging.Info("page past end of ranking, re-fetching",
			"req", msg.Ticket.RequestID, "page", msg.Page.Index, "corrected", corr.Page, "total", derefInt(msg.Resp.TotalRanked))
		s.page.Index = corr.Page
		return s.loadPapers(feed.History, true)
	}
	s.mode = feed.History
	logging.Debug("papers settled", "req", msg.Ticket.RequestID, "items", len(next.Items), "total", next.TotalCount, "offset", next.Offset)
	return s.markSeen(msg.Ticket)
}

// accept finishes msg's ticket if it is current. Stale results, including
// their errors, are dropped.
func (s *Session) accept(t Ticket) bool {
	if !s.orch.Current(t) {
		logging.Debug("dropped stale result", "kind", t.Kind, "req", t.RequestID, "subject", t.Subject)
		return false
	}
	s.orch.Finish(t)
	return true
}

func logFailure(what string, t Ticket, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	logging.Warn(what+" fetch failed", "req", t.RequestID, "subject", t.Subject, "err", err)
}

func derefInt(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}
