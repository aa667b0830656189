package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jpreyes/paperradar/internal/api"
	"github.com/jpreyes/paperradar/internal/coord"
	"github.com/jpreyes/paperradar/internal/feed"
	"github.com/jpreyes/paperradar/internal/logging"
)

type viewMode int

const (
	viewUsers viewMode = iota
	viewPapers
	viewJournals
	viewConfig
)

const detailHeight = 7

// AppConfig holds the dependencies injected into App.
type AppConfig struct {
	// Session owns all feed state and issues every API request.
	Session *coord.Session

	// LoadUsers returns a Cmd that fetches the subject picker's user list.
	LoadUsers func() tea.Cmd

	// Subject, when set, is opened directly instead of the picker.
	Subject coord.Subject

	// Now is the clock used for relative times. Defaults to time.Now.
	Now func() time.Time
}

// App is the root Bubble Tea model.
// IMPORTANT: App does NOT talk to the API. Every request goes through the Session.
type App struct {
	session   *coord.Session
	loadUsers func() tea.Cmd
	initial   coord.Subject
	now       func() time.Time

	view          viewMode
	users         []api.User
	usersErr      error
	usersLoading  bool
	userCursor    int
	journalCursor int

	table       table.Model
	spinner     spinner.Model
	input       textinput.Model
	editingSize bool
	help        help.Model

	width  int
	height int
	ready  bool
}

// NewApp creates a new App.
func NewApp(cfg AppConfig) App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	in := textinput.New()
	in.Prompt = "page size: "
	in.CharLimit = 6

	t := table.New(
		table.WithColumns(paperColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	a := App{
		session:   cfg.Session,
		loadUsers: cfg.LoadUsers,
		initial:   cfg.Subject,
		now:       now,
		view:      viewUsers,
		table:     t,
		spinner:   s,
		input:     in,
		help:      help.New(),
	}
	if !cfg.Subject.IsZero() {
		a.view = viewPapers
	} else if cfg.LoadUsers != nil {
		a.usersLoading = true
	}
	return a
}

// Init starts the spinner and either opens the initial subject or loads
// the user list.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if !a.initial.IsZero() {
		cmds = append(cmds, a.session.SelectSubject(a.initial))
	} else if a.loadUsers != nil {
		cmds = append(cmds, a.loadUsers())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.syncTable()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case coord.LiveTick:
		// Only a live view follows the poller; history pages stay put.
		if a.view != viewPapers || a.session.Mode() != feed.Live || a.session.Papers().Loading {
			return a, nil
		}
		return a, a.session.LoadPapers(feed.Live)

	case UsersLoaded:
		a.usersLoading = false
		if msg.Err != nil {
			a.usersErr = msg.Err
			logging.Warn("users fetch failed", "err", msg.Err)
			return a, nil
		}
		a.users = msg.Users
		a.usersErr = nil
		a.userCursor = min(a.userCursor, max(0, len(a.users)-1))
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if handled, cmd := a.session.Update(msg); handled {
		a.syncTable()
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editingSize {
		return a.handleSizeInput(msg)
	}

	a.session.ClearNotice()

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	}

	if a.view == viewUsers {
		return a.handleUsersKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Users):
		a.view = viewUsers
		if len(a.users) == 0 && !a.usersLoading && a.loadUsers != nil {
			a.usersLoading = true
			return a, a.loadUsers()
		}
		return a, nil
	case key.Matches(msg, keys.Papers):
		a.view = viewPapers
		return a, nil
	case key.Matches(msg, keys.Journals):
		a.view = viewJournals
		js := a.session.Journals()
		if len(js.Items) == 0 && !js.Loading && js.LastError == "" {
			return a, a.session.LoadJournals()
		}
		return a, nil
	case key.Matches(msg, keys.ConfigView):
		a.view = viewConfig
		return a, nil
	case key.Matches(msg, keys.Back):
		a.view = viewPapers
		return a, nil
	case key.Matches(msg, keys.Refresh):
		cmd := a.session.Refresh(feed.History)
		a.syncTable()
		return a, cmd
	case key.Matches(msg, keys.Profile):
		return a, a.session.NextProfile()
	}

	switch a.view {
	case viewJournals:
		return a.handleJournalsKey(msg)
	case viewPapers:
		return a.handlePapersKey(msg)
	}
	return a, nil
}

func (a App) handleUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.userCursor > 0 {
			a.userCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.userCursor < len(a.users)-1 {
			a.userCursor++
		}
	case key.Matches(msg, keys.Select):
		if a.userCursor >= len(a.users) {
			return a, nil
		}
		u := a.users[a.userCursor]
		subj := coord.Subject{ChatID: u.ChatID, Profile: u.ActiveProfile}
		a.view = viewPapers
		a.journalCursor = 0
		if subj == a.session.Subject() {
			return a, nil
		}
		cmd := a.session.SelectSubject(subj)
		a.table.SetCursor(0)
		a.syncTable()
		return a, cmd
	case key.Matches(msg, keys.Refresh):
		if a.loadUsers != nil {
			a.usersLoading = true
			return a, a.loadUsers()
		}
	case key.Matches(msg, keys.Back):
		if !a.session.Subject().IsZero() {
			a.view = viewPapers
		}
	}
	return a, nil
}

func (a App) handlePapersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, keys.NextPage):
		cmd = a.session.NextPage()
	case key.Matches(msg, keys.PrevPage):
		cmd = a.session.PrevPage()
	case key.Matches(msg, keys.PageSize):
		a.editingSize = true
		a.input.SetValue("")
		a.input.Placeholder = strconv.Itoa(a.session.Page().Size)
		return a, a.input.Focus()
	case key.Matches(msg, keys.SortKey):
		a.session.CycleSortKey()
	case key.Matches(msg, keys.SortDir):
		a.session.ToggleSortDirection()
	case key.Matches(msg, keys.Live):
		cmd = a.session.LoadPapers(feed.Live)
	case key.Matches(msg, keys.Like):
		if e, ok := a.selected(); ok {
			cmd = a.session.Feedback(feed.Identity(e), "like")
		}
	case key.Matches(msg, keys.Dislike):
		if e, ok := a.selected(); ok {
			cmd = a.session.Feedback(feed.Identity(e), "dislike")
		}
	default:
		a.table, cmd = a.table.Update(msg)
		return a, cmd
	}
	a.syncTable()
	return a, cmd
}

func (a App) handleSizeInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.editingSize = false
		a.input.Blur()
		return a, nil
	case "enter":
		a.editingSize = false
		a.input.Blur()
		cmd := a.session.SetPageSize(a.input.Value())
		a.table.SetCursor(0)
		a.syncTable()
		return a, cmd
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) handleJournalsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(a.session.Journals().Items)
	switch {
	case key.Matches(msg, keys.Up):
		if a.journalCursor > 0 {
			a.journalCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.journalCursor < n-1 {
			a.journalCursor++
		}
	case key.Matches(msg, keys.ReloadViews):
		a.journalCursor = 0
		return a, a.session.LoadJournals()
	}
	return a, nil
}

// selected returns the paper under the table cursor.
func (a App) selected() (feed.Entry, bool) {
	visible := a.session.Visible()
	i := a.table.Cursor()
	if i < 0 || i >= len(visible) {
		return feed.Entry{}, false
	}
	return visible[i], true
}

// syncTable rebuilds the papers table from the session.
func (a *App) syncTable() {
	width := a.width
	if width == 0 {
		width = 80
	}
	visible := a.session.Visible()
	cols := paperColumns(width)
	a.table.SetColumns(cols)
	a.table.SetRows(paperRows(visible, a.session.IsFresh, cols, a.now()))
	if a.table.Cursor() >= len(visible) {
		a.table.SetCursor(max(0, len(visible)-1))
	}
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := Header.Width(a.width).Render(a.headerText())
	footer := a.footer()
	bodyHeight := max(3, a.height-lipgloss.Height(header)-lipgloss.Height(footer))

	var body string
	switch a.view {
	case viewUsers:
		body = a.renderUsers(bodyHeight)
	case viewPapers:
		body = a.renderPapers(bodyHeight)
	case viewJournals:
		body = renderJournals(a.session.Journals(), a.journalCursor, a.width, bodyHeight, a.now())
	case viewConfig:
		body = renderConfig(a.session.Config(), a.session.ConfigError(), a.width)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a App) headerText() string {
	text := "PAPERRADAR"
	if subj := a.session.Subject(); !subj.IsZero() {
		text += "  ·  chat " + strconv.FormatInt(subj.ChatID, 10)
		if subj.Profile != "" {
			text += "  ·  profile " + subj.Profile
		}
	}
	switch a.view {
	case viewUsers:
		text += "  ·  users"
	case viewJournals:
		text += "  ·  journals"
	case viewConfig:
		text += "  ·  config"
	}
	return text
}

func (a App) renderPapers(height int) string {
	st := a.session.Papers()
	if len(st.Items) == 0 {
		switch {
		case st.Loading:
			return HelpStyle.Render(a.spinner.View() + " Loading papers...")
		case st.LastError != "":
			return ""
		}
		return HelpStyle.Render("No papers ranked yet. Press 'r' to refresh or 'R' for live.")
	}

	t := a.table
	tableHeight := max(3, height-detailHeight-1)
	t.SetHeight(tableHeight)

	out := t.View()
	if e, ok := a.selected(); ok {
		out = lipgloss.JoinVertical(lipgloss.Left, out, renderDetail(e, a.session.IsFresh(e), a.width, height-tableHeight-2))
	}
	return out
}

func (a App) renderUsers(height int) string {
	if a.usersLoading && len(a.users) == 0 {
		return HelpStyle.Render(a.spinner.View() + " Loading users...")
	}
	if a.usersErr != nil && len(a.users) == 0 {
		return ErrorStyle.Render("Could not load users: "+a.usersErr.Error()) + "\n" +
			HelpStyle.Render("Press 'r' to retry.")
	}
	if len(a.users) == 0 {
		return HelpStyle.Render("No users registered.")
	}

	var b strings.Builder
	b.WriteString(SectionTitle.Render("Select a chat"))
	b.WriteString("\n")

	start := 0
	if rows := height - 1; a.userCursor >= rows && rows > 0 {
		start = a.userCursor - rows + 1
	}
	inner := max(10, a.width-4)
	for i := start; i < len(a.users) && i-start < height-1; i++ {
		u := a.users[i]
		line := fmt.Sprintf("%-16d %-14s %s", u.ChatID, u.ActiveProfile, u.ProfileSummary)
		if u.ProfileSummary == "" && len(u.ProfileTopics) > 0 {
			line += strings.Join(u.ProfileTopics, ", ")
		}
		style := NormalItem
		if i == a.userCursor {
			style = SelectedItem
		}
		b.WriteString(style.Render(truncate(line, inner)))
		b.WriteString("\n")
	}
	return b.String()
}

// footer stacks the error bar, notice, page-size prompt, status bar and help.
func (a App) footer() string {
	var lines []string

	st := a.session.Papers()
	if a.view == viewPapers && st.LastError != "" {
		lines = append(lines, ErrorStyle.Width(a.width).Render("Error: "+st.LastError))
	}
	if js := a.session.Journals(); a.view == viewJournals && js.LastError != "" {
		lines = append(lines, ErrorStyle.Width(a.width).Render("Error: "+js.LastError))
	}
	if n := a.session.Notice(); n != "" {
		lines = append(lines, NoticeStyle.Width(a.width).Render(n))
	}
	if a.editingSize {
		lines = append(lines, InputBar.Width(a.width).Render(a.input.View()+"  (5-200, enter to apply, esc to cancel)"))
	}

	lines = append(lines, StatusBar.Width(a.width).Render(a.statusText()))
	lines = append(lines, a.help.View(keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a App) statusText() string {
	if a.session.Subject().IsZero() {
		return StatusBarText.Render(fmt.Sprintf("%d users", len(a.users)))
	}

	parts := []string{
		showingLine(a.session),
		pageLine(a.session),
		sortLine(a.session.SortSpec()),
		fmt.Sprintf("size %d", a.session.Page().Size),
	}
	if cfg := a.session.Config(); cfg != nil {
		parts = append(parts, fmt.Sprintf("+%d/-%d", cfg.LikesTotal, cfg.DislikesTotal))
	}
	text := strings.Join(parts, "  ·  ")
	if a.session.Papers().Loading || a.session.Journals().Loading {
		text = a.spinner.View() + " " + text
	}
	return text
}
