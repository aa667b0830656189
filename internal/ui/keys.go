package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Back        key.Binding
	Select      key.Binding
	Up          key.Binding
	Down        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	PageSize    key.Binding
	SortKey     key.Binding
	SortDir     key.Binding
	Refresh     key.Binding
	Live        key.Binding
	Like        key.Binding
	Dislike     key.Binding
	Profile     key.Binding
	Users       key.Binding
	Papers      key.Binding
	Journals    key.Binding
	ConfigView  key.Binding
	ReloadViews key.Binding
}

var keys = keyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	NextPage:    key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/n", "next page")),
	PrevPage:    key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/p", "prev page")),
	PageSize:    key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "page size")),
	SortKey:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort key")),
	SortDir:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "sort dir")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Live:        key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "live")),
	Like:        key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "like")),
	Dislike:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "dislike")),
	Profile:     key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "next profile")),
	Users:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "users")),
	Papers:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "papers")),
	Journals:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "journals")),
	ConfigView:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "config")),
	ReloadViews: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload journals")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.SortKey, k.SortDir, k.Refresh, k.Live, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.PageSize},
		{k.SortKey, k.SortDir, k.Refresh, k.Live},
		{k.Like, k.Dislike, k.Profile, k.Users},
		{k.Papers, k.Journals, k.ConfigView, k.ReloadViews},
		{k.Back, k.Help, k.Quit},
	}
}
