package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Enter   key.Binding
	Back    key.Binding
	Search  key.Binding
	NextTab key.Binding
	Home    key.Binding
	Explore key.Binding
	History key.Binding
	Courses key.Binding
	Profile key.Binding
	Listen  key.Binding
	Save    key.Binding
	Remove  key.Binding
	Reset   key.Binding
	Debug   key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	Home:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
	Explore: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "explore")),
	History: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "mentors")),
	Courses: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "courses")),
	Profile: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "profile")),
	Listen:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "listen")),
	Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
	Reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "restart")),
	Debug:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "activity")),
}
