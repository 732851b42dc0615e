package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap binds the browser actions. List navigation and filtering ("/") are
// handled by the bubbles list itself.
type keyMap struct {
	open    key.Binding
	back    key.Binding
	correct key.Binding
	confirm key.Binding
	cancel  key.Binding
	reload  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show roster")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "teams")),
		correct: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "correct folder")),
		confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "rewrite files")),
		cancel:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "cancel")),
		reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload folder")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.open, k.correct, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.open, k.back},
		{k.correct, k.confirm, k.cancel},
		{k.reload, k.quit},
	}
}
