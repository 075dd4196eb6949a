package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	NextInner key.Binding
	PrevInner key.Binding
	Enter     key.Binding
	Back      key.Binding
	Filter    key.Binding
	Copy      key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
	PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev category")),
	NextInner: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l/→", "next role")),
	PrevInner: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/←", "prev role")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
	Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy name")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp returns short help key bindings (for help.Model)
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.NextInner, k.Enter, k.Filter, k.Help, k.Quit}
}

// FullHelp returns full help key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.NextTab, k.PrevTab, k.NextInner, k.PrevInner},
		{k.Filter, k.Copy, k.Refresh},
		{k.Help, k.Quit},
	}
}
