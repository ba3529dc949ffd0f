package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the dashboard bindings. It satisfies help.KeyMap.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Pause       key.Binding
	SelectAll   key.Binding
	DeselectAll key.Binding
	Export      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all"),
	),
	DeselectAll: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "none"),
	),
	Export: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "export"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp is shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Up, k.Down, k.Toggle, k.SelectAll, k.DeselectAll, k.Pause, k.Export, k.Help}
}

// FullHelp is shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.SelectAll, k.DeselectAll, k.Pause},
		{k.Export, k.Help, k.Quit},
	}
}

// helpDescriptions are the longer descriptions used by the overlay.
var helpDescriptions = map[string]string{
	"up":     "Move cursor up",
	"down":   "Move cursor down",
	"toggle": "Start / stop monitoring the host",
	"all":    "Select all hosts",
	"none":   "Deselect all hosts",
	"pause":  "Pause / resume probing",
	"export": "Export stats to CSV",
	"help":   "Toggle this help",
	"quit":   "Quit (also Esc, Ctrl+C)",
}
