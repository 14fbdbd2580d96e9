package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/twiced-technology-gmbh/todocurses/internal/config"
)

// keyMap holds the list-mode and add-mode bindings. It implements
// help.KeyMap for the footer.
type keyMap struct {
	Quit         key.Binding
	Down         key.Binding
	Up           key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	PriorityUp   key.Binding
	PriorityDown key.Binding
	Toggle       key.Binding
	Add          key.Binding
	Home         key.Binding
	End          key.Binding
	Help         key.Binding
	Cancel       key.Binding
	Submit       key.Binding
}

var actionHelp = map[string]string{
	config.ActionQuit:         "quit",
	config.ActionDown:         "down",
	config.ActionUp:           "up",
	config.ActionPageDown:     "page down",
	config.ActionPageUp:       "page up",
	config.ActionPriorityUp:   "raise priority",
	config.ActionPriorityDown: "lower priority",
	config.ActionToggle:       "toggle done",
	config.ActionAdd:          "new task",
	config.ActionHome:         "first",
	config.ActionEnd:          "last",
	config.ActionHelp:         "help",
	config.ActionCancel:       "cancel",
	config.ActionSubmit:       "add task",
}

func newKeyMap(cfg *config.Config) keyMap {
	bind := func(action string) key.Binding {
		keys := cfg.KeysFor(action)
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keyLabel(keys), actionHelp[action]),
		)
	}
	return keyMap{
		Quit:         bind(config.ActionQuit),
		Down:         bind(config.ActionDown),
		Up:           bind(config.ActionUp),
		PageDown:     bind(config.ActionPageDown),
		PageUp:       bind(config.ActionPageUp),
		PriorityUp:   bind(config.ActionPriorityUp),
		PriorityDown: bind(config.ActionPriorityDown),
		Toggle:       bind(config.ActionToggle),
		Add:          bind(config.ActionAdd),
		Home:         bind(config.ActionHome),
		End:          bind(config.ActionEnd),
		Help:         bind(config.ActionHelp),
		Cancel:       bind(config.ActionCancel),
		Submit:       bind(config.ActionSubmit),
	}
}

// keyLabel joins keys for display, spelling out the space bar.
func keyLabel(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		labels[i] = k
	}
	return strings.Join(labels, "/")
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Toggle, k.PriorityUp, k.PriorityDown, k.Add, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.PageDown, k.PageUp, k.Home, k.End},
		{k.Toggle, k.PriorityUp, k.PriorityDown, k.Add},
		{k.Help, k.Quit},
	}
}

// editKeys is the footer shown while a new task is being typed.
type editKeys struct{ keyMap }

func (k editKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k editKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	_ help.KeyMap = keyMap{}
	_ help.KeyMap = editKeys{}
)
