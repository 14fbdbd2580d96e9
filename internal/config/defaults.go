// Package config handles todocurses user configuration.
package config

import "github.com/twiced-technology-gmbh/todocurses/internal/todolist"

const (
	// DefaultArchiveFile is the done file written next to the todo file.
	DefaultArchiveFile = todolist.DefaultArchiveFile
	// DefaultPageSize is how many tasks a page key moves when unset.
	DefaultPageSize = 10

	// ConfigFileName is the name of the config file inside the config dir.
	ConfigFileName = "config.yml"
	// AppDir is the directory under the user config dir.
	AppDir = "todocurses"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1
)

// Actions that can be bound to keys.
const (
	ActionQuit         = "quit"
	ActionDown         = "down"
	ActionUp           = "up"
	ActionPageDown     = "page_down"
	ActionPageUp       = "page_up"
	ActionPriorityUp   = "priority_up"
	ActionPriorityDown = "priority_down"
	ActionToggle       = "toggle"
	ActionAdd          = "add"
	ActionHome         = "home"
	ActionEnd          = "end"
	ActionHelp         = "help"
	ActionCancel       = "cancel"
	ActionSubmit       = "submit"
)

// Actions lists every bindable action in help order.
var Actions = []string{
	ActionDown, ActionUp,
	ActionPageDown, ActionPageUp,
	ActionHome, ActionEnd,
	ActionPriorityUp, ActionPriorityDown,
	ActionToggle, ActionAdd,
	ActionHelp, ActionQuit,
	ActionCancel, ActionSubmit,
}

// DefaultKeys holds the built-in key bindings. Key names follow bubbletea's
// KeyMsg.String() (e.g. "down", "pgup", " " for space).
var DefaultKeys = map[string][]string{
	ActionQuit:         {"q"},
	ActionDown:         {"j", "down"},
	ActionUp:           {"k", "up"},
	ActionPageDown:     {" ", "pgdown"},
	ActionPageUp:       {"b", "pgup"},
	ActionPriorityUp:   {"K"},
	ActionPriorityDown: {"J"},
	ActionToggle:       {"x"},
	ActionAdd:          {"n"},
	ActionHome:         {"h", "home"},
	ActionEnd:          {"l", "end"},
	ActionHelp:         {"?"},
	ActionCancel:       {"esc"},
	ActionSubmit:       {"enter"},
}

// modalActions are only active while a new task is being typed, so their
// keys may overlap with the list bindings.
var modalActions = map[string]bool{
	ActionCancel: true,
	ActionSubmit: true,
}
