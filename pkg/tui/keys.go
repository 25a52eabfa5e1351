package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Enter        key.Binding
	Space        key.Binding
	Tab          key.Binding
	InlineEdit   key.Binding
	ExternalEdit key.Binding
	Search       key.Binding
	Add          key.Binding
	AddGoal      key.Binding
	Rename       key.Binding
	Pause        key.Binding
	Delete       key.Binding
	ToggleExpand key.Binding
	Reload       key.Binding
	Sync         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           bind("↑/k", "Move up", "up", "k"),
		Down:         bind("↓/j", "Move down", "down", "j"),
		Left:         bind("←/h", "Collapse, or go to parent", "left", "h"),
		Right:        bind("→/l", "Expand goal, quarter or month", "right", "l"),
		Enter:        bind("enter", "Toggle expand/collapse", "enter"),
		Space:        bind("space", "Toggle sub-goal complete", " "),
		Tab:          bind("tab", "Switch pane (schedule / details)", "tab"),
		InlineEdit:   bind("e", "Inline edit notes", "e"),
		ExternalEdit: bind("E", "Edit goal.md in $EDITOR", "E"),
		Search:       bind("/", "Search goals and sub-goals", "/"),
		Add:          bind("a", "Add sub-goal to the selected month", "a"),
		AddGoal:      bind("A", "Add goal (title @YYYY-MM-DD)", "A"),
		Rename:       bind("r", "Rename goal", "r"),
		Pause:        bind("p", "Pause or resume goal", "p"),
		Delete:       bind("d", "Delete goal (with confirmation)", "d"),
		ToggleExpand: bind("C", "Toggle expand/collapse all", "C"),
		Reload:       bind("R", "Reload from filesystem", "R"),
		Sync:         bind("s", "Git sync", "s"),
		Help:         bind("?", "Toggle help", "?"),
		Quit:         bind("q", "Quit", "q", "ctrl+c"),
	}
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "↑↓ nav  ←→ fold  tab pane  space toggle  a/A add  p pause  e edit  / search  ? help"
}

// FullHelp returns every binding's key and description, in help-modal order.
func (k KeyMap) FullHelp() [][]string {
	all := []key.Binding{
		k.Up, k.Down, k.Left, k.Right, k.Enter, k.Space, k.Tab,
		k.InlineEdit, k.ExternalEdit, k.Search,
		k.Add, k.AddGoal, k.Rename, k.Pause, k.Delete,
		k.ToggleExpand, k.Reload, k.Sync, k.Help, k.Quit,
	}
	rows := make([][]string, 0, len(all))
	for _, b := range all {
		h := b.Help()
		rows = append(rows, []string{h.Key, h.Desc})
	}
	return rows
}
