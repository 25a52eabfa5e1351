package tui

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/stefanpenner/lodestar/pkg/logging"
	"github.com/stefanpenner/lodestar/pkg/plan"
	"github.com/stefanpenner/lodestar/pkg/store"
	gitsync "github.com/stefanpenner/lodestar/pkg/sync"
	"github.com/stefanpenner/lodestar/pkg/tasks"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// SyncDoneMsg is sent when git sync completes.
type SyncDoneMsg struct {
	Err error
}

// EditorFinishedMsg is sent when $EDITOR returns.
type EditorFinishedMsg struct {
	Err error
}

// LinkedTasks looks up the tasks linked to a goal.
type LinkedTasks interface {
	Linked(goalID string) ([]tasks.Task, error)
	DeleteLinked(goalID string) error
}

// Options holds the Model's collaborators. Tasks and Repo may be nil.
type Options struct {
	Store  *store.Store
	Engine *plan.Engine
	Tasks  LinkedTasks
	Repo   *gitsync.Repo
	Logger *logging.Logger
	Now    func() time.Time
}

type inputKind int

const (
	inputNone inputKind = iota
	inputGoal
	inputSubGoal
	inputRename
)

// Model is the Bubble Tea model for the goal planner.
type Model struct {
	store         *store.Store
	engine        *plan.Engine
	tasks         LinkedTasks
	repo          *gitsync.Repo
	log           *logging.Logger
	now           func() time.Time
	keys          KeyMap
	width         int
	height        int
	goals         []*store.Goal
	visibleItems  []TreeItem
	expandedState map[string]bool
	cursor        int
	focusedPane   int // 0 = schedule, 1 = details
	notesScroll   int

	// Modal state
	showHelpModal     bool
	showDeleteConfirm bool
	deleteTarget      *store.Goal

	// Single-line input (goal, sub-goal, rename)
	input            inputKind
	textInput        textinput.Model
	inputGoal        *store.Goal
	inputMonth       string
	inputDepth       int
	inputInsertAfter int

	// Inline edit mode
	isEditing  bool
	noteEditor textarea.Model
	editGoalID string

	// Search state
	isSearching    bool
	searchQuery    string
	searchMatchIDs map[string]bool
	searchAncIDs   map[string]bool

	// Status message
	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int

	allExpanded bool
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.CharLimit = 120

	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return Model{
		store:         opts.Store,
		engine:        opts.Engine,
		tasks:         opts.Tasks,
		repo:          opts.Repo,
		log:           opts.Logger,
		now:           opts.Now,
		keys:          DefaultKeyMap(),
		expandedState: make(map[string]bool),
		textInput:     ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		rightWidth := max(msg.Width-leftPanelWidth(msg.Width)-1-2, 20)
		m.getGlamourRenderer(rightWidth)
		if m.isEditing {
			m.noteEditor.SetWidth(max(msg.Width-leftPanelWidth(msg.Width)-1, 20))
			m.noteEditor.SetHeight(max(msg.Height-5-4-1, 3))
		}
		m.reload()
		return m, tea.ClearScreen

	case FileChangedMsg:
		m.refreshSchedules()
		m.reload()
		return m, nil

	case SyncDoneMsg:
		if msg.Err != nil {
			m.setStatus("Sync failed: " + msg.Err.Error())
		} else {
			m.setStatus("Synced successfully")
			m.refreshSchedules()
			m.reload()
		}
		return m, nil

	case EditorFinishedMsg:
		if msg.Err != nil {
			m.setStatus("Editor failed: " + msg.Err.Error())
		}
		m.refreshSchedules()
		m.reload()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.input != inputNone {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	if m.isEditing {
		var cmd tea.Cmd
		m.noteEditor, cmd = m.noteEditor.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input != inputNone {
		return m.handleInput(msg)
	}

	if m.isEditing {
		return m.handleEditMode(msg)
	}

	if m.isSearching {
		return m.handleSearchInput(msg)
	}

	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	if m.showDeleteConfirm {
		switch msg.String() {
		case "y", "Y":
			m.deleteGoal(m.deleteTarget)
			m.showDeleteConfirm = false
		case "n", "N", "esc":
			m.showDeleteConfirm = false
		}
		return m, nil
	}

	// A search filter that is not being typed is cleared by Esc/Enter
	if m.searchQuery != "" && (msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter) {
		curID := ""
		if item, ok := m.selected(); ok {
			curID = item.ID
		}
		m.clearSearch()
		m.moveCursorTo(curID)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.focusedPane == 1 {
			if m.notesScroll > 0 {
				m.notesScroll--
			}
		} else {
			m.moveCursor(-1)
			m.notesScroll = 0
		}

	case key.Matches(msg, m.keys.Down):
		if m.focusedPane == 1 {
			m.notesScroll++
		} else {
			m.moveCursor(1)
			m.notesScroll = 0
		}

	case key.Matches(msg, m.keys.Right):
		if item, ok := m.selected(); ok && item.HasChildren {
			m.expandedState[item.ID] = true
			m.rebuildVisible()
		}

	case key.Matches(msg, m.keys.Left):
		if item, ok := m.selected(); ok {
			if item.IsExpanded {
				m.expandedState[item.ID] = false
				m.rebuildVisible()
			} else if item.ParentID != "" && !strings.HasPrefix(item.ParentID, "__header") {
				m.moveCursorTo(item.ParentID)
			}
		}

	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.selected(); ok && item.HasChildren {
			m.expandedState[item.ID] = !m.expandedState[item.ID]
			m.rebuildVisible()
		}

	case key.Matches(msg, m.keys.Space):
		if item, ok := m.selected(); ok {
			m.toggleSubGoal(item)
		}

	case key.Matches(msg, m.keys.Tab):
		m.focusedPane = (m.focusedPane + 1) % 2

	case key.Matches(msg, m.keys.InlineEdit):
		if item, ok := m.selected(); ok {
			m.enterEditMode(item.Goal)
			return m, textarea.Blink
		}

	case key.Matches(msg, m.keys.ExternalEdit):
		if item, ok := m.selected(); ok {
			return m, m.openEditor(item.Goal)
		}

	case key.Matches(msg, m.keys.AddGoal):
		m.startInput(inputGoal, "goal title, optionally @YYYY-MM-DD target", "")
		m.inputDepth = 1
		m.inputInsertAfter = len(m.visibleItems) - 1
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Add):
		item, ok := m.selected()
		if !ok {
			m.setStatus("Select a goal first, or press A to add one")
			break
		}
		return m, m.startSubGoalInput(item)

	case key.Matches(msg, m.keys.Rename):
		if item, ok := m.selected(); ok {
			m.startInput(inputRename, "new title", item.Goal.Title)
			m.inputGoal = item.Goal
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Pause):
		if item, ok := m.selected(); ok {
			m.togglePause(item.Goal)
		}

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selected(); ok {
			m.deleteTarget = item.Goal
			m.showDeleteConfirm = true
		}

	case key.Matches(msg, m.keys.ToggleExpand):
		if m.allExpanded {
			m.expandedState = make(map[string]bool)
		} else {
			m.expandedState = ExpandAllIDs(m.goals, m.schedule)
		}
		m.allExpanded = !m.allExpanded
		m.rebuildVisible()

	case key.Matches(msg, m.keys.Reload):
		m.refreshSchedules()
		m.reload()
		m.setStatus("Reloaded")

	case key.Matches(msg, m.keys.Sync):
		if m.repo == nil {
			m.setStatus("Git sync is not configured")
			break
		}
		m.setStatus("Syncing...")
		return m, m.doSync()

	case key.Matches(msg, m.keys.Search):
		m.isSearching = true
		m.searchQuery = ""
		m.searchMatchIDs = nil
		m.searchAncIDs = nil

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

func (m *Model) startInput(kind inputKind, placeholder, value string) {
	m.input = kind
	m.textInput.Reset()
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	m.textInput.Focus()
}

// startSubGoalInput opens the input line below the month the sub-goal will
// be added to, expanding the path to it.
func (m *Model) startSubGoalInput(item TreeItem) tea.Cmd {
	g := item.Goal
	quarters := m.engine.Builder.Structure(g)
	month := TargetMonth(item, quarters, plan.MonthKey(m.now()))
	if month == "" {
		m.setStatus("Goal has no schedule")
		return nil
	}

	m.expandedState[g.ID] = true
	m.expandedState[g.ID+"/"+quarterIDFor(quarters, month)] = true
	m.expandedState[g.ID+"/"+month] = true
	m.rebuildVisible()

	m.startInput(inputSubGoal, "sub-goal for "+monthLabel(quarters, month), "")
	m.inputGoal = g
	m.inputMonth = month
	m.inputDepth = 4

	monthID := g.ID + "/" + month
	m.inputInsertAfter = len(m.visibleItems) - 1
	for i, it := range m.visibleItems {
		if it.ID == monthID || it.ParentID == monthID {
			m.inputInsertAfter = i
		}
	}
	return textinput.Blink
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input = inputNone
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.textInput.Value())
		kind := m.input
		m.input = inputNone
		if value == "" {
			return m, nil
		}
		switch kind {
		case inputGoal:
			m.createGoal(value)
		case inputSubGoal:
			m.addSubGoal(m.inputGoal, m.inputMonth, value)
		case inputRename:
			m.renameGoal(m.inputGoal, value)
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
}

func (m *Model) createGoal(value string) {
	title, target, err := ParseGoalInput(value)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	g, err := m.store.CreateGoal(title, target)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	m.log.WithGoal(g.ID).Info("goal created")
	m.setStatus("Created: " + g.Title)
	m.reload()
	m.moveCursorTo(g.ID)
}

func (m *Model) addSubGoal(g *store.Goal, month, title string) {
	updated, sg, err := m.engine.Add(g, month, title)
	if err != nil {
		m.editFailed(g, err)
		return
	}
	m.setStatus("Added: " + sg.Title)
	m.reload()
	m.moveCursorTo(updated.ID + "/" + month + "/" + sg.ID)
}

func (m *Model) toggleSubGoal(item TreeItem) {
	if item.Kind != KindSubGoal {
		m.setStatus("Select a sub-goal to toggle it")
		return
	}
	updated, err := m.engine.Toggle(item.Goal, item.SubGoal.ID)
	if err != nil {
		m.editFailed(item.Goal, err)
		return
	}
	switch {
	case updated.Status == store.StatusCompleted:
		m.setStatus("Goal complete: " + updated.Title)
	case item.SubGoal.Completed:
		m.setStatus("Reopened: " + item.Name)
	default:
		m.setStatus("Completed: " + item.Name)
	}
	m.reload()
	m.moveCursorTo(item.ID)
}

// editFailed reports a failed schedule edit. A stale write means the goal
// changed on disk; the local edit is dropped and the goal reloaded.
func (m *Model) editFailed(g *store.Goal, err error) {
	switch {
	case errors.Is(err, plan.ErrGoalLocked):
		m.setStatus(g.Title + " is " + string(g.Status) + ", press p to resume it")
	case errors.Is(err, store.ErrStaleWrite):
		m.engine.Builder.Invalidate(g.ID)
		m.reload()
		m.setStatus("Goal changed on disk, reloaded. Try again.")
	default:
		m.setStatus("Error: " + err.Error())
	}
}

func (m *Model) renameGoal(g *store.Goal, title string) {
	goal, err := m.store.LoadGoal(g.ID)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	goal.Title = title
	if err := m.store.SaveGoal(goal); err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	m.setStatus("Renamed to: " + title)
	m.reload()
}

func (m *Model) togglePause(g *store.Goal) {
	next := store.StatusPaused
	switch g.Status {
	case store.StatusPaused:
		next = store.StatusActive
	case store.StatusCompleted, store.StatusAbandoned:
		m.setStatus(g.Title + " is " + string(g.Status))
		return
	}
	if _, err := m.store.SetStatus(g.ID, next); err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	m.log.WithGoal(g.ID).Info("goal status changed", "status", string(next))
	m.setStatus(g.Title + " → " + string(next))
	m.reload()
	m.moveCursorTo(g.ID)
}

func (m *Model) deleteGoal(g *store.Goal) {
	if g == nil {
		return
	}
	if err := m.store.DeleteGoal(g.ID); err != nil {
		m.setStatus("Delete failed: " + err.Error())
		return
	}
	if m.tasks != nil {
		if err := m.tasks.DeleteLinked(g.ID); err != nil {
			m.log.WithGoal(g.ID).Warn("linked tasks not deleted", "error", err)
		}
	}
	m.engine.Builder.Invalidate(g.ID)
	m.log.WithGoal(g.ID).Info("goal deleted")
	m.setStatus("Deleted: " + g.Title)
	m.reload()
}

// handleEditMode handles key messages while inline editing.
func (m Model) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.saveInlineEdit()
		m.isEditing = false
		m.noteEditor.Blur()
		m.reload()
		return m, nil
	case tea.KeyCtrlS:
		m.saveInlineEdit()
		m.reload()
		return m, nil
	case tea.KeyCtrlC:
		m.isEditing = false
		m.noteEditor.Blur()
		m.setStatus("Edit cancelled")
		return m, nil
	default:
		var cmd tea.Cmd
		m.noteEditor, cmd = m.noteEditor.Update(msg)
		return m, cmd
	}
}

// handleSearchInput handles key messages while typing in the search bar.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isSearching = false
		m.clearSearch()
		return m, nil
	case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		// keep the filter active
		m.isSearching = false
		return m, nil
	case tea.KeyBackspace:
		if len(m.searchQuery) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.searchQuery)
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-size]
		}
		m.applySearchFilter()
		m.rebuildVisible()
		return m, nil
	default:
		if msg.Type == tea.KeyRunes {
			m.searchQuery += string(msg.Runes)
			m.applySearchFilter()
			m.rebuildVisible()
		}
		return m, nil
	}
}

// enterEditMode sets up the textarea for inline editing of a goal's notes.
func (m *Model) enterEditMode(goal *store.Goal) {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetValue(goal.Body)
	ta.SetWidth(max(m.width-leftPanelWidth(m.width)-1, 20))
	ta.SetHeight(max(m.height-5-4-1, 3))
	ta.Focus()
	m.isEditing = true
	m.noteEditor = ta
	m.editGoalID = goal.ID
	m.focusedPane = 1
}

// saveInlineEdit saves the textarea content back to the goal file.
func (m *Model) saveInlineEdit() {
	goal, err := m.store.LoadGoal(m.editGoalID)
	if err != nil {
		m.setStatus("Save error: " + err.Error())
		return
	}
	goal.Body = m.noteEditor.Value()
	if err := m.store.SaveGoal(goal); err != nil {
		m.setStatus("Save error: " + err.Error())
		return
	}
	m.setStatus("Saved")
}

func (m *Model) clearSearch() {
	m.searchQuery = ""
	m.searchMatchIDs = nil
	m.searchAncIDs = nil
	m.rebuildVisible()
}

// applySearchFilter matches the query against every goal and sub-goal,
// expanding the ancestors of each match.
func (m *Model) applySearchFilter() {
	if m.searchQuery == "" {
		m.searchMatchIDs = nil
		m.searchAncIDs = nil
		return
	}

	query := strings.ToLower(m.searchQuery)
	m.searchMatchIDs = make(map[string]bool)
	m.searchAncIDs = make(map[string]bool)

	allItems := FlattenWithStatusGroups(m.goals, m.schedule, ExpandAllIDs(m.goals, m.schedule))
	parents := make(map[string]string, len(allItems))
	for _, item := range allItems {
		parents[item.ID] = item.ParentID
	}

	for _, item := range allItems {
		if item.IsSectionHeader() || item.Kind == KindQuarter || item.Kind == KindMonth {
			continue
		}
		if !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		m.searchMatchIDs[item.ID] = true
		for p := item.ParentID; p != "" && !m.searchAncIDs[p]; p = parents[p] {
			m.searchAncIDs[p] = true
			if !strings.HasPrefix(p, "__header") {
				m.expandedState[p] = true
			}
		}
	}
}

// schedule returns the engine's current schedule for g.
func (m *Model) schedule(g *store.Goal) []plan.QuarterBlock {
	return m.engine.Builder.Structure(g)
}

// refreshSchedules drops clean cached schedules so goal files edited outside
// the engine are re-read. Unsynced edits are kept.
func (m *Model) refreshSchedules() {
	for _, g := range m.goals {
		if !m.engine.Builder.IsDirty(g.ID) {
			m.engine.Builder.Invalidate(g.ID)
		}
	}
}

func (m *Model) reload() {
	goals, err := m.store.ListGoals()
	if err != nil {
		m.setStatus("Load error: " + err.Error())
		m.log.Error("loading goals", "error", err)
		return
	}
	m.goals = goals
	if m.searchQuery != "" {
		m.applySearchFilter()
	}
	m.rebuildVisible()
}

func (m *Model) rebuildVisible() {
	m.visibleItems = FlattenWithStatusGroups(m.goals, m.schedule, m.expandedState)

	if m.searchQuery != "" && m.searchMatchIDs != nil {
		m.visibleItems = FilterVisibleItems(m.visibleItems, m.searchMatchIDs, m.searchAncIDs)
	}

	m.cursor = min(m.cursor, len(m.visibleItems)-1)
	m.cursor = max(m.cursor, 0)
	m.skipHeader(1)
}

// moveCursor moves by delta rows, stepping over section headers.
func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	for next >= 0 && next < len(m.visibleItems) && m.visibleItems[next].IsSectionHeader() {
		next += delta
	}
	if next >= 0 && next < len(m.visibleItems) {
		m.cursor = next
	}
}

func (m *Model) skipHeader(delta int) {
	if m.cursor < len(m.visibleItems) && m.visibleItems[m.cursor].IsSectionHeader() {
		m.moveCursor(delta)
	}
}

// moveCursorTo positions the cursor on the row with id, if visible.
func (m *Model) moveCursorTo(id string) {
	for i, item := range m.visibleItems {
		if item.ID == id {
			m.cursor = i
			return
		}
	}
}

// selected returns the row under the cursor, unless it is a header.
func (m Model) selected() (TreeItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visibleItems) {
		return TreeItem{}, false
	}
	item := m.visibleItems[m.cursor]
	if item.IsSectionHeader() {
		return TreeItem{}, false
	}
	return item, true
}

// linkedTasks returns the tasks linked to g, or nil when there is no task store.
func (m Model) linkedTasks(g *store.Goal) []tasks.Task {
	if m.tasks == nil {
		return nil
	}
	linked, err := m.tasks.Linked(g.ID)
	if err != nil {
		m.log.WithGoal(g.ID).Warn("loading linked tasks", "error", err)
		return nil
	}
	return linked
}

// getGlamourRenderer returns a cached glamour renderer, creating one if needed
// or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}

func (m *Model) openEditor(g *store.Goal) tea.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	filePath := g.FilePath
	if filePath == "" {
		if err := m.store.SaveGoal(g); err != nil {
			m.setStatus("Error saving: " + err.Error())
			return nil
		}
		filePath = g.FilePath
	}

	c := exec.Command(editor, filePath)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return EditorFinishedMsg{Err: err}
	})
}

func (m Model) doSync() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		return SyncDoneMsg{Err: repo.Sync()}
	}
}

// ParseGoalInput splits "title @YYYY-MM-DD" into a title and target date.
// Without a trailing @date the target is nil.
func ParseGoalInput(s string) (string, *time.Time, error) {
	s = strings.TrimSpace(s)
	idx := strings.LastIndex(s, " @")
	if idx < 0 {
		return s, nil, nil
	}
	target, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s[idx+2:]), time.Local)
	if err != nil {
		return "", nil, errors.New("target date must be YYYY-MM-DD")
	}
	return strings.TrimSpace(s[:idx]), &target, nil
}

func quarterIDFor(quarters []plan.QuarterBlock, month string) string {
	for _, q := range quarters {
		for _, m := range q.Months {
			if m.Month == month {
				return q.ID
			}
		}
	}
	return ""
}

func monthLabel(quarters []plan.QuarterBlock, month string) string {
	for _, m := range plan.Months(quarters) {
		if m.Month == month {
			return m.Label
		}
	}
	return month
}
