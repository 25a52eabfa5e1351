package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stefanpenner/lodestar/pkg/plan"
	"github.com/stefanpenner/lodestar/pkg/store"
)

const minWidth = 40
const minHeight = 10

func leftPanelWidth(total int) int {
	return max(total*2/5, 30)
}

// View implements tea.Model.
func (m Model) View() string {
	w := max(m.width, minWidth)
	h := max(m.height, minHeight)

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}
	if m.showDeleteConfirm {
		return placeOverlay(m.renderDeleteModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 2
	footerLines := 2

	searchActive := m.isSearching || m.searchQuery != ""
	if searchActive {
		headerLines++
		b.WriteString(m.renderSearchBar(w))
		b.WriteString("\n")
	}

	contentHeight := h - headerLines - footerLines

	leftWidth := leftPanelWidth(w)
	rightWidth := max(w-leftWidth-1, 20)

	leftPanel := m.renderTreePanel(leftWidth, contentHeight)
	rightPanel := m.renderDetailPanel(rightWidth, contentHeight)

	sepColor := ColorGrayDim
	if m.focusedPane == 1 || m.isEditing {
		sepColor = ColorPurple
	}
	sep := lipgloss.NewStyle().Foreground(sepColor).Render("│")
	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(leftPanel, i, leftWidth))
		b.WriteString(sep)
		b.WriteString(getLine(rightPanel, i, rightWidth))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("Lodestar")

	complete := 0
	for _, g := range m.goals {
		if g.IsComplete() {
			complete++
		}
	}
	stats := HeaderCountStyle.Render(fmt.Sprintf("%d/%d goals complete", complete, len(m.goals)))

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = "  " + lipgloss.NewStyle().Foreground(ColorCyan).Render(m.statusMsg)
	}

	gap := max(width-lipgloss.Width(title)-lipgloss.Width(stats)-lipgloss.Width(status), 1)
	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderSearchBar(width int) string {
	prefix := SearchBarStyle.Render(" / ")
	query := SearchBarStyle.Render(m.searchQuery)
	cursor := ""
	if m.isSearching {
		cursor = SearchBarStyle.Render("█")
	}

	countStr := ""
	if m.searchQuery != "" {
		countStr = SearchCountStyle.Render(fmt.Sprintf(" %d matches", len(m.searchMatchIDs)))
	}

	left := prefix + query + cursor
	pad := max(width-lipgloss.Width(left)-lipgloss.Width(countStr), 1)
	return left + strings.Repeat(" ", pad) + countStr
}

func (m Model) renderTreePanel(width, height int) string {
	var lines []string

	// last line is the goals directory
	treeHeight := max(height-1, 1)

	if len(m.visibleItems) == 0 {
		lines = append(lines, FooterStyle.Render("No goals yet. Press 'A' to add one."))
	}

	startIdx, endIdx := 0, len(m.visibleItems)
	if len(m.visibleItems) > treeHeight {
		startIdx = max(m.cursor-treeHeight/2, 0)
		endIdx = startIdx + treeHeight
		if endIdx > len(m.visibleItems) {
			endIdx = len(m.visibleItems)
			startIdx = max(endIdx-treeHeight, 0)
		}
	}

	inputLine := func() string {
		indent := strings.Repeat(DepthIndent, m.inputDepth)
		return indent + InputPromptStyle.Render("> ") + m.textInput.View()
	}
	inputPlaced := false

	for i := startIdx; i < endIdx; i++ {
		item := m.visibleItems[i]

		if item.IsSectionHeader() {
			lines = append(lines, renderSectionHeader(item, width))
			continue
		}

		if m.input == inputRename && item.Kind == KindGoal && item.Goal.ID == m.inputGoal.ID {
			indent := strings.Repeat(DepthIndent, item.Depth)
			lines = append(lines, indent+InputPromptStyle.Render("✎ ")+m.textInput.View())
			continue
		}

		lines = append(lines, m.renderTreeItem(item, i == m.cursor, width))

		if (m.input == inputGoal || m.input == inputSubGoal) && i == m.inputInsertAfter {
			lines = append(lines, inputLine())
			inputPlaced = true
		}
	}

	if (m.input == inputGoal || m.input == inputSubGoal) && !inputPlaced {
		lines = append(lines, inputLine())
	}

	for len(lines) < treeHeight {
		lines = append(lines, "")
	}
	if len(lines) > treeHeight {
		lines = lines[:treeHeight]
	}

	pathLine := lipgloss.NewStyle().Foreground(ColorGrayDim).Render(fileHyperlink(m.store.GoalsDir()))
	lines = append(lines, pathLine)

	return strings.Join(lines, "\n")
}

func renderSectionHeader(item TreeItem, width int) string {
	var style lipgloss.Style
	switch item.Name {
	case SectionActive:
		style = SectionActiveStyle
	case SectionPaused:
		style = SectionPausedStyle
	default:
		style = SectionDoneStyle
	}

	label := style.Bold(true).Render("── " + item.Name + " ")
	if remaining := width - lipgloss.Width(label); remaining > 0 {
		label += lipgloss.NewStyle().Foreground(ColorGrayDim).Render(strings.Repeat("─", remaining))
	}
	return label
}

func (m Model) renderTreeItem(item TreeItem, isSelected bool, width int) string {
	indent := strings.Repeat(DepthIndent, item.Depth-1)

	expandIcon := "  "
	if item.HasChildren {
		expandIcon = IconCollapsed + " "
		if item.IsExpanded {
			expandIcon = IconExpanded + " "
		}
	}

	var icon string
	switch {
	case item.Kind == KindSubGoal && item.SubGoal.Completed:
		icon = CompleteStyle.Render(IconComplete)
	case item.Kind == KindSubGoal:
		icon = IncompleteStyle.Render(IconIncomplete)
	case item.Kind == KindGoal && item.Goal.Status == store.StatusPaused:
		icon = InProgressStyle.Render(IconPaused)
	case item.Progress == 100:
		icon = CompleteStyle.Render(IconComplete)
	case item.Progress > 0:
		icon = InProgressStyle.Render(IconInProgress)
	default:
		icon = IncompleteStyle.Render(IconIncomplete)
	}

	name := item.Name
	isSearchMatch := m.searchMatchIDs[item.ID]
	if isSearchMatch && m.searchQuery != "" {
		if isSelected {
			name = highlightMatch(name, m.searchQuery, SearchCharSelectedStyle, SelectedStyle)
		} else {
			name = highlightMatch(name, m.searchQuery, SearchCharStyle, SearchRowStyle)
		}
	} else if item.Kind == KindQuarter || item.Kind == KindMonth {
		name = ScheduleLabelStyle.Render(name)
	}

	line := indent + expandIcon + icon + " " + name

	suffix := ""
	if item.Kind != KindSubGoal {
		suffix = " " + HeaderCountStyle.Render(progressLabel(item.Progress))
	}
	pad := width - lipgloss.Width(line) - lipgloss.Width(suffix)
	if pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	line += suffix

	switch {
	case isSearchMatch && !isSelected:
		line = SearchRowStyle.Render(line)
	case isSelected:
		line = SelectedStyle.Render(line)
	}
	return line
}

func (m Model) renderDetailPanel(width, height int) string {
	item, ok := m.selected()
	if !ok {
		return FooterStyle.Render(" Select a goal to view its plan")
	}
	goal := item.Goal

	// last line is the goal file
	bodyHeight := max(height-1, 1)

	filePath := goal.FilePath
	if filePath == "" {
		filePath = goal.ID + "/goal.md"
	}
	pathLine := lipgloss.NewStyle().Foreground(ColorGrayDim).Render(fileHyperlink(filePath))

	var lines []string
	lines = append(lines, m.renderText(renderGoalHeader(goal, item))...)
	lines = append(lines, " "+HeaderCountStyle.Render(scheduleSummary(m.schedule(goal))), "")
	lines = append(lines, m.renderHealth(goal, width)...)

	if m.isEditing {
		lines = append(lines, "")
		lines = append(lines, strings.Split(m.noteEditor.View(), "\n")...)
	} else if goal.Body != "" {
		lines = append(lines, m.renderText(goal.Body)...)
		scroll := min(max(m.notesScroll, 0), len(lines)-1)
		lines = lines[scroll:]
	}

	if len(lines) > bodyHeight {
		lines = lines[:bodyHeight]
	}
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}
	lines = append(lines, pathLine)

	return strings.Join(lines, "\n")
}

// renderText renders markdown with the cached glamour renderer.
func (m Model) renderText(md string) []string {
	rendered := md
	if m.glamourRenderer != nil {
		if out, err := m.glamourRenderer.Render(md); err == nil {
			rendered = out
		}
	}
	return strings.Split(strings.TrimRight(rendered, "\n "), "\n")
}

// renderGoalHeader builds the markdown header (title, metadata, selection) for a goal.
func renderGoalHeader(goal *store.Goal, item TreeItem) string {
	var md strings.Builder

	md.WriteString("# " + goal.Title + "\n\n")

	meta := []string{"**Status:** " + string(goal.Status)}
	if goal.TargetDate != nil {
		meta = append(meta, "**Target:** "+goal.TargetDate.Format("2006-01-02"))
	}
	if goal.CompletedAt != nil {
		meta = append(meta, "**Completed:** "+goal.CompletedAt.Format("2006-01-02"))
	}
	if len(goal.Tags) > 0 {
		meta = append(meta, "**Tags:** "+strings.Join(goal.Tags, ", "))
	}
	md.WriteString(strings.Join(meta, " | ") + "\n\n")

	switch item.Kind {
	case KindQuarter, KindMonth:
		md.WriteString(fmt.Sprintf("**%s:** %d%% complete\n\n", item.Name, item.Progress))
	case KindSubGoal:
		state := "open"
		if item.SubGoal.Completed {
			state = "done"
			if item.SubGoal.CompletedAt != nil {
				state += " " + item.SubGoal.CompletedAt.Format("2006-01-02")
			}
		}
		md.WriteString(fmt.Sprintf("**%s** (%s, %s)\n\n", item.Name, item.Month, state))
	}

	return md.String()
}

// renderHealth draws the goal's health scores as bars followed by the insight.
func (m Model) renderHealth(goal *store.Goal, width int) []string {
	report := m.engine.Health(goal, m.linkedTasks(goal))

	barWidth := max(min(width-24, 30), 5)
	label := lipgloss.NewStyle().Foreground(ColorGray).Width(15)

	row := func(name string, score int) string {
		return " " + label.Render(name) + progressBar(score, barWidth) + " " +
			scoreStyle(score).Render(fmt.Sprintf("%3d", score))
	}

	lines := []string{
		row("Progress", report.Progress),
		row("Consistency", report.Consistency),
		row("Time invested", report.TimeInvested),
		row("Momentum", report.Momentum),
		"",
	}
	insight := lipgloss.NewStyle().Foreground(ColorCyan).Italic(true).Width(max(width-2, 10)).Render(report.Insight)
	for _, l := range strings.Split(insight, "\n") {
		lines = append(lines, " "+l)
	}
	return lines
}

func (m Model) renderFooter(width int) string {
	help := m.keys.ShortHelp()
	switch {
	case m.input != inputNone:
		help = "enter confirm  esc cancel"
	case m.isEditing:
		help = "esc save & exit  ctrl+s save  ctrl+c cancel"
	case m.isSearching:
		help = "type to search  enter/↓ keep filter  esc clear"
	case m.searchQuery != "":
		help = "esc/enter clear filter  ↑↓ nav"
	case m.focusedPane == 1:
		help = "↑↓ scroll details  tab schedule  e edit  E $EDITOR  ? help"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderDeleteModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Delete Goal"))
	b.WriteString("\n\n")
	title := ""
	if m.deleteTarget != nil {
		title = m.deleteTarget.Title
	}
	b.WriteString(fmt.Sprintf("Delete '%s' with its milestones and linked tasks?\n\n", title))
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[y]") + " Yes  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("[n]") + " No")

	return ModalStyle.Render(b.String())
}

// highlightMatch splits name into before/match/after and styles the match portion
// with charStyle, and the rest with rowStyle. The match is case-insensitive.
func highlightMatch(name, query string, charStyle, rowStyle lipgloss.Style) string {
	idx := strings.Index(strings.ToLower(name), strings.ToLower(query))
	if idx < 0 {
		return rowStyle.Render(name)
	}
	before := name[:idx]
	match := name[idx : idx+len(query)]
	after := name[idx+len(query):]

	var result string
	if before != "" {
		result += rowStyle.Render(before)
	}
	result += charStyle.Render(match)
	if after != "" {
		result += rowStyle.Render(after)
	}
	return result
}

// fileHyperlink wraps a file path in an OSC 8 terminal hyperlink so it's clickable.
func fileHyperlink(path string) string {
	return fmt.Sprintf("\x1b]8;;file://%s\x1b\\%s\x1b]8;;\x1b\\", path, path)
}

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		if w := lipgloss.Width(line); w < width {
			return line + strings.Repeat(" ", width-w)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := max((height-len(modalLines))/2, 0)
	leftPadding := max((width-lipgloss.Width(modalLines[0]))/2, 0)

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}
	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}
	return result.String()
}

// scheduleSummary is the one-line "n/m sub-goals across k months" summary.
func scheduleSummary(quarters []plan.QuarterBlock) string {
	c := plan.GoalCount(quarters)
	return fmt.Sprintf("%d/%d sub-goals across %d months", c.Done, c.Total, len(plan.Months(quarters)))
}
