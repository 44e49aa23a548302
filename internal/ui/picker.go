// Package ui implements the interactive picker: a tabbed, fuzzy-filtered
// list of project targets and recorded sessions.
//
// The picker is a single bubbletea model. All mutable state (current view,
// per-tab filter and cursor, drill-down contents) lives on the model and is
// transformed by Update; View is a pure function of that state, which keeps
// the whole machine scriptable in tests via synthetic key messages.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asheshgoplani/codex-launch/internal/archive"
	"github.com/asheshgoplani/codex-launch/internal/logging"
	"github.com/asheshgoplani/codex-launch/internal/match"
	"github.com/asheshgoplani/codex-launch/internal/project"
)

var uiLog = logging.ForComponent(logging.CompPicker)

// ViewID identifies one picker view.
type ViewID int

const (
	ViewProjects ViewID = iota
	ViewSessionsScoped
	ViewSessionsAll
	ViewProjectSessions
)

// tabCount covers the three persistent tabs; the drill-down view keeps its
// own transient state and is rebuilt on every entry.
const tabCount = 3

// PickKind says what the user chose when the picker exited.
type PickKind int

const (
	PickQuit PickKind = iota
	PickLaunchNew
	PickResume
	PickOpenConfig
)

// Pick is the picker's result. Target is set for PickLaunchNew, Session for
// PickResume.
type Pick struct {
	Kind    PickKind
	Target  project.Target
	Session archive.SessionRecord
}

// Sources supplies list data to the picker. ForTarget loads the drill-down
// session list for one project; Reload re-reads all three lists after the
// archive changes on disk. Either may be nil, which disables that feature.
type Sources struct {
	ForTarget func(project.Target) ([]archive.SessionRecord, error)
	Reload    func() ([]project.Target, []archive.SessionRecord, []archive.SessionRecord, error)
}

type tabState struct {
	input  textinput.Model
	cursor int
}

type drillState struct {
	target   project.Target
	sessions []archive.SessionRecord
	input    textinput.Model
	cursor   int
}

// Model is the picker state machine.
type Model struct {
	targets []project.Target
	scoped  []archive.SessionRecord
	all     []archive.SessionRecord

	srcs    Sources
	changes <-chan struct{}

	view  ViewID
	tabs  [tabCount]tabState
	drill *drillState

	width  int
	height int
	now    time.Time

	pick    Pick
	done    bool
	loadErr string
}

// NewModel builds a picker over pre-loaded lists.
func NewModel(targets []project.Target, scoped, all []archive.SessionRecord, srcs Sources) Model {
	m := Model{
		targets: targets,
		scoped:  scoped,
		all:     all,
		srcs:    srcs,
		width:   80,
		height:  24,
		now:     time.Now(),
	}
	for i := range m.tabs {
		m.tabs[i].input = newFilterInput()
	}
	return m
}

// StartAt sets the initial tab. The drill-down view cannot be a start
// state; it only exists under a selected project.
func (m Model) StartAt(v ViewID) Model {
	if v >= ViewProjects && v <= ViewSessionsAll {
		m.view = v
	}
	return m
}

// WatchChanges wires a change-notification channel (see Watcher). When a
// notification is pending at tick time the lists are reloaded via
// Sources.Reload.
func (m Model) WatchChanges(ch <-chan struct{}) Model {
	m.changes = ch
	return m
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "type to filter"
	ti.PromptStyle = filterStyle
	ti.TextStyle = rowStyle
	ti.Focus()
	return ti
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Result returns the final pick. Only meaningful after the program exits.
func (m Model) Result() Pick {
	return m.pick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.maybeReload()
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) maybeReload() {
	if m.changes == nil || m.srcs.Reload == nil {
		return
	}
	select {
	case <-m.changes:
	default:
		return
	}

	targets, scoped, all, err := m.srcs.Reload()
	if err != nil {
		uiLog.Warn("reload_failed", "error", err.Error())
		return
	}
	m.targets = targets
	m.scoped = scoped
	m.all = all
	for v := ViewProjects; v <= ViewSessionsAll; v++ {
		m.clampCursor(v)
	}
	if m.drill != nil && m.srcs.ForTarget != nil {
		sessions, err := m.srcs.ForTarget(m.drill.target)
		if err == nil {
			m.drill.sessions = sessions
			m.clampCursor(ViewProjectSessions)
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys win over per-view handling.
	switch msg.String() {
	case "ctrl+c":
		m.pick = Pick{Kind: PickQuit}
		m.done = true
		return m, tea.Quit
	case "ctrl+o":
		m.pick = Pick{Kind: PickOpenConfig}
		m.done = true
		return m, tea.Quit
	}

	switch msg.String() {
	case "esc":
		return m.escape()
	case "left":
		return m.prevView()
	case "right", "tab":
		return m.nextView()
	case "shift+tab":
		return m.prevView()
	case "up", "ctrl+k":
		m.moveCursor(-1)
		return m, nil
	case "down", "ctrl+j":
		m.moveCursor(1)
		return m, nil
	case "pgup":
		m.moveCursor(-m.listHeight())
		return m, nil
	case "pgdown":
		m.moveCursor(m.listHeight())
		return m, nil
	case "home":
		m.setCursor(0)
		return m, nil
	case "end":
		m.setCursor(m.maxCursor(m.view))
		return m, nil
	case "enter":
		return m.activate()
	}

	// Everything else edits the active filter.
	input := m.activeInput()
	before := input.Value()
	updated, cmd := input.Update(msg)
	*input = updated
	if updated.Value() != before {
		m.setCursor(0)
	}
	return m, cmd
}

func (m Model) escape() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewProjects:
		m.pick = Pick{Kind: PickQuit}
		m.done = true
		return m, tea.Quit
	case ViewSessionsScoped:
		m.view = ViewProjects
	case ViewSessionsAll:
		m.view = ViewSessionsScoped
	case ViewProjectSessions:
		m.drill = nil
		m.view = ViewProjects
	}
	return m, nil
}

func (m Model) prevView() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewSessionsScoped:
		m.view = ViewProjects
	case ViewSessionsAll:
		m.view = ViewSessionsScoped
	case ViewProjectSessions:
		m.drill = nil
		m.view = ViewProjects
	}
	return m, nil
}

func (m Model) nextView() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewProjects:
		m.view = ViewSessionsScoped
	case ViewSessionsScoped:
		m.view = ViewSessionsAll
	}
	return m, nil
}

func (m Model) activate() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewProjects:
		filtered := m.filtered(ViewProjects)
		cur := m.tabs[ViewProjects].cursor
		if cur >= len(filtered) {
			return m, nil
		}
		return m.enterDrill(m.targets[filtered[cur]])

	case ViewSessionsScoped, ViewSessionsAll:
		list := m.sessionList(m.view)
		filtered := m.filtered(m.view)
		cur := m.tabs[m.view].cursor
		if cur >= len(filtered) {
			return m, nil
		}
		m.pick = Pick{Kind: PickResume, Session: list[filtered[cur]]}
		m.done = true
		return m, tea.Quit

	case ViewProjectSessions:
		d := m.drill
		if d == nil {
			return m, nil
		}
		if d.cursor == 0 {
			m.pick = Pick{Kind: PickLaunchNew, Target: d.target}
			m.done = true
			return m, tea.Quit
		}
		filtered := m.filtered(ViewProjectSessions)
		if d.cursor-1 >= len(filtered) {
			return m, nil
		}
		m.pick = Pick{Kind: PickResume, Session: d.sessions[filtered[d.cursor-1]]}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) enterDrill(t project.Target) (tea.Model, tea.Cmd) {
	var sessions []archive.SessionRecord
	if m.srcs.ForTarget != nil {
		var err error
		sessions, err = m.srcs.ForTarget(t)
		if err != nil {
			uiLog.Warn("drill_load_failed", "target", t.Path, "error", err.Error())
			m.loadErr = fmt.Sprintf("could not read sessions for %s: %v", t.Label, err)
			return m, nil
		}
	}
	m.loadErr = ""
	m.drill = &drillState{
		target:   t,
		sessions: sessions,
		input:    newFilterInput(),
	}
	m.view = ViewProjectSessions
	return m, nil
}

// activeInput returns the filter input for the current view.
func (m *Model) activeInput() *textinput.Model {
	if m.view == ViewProjectSessions {
		return &m.drill.input
	}
	return &m.tabs[m.view].input
}

func (m *Model) filterText(view ViewID) string {
	if view == ViewProjectSessions {
		if m.drill == nil {
			return ""
		}
		return m.drill.input.Value()
	}
	return m.tabs[view].input.Value()
}

func (m *Model) sessionList(view ViewID) []archive.SessionRecord {
	switch view {
	case ViewSessionsScoped:
		return m.scoped
	case ViewSessionsAll:
		return m.all
	case ViewProjectSessions:
		if m.drill == nil {
			return nil
		}
		return m.drill.sessions
	}
	return nil
}

// filtered returns indices into the view's backing list, fuzzy-ordered when
// a filter is set and in original order otherwise.
func (m *Model) filtered(view ViewID) []int {
	var rows []string
	switch view {
	case ViewProjects:
		rows = make([]string, len(m.targets))
		for i, t := range m.targets {
			rows[i] = TargetRow(t, m.now)
		}
	case ViewProjectSessions:
		list := m.sessionList(view)
		rows = make([]string, len(list))
		for i, s := range list {
			rows[i] = ProjectSessionRow(s, m.now)
		}
	default:
		list := m.sessionList(view)
		rows = make([]string, len(list))
		for i, s := range list {
			rows[i] = SessionRow(s, m.now)
		}
	}

	results := match.Rank(m.filterText(view), rows)
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.Index
	}
	return out
}

// maxCursor is the highest valid cursor for a view. In the drill-down the
// synthetic "start new session" row shifts the range up by one.
func (m *Model) maxCursor(view ViewID) int {
	n := len(m.filtered(view))
	if view == ViewProjectSessions {
		return n
	}
	if n == 0 {
		return 0
	}
	return n - 1
}

func (m *Model) cursor() *int {
	if m.view == ViewProjectSessions {
		return &m.drill.cursor
	}
	return &m.tabs[m.view].cursor
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(*m.cursor() + delta)
}

func (m *Model) setCursor(pos int) {
	maxPos := m.maxCursor(m.view)
	if pos > maxPos {
		pos = maxPos
	}
	if pos < 0 {
		pos = 0
	}
	*m.cursor() = pos
}

func (m *Model) clampCursor(view ViewID) {
	maxPos := m.maxCursor(view)
	var cur *int
	if view == ViewProjectSessions {
		if m.drill == nil {
			return
		}
		cur = &m.drill.cursor
	} else {
		cur = &m.tabs[view].cursor
	}
	if *cur > maxPos {
		*cur = maxPos
	}
}

// listHeight is the number of list rows that fit between the chrome lines.
func (m *Model) listHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// window returns the half-open visible range for count rows with the cursor
// kept vertically centered where possible.
func (m *Model) window(count, cursor int) (int, int) {
	rows := m.listHeight()
	if count <= rows {
		return 0, count
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start > count-rows {
		start = count - rows
	}
	return start, start + rows
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	b.WriteString(m.activeInputView())
	b.WriteString("\n")
	b.WriteString(m.listView())
	b.WriteString(m.footerLine())
	return b.String()
}

func (m Model) headerLine() string {
	if m.view == ViewProjectSessions && m.drill != nil {
		title := titleStyle.Render("codex-launch") + "  " +
			tabActive.Render("Sessions · "+m.drill.target.Label)
		return fitLine(title, m.width)
	}

	names := [tabCount]string{"Projects", "Sessions·scoped", "Sessions·all"}
	parts := make([]string, tabCount)
	for i, name := range names {
		if ViewID(i) == m.view {
			parts[i] = tabActive.Render(name)
		} else {
			parts[i] = tabStyle.Render(name)
		}
	}
	return fitLine(titleStyle.Render("codex-launch")+"  "+strings.Join(parts, dimStyle.Render("  |  ")), m.width)
}

func (m Model) activeInputView() string {
	mm := &m
	return fitLine(mm.activeInput().View(), m.width)
}

func (m Model) listView() string {
	mm := &m
	filtered := mm.filtered(m.view)
	cur := *mm.cursor()

	var lines []string
	if m.view == ViewProjectSessions {
		lines = mm.drillLines(filtered, cur)
	} else {
		lines = mm.tabLines(filtered, cur)
	}

	if len(lines) == 0 {
		msg := "no matches"
		if m.filterText(m.view) == "" {
			msg = "nothing here yet"
		}
		return emptyStyle.Render("  "+msg) + "\n"
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) tabLines(filtered []int, cur int) []string {
	start, end := m.window(len(filtered), cur)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		var row string
		if m.view == ViewProjects {
			row = TargetRow(m.targets[filtered[i]], m.now)
		} else {
			row = SessionRow(m.sessionList(m.view)[filtered[i]], m.now)
		}
		lines = append(lines, m.renderRow(row, i == cur, false))
	}
	return lines
}

// drillLines renders the synthetic "start new" row at index 0 followed by
// the filtered sessions.
func (m *Model) drillLines(filtered []int, cur int) []string {
	start, end := m.window(len(filtered)+1, cur)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == 0 {
			lines = append(lines, m.renderRow(NewSessionRow(m.drill.target), cur == 0, true))
			continue
		}
		row := ProjectSessionRow(m.drill.sessions[filtered[i-1]], m.now)
		lines = append(lines, m.renderRow(row, i == cur, false))
	}
	return lines
}

func (m *Model) renderRow(row string, selected, isNew bool) string {
	prefix := "  "
	style := rowStyle
	if isNew {
		style = newRowStyle
	}
	if selected {
		prefix = "> "
		style = cursorStyle
	}
	return fitLine(style.Render(prefix+row), m.width)
}

func (m Model) footerLine() string {
	mm := &m
	count := len(mm.filtered(m.view))
	total := len(m.targets)
	switch m.view {
	case ViewSessionsScoped, ViewSessionsAll, ViewProjectSessions:
		total = len(mm.sessionList(m.view))
	}

	hints := "enter select · ←/→ tabs · ^o config · esc back"
	if m.view == ViewProjects {
		hints = "enter sessions · ←/→ tabs · ^o config · esc quit"
	}

	line := footerStyle.Render(fmt.Sprintf("%d/%d  %s", count, total, hints))
	if m.loadErr != "" {
		line = errorStyle.Render(m.loadErr)
	}
	return fitLine(line, m.width)
}

// Run drives the picker to completion. The terminal is always restored,
// even on an internal panic; in that case the in-memory log ring is dumped
// to crashLog and a descriptive error is returned instead of the raw panic.
func Run(m Model, crashLog string) (pick Pick, err error) {
	defer func() {
		if r := recover(); r != nil {
			if crashLog != "" {
				_ = logging.DumpRing(crashLog)
			}
			pick = Pick{Kind: PickQuit}
			err = fmt.Errorf("picker crashed: %v (details: %s)", r, crashLog)
		}
	}()

	var opts []tea.ProgramOption
	if useAltScreen() {
		opts = append(opts, tea.WithAltScreen())
	}
	final, rerr := tea.NewProgram(m, opts...).Run()
	if rerr != nil {
		if crashLog != "" {
			_ = logging.DumpRing(crashLog)
		}
		return Pick{Kind: PickQuit}, fmt.Errorf("picker failed: %w", rerr)
	}
	return final.(Model).Result(), nil
}

// useAltScreen reports whether the alternate screen should be used. Zellij
// panes misrender the alt screen, and CODEX_LAUNCH_NO_ALT_SCREEN opts out
// explicitly.
func useAltScreen() bool {
	if os.Getenv("CODEX_LAUNCH_NO_ALT_SCREEN") != "" {
		return false
	}
	if os.Getenv("ZELLIJ") != "" {
		return false
	}
	return true
}
