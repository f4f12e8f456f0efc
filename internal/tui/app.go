// Package tui renders the feed deck: one tab per keyword feed plus the
// reserved Bookmarks tab. All state lives in the session registry; the
// model only holds view concerns (active tab, cursor, filter, sort).
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"newsdeck/internal/browser"
	"newsdeck/internal/news"
	"newsdeck/internal/notify"
	"newsdeck/internal/refresh"
	"newsdeck/internal/session"
	"newsdeck/internal/state"
	"newsdeck/internal/view"
)

// BookmarksTab is the reserved first tab. It is a projection of the
// bookmark list and is never fetched or renamed.
const BookmarksTab = "Bookmarks"

const statusTTL = 4 * time.Second

type inputKind int

const (
	inputNone inputKind = iota
	inputAdd
	inputRename
	inputFilter
)

type App struct {
	ctx   context.Context
	reg   *session.Registry
	coord *refresh.Coordinator
	store *state.Store

	width  int
	height int

	tab       int // 0 = bookmarks, n>0 = feed n-1 in registry order
	cursor    int
	sortOrder view.Order
	filter    string

	input     textinput.Model
	inputKind inputKind
	spinner   spinner.Model

	status   string
	statusID int
	err      error
	showHelp bool
}

// RunOpts holds the collaborators the TUI needs.
type RunOpts struct {
	Ctx      context.Context
	Registry *session.Registry
	Coord    *refresh.Coordinator
	Store    *state.Store
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		ctx:     opts.Ctx,
		reg:     opts.Registry,
		coord:   opts.Coord,
		store:   opts.Store,
		input:   ti,
		spinner: sp,
	}
}

func (a *App) Init() tea.Cmd {
	a.coord.RefreshAll(a.ctx, false)
	return tea.Batch(a.waitForEvent(), a.spinner.Tick)
}

// currentLabel returns the feed label of the active tab, or false on the
// bookmarks tab.
func (a *App) currentLabel() (string, bool) {
	if a.tab == 0 {
		return "", false
	}
	labels := a.reg.Labels()
	if a.tab-1 >= len(labels) {
		return "", false
	}
	return labels[a.tab-1], true
}

// sourceItems is the unprojected item list behind the active tab.
func (a *App) sourceItems() []news.Item {
	if label, ok := a.currentLabel(); ok {
		if f, found := a.reg.Feed(label); found {
			return f.Items
		}
		return nil
	}
	return a.reg.Bookmarks()
}

func (a *App) visibleItems() []news.Item {
	return view.Project(a.sourceItems(), a.filter, a.sortOrder)
}

func (a *App) anyFetching() bool {
	for _, label := range a.reg.Labels() {
		if f, ok := a.reg.Feed(label); ok && f.Fetching {
			return true
		}
	}
	return false
}

// selectTab activates a tab and clears the incoming feed's new links,
// since the user is now looking at it.
func (a *App) selectTab(idx int) {
	count := len(a.reg.Labels()) + 1
	if count == 0 {
		return
	}
	a.tab = ((idx % count) + count) % count
	a.cursor = 0
	a.filter = ""
	if label, ok := a.currentLabel(); ok {
		a.reg.ClearNewLinks(label)
	}
}

func (a *App) setStatus(s string) tea.Cmd {
	a.status = s
	a.statusID++
	id := a.statusID
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

func (a *App) waitForEvent() tea.Cmd {
	events := a.coord.Events()
	return func() tea.Msg {
		return refreshEventMsg(<-events)
	}
}

func openBrowserCmd(link string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(link); err != nil {
			return browserErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) save() {
	if a.store == nil {
		return
	}
	if err := a.store.Save(a.reg.Snapshot()); err != nil {
		a.err = fmt.Errorf("saving state: %w", err)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		return a.handleKey(msg)

	case refreshEventMsg:
		return a.handleRefreshEvent(refresh.Event(msg))

	case statusExpiredMsg:
		if msg.id == a.statusID {
			a.status = ""
		}
		return a, nil

	case browserErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.anyFetching() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleRefreshEvent(ev refresh.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{a.waitForEvent()}

	current, _ := a.currentLabel()
	switch {
	case errors.Is(ev.Err, session.ErrFeedNotFound):
		// feed vanished between request and completion; nothing to show
	case ev.Err != nil:
		cmds = append(cmds, a.setStatus(fmt.Sprintf("refresh of %q failed: %v", ev.Feed, ev.Err)))
	case notify.ShouldNotify(ev.NewCount, ev.Feed == current, ev.Auto):
		cmds = append(cmds, a.setStatus(fmt.Sprintf("%d new in %q", ev.NewCount, ev.Feed)))
	}

	if ev.Err == nil && ev.Feed == current {
		if n := len(a.visibleItems()); a.cursor >= n && n > 0 {
			a.cursor = n - 1
		}
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.save()
		return a, tea.Quit
	}
	if a.inputKind != inputNone {
		return a.handleInputKey(msg)
	}
	if a.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			a.showHelp = false
		}
		return a, nil
	}

	items := a.visibleItems()

	switch msg.String() {
	case "q":
		a.save()
		return a, tea.Quit

	case "tab", "]", "right":
		a.selectTab(a.tab + 1)
		return a, nil
	case "shift+tab", "[", "left":
		a.selectTab(a.tab - 1)
		return a, nil

	case "j", "down":
		if a.cursor < len(items)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "o", "enter":
		if a.cursor < len(items) {
			it := items[a.cursor]
			a.reg.MarkRead(it.Link)
			return a, openBrowserCmd(it.Link)
		}
		return a, nil

	case "b":
		if a.cursor < len(items) {
			a.reg.ToggleBookmark(items[a.cursor])
			if n := len(a.visibleItems()); a.cursor >= n && n > 0 {
				a.cursor = n - 1
			}
		}
		return a, nil

	case "m":
		if a.cursor < len(items) {
			a.reg.MarkRead(items[a.cursor].Link)
		}
		return a, nil
	case "u":
		if a.cursor < len(items) {
			a.reg.MarkUnread(items[a.cursor].Link)
		}
		return a, nil

	case "A":
		n := a.reg.MarkAllRead(a.sourceItems())
		return a, a.setStatus(fmt.Sprintf("marked %d as read", n))

	case "r":
		if label, ok := a.currentLabel(); ok {
			a.coord.Refresh(a.ctx, label, false)
			return a, a.spinner.Tick
		}
		return a, nil

	case "a":
		return a, a.startInput(inputAdd, "new feed (keyword -exclude): ", "")
	case "e":
		if label, ok := a.currentLabel(); ok {
			return a, a.startInput(inputRename, "rename feed: ", label)
		}
		return a, nil
	case "x":
		if label, ok := a.currentLabel(); ok {
			if err := a.reg.RemoveFeed(label); err != nil {
				return a, a.setStatus(err.Error())
			}
			a.selectTab(a.tab - 1)
			return a, a.setStatus(fmt.Sprintf("closed %q", label))
		}
		return a, nil

	case "/":
		return a, a.startInput(inputFilter, "/ ", a.filter)
	case "s":
		if a.sortOrder == view.NewestFirst {
			a.sortOrder = view.OldestFirst
		} else {
			a.sortOrder = view.NewestFirst
		}
		a.cursor = 0
		return a, nil

	case "?":
		a.showHelp = true
		return a, nil
	}

	return a, nil
}

func (a *App) startInput(kind inputKind, prompt, value string) tea.Cmd {
	a.inputKind = kind
	a.input.Prompt = inputPromptStyle.Render(prompt)
	a.input.SetValue(value)
	a.input.CursorEnd()
	a.input.Focus()
	return textinput.Blink
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.inputKind = inputNone
		a.input.Blur()
		return a, nil
	case "enter":
		kind := a.inputKind
		value := strings.TrimSpace(a.input.Value())
		a.inputKind = inputNone
		a.input.Blur()
		return a.commitInput(kind, value)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.inputKind == inputFilter {
		// live filtering while typing
		a.filter = a.input.Value()
		a.cursor = 0
	}
	return a, cmd
}

func (a *App) commitInput(kind inputKind, value string) (tea.Model, tea.Cmd) {
	switch kind {
	case inputAdd:
		if value == "" {
			return a, nil
		}
		if value == BookmarksTab {
			return a, a.setStatus(fmt.Sprintf("%q is reserved", BookmarksTab))
		}
		if err := a.reg.CreateFeed(value); err != nil {
			return a, a.setStatus(err.Error())
		}
		a.selectTab(len(a.reg.Labels()))
		a.coord.Refresh(a.ctx, value, false)
		return a, a.spinner.Tick

	case inputRename:
		label, ok := a.currentLabel()
		if !ok || value == "" || value == label {
			return a, nil
		}
		if value == BookmarksTab {
			return a, a.setStatus(fmt.Sprintf("%q is reserved", BookmarksTab))
		}
		if err := a.reg.RenameFeed(label, value); err != nil {
			return a, a.setStatus(err.Error())
		}
		a.coord.Refresh(a.ctx, value, false)
		return a, a.spinner.Tick

	case inputFilter:
		a.filter = value
		a.cursor = 0
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return headerStyle.Render("newsdeck")
	}
	if a.showHelp {
		return a.renderHelp()
	}

	header := a.renderHeader()
	tabBar := renderTabBar(a.tabInfos(), a.tab, a.width)

	listHeight := a.height - 4 // header + tabs + input/status + bottom bar
	if listHeight < 4 {
		listHeight = 4
	}

	items := a.visibleItems()
	flags := a.itemFlags(items)

	empty := "no articles yet — press r to refresh, a to add a feed"
	if a.tab == 0 {
		empty = "no bookmarks yet — press b on an article to keep it"
	}
	list := renderList(items, flags, a.cursor, listHeight, a.width, empty)

	middle := ""
	if a.inputKind != inputNone {
		middle = " " + a.input.View()
	}

	bottom := a.renderStatusBar(len(items))

	body := lipgloss.JoinVertical(lipgloss.Left, header, tabBar, list)
	lines := strings.Split(body, "\n")
	for len(lines) < a.height-2 {
		lines = append(lines, "")
	}
	if len(lines) > a.height-2 {
		lines = lines[:a.height-2]
	}
	lines = append(lines, middle, bottom)
	return strings.Join(lines, "\n")
}

func (a *App) tabInfos() []tabInfo {
	tabs := []tabInfo{{title: BookmarksTab}}
	for _, label := range a.reg.Labels() {
		info := tabInfo{title: label}
		if f, ok := a.reg.Feed(label); ok {
			info.newCount = len(f.NewLinks)
		}
		tabs = append(tabs, info)
	}
	return tabs
}

func (a *App) itemFlags(items []news.Item) []itemFlags {
	var fresh map[string]struct{}
	if label, ok := a.currentLabel(); ok {
		if f, found := a.reg.Feed(label); found {
			fresh = f.NewLinks
		}
	}
	flags := make([]itemFlags, len(items))
	for i, it := range items {
		_, isNew := fresh[it.Link]
		flags[i] = itemFlags{
			read:       a.reg.IsRead(it.Link),
			bookmarked: a.reg.IsBookmarked(it.Link),
			fresh:      isNew,
		}
	}
	return flags
}

func (a *App) renderHeader() string {
	left := headerStyle.Render("newsdeck")
	right := headerDateStyle.Render(time.Now().Format("Jan 2 15:04"))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) renderStatusBar(count int) string {
	sortLabel := "newest"
	if a.sortOrder == view.OldestFirst {
		sortLabel = "oldest"
	}

	left := fmt.Sprintf("%d articles · %s", count, sortLabel)
	if a.filter != "" {
		left += fmt.Sprintf(" · filter %q", a.filter)
	}
	if label, ok := a.currentLabel(); ok {
		if f, found := a.reg.Feed(label); found && !f.LastUpdated.IsZero() {
			left += " · updated " + f.LastUpdated.Format("15:04:05")
		}
	}
	if a.anyFetching() {
		left = a.spinner.View() + " " + left
	}

	switch {
	case a.err != nil:
		left = statusErrStyle.Render(a.err.Error())
	case a.status != "":
		left += " · " + a.status
	}

	right := "a add  r refresh  ? help  q quit"

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (a *App) renderHelp() string {
	dim := itemMetaStyle

	help := headerStyle.Render("newsdeck") + dim.Render(" — keys") + "\n\n" +
		dim.Render("Tabs") + "\n" +
		"  tab/], [         next / previous tab\n" +
		"  a                add feed tab\n" +
		"  e                rename feed tab\n" +
		"  x                close feed tab\n\n" +
		dim.Render("Articles") + "\n" +
		"  j/k, ↑/↓         move cursor\n" +
		"  o, enter         open in browser (marks read)\n" +
		"  b                toggle bookmark\n" +
		"  m / u            mark read / unread\n" +
		"  A                mark all read\n\n" +
		dim.Render("View") + "\n" +
		"  r                refresh this feed\n" +
		"  /                filter within tab\n" +
		"  s                toggle sort order\n\n" +
		dim.Render("  ? close help   q quit")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, help)
}

// Run starts the TUI and blocks until it quits.
func Run(opts RunOpts) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
