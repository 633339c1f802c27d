package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/headstart/internal/catalog"
	"github.com/abelbrown/headstart/internal/controller"
	"github.com/abelbrown/headstart/internal/logging"
	"github.com/abelbrown/headstart/internal/otel"
	"github.com/abelbrown/headstart/internal/render"
)

// AppConfig injects state and side effects into the App.
// Each request func receives the ticket issued by the controller and must
// return a Cmd that eventually yields the matching *Generated message.
type AppConfig struct {
	Controller *controller.Controller
	Catalog    *catalog.Catalog
	Renderer   *render.Renderer
	Activity   *otel.RingBuffer // recent events shown on profile; may be nil
	HomeSteps  int              // plan steps previewed on home; 0 shows all

	GeneratePlan  func(t controller.Ticket, interests []string) tea.Cmd
	SummarizeBook func(t controller.Ticket, title string) tea.Cmd
	LookupFigure  func(t controller.Ticket, name string) tea.Cmd
	CreateCourse  func(t controller.Ticket, topic string) tea.Cmd
	ExploreTopic  func(t controller.Ticket, topic string) tea.Cmd
	Speak         func(t controller.Ticket, text string) tea.Cmd
}

// App is the root Bubble Tea model.
// IMPORTANT: App never calls the gateway. Results arrive via messages and
// every state change goes through the controller.
type App struct {
	cfg  AppConfig
	ctrl *controller.Controller
	cat  *catalog.Catalog

	width  int
	height int
	ready  bool

	cursor   int
	lastKind controller.ViewKind
	lastMode controller.Mode

	searching bool
	input     textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	vpKey     string

	debugVisible bool

	status string
	err    error
}

// NewApp creates an App from cfg. A nil controller or catalog is replaced
// with a fresh one.
func NewApp(cfg AppConfig) App {
	if cfg.Controller == nil {
		cfg.Controller = controller.New(nil, nil, nil)
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.NewRenderer("dark", 80)
	}

	ti := textinput.New()
	ti.CharLimit = 120
	ti.Prompt = "/ "

	s := spinner.New()
	s.Spinner = spinner.Dot

	return App{
		cfg:      cfg,
		ctrl:     cfg.Controller,
		cat:      cfg.Catalog,
		input:    ti,
		spinner:  s,
		viewport: viewport.New(80, 20),
		lastMode: cfg.Controller.Mode(),
		lastKind: cfg.Controller.View().Kind(),
	}
}

// Init starts the spinner.
func (a App) Init() tea.Cmd {
	return a.spinner.Tick
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		a, cmd = a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.cfg.Renderer.SetWidth(msg.Width - 4)
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-4, 3)
		a.vpKey = "" // re-render at the new width

	case spinner.TickMsg:
		a.spinner, cmd = a.spinner.Update(msg)

	case PlanGenerated:
		a.ctrl.ResolvePlan(msg.Ticket, msg.Plan, msg.Err)

	case SummaryGenerated:
		a.ctrl.ResolveSummary(msg.Ticket, msg.Summary, msg.Err)

	case FigureGenerated:
		a.ctrl.ResolveFigure(msg.Ticket, msg.Figure, msg.Err)

	case CourseGenerated:
		a.ctrl.ResolveCourse(msg.Ticket, msg.Course, msg.Err)

	case TopicBooksLoaded:
		a.ctrl.ResolveTopic(msg.Ticket, msg.Titles, msg.Err)

	case SpeechPlayed:
		a.ctrl.ResolveSpeech(msg.Ticket, msg.Err)

	default:
		if a.searching {
			a.input, cmd = a.input.Update(msg)
		}
	}

	a.sync()
	return a, cmd
}

// sync resets per-screen UI state after the controller changed screens.
func (a *App) sync() {
	kind, mode := a.ctrl.View().Kind(), a.ctrl.Mode()
	if kind != a.lastKind || mode != a.lastMode {
		a.cursor = 0
		a.lastKind, a.lastMode = kind, mode
		if mode != controller.ModeMain {
			a.closeSearch()
		}
	}

	id, md := a.detailMarkdown()
	if id != a.vpKey {
		a.vpKey = id
		if md != "" {
			a.viewport.SetContent(a.cfg.Renderer.Render(md))
			a.viewport.GotoTop()
		}
	}
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (App, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	// Alerts block everything until dismissed.
	if a.ctrl.Alert() != "" {
		a.ctrl.DismissAlert()
		return a, nil
	}

	// Clear any transient status on key press
	a.status = ""
	a.err = nil

	if a.searching {
		return a.handleSearchKey(msg)
	}

	// Loading shows progress only, so the overlay stays closed.
	if key.Matches(msg, keys.Debug) && a.ctrl.Mode() != controller.ModeLoading {
		a.debugVisible = !a.debugVisible
		return a, nil
	}

	switch a.ctrl.Mode() {
	case controller.ModeOnboarding:
		return a.handleOnboardingKey(msg)
	case controller.ModeLoading:
		if key.Matches(msg, keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}
	return a.handleMainKey(msg)
}

func (a App) handleOnboardingKey(msg tea.KeyMsg) (App, tea.Cmd) {
	interests := a.cat.Interests
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Up):
		a.moveCursor(-1, len(interests))
	case key.Matches(msg, keys.Down):
		a.moveCursor(1, len(interests))
	case key.Matches(msg, keys.Toggle):
		if a.cursor < len(interests) {
			a.ctrl.ToggleInterest(interests[a.cursor].ID)
		}
	case key.Matches(msg, keys.Enter):
		return a.startGrowth()
	}
	return a, nil
}

func (a App) startGrowth() (App, tea.Cmd) {
	t, ok := a.ctrl.StartGrowth()
	if !ok {
		a.status = "Pick at least one interest"
		return a, nil
	}
	if a.cfg.GeneratePlan == nil {
		return a, notWired(t)
	}
	return a, a.cfg.GeneratePlan(t, a.ctrl.Interests())
}

func (a App) handleMainKey(msg tea.KeyMsg) (App, tea.Cmd) {
	kind := a.ctrl.View().Kind()

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Home):
		a.ctrl.Navigate(controller.ViewHome)
		return a, nil
	case key.Matches(msg, keys.Explore):
		a.ctrl.Navigate(controller.ViewExplore)
		return a, nil
	case key.Matches(msg, keys.History):
		a.ctrl.Navigate(controller.ViewHistory)
		return a, nil
	case key.Matches(msg, keys.Courses):
		a.ctrl.Navigate(controller.ViewCourses)
		return a, nil
	case key.Matches(msg, keys.Profile):
		a.ctrl.Navigate(controller.ViewProfile)
		return a, nil
	case key.Matches(msg, keys.NextTab):
		a.ctrl.Navigate(nextTab(kind))
		return a, nil
	case key.Matches(msg, keys.Back):
		a.ctrl.Back()
		return a, nil
	case key.Matches(msg, keys.Search) && searchable(kind):
		a.openSearch(kind)
		return a, textinput.Blink
	}

	switch kind {
	case controller.ViewSummary:
		return a.handleSummaryKey(msg)
	case controller.ViewHistoryDetail, controller.ViewCourseDetail:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	case controller.ViewProfile:
		return a.handleProfileKey(msg)
	}
	return a.handleListKey(msg)
}

// handleListKey drives the selectable lists on home, explore, history
// and courses.
func (a App) handleListKey(msg tea.KeyMsg) (App, tea.Cmd) {
	rows := a.rows()
	switch {
	case key.Matches(msg, keys.Up):
		a.moveCursor(-1, len(rows))
	case key.Matches(msg, keys.Down):
		a.moveCursor(1, len(rows))
	case key.Matches(msg, keys.Enter):
		if a.cursor < len(rows) {
			return a.activate(rows[a.cursor])
		}
	}
	return a, nil
}

func (a App) handleSummaryKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Listen):
		t, text, ok := a.ctrl.BeginSpeech()
		if !ok {
			return a, nil
		}
		return a, dispatch(a.cfg.Speak, t, text)
	case key.Matches(msg, keys.Save):
		saved, err := a.ctrl.ToggleSaved()
		switch {
		case err != nil:
			a.err = err
		case saved:
			a.status = "Saved to your library"
		default:
			a.status = "Removed from your library"
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a App) handleProfileKey(msg tea.KeyMsg) (App, tea.Cmd) {
	saved := a.ctrl.Saved()
	switch {
	case key.Matches(msg, keys.Up):
		a.moveCursor(-1, len(saved))
	case key.Matches(msg, keys.Down):
		a.moveCursor(1, len(saved))
	case key.Matches(msg, keys.Enter):
		if a.cursor < len(saved) {
			a.ctrl.OpenSaved(saved[a.cursor].ID)
		}
	case key.Matches(msg, keys.Remove):
		if a.cursor < len(saved) {
			if err := a.ctrl.RemoveSaved(saved[a.cursor].ID); err != nil {
				a.err = err
			}
			a.moveCursor(0, len(saved)-1)
		}
	case key.Matches(msg, keys.Reset):
		a.ctrl.Reset()
	}
	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.closeSearch()
		return a, nil
	case tea.KeyEnter:
		query := a.input.Value()
		kind := a.ctrl.View().Kind()
		a.closeSearch()
		return a.submitSearch(kind, query)
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) openSearch(kind controller.ViewKind) {
	a.searching = true
	a.input.SetValue("")
	switch kind {
	case controller.ViewHistory:
		a.input.Placeholder = "Search any historical figure..."
	case controller.ViewCourses:
		a.input.Placeholder = "What do you want to learn today?"
	default:
		a.input.Placeholder = "Search any book..."
	}
	a.input.Focus()
}

func (a *App) closeSearch() {
	a.searching = false
	a.input.Blur()
}

// submitSearch passes the query through unchanged; the controller ignores
// blank input.
func (a App) submitSearch(kind controller.ViewKind, query string) (App, tea.Cmd) {
	switch kind {
	case controller.ViewHistory:
		return a.activate(row{kind: rowFigure, value: query})
	case controller.ViewCourses:
		return a.activate(row{kind: rowCourse, value: query})
	default:
		return a.activate(row{kind: rowBook, value: query})
	}
}

// activate performs the action behind a selected row.
func (a App) activate(r row) (App, tea.Cmd) {
	switch r.kind {
	case rowBook:
		if t, ok := a.ctrl.SearchBook(r.value); ok {
			return a, dispatch(a.cfg.SummarizeBook, t, r.value)
		}
	case rowFigure:
		if t, ok := a.ctrl.SearchFigure(r.value); ok {
			return a, dispatch(a.cfg.LookupFigure, t, r.value)
		}
	case rowCourse:
		if t, ok := a.ctrl.CreateCourse(r.value); ok {
			return a, dispatch(a.cfg.CreateCourse, t, r.value)
		}
	case rowTopic:
		if t, ok := a.ctrl.ExploreTopic(r.value); ok {
			return a, dispatch(a.cfg.ExploreTopic, t, r.value)
		}
	case rowView:
		a.ctrl.Navigate(r.view)
	}
	return a, nil
}

var errNotWired = errors.New("request handler not configured")

// dispatch calls fn, or resolves the ticket with an error when fn is nil
// so the controller never stays in loading.
func dispatch(fn func(controller.Ticket, string) tea.Cmd, t controller.Ticket, arg string) tea.Cmd {
	if fn == nil {
		return notWired(t)
	}
	return fn(t, arg)
}

func notWired(t controller.Ticket) tea.Cmd {
	logging.Warn("No handler for request", "slot", t.Slot)
	return func() tea.Msg { return failure(t, errNotWired) }
}

// failure builds the error message matching t's slot.
func failure(t controller.Ticket, err error) tea.Msg {
	switch t.Slot {
	case controller.SlotPlan:
		return PlanGenerated{Ticket: t, Err: err}
	case controller.SlotSummary:
		return SummaryGenerated{Ticket: t, Err: err}
	case controller.SlotFigure:
		return FigureGenerated{Ticket: t, Err: err}
	case controller.SlotCourse:
		return CourseGenerated{Ticket: t, Err: err}
	case controller.SlotTopic:
		return TopicBooksLoaded{Ticket: t, Err: err}
	default:
		return SpeechPlayed{Ticket: t, Err: err}
	}
}

func (a *App) moveCursor(delta, n int) {
	a.cursor += delta
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func searchable(k controller.ViewKind) bool {
	switch k {
	case controller.ViewHome, controller.ViewExplore, controller.ViewHistory, controller.ViewCourses:
		return true
	}
	return false
}

var tabOrder = []controller.ViewKind{
	controller.ViewHome,
	controller.ViewExplore,
	controller.ViewHistory,
	controller.ViewCourses,
	controller.ViewProfile,
}

func nextTab(k controller.ViewKind) controller.ViewKind {
	for i, t := range tabOrder {
		if t == k {
			return tabOrder[(i+1)%len(tabOrder)]
		}
	}
	return controller.ViewHome
}

// Controller returns the underlying controller (for testing).
func (a App) Controller() *controller.Controller {
	return a.ctrl
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Searching reports whether the search input is open (for testing).
func (a App) Searching() bool {
	return a.searching
}
