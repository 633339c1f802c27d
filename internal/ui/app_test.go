package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/headstart/internal/content"
	"github.com/abelbrown/headstart/internal/controller"
	"github.com/abelbrown/headstart/internal/render"
)

// mockCmd records requests and returns canned results.
type mockCmd struct {
	planInterests []string
	titles        []string
	names         []string
	topics        []string
	courses       []string
	spoken        []string

	err error
}

func (m *mockCmd) generatePlan(t controller.Ticket, interests []string) tea.Cmd {
	m.planInterests = interests
	return func() tea.Msg {
		if m.err != nil {
			return PlanGenerated{Ticket: t, Err: m.err}
		}
		return PlanGenerated{Ticket: t, Plan: content.GrowthPlan{
			DailyFocus:     "Deep work",
			SuggestedBooks: []string{"Atomic Habits", "Deep Work"},
		}}
	}
}

func (m *mockCmd) summarizeBook(t controller.Ticket, title string) tea.Cmd {
	m.titles = append(m.titles, title)
	return func() tea.Msg {
		if m.err != nil {
			return SummaryGenerated{Ticket: t, Err: m.err}
		}
		return SummaryGenerated{Ticket: t, Summary: content.BookSummary{
			ID: "id-" + title, Title: title, Author: "James Clear", MainTakeaway: "Small steps.",
		}}
	}
}

func (m *mockCmd) lookupFigure(t controller.Ticket, name string) tea.Cmd {
	m.names = append(m.names, name)
	return func() tea.Msg {
		return FigureGenerated{Ticket: t, Figure: content.HistoricalFigure{Name: name, Title: "Queen"}}
	}
}

func (m *mockCmd) createCourse(t controller.Ticket, topic string) tea.Cmd {
	m.courses = append(m.courses, topic)
	return func() tea.Msg {
		return CourseGenerated{Ticket: t, Course: content.Course{ID: "c", Title: topic}}
	}
}

func (m *mockCmd) exploreTopic(t controller.Ticket, topic string) tea.Cmd {
	m.topics = append(m.topics, topic)
	return func() tea.Msg {
		return TopicBooksLoaded{Ticket: t, Titles: []string{"The Power of Habit"}}
	}
}

func (m *mockCmd) speak(t controller.Ticket, text string) tea.Cmd {
	m.spoken = append(m.spoken, text)
	return func() tea.Msg {
		return SpeechPlayed{Ticket: t, Err: m.err}
	}
}

func newTestApp(m *mockCmd) App {
	app := NewApp(AppConfig{
		Renderer:      render.NewRenderer("notty", 80),
		HomeSteps:     2,
		GeneratePlan:  m.generatePlan,
		SummarizeBook: m.summarizeBook,
		LookupFigure:  m.lookupFigure,
		CreateCourse:  m.createCourse,
		ExploreTopic:  m.exploreTopic,
		Speak:         m.speak,
	})
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(App)
}

func press(t *testing.T, app App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var model tea.Model
		model, cmd = app.Update(msg)
		app = model.(App)
	}
	return app, cmd
}

// run executes cmd and feeds its message back into app.
func run(t *testing.T, app App, cmd tea.Cmd) App {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	model, _ := app.Update(cmd())
	return model.(App)
}

// onboard selects productivity and finance and completes the plan request.
func onboard(t *testing.T, m *mockCmd) App {
	t.Helper()
	app := newTestApp(m)
	app, _ = press(t, app, "space", "down", "down", "down", "space")
	app, cmd := press(t, app, "enter")
	if app.Controller().Mode() != controller.ModeLoading {
		t.Fatalf("mode = %v, want loading", app.Controller().Mode())
	}
	return run(t, app, cmd)
}

func TestAppInit(t *testing.T) {
	app := NewApp(AppConfig{})
	if app.Init() == nil {
		t.Fatal("Init should start the spinner")
	}
	if app.View() != "Loading..." {
		t.Error("View before the first WindowSizeMsg should be a placeholder")
	}
}

func TestOnboardingFlow(t *testing.T) {
	m := &mockCmd{}
	app := onboard(t, m)

	c := app.Controller()
	if c.Mode() != controller.ModeMain || c.View().Kind() != controller.ViewHome {
		t.Fatalf("after plan: mode %v view %v", c.Mode(), c.View().Kind())
	}
	if strings.Join(m.planInterests, ",") != "productivity,finance" {
		t.Errorf("plan requested with %v", m.planInterests)
	}
	if !strings.Contains(app.View(), "Deep work") {
		t.Errorf("home should show the daily focus:\n%s", app.View())
	}
}

func TestStartWithoutInterestIsNoop(t *testing.T) {
	app := newTestApp(&mockCmd{})
	app, cmd := press(t, app, "enter")
	if cmd != nil {
		t.Error("no request should be dispatched without interests")
	}
	if app.Controller().Mode() != controller.ModeOnboarding {
		t.Errorf("mode = %v", app.Controller().Mode())
	}
}

func TestPlanFailureReturnsToOnboarding(t *testing.T) {
	m := &mockCmd{err: errors.New("boom")}
	app := newTestApp(m)
	app, _ = press(t, app, "space")
	app, cmd := press(t, app, "enter")
	app = run(t, app, cmd)
	if app.Controller().Mode() != controller.ModeOnboarding {
		t.Errorf("mode = %v, want onboarding", app.Controller().Mode())
	}
}

func TestSuggestedBookOpensSummary(t *testing.T) {
	m := &mockCmd{}
	app := onboard(t, m)

	// First row on home is the first suggested book.
	app, cmd := press(t, app, "enter")
	if app.Controller().Mode() != controller.ModeLoading {
		t.Fatalf("mode = %v, want loading", app.Controller().Mode())
	}
	if !strings.Contains(app.View(), `Summarizing "Atomic Habits"...`) {
		t.Errorf("loading screen should show the message:\n%s", app.View())
	}
	if strings.Contains(app.View(), "Deep work") {
		t.Error("loading screen must not render content")
	}

	app = run(t, app, cmd)
	sv, ok := app.Controller().View().(controller.SummaryView)
	if !ok || sv.Summary.Title != "Atomic Habits" {
		t.Fatalf("view = %#v", app.Controller().View())
	}
	if !strings.Contains(app.View(), "Atomic Habits") {
		t.Errorf("summary view should render the title:\n%s", app.View())
	}

	app, _ = press(t, app, "esc")
	if app.Controller().View().Kind() != controller.ViewHome {
		t.Errorf("esc should return home, got %v", app.Controller().View().Kind())
	}
}

func TestHistorySearchPassesNameUnchanged(t *testing.T) {
	m := &mockCmd{}
	app := onboard(t, m)

	app, _ = press(t, app, "3", "/")
	if !app.Searching() {
		t.Fatal("/ should open the search input")
	}
	app, _ = press(t, app, "C", "l", "e", "o", "p", "a", "t", "r", "a")
	app, cmd := press(t, app, "enter")
	app = run(t, app, cmd)

	if len(m.names) != 1 || m.names[0] != "Cleopatra" {
		t.Errorf("figure requested with %v", m.names)
	}
	if app.Controller().View().Kind() != controller.ViewHistoryDetail {
		t.Errorf("view = %v, want history-detail", app.Controller().View().Kind())
	}
}

func TestBlankSearchIsIgnored(t *testing.T) {
	m := &mockCmd{}
	app := onboard(t, m)
	app, _ = press(t, app, "/", " ", " ")
	app, cmd := press(t, app, "enter")
	if cmd != nil || len(m.titles) != 0 {
		t.Error("blank search should not dispatch")
	}
	if app.Controller().Mode() != controller.ModeMain {
		t.Errorf("mode = %v", app.Controller().Mode())
	}
}

func TestMentorAndCourseLists(t *testing.T) {
	m := &mockCmd{}
	app := onboard(t, m)

	app, cmd := press(t, app, "3", "enter")
	app = run(t, app, cmd)
	if m.names[0] != "Marcus Aurelius" {
		t.Errorf("first mentor = %v", m.names)
	}

	app, cmd = press(t, app, "4", "down", "enter")
	app = run(t, app, cmd)
	if m.courses[0] != "Public Speaking with Impact" {
		t.Errorf("second course path = %v", m.courses)
	}
	cv, ok := app.Controller().View().(controller.CourseDetailView)
	if !ok || cv.Course.Title != "Public Speaking with Impact" {
		t.Errorf("view = %#v", app.Controller().View())
	}
}

func TestExploreTopicLoadsInPlace(t *testing.T) {
	m := &mockCmd{}
	app := onboard(t, m)

	app, cmd := press(t, app, "2", "down", "enter")
	c := app.Controller()
	if c.Mode() != controller.ModeMain || c.View().Kind() != controller.ViewExplore || !c.TopicLoading() {
		t.Fatalf("topic request changed mode/view: %v %v loading=%v", c.Mode(), c.View().Kind(), c.TopicLoading())
	}
	if m.topics[0] != "Finance" {
		t.Errorf("topic = %v", m.topics)
	}

	app = run(t, app, cmd)
	if !strings.Contains(app.View(), "The Power of Habit") {
		t.Errorf("recommendations should render:\n%s", app.View())
	}
}

func TestStaleMessageIgnored(t *testing.T) {
	m := &mockCmd{}
	app := onboard(t, m)
	app, cmd := press(t, app, "2", "enter")
	stale := cmd()
	app, cmd = press(t, app, "down", "enter")
	app = run(t, app, cmd)

	model, _ := app.Update(stale)
	app = model.(App)
	if app.Controller().TopicLoading() {
		t.Error("stale result must not touch the loading flag")
	}
	if app.Controller().Topic() != "Finance" {
		t.Errorf("topic = %q", app.Controller().Topic())
	}
}

func TestSaveAndListen(t *testing.T) {
	m := &mockCmd{}
	app := onboard(t, m)
	app, cmd := press(t, app, "enter")
	app = run(t, app, cmd)

	app, _ = press(t, app, "s")
	if !app.Controller().IsSaved("id-Atomic Habits") {
		t.Error("s should save the open summary")
	}

	app, cmd = press(t, app, "a")
	if !app.Controller().AudioLoading() {
		t.Error("a should start narration")
	}
	if m.spoken[0] != "Atomic Habits. Por James Clear. Idea principal: Small steps." {
		t.Errorf("spoken text = %q", m.spoken[0])
	}
	app = run(t, app, cmd)
	if app.Controller().AudioLoading() || app.Controller().Alert() != "" {
		t.Error("successful narration should clear the flag without alert")
	}

	m.err = errors.New("no audio")
	app, cmd = press(t, app, "a")
	app = run(t, app, cmd)
	if app.Controller().Alert() == "" {
		t.Fatal("failed narration should raise an alert")
	}
	if !strings.Contains(app.View(), controller.AlertAudio) {
		t.Errorf("alert should render:\n%s", app.View())
	}
	app, _ = press(t, app, "1")
	if app.Controller().Alert() != "" || app.Controller().View().Kind() != controller.ViewSummary {
		t.Error("first key should only dismiss the alert")
	}
}

func TestProfileSavedList(t *testing.T) {
	m := &mockCmd{}
	app := onboard(t, m)
	app, cmd := press(t, app, "enter")
	app = run(t, app, cmd)
	app, _ = press(t, app, "s", "5")

	if !strings.Contains(app.View(), "Saved books (1)") {
		t.Errorf("profile should list saved books:\n%s", app.View())
	}

	app, _ = press(t, app, "enter")
	if app.Controller().View().Kind() != controller.ViewSummary {
		t.Errorf("enter should open the saved book, got %v", app.Controller().View().Kind())
	}

	app, _ = press(t, app, "5", "d")
	if len(app.Controller().Saved()) != 0 {
		t.Error("d should remove the saved book")
	}

	app, _ = press(t, app, "R")
	if app.Controller().Mode() != controller.ModeOnboarding {
		t.Errorf("R should restart, mode = %v", app.Controller().Mode())
	}
	if !app.Controller().Selected("productivity") {
		t.Error("restart keeps interests")
	}
}

func TestTabNavigation(t *testing.T) {
	app := onboard(t, &mockCmd{})
	want := []controller.ViewKind{controller.ViewExplore, controller.ViewHistory, controller.ViewCourses, controller.ViewProfile, controller.ViewHome}
	for _, k := range want {
		app, _ = press(t, app, "tab")
		if got := app.Controller().View().Kind(); got != k {
			t.Errorf("tab landed on %v, want %v", got, k)
		}
	}
}

func TestMissingHandlerResolvesWithError(t *testing.T) {
	app := NewApp(AppConfig{Renderer: render.NewRenderer("notty", 80)})
	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app = model.(App)
	app, _ = press(t, app, "space")
	app, cmd := press(t, app, "enter")
	app = run(t, app, cmd)
	if app.Controller().Mode() != controller.ModeOnboarding {
		t.Errorf("unwired plan request should revert, mode = %v", app.Controller().Mode())
	}
}

func TestCursorBounds(t *testing.T) {
	app := newTestApp(&mockCmd{})
	app, _ = press(t, app, "up")
	if app.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", app.Cursor())
	}
	for i := 0; i < 20; i++ {
		app, _ = press(t, app, "down")
	}
	if app.Cursor() != 7 {
		t.Errorf("cursor = %d, want 7", app.Cursor())
	}
}
