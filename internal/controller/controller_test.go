package controller

import (
	"errors"
	"testing"

	"github.com/abelbrown/headstart/internal/catalog"
	"github.com/abelbrown/headstart/internal/content"
	"github.com/abelbrown/headstart/internal/otel"
	"github.com/google/go-cmp/cmp"
)

var errBoom = errors.New("generation failed")

type recordingPersister struct {
	saves [][]content.BookSummary
	err   error
}

func (p *recordingPersister) Save(books []content.BookSummary) error {
	p.saves = append(p.saves, books)
	return p.err
}

func samplePlan() content.GrowthPlan {
	return content.GrowthPlan{
		DailyFocus:     "Deep work",
		Steps:          []content.Step{{Title: "Plan", Description: "Write goals", Duration: "5 min"}},
		SuggestedBooks: []string{"Atomic Habits"},
	}
}

// mainController returns a controller that has completed onboarding.
func mainController(t *testing.T) *Controller {
	t.Helper()
	c := New(nil, nil, nil)
	c.ToggleInterest("productivity")
	tk, ok := c.StartGrowth()
	if !ok {
		t.Fatal("StartGrowth refused a non-empty selection")
	}
	if !c.ResolvePlan(tk, samplePlan(), nil) {
		t.Fatal("ResolvePlan rejected the current ticket")
	}
	return c
}

func TestOnboardingToHome(t *testing.T) {
	all := make([]string, 0, len(catalog.Default().Interests))
	for _, in := range catalog.Default().Interests {
		all = append(all, in.ID)
	}
	if len(all) != 8 {
		t.Fatalf("catalog has %d interests, want 8", len(all))
	}

	tests := []struct {
		name      string
		interests []string
	}{
		{"single", []string{"health"}},
		{"pair", []string{"productivity", "finance"}},
		{"all eight", all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil, nil, nil)
			for _, id := range tt.interests {
				c.ToggleInterest(id)
			}

			tk, ok := c.StartGrowth()
			if !ok {
				t.Fatal("StartGrowth should accept a non-empty selection")
			}
			if c.Mode() != ModeLoading {
				t.Errorf("mode = %v, want loading", c.Mode())
			}
			if c.LoadingMessage() != MessagePlan {
				t.Errorf("loading message = %q", c.LoadingMessage())
			}
			if tk.Slot != SlotPlan || tk.PrevMode != ModeOnboarding {
				t.Errorf("unexpected ticket %+v", tk)
			}

			c.ResolvePlan(tk, samplePlan(), nil)

			if c.Mode() != ModeMain {
				t.Errorf("mode = %v, want main", c.Mode())
			}
			if c.View().Kind() != ViewHome {
				t.Errorf("view = %v, want home", c.View().Kind())
			}
			if _, ok := c.Plan(); !ok {
				t.Error("plan should be populated")
			}
			if diff := cmp.Diff(tt.interests, c.Interests()); diff != "" {
				t.Errorf("interests changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStartGrowthRequiresInterest(t *testing.T) {
	c := New(nil, nil, nil)
	if _, ok := c.StartGrowth(); ok {
		t.Error("StartGrowth should be a no-op with no interests")
	}
	c.ToggleInterest("health")
	c.ToggleInterest("health")
	if _, ok := c.StartGrowth(); ok {
		t.Error("StartGrowth should be a no-op after deselecting the only interest")
	}
	if c.Mode() != ModeOnboarding {
		t.Errorf("mode = %v, want onboarding", c.Mode())
	}
}

func TestToggleInterestKeepsOrder(t *testing.T) {
	c := New(nil, nil, nil)
	for _, id := range []string{"a", "b", "c", "b", "d"} {
		c.ToggleInterest(id)
	}
	if diff := cmp.Diff([]string{"a", "c", "d"}, c.Interests()); diff != "" {
		t.Errorf("interests mismatch (-want +got):\n%s", diff)
	}
	if !c.Selected("c") || c.Selected("b") {
		t.Error("Selected disagrees with Interests")
	}
}

func TestPlanFailureRevertsToOnboarding(t *testing.T) {
	c := New(nil, nil, nil)
	c.ToggleInterest("productivity")
	tk, _ := c.StartGrowth()

	c.ResolvePlan(tk, content.GrowthPlan{}, errBoom)

	if c.Mode() != ModeOnboarding {
		t.Errorf("mode = %v, want onboarding", c.Mode())
	}
	if _, ok := c.Plan(); ok {
		t.Error("failed plan must not be stored")
	}
	if _, ok := c.StartGrowth(); !ok {
		t.Error("user should be able to retry after a failure")
	}
}

func TestSearchBookScenario(t *testing.T) {
	c := mainController(t)

	tk, ok := c.SearchBook("Atomic Habits")
	if !ok {
		t.Fatal("SearchBook refused a title")
	}
	if c.Mode() != ModeLoading {
		t.Errorf("mode = %v, want loading", c.Mode())
	}
	if c.LoadingMessage() != `Summarizing "Atomic Habits"...` {
		t.Errorf("loading message = %q", c.LoadingMessage())
	}

	s := content.BookSummary{ID: "b1", Title: "Atomic Habits", Author: "James Clear"}
	c.ResolveSummary(tk, s, nil)

	if c.Mode() != ModeMain {
		t.Errorf("mode = %v, want main", c.Mode())
	}
	sv, ok := c.View().(SummaryView)
	if !ok {
		t.Fatalf("view = %v, want summary", c.View().Kind())
	}
	if sv.Summary.Title != "Atomic Habits" {
		t.Errorf("summary title = %q", sv.Summary.Title)
	}
	if active, _ := c.ActiveSummary(); active.Title != "Atomic Habits" {
		t.Errorf("active summary title = %q", active.Title)
	}
}

func TestSearchFigureScenario(t *testing.T) {
	c := mainController(t)
	c.Navigate(ViewHistory)

	tk, ok := c.SearchFigure("Cleopatra")
	if !ok {
		t.Fatal("SearchFigure refused a name")
	}
	c.ResolveFigure(tk, content.HistoricalFigure{Name: "Cleopatra"}, nil)

	dv, ok := c.View().(HistoryDetailView)
	if !ok {
		t.Fatalf("view = %v, want history-detail", c.View().Kind())
	}
	if dv.Figure.Name != "Cleopatra" {
		t.Errorf("figure = %q", dv.Figure.Name)
	}
}

func TestCreateCourse(t *testing.T) {
	c := mainController(t)
	c.Navigate(ViewCourses)

	tk, ok := c.CreateCourse("Investing for Beginners")
	if !ok {
		t.Fatal("CreateCourse refused a topic")
	}
	c.ResolveCourse(tk, content.Course{ID: "c1", Title: "Investing for Beginners"}, nil)

	cv, ok := c.View().(CourseDetailView)
	if !ok || cv.Course.ID != "c1" {
		t.Fatalf("unexpected view %#v", c.View())
	}
	if !c.Back() || c.View().Kind() != ViewCourses {
		t.Errorf("Back from course-detail should land on courses, got %v", c.View().Kind())
	}
}

func TestFetchFailureKeepsViewAndContent(t *testing.T) {
	c := mainController(t)

	tk, _ := c.SearchBook("First")
	c.ResolveSummary(tk, content.BookSummary{ID: "1", Title: "First"}, nil)
	c.Back()
	c.Navigate(ViewHistory)

	tests := []struct {
		name string
		run  func() bool
	}{
		{"summary", func() bool {
			tk, ok := c.SearchBook("Second")
			return ok && c.ResolveSummary(tk, content.BookSummary{}, errBoom)
		}},
		{"figure", func() bool {
			tk, ok := c.SearchFigure("Nobody")
			return ok && c.ResolveFigure(tk, content.HistoricalFigure{}, errBoom)
		}},
		{"course", func() bool {
			tk, ok := c.CreateCourse("Nothing")
			return ok && c.ResolveCourse(tk, content.Course{}, errBoom)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.run() {
				t.Fatal("request was not dispatched or resolved")
			}
			if c.Mode() != ModeMain {
				t.Errorf("mode = %v, want main", c.Mode())
			}
			if c.View().Kind() != ViewHistory {
				t.Errorf("view = %v, want history", c.View().Kind())
			}
		})
	}

	if s, _ := c.ActiveSummary(); s.Title != "First" {
		t.Errorf("active summary replaced: %q", s.Title)
	}
	if _, ok := c.ActiveFigure(); ok {
		t.Error("failed figure should not be stored")
	}
	if _, ok := c.ActiveCourse(); ok {
		t.Error("failed course should not be stored")
	}
}

func TestBlankInputIsNoop(t *testing.T) {
	c := mainController(t)
	for _, in := range []string{"", "   ", "\t\n"} {
		if _, ok := c.SearchBook(in); ok {
			t.Errorf("SearchBook(%q) should be a no-op", in)
		}
		if _, ok := c.SearchFigure(in); ok {
			t.Errorf("SearchFigure(%q) should be a no-op", in)
		}
		if _, ok := c.CreateCourse(in); ok {
			t.Errorf("CreateCourse(%q) should be a no-op", in)
		}
	}
	if c.Mode() != ModeMain {
		t.Errorf("mode = %v, want main", c.Mode())
	}
}

func TestStaleResultsAreDropped(t *testing.T) {
	rb := otel.NewRingBuffer(16)
	events := otel.NewNullLogger()
	events.SetRingBuffer(rb)

	c := New(nil, nil, events)
	c.ToggleInterest("productivity")
	tk, _ := c.StartGrowth()
	c.ResolvePlan(tk, samplePlan(), nil)

	first, _ := c.SearchBook("Old")
	// Simulate a second dispatch for the same slot.
	c.mode = ModeMain
	second, _ := c.SearchBook("New")

	if !c.ResolveSummary(second, content.BookSummary{ID: "new", Title: "New"}, nil) {
		t.Fatal("latest ticket rejected")
	}
	if c.ResolveSummary(first, content.BookSummary{ID: "old", Title: "Old"}, nil) {
		t.Error("stale ticket accepted")
	}
	if s, _ := c.ActiveSummary(); s.ID != "new" {
		t.Errorf("stale result overwrote summary: %q", s.ID)
	}
	if !c.ResolveSummary(second, content.BookSummary{ID: "again"}, nil) {
		t.Error("latest ticket should stay valid until superseded")
	}

	// A stale failure must not revert mode either.
	c.Navigate(ViewExplore)
	if c.ResolveSummary(first, content.BookSummary{}, errBoom) {
		t.Error("stale failure accepted")
	}
	if c.Mode() != ModeMain || c.View().Kind() != ViewExplore {
		t.Errorf("stale failure changed state: %v %v", c.Mode(), c.View().Kind())
	}

	events.Close()
	var stale int
	for _, ev := range rb.Snapshot() {
		if ev.Kind == otel.KindStale {
			stale++
		}
	}
	if stale != 2 {
		t.Errorf("stale events = %d, want 2", stale)
	}
}

func TestTicketsAreIndependentPerSlot(t *testing.T) {
	c := mainController(t)
	topic, _ := c.ExploreTopic("Habits")
	book, _ := c.SearchBook("Atomic Habits")

	if topic.Seq != 1 || book.Seq != 1 {
		t.Errorf("each slot numbers its own tickets: topic %d book %d", topic.Seq, book.Seq)
	}
	if !c.ResolveTopic(topic, []string{"A"}, nil) {
		t.Error("topic ticket rejected after an unrelated request")
	}
	if c.ResolveSummary(Ticket{}, content.BookSummary{}, nil) {
		t.Error("zero ticket accepted")
	}
}

func TestNavigate(t *testing.T) {
	c := New(nil, nil, nil)
	if c.Navigate(ViewExplore) {
		t.Error("navigation outside main mode should be refused")
	}

	c = mainController(t)
	for _, k := range []ViewKind{ViewExplore, ViewHistory, ViewCourses, ViewProfile, ViewHome} {
		if !c.Navigate(k) || c.View().Kind() != k {
			t.Errorf("Navigate(%v) landed on %v", k, c.View().Kind())
		}
	}
	for _, k := range []ViewKind{ViewSummary, ViewHistoryDetail, ViewCourseDetail} {
		if c.Navigate(k) {
			t.Errorf("Navigate(%v) should be refused without content", k)
		}
	}
	if c.Back() {
		t.Error("Back from a top-level view should be a no-op")
	}
}

func TestBackFromDetail(t *testing.T) {
	c := mainController(t)
	tk, _ := c.SearchFigure("Seneca")
	c.ResolveFigure(tk, content.HistoricalFigure{Name: "Seneca"}, nil)
	c.Back()
	if c.View().Kind() != ViewHistory {
		t.Errorf("view = %v, want history", c.View().Kind())
	}

	tk, _ = c.SearchBook("Meditations")
	c.ResolveSummary(tk, content.BookSummary{ID: "m", Title: "Meditations"}, nil)
	c.Back()
	if c.View().Kind() != ViewHome {
		t.Errorf("view = %v, want home", c.View().Kind())
	}
}

func TestExploreTopic(t *testing.T) {
	c := mainController(t)
	c.Navigate(ViewExplore)

	tk, ok := c.ExploreTopic("Habits")
	if !ok {
		t.Fatal("ExploreTopic refused a topic")
	}
	if !c.TopicLoading() || c.Mode() != ModeMain || c.View().Kind() != ViewExplore {
		t.Errorf("topic request must only set its flag: loading=%v mode=%v view=%v",
			c.TopicLoading(), c.Mode(), c.View().Kind())
	}
	if !c.Navigate(ViewHome) {
		t.Error("topic loading must not block navigation")
	}

	c.ResolveTopic(tk, []string{"Atomic Habits", "The Power of Habit"}, nil)
	if c.TopicLoading() {
		t.Error("topic flag should clear on resolve")
	}
	if diff := cmp.Diff([]string{"Atomic Habits", "The Power of Habit"}, c.TopicBooks()); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}

	tk, _ = c.ExploreTopic("Finance")
	if len(c.TopicBooks()) != 0 {
		t.Error("a new topic request should clear previous recommendations")
	}
	c.ResolveTopic(tk, nil, errBoom)
	if c.TopicLoading() || len(c.TopicBooks()) != 0 {
		t.Error("failed topic should clear the flag and leave the list empty")
	}
	if c.Topic() != "Finance" {
		t.Errorf("topic = %q", c.Topic())
	}
}

func TestResetKeepsInterests(t *testing.T) {
	c := New(nil, nil, nil)
	c.ToggleInterest("productivity")
	c.ToggleInterest("finance")
	tk, _ := c.StartGrowth()
	c.ResolvePlan(tk, samplePlan(), nil)

	if c.Reset() {
		t.Error("Reset should only work from the profile view")
	}
	c.Navigate(ViewProfile)
	if !c.Reset() {
		t.Fatal("Reset refused from profile")
	}
	if c.Mode() != ModeOnboarding {
		t.Errorf("mode = %v, want onboarding", c.Mode())
	}
	if _, ok := c.Plan(); ok {
		t.Error("Reset should discard the plan")
	}
	if diff := cmp.Diff([]string{"productivity", "finance"}, c.Interests()); diff != "" {
		t.Errorf("Reset should keep interests (-want +got):\n%s", diff)
	}
}

func TestSpeech(t *testing.T) {
	c := mainController(t)
	if _, _, ok := c.BeginSpeech(); ok {
		t.Error("speech needs an open summary")
	}

	tk, _ := c.SearchBook("Atomic Habits")
	c.ResolveSummary(tk, content.BookSummary{ID: "a", Title: "Atomic Habits", Author: "James Clear", MainTakeaway: "Small habits compound."}, nil)

	st, text, ok := c.BeginSpeech()
	if !ok {
		t.Fatal("BeginSpeech refused")
	}
	if text != "Atomic Habits. Por James Clear. Idea principal: Small habits compound." {
		t.Errorf("speech text = %q", text)
	}
	if !c.AudioLoading() {
		t.Error("audio flag should be set")
	}
	if _, _, ok := c.BeginSpeech(); ok {
		t.Error("a second narration should be refused while loading")
	}

	c.ResolveSpeech(st, nil)
	if c.AudioLoading() || c.Alert() != "" {
		t.Errorf("successful speech: loading=%v alert=%q", c.AudioLoading(), c.Alert())
	}

	st, _, _ = c.BeginSpeech()
	c.ResolveSpeech(st, errBoom)
	if c.AudioLoading() {
		t.Error("audio flag should clear on failure")
	}
	if c.Alert() != AlertAudio {
		t.Errorf("alert = %q, want %q", c.Alert(), AlertAudio)
	}
	if c.View().Kind() != ViewSummary {
		t.Error("audio failure should not change the view")
	}
	c.DismissAlert()
	if c.Alert() != "" {
		t.Error("DismissAlert should clear the alert")
	}
}

func TestSavedCollection(t *testing.T) {
	existing := content.BookSummary{ID: "old", Title: "Deep Work"}
	p := &recordingPersister{}
	c := New([]content.BookSummary{existing}, p, nil)
	c.ToggleInterest("productivity")
	tk, _ := c.StartGrowth()
	c.ResolvePlan(tk, samplePlan(), nil)

	if _, err := c.ToggleSaved(); !errors.Is(err, ErrNoSummary) {
		t.Errorf("ToggleSaved without summary: %v", err)
	}

	tk, _ = c.SearchBook("Atomic Habits")
	book := content.BookSummary{ID: "new", Title: "Atomic Habits"}
	c.ResolveSummary(tk, book, nil)

	saved, err := c.ToggleSaved()
	if err != nil || !saved {
		t.Fatalf("ToggleSaved = %v, %v", saved, err)
	}
	if !c.IsSaved("new") {
		t.Error("book should be saved")
	}
	if diff := cmp.Diff([]content.BookSummary{existing, book}, p.saves[len(p.saves)-1]); diff != "" {
		t.Errorf("persisted list mismatch (-want +got):\n%s", diff)
	}

	saved, _ = c.ToggleSaved()
	if saved || c.IsSaved("new") {
		t.Error("second toggle should unsave")
	}

	c.Navigate(ViewProfile)
	if !c.OpenSaved("old") {
		t.Fatal("OpenSaved refused a saved book")
	}
	sv, ok := c.View().(SummaryView)
	if !ok || sv.Summary.Title != "Deep Work" {
		t.Errorf("OpenSaved view = %#v", c.View())
	}
	if c.OpenSaved("missing") {
		t.Error("OpenSaved should refuse unknown ids")
	}

	before := len(p.saves)
	if err := c.RemoveSaved("old"); err != nil {
		t.Fatal(err)
	}
	if len(c.Saved()) != 0 {
		t.Errorf("saved = %v, want empty", c.Saved())
	}
	if len(p.saves) != before+1 {
		t.Error("RemoveSaved should persist")
	}
	if err := c.RemoveSaved("old"); err != nil || len(p.saves) != before+1 {
		t.Error("removing an absent id should not persist")
	}
}

func TestPersistErrorSurfaces(t *testing.T) {
	p := &recordingPersister{err: errors.New("disk full")}
	c := New([]content.BookSummary{{ID: "x", Title: "X"}}, p, nil)
	if err := c.RemoveSaved("x"); err == nil {
		t.Error("persist failure should be returned")
	}
	if c.IsSaved("x") {
		t.Error("in-memory state still reflects the mutation")
	}
}

func TestViewKindStrings(t *testing.T) {
	tests := []struct {
		k    ViewKind
		want string
	}{
		{ViewHome, "home"},
		{ViewHistoryDetail, "history-detail"},
		{ViewCourseDetail, "course-detail"},
		{ViewKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.k, got, tt.want)
		}
	}
	if SlotSpeech.String() != "speech" || Slot(42).String() != "unknown" {
		t.Error("slot names")
	}
}
