// Package controller owns HeadStart's view state: the top-level mode, the
// active view and the content loaded for each view.
//
// The presentation layer never mutates state directly. It calls a Begin
// style operation (StartGrowth, SearchBook, ExploreTopic, ...) which returns
// a Ticket, dispatches the generation request, and hands the outcome back to
// the matching Resolve operation together with the ticket.
//
//	StartGrowth ──> ModeLoading ──> ResolvePlan ──> ModeMain / HomeView
//	                                     └──(err)──> ModeOnboarding
//
// # Ordering
//
// Every request carries a per-slot sequence number. A result is applied only
// if its ticket is the latest one issued for that slot; older results are
// dropped without touching state. Requests are never cancelled.
//
// # Concurrency
//
// A Controller is not safe for concurrent use. The terminal UI mutates it
// only from its Update loop.
package controller

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/abelbrown/headstart/internal/content"
	"github.com/abelbrown/headstart/internal/logging"
	"github.com/abelbrown/headstart/internal/otel"
)

// Persister stores the saved collection after each change.
type Persister interface {
	Save(books []content.BookSummary) error
}

// ErrNoSummary is returned by saved-collection operations that need an
// open summary.
var ErrNoSummary = errors.New("no summary open")

// Messages shown while a request is in flight.
const (
	MessageDefault = "Designing your path..."
	MessagePlan    = "Preparing your 15-minute plan..."
	MessageTopic   = "Finding the best books..."
	AlertAudio     = "Could not generate audio."
)

// Controller holds all mutable application state.
type Controller struct {
	mode    Mode
	view    View
	message string
	alert   string

	interests []string

	plan    *content.GrowthPlan
	summary *content.BookSummary
	figure  *content.HistoricalFigure
	course  *content.Course

	topic        string
	topicBooks   []string
	topicLoading bool
	audioLoading bool

	saved     *content.SavedCollection
	persister Persister
	events    *otel.Logger

	seq [numSlots]uint64
}

// New returns a controller in onboarding mode with the given saved books.
// persister and events may be nil.
func New(saved []content.BookSummary, persister Persister, events *otel.Logger) *Controller {
	return &Controller{
		mode:      ModeOnboarding,
		view:      HomeView{},
		message:   MessageDefault,
		saved:     content.NewSavedCollection(saved),
		persister: persister,
		events:    events,
	}
}

// Mode returns the current top-level mode.
func (c *Controller) Mode() Mode { return c.mode }

// View returns the active view. Meaningful only in ModeMain.
func (c *Controller) View() View { return c.view }

// LoadingMessage describes the request behind ModeLoading.
func (c *Controller) LoadingMessage() string { return c.message }

// Alert returns the pending blocking alert, or "".
func (c *Controller) Alert() string { return c.alert }

// Interests returns the selected interest IDs in selection order.
func (c *Controller) Interests() []string { return slices.Clone(c.interests) }

// Selected reports whether interest id is selected.
func (c *Controller) Selected(id string) bool { return slices.Contains(c.interests, id) }

// Plan returns the current growth plan, if any.
func (c *Controller) Plan() (content.GrowthPlan, bool) {
	if c.plan == nil {
		return content.GrowthPlan{}, false
	}
	return *c.plan, true
}

// ActiveSummary returns the most recently loaded book summary.
func (c *Controller) ActiveSummary() (content.BookSummary, bool) {
	if c.summary == nil {
		return content.BookSummary{}, false
	}
	return *c.summary, true
}

// ActiveFigure returns the most recently loaded mentor profile.
func (c *Controller) ActiveFigure() (content.HistoricalFigure, bool) {
	if c.figure == nil {
		return content.HistoricalFigure{}, false
	}
	return *c.figure, true
}

// ActiveCourse returns the most recently loaded course.
func (c *Controller) ActiveCourse() (content.Course, bool) {
	if c.course == nil {
		return content.Course{}, false
	}
	return *c.course, true
}

// Topic returns the last explored topic.
func (c *Controller) Topic() string { return c.topic }

// TopicBooks returns the recommendations for the last explored topic.
func (c *Controller) TopicBooks() []string { return slices.Clone(c.topicBooks) }

// TopicLoading reports whether a topic request is in flight.
func (c *Controller) TopicLoading() bool { return c.topicLoading }

// AudioLoading reports whether a speech request is in flight.
func (c *Controller) AudioLoading() bool { return c.audioLoading }

// Saved returns the saved books in insertion order.
func (c *Controller) Saved() []content.BookSummary { return c.saved.List() }

// IsSaved reports whether the book with id is saved.
func (c *Controller) IsSaved(id string) bool { return c.saved.Contains(id) }

// ToggleInterest selects or deselects id during onboarding.
func (c *Controller) ToggleInterest(id string) {
	if c.mode != ModeOnboarding || id == "" {
		return
	}
	if i := slices.Index(c.interests, id); i >= 0 {
		c.interests = slices.Delete(c.interests, i, i+1)
		return
	}
	c.interests = append(c.interests, id)
}

// StartGrowth moves onboarding to loading. It is a no-op without a
// selected interest.
func (c *Controller) StartGrowth() (Ticket, bool) {
	if c.mode != ModeOnboarding || len(c.interests) == 0 {
		return Ticket{}, false
	}
	return c.beginLoading(SlotPlan, MessagePlan), true
}

// ResolvePlan applies the outcome of a plan request. It returns false when
// the ticket is stale.
func (c *Controller) ResolvePlan(t Ticket, plan content.GrowthPlan, err error) bool {
	if !c.accept(t) {
		return false
	}
	if err != nil {
		c.revert(t, err)
		return true
	}
	c.plan = &plan
	c.enterMain(HomeView{})
	return true
}

// SearchBook requests a summary of title. Blank titles are ignored.
func (c *Controller) SearchBook(title string) (Ticket, bool) {
	if strings.TrimSpace(title) == "" || c.mode != ModeMain {
		return Ticket{}, false
	}
	return c.beginLoading(SlotSummary, fmt.Sprintf("Summarizing %q...", title)), true
}

// ResolveSummary applies the outcome of a summary request.
func (c *Controller) ResolveSummary(t Ticket, s content.BookSummary, err error) bool {
	if !c.accept(t) {
		return false
	}
	if err != nil {
		c.revert(t, err)
		return true
	}
	c.summary = &s
	c.enterMain(SummaryView{Summary: s})
	return true
}

// SearchFigure requests a mentor profile for name. Blank names are ignored.
func (c *Controller) SearchFigure(name string) (Ticket, bool) {
	if strings.TrimSpace(name) == "" || c.mode != ModeMain {
		return Ticket{}, false
	}
	return c.beginLoading(SlotFigure, fmt.Sprintf("Consulting the wisdom of %s...", name)), true
}

// ResolveFigure applies the outcome of a mentor request.
func (c *Controller) ResolveFigure(t Ticket, f content.HistoricalFigure, err error) bool {
	if !c.accept(t) {
		return false
	}
	if err != nil {
		c.revert(t, err)
		return true
	}
	c.figure = &f
	c.enterMain(HistoryDetailView{Figure: f})
	return true
}

// CreateCourse requests a micro-course on topic. Blank topics are ignored.
func (c *Controller) CreateCourse(topic string) (Ticket, bool) {
	if strings.TrimSpace(topic) == "" || c.mode != ModeMain {
		return Ticket{}, false
	}
	return c.beginLoading(SlotCourse, fmt.Sprintf("Designing an intensive course on %s...", topic)), true
}

// ResolveCourse applies the outcome of a course request.
func (c *Controller) ResolveCourse(t Ticket, course content.Course, err error) bool {
	if !c.accept(t) {
		return false
	}
	if err != nil {
		c.revert(t, err)
		return true
	}
	c.course = &course
	c.enterMain(CourseDetailView{Course: course})
	return true
}

// Navigate switches laterally between the top-level views of main mode.
func (c *Controller) Navigate(k ViewKind) bool {
	if c.mode != ModeMain {
		return false
	}
	v, ok := lateralView(k)
	if !ok {
		return false
	}
	c.setView(v)
	return true
}

// Back leaves a detail view for its parent.
func (c *Controller) Back() bool {
	if c.mode != ModeMain {
		return false
	}
	switch c.view.Kind() {
	case ViewSummary:
		c.setView(HomeView{})
	case ViewHistoryDetail:
		c.setView(HistoryView{})
	case ViewCourseDetail:
		c.setView(CoursesView{})
	default:
		return false
	}
	return true
}

// ExploreTopic starts a recommendation request for topic without changing
// mode or view. Previous recommendations are cleared.
func (c *Controller) ExploreTopic(topic string) (Ticket, bool) {
	if strings.TrimSpace(topic) == "" || c.mode != ModeMain {
		return Ticket{}, false
	}
	c.topic = topic
	c.topicBooks = nil
	c.topicLoading = true
	return c.issue(SlotTopic), true
}

// ResolveTopic applies the outcome of a recommendation request. Failures
// leave the list empty.
func (c *Controller) ResolveTopic(t Ticket, titles []string, err error) bool {
	if !c.accept(t) {
		return false
	}
	c.topicLoading = false
	if err != nil {
		logging.Warn("Topic recommendations failed", "topic", c.topic, "error", err)
		return true
	}
	c.topicBooks = slices.Clone(titles)
	return true
}

// BeginSpeech starts narration of the open summary and returns the text to
// synthesize. Ignored while another narration is loading.
func (c *Controller) BeginSpeech() (Ticket, string, bool) {
	sv, ok := c.view.(SummaryView)
	if c.mode != ModeMain || !ok || c.audioLoading {
		return Ticket{}, "", false
	}
	c.audioLoading = true
	return c.issue(SlotSpeech), sv.Summary.SpeechText(), true
}

// ResolveSpeech records the outcome of a narration. Failure raises an alert.
func (c *Controller) ResolveSpeech(t Ticket, err error) bool {
	if !c.accept(t) {
		return false
	}
	c.audioLoading = false
	if err != nil {
		logging.Error("Audio playback failed", "error", err)
		c.events.Error(otel.KindAudioError, "controller", err)
		c.alert = AlertAudio
	}
	return true
}

// DismissAlert clears the pending alert.
func (c *Controller) DismissAlert() { c.alert = "" }

// Reset returns from the profile view to onboarding and discards the plan.
// Selected interests are kept.
func (c *Controller) Reset() bool {
	if c.mode != ModeMain || c.view.Kind() != ViewProfile {
		return false
	}
	c.plan = nil
	c.view = HomeView{}
	c.transition(ModeOnboarding)
	return true
}

// ToggleSaved saves or unsaves the open summary and reports whether it is
// now saved.
func (c *Controller) ToggleSaved() (bool, error) {
	sv, ok := c.view.(SummaryView)
	if c.mode != ModeMain || !ok {
		return false, ErrNoSummary
	}
	saved := c.saved.Toggle(sv.Summary)
	return saved, c.persist()
}

// RemoveSaved drops the book with id from the saved collection.
func (c *Controller) RemoveSaved(id string) error {
	if !c.saved.Remove(id) {
		return nil
	}
	return c.persist()
}

// OpenSaved shows a saved book without generating it again.
func (c *Controller) OpenSaved(id string) bool {
	if c.mode != ModeMain {
		return false
	}
	b, ok := c.saved.Get(id)
	if !ok {
		return false
	}
	c.summary = &b
	c.setView(SummaryView{Summary: b})
	return true
}

func (c *Controller) persist() error {
	books := c.saved.List()
	c.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSavedChange, Comp: "controller", Count: len(books)})
	if c.persister == nil {
		return nil
	}
	if err := c.persister.Save(books); err != nil {
		logging.Error("Failed to persist saved books", "error", err)
		c.events.Error(otel.KindStoreError, "controller", err)
		return fmt.Errorf("persist saved books: %w", err)
	}
	return nil
}

func (c *Controller) issue(s Slot) Ticket {
	c.seq[s]++
	return Ticket{Slot: s, Seq: c.seq[s], PrevMode: c.mode}
}

func (c *Controller) beginLoading(s Slot, msg string) Ticket {
	t := c.issue(s)
	c.message = msg
	c.transition(ModeLoading)
	return t
}

// accept reports whether t is the latest ticket for its slot.
func (c *Controller) accept(t Ticket) bool {
	if t.Slot < 0 || t.Slot >= numSlots || t.Seq == 0 {
		return false
	}
	if t.Seq != c.seq[t.Slot] {
		logging.Debug("Dropping stale result", "slot", t.Slot, "seq", t.Seq, "latest", c.seq[t.Slot])
		c.events.Emit(otel.Event{
			Level: otel.LevelWarn,
			Kind:  otel.KindStale,
			Comp:  "controller",
			Op:    t.Slot.String(),
			Seq:   t.Seq,
		})
		return false
	}
	return true
}

// revert restores the mode held before t was issued. View and content are
// left as they were.
func (c *Controller) revert(t Ticket, err error) {
	logging.Warn("Request failed, reverting", "slot", t.Slot, "to", t.PrevMode, "error", err)
	c.transition(t.PrevMode)
}

func (c *Controller) enterMain(v View) {
	c.view = v
	c.transition(ModeMain)
}

func (c *Controller) setView(v View) {
	if c.view == nil || c.view.Kind() != v.Kind() {
		c.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindNavigate, Comp: "controller", Msg: v.Kind().String()})
	}
	c.view = v
}

func (c *Controller) transition(to Mode) {
	if c.mode == to {
		return
	}
	c.events.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindTransition,
		Comp:  "controller",
		Msg:   c.mode.String() + " -> " + to.String(),
	})
	c.mode = to
}
