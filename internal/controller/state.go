package controller

import "github.com/abelbrown/headstart/internal/content"

// Mode is the top-level phase of the application.
type Mode int

const (
	ModeOnboarding Mode = iota
	ModeLoading
	ModeMain
)

func (m Mode) String() string {
	switch m {
	case ModeOnboarding:
		return "onboarding"
	case ModeLoading:
		return "loading"
	case ModeMain:
		return "main"
	default:
		return "unknown"
	}
}

// ViewKind identifies a screen within main mode.
type ViewKind int

const (
	ViewHome ViewKind = iota
	ViewExplore
	ViewProfile
	ViewSummary
	ViewHistory
	ViewHistoryDetail
	ViewCourses
	ViewCourseDetail
)

func (k ViewKind) String() string {
	switch k {
	case ViewHome:
		return "home"
	case ViewExplore:
		return "explore"
	case ViewProfile:
		return "profile"
	case ViewSummary:
		return "summary"
	case ViewHistory:
		return "history"
	case ViewHistoryDetail:
		return "history-detail"
	case ViewCourses:
		return "courses"
	case ViewCourseDetail:
		return "course-detail"
	default:
		return "unknown"
	}
}

// Lateral reports whether k can be reached by direct navigation.
// Detail views are only entered with their content.
func (k ViewKind) Lateral() bool {
	switch k {
	case ViewHome, ViewExplore, ViewProfile, ViewHistory, ViewCourses:
		return true
	}
	return false
}

// View is the active screen. Detail variants carry their content, so a
// detail view without content cannot be constructed.
type View interface {
	Kind() ViewKind
	sealed()
}

type (
	HomeView    struct{}
	ExploreView struct{}
	ProfileView struct{}
	HistoryView struct{}
	CoursesView struct{}

	SummaryView       struct{ Summary content.BookSummary }
	HistoryDetailView struct{ Figure content.HistoricalFigure }
	CourseDetailView  struct{ Course content.Course }
)

func (HomeView) Kind() ViewKind          { return ViewHome }
func (ExploreView) Kind() ViewKind       { return ViewExplore }
func (ProfileView) Kind() ViewKind       { return ViewProfile }
func (HistoryView) Kind() ViewKind       { return ViewHistory }
func (CoursesView) Kind() ViewKind       { return ViewCourses }
func (SummaryView) Kind() ViewKind       { return ViewSummary }
func (HistoryDetailView) Kind() ViewKind { return ViewHistoryDetail }
func (CourseDetailView) Kind() ViewKind  { return ViewCourseDetail }

func (HomeView) sealed()          {}
func (ExploreView) sealed()       {}
func (ProfileView) sealed()       {}
func (HistoryView) sealed()       {}
func (CoursesView) sealed()       {}
func (SummaryView) sealed()       {}
func (HistoryDetailView) sealed() {}
func (CourseDetailView) sealed()  {}

// lateralView returns the content-free variant for k.
func lateralView(k ViewKind) (View, bool) {
	switch k {
	case ViewHome:
		return HomeView{}, true
	case ViewExplore:
		return ExploreView{}, true
	case ViewProfile:
		return ProfileView{}, true
	case ViewHistory:
		return HistoryView{}, true
	case ViewCourses:
		return CoursesView{}, true
	}
	return nil, false
}

// Slot is a piece of state written by an async request.
type Slot int

const (
	SlotPlan Slot = iota
	SlotSummary
	SlotFigure
	SlotCourse
	SlotTopic
	SlotSpeech
	numSlots
)

var slotNames = [numSlots]string{"plan", "summary", "figure", "course", "topic", "speech"}

func (s Slot) String() string {
	if s < 0 || s >= numSlots {
		return "unknown"
	}
	return slotNames[s]
}

// Ticket identifies one dispatched request. A result is applied only when
// its ticket is the latest issued for the slot.
type Ticket struct {
	Slot     Slot
	Seq      uint64
	PrevMode Mode
}
