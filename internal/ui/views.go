package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/headstart/internal/controller"
	"github.com/abelbrown/headstart/internal/render"
)

type rowKind int

const (
	rowBook rowKind = iota
	rowFigure
	rowCourse
	rowTopic
	rowView
)

// row is one selectable line on a list screen.
type row struct {
	kind  rowKind
	label string
	value string
	view  controller.ViewKind
}

// rows lists the selectable lines for the active screen, in display order.
func (a App) rows() []row {
	var rows []row
	switch a.ctrl.View().Kind() {
	case controller.ViewHome:
		if plan, ok := a.ctrl.Plan(); ok {
			for _, title := range plan.SuggestedBooks {
				rows = append(rows, row{kind: rowBook, label: "📖 " + title, value: title})
			}
		}
		rows = append(rows,
			row{kind: rowView, label: "🏛️  Learn from the greats", view: controller.ViewHistory},
			row{kind: rowView, label: "🎓 Intensive courses", view: controller.ViewCourses},
		)
	case controller.ViewExplore:
		for _, topic := range a.cat.ExploreTopics {
			rows = append(rows, row{kind: rowTopic, label: topic, value: topic})
		}
		for _, title := range a.ctrl.TopicBooks() {
			rows = append(rows, row{kind: rowBook, label: "📖 " + title, value: title})
		}
	case controller.ViewHistory:
		for _, m := range a.cat.Mentors {
			rows = append(rows, row{kind: rowFigure, label: fmt.Sprintf("%s %s  %s", m.Icon, m.Name, Subtle.Render(m.Theme)), value: m.Name})
		}
	case controller.ViewCourses:
		for _, p := range a.cat.CoursePaths {
			label := lipgloss.NewStyle().Foreground(styleColor(p.Style)).Render("■") + " " + p.Title
			rows = append(rows, row{kind: rowCourse, label: label, value: p.Title})
		}
	}
	return rows
}

// detailMarkdown returns an identity and markdown for detail views, or
// empty strings elsewhere.
func (a App) detailMarkdown() (string, string) {
	if a.ctrl.Mode() != controller.ModeMain {
		return "", ""
	}
	switch v := a.ctrl.View().(type) {
	case controller.SummaryView:
		return "summary:" + v.Summary.ID, render.SummaryMarkdown(v.Summary)
	case controller.HistoryDetailView:
		return "figure:" + v.Figure.Name, render.FigureMarkdown(v.Figure)
	case controller.CourseDetailView:
		return "course:" + v.Course.ID, render.CourseMarkdown(v.Course)
	}
	return "", ""
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.debugVisible && a.ctrl.Mode() != controller.ModeLoading {
		return debugOverlay(a.cfg.Activity, a.width, a.height-1) + "\n" + debugStatusBar(a.width)
	}

	var body string
	switch a.ctrl.Mode() {
	case controller.ModeOnboarding:
		body = a.viewOnboarding()
	case controller.ModeLoading:
		// Loading shows progress only, never content.
		body = a.viewLoading()
	default:
		body = a.viewMain()
	}

	if alert := a.ctrl.Alert(); alert != "" {
		box := AlertBox.Render(alert + "\n\n" + Subtle.Render("press any key"))
		body = lipgloss.Place(a.width, max(a.height-1, 1), lipgloss.Center, lipgloss.Center, box)
	}

	return body + "\n" + a.statusBar()
}

func (a App) viewOnboarding() string {
	var b strings.Builder
	b.WriteString(Logo.Render("H") + "  " + Title.Render("HeadStart") + "\n")
	b.WriteString(Subtle.Render("15 minutes a day to change your life. What do you want to improve?") + "\n\n")

	for i, in := range a.cat.Interests {
		mark := "  "
		if a.ctrl.Selected(in.ID) {
			mark = Checked.Render("✓ ")
		}
		label := lipgloss.NewStyle().Foreground(styleColor(in.Style)).Render(in.Icon) + " " + in.Label
		b.WriteString(a.renderRow(i, mark+label) + "\n")
	}

	b.WriteString("\n")
	n := len(a.ctrl.Interests())
	if n == 0 {
		b.WriteString(Subtle.Render("Select at least one interest"))
	} else {
		b.WriteString(StatusBarKey.Render("enter") + Subtle.Render(fmt.Sprintf(" start my growth (%d selected)", n)))
	}
	return b.String()
}

func (a App) viewLoading() string {
	box := a.spinner.View() + " " + LoadingText.Render(a.ctrl.LoadingMessage())
	return lipgloss.Place(a.width, max(a.height-1, 1), lipgloss.Center, lipgloss.Center, box)
}

func (a App) viewMain() string {
	var screen string
	switch a.ctrl.View().Kind() {
	case controller.ViewHome:
		screen = a.viewHome()
	case controller.ViewExplore:
		screen = a.viewExplore()
	case controller.ViewHistory:
		screen = a.viewList("Learn from the greats", "Mentorship from history's brightest minds.")
	case controller.ViewCourses:
		screen = a.viewList("Success paths", "Intensive micro-courses designed by AI.")
	case controller.ViewProfile:
		screen = a.viewProfile()
	case controller.ViewSummary:
		screen = a.viewSummary()
	default:
		screen = a.viewport.View()
	}

	if a.searching {
		screen = a.input.View() + "\n\n" + screen
	}
	return a.tabs() + "\n\n" + screen
}

func (a App) viewHome() string {
	var b strings.Builder
	if plan, ok := a.ctrl.Plan(); ok {
		b.WriteString(a.cfg.Renderer.Render(render.PlanMarkdown(plan, a.cfg.HomeSteps)) + "\n\n")
	}
	b.WriteString(Title.Render("Start reading") + "\n")
	b.WriteString(a.renderRows(a.rows()))
	return b.String()
}

func (a App) viewExplore() string {
	var b strings.Builder
	b.WriteString(Title.Render("Explore") + "\n")
	b.WriteString(Subtle.Render("Pick a topic, or press / to search any book.") + "\n\n")

	rows := a.rows()
	topics := len(a.cat.ExploreTopics)
	b.WriteString(a.renderRows(rows[:topics]))

	if a.ctrl.TopicLoading() {
		b.WriteString("\n" + a.spinner.View() + " " + LoadingText.Render(controller.MessageTopic) + "\n")
	} else if books := rows[topics:]; len(books) > 0 {
		b.WriteString("\n" + Title.Render("Recommended: "+a.ctrl.Topic()) + "\n")
		for i, r := range books {
			b.WriteString(a.renderRow(topics+i, r.label) + "\n")
		}
	}
	return b.String()
}

func (a App) viewList(title, subtitle string) string {
	var b strings.Builder
	b.WriteString(Title.Render(title) + "\n")
	b.WriteString(Subtle.Render(subtitle+" Press / for your own.") + "\n\n")
	b.WriteString(a.renderRows(a.rows()))
	return b.String()
}

func (a App) viewSummary() string {
	sv := a.ctrl.View().(controller.SummaryView)

	var actions []string
	if a.ctrl.AudioLoading() {
		actions = append(actions, a.spinner.View()+" loading audio...")
	} else {
		actions = append(actions, StatusBarKey.Render("a")+" ▶ listen")
	}
	if a.ctrl.IsSaved(sv.Summary.ID) {
		actions = append(actions, StatusBarKey.Render("s")+" ★ saved")
	} else {
		actions = append(actions, StatusBarKey.Render("s")+" ☆ save")
	}
	return strings.Join(actions, "   ") + "\n\n" + a.viewport.View()
}

func (a App) viewProfile() string {
	var b strings.Builder
	b.WriteString(Title.Render("Your profile") + "\n")

	labels := a.cat.Labels(a.ctrl.Interests())
	b.WriteString(Subtle.Render("Interests: ") + strings.Join(labels, ", ") + "\n\n")

	saved := a.ctrl.Saved()
	b.WriteString(Title.Render(fmt.Sprintf("Saved books (%d)", len(saved))) + "\n")
	if len(saved) == 0 {
		b.WriteString(Subtle.Render("  Nothing saved yet. Press s on any summary.") + "\n")
	}
	for i, s := range saved {
		b.WriteString(a.renderRow(i, fmt.Sprintf("%s  %s", s.Title, Subtle.Render(s.Author))) + "\n")
	}

	if a.cfg.Activity != nil {
		if recent := eventLines(a.cfg.Activity.Last(5), time.Now()); len(recent) > 0 {
			b.WriteString("\n" + Title.Render("Recent activity") + "\n")
			b.WriteString(Subtle.Render(strings.Join(recent, "\n")) + "\n")
		}
	}

	b.WriteString("\n" + StatusBarKey.Render("R") + Subtle.Render(" restart experience"))
	return b.String()
}

func (a App) renderRows(rows []row) string {
	var b strings.Builder
	for i, r := range rows {
		b.WriteString(a.renderRow(i, r.label) + "\n")
	}
	return b.String()
}

func (a App) renderRow(i int, label string) string {
	if i == a.cursor {
		return SelectedItem.Render("› " + label)
	}
	return NormalItem.Render("  " + label)
}

var tabLabels = map[controller.ViewKind]string{
	controller.ViewHome:    "1 Home",
	controller.ViewExplore: "2 Explore",
	controller.ViewHistory: "3 Mentors",
	controller.ViewCourses: "4 Courses",
	controller.ViewProfile: "5 Profile",
}

// tabs renders the navigation bar; detail views highlight their parent.
func (a App) tabs() string {
	active := a.ctrl.View().Kind()
	switch active {
	case controller.ViewSummary:
		active = controller.ViewHome
	case controller.ViewHistoryDetail:
		active = controller.ViewHistory
	case controller.ViewCourseDetail:
		active = controller.ViewCourses
	}
	parts := make([]string, 0, len(tabOrder))
	for _, k := range tabOrder {
		if k == active {
			parts = append(parts, ActiveTab.Render(tabLabels[k]))
		} else {
			parts = append(parts, InactiveTab.Render(tabLabels[k]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) statusBar() string {
	var left string
	switch {
	case a.err != nil:
		left = ErrorStyle.Render("Error: " + a.err.Error())
	case a.status != "":
		left = StatusBarText.Render(a.status)
	default:
		left = a.hints()
	}
	return StatusBar.Width(a.width).Render(left)
}

func (a App) hints() string {
	hint := func(k, desc string) string {
		return StatusBarKey.Render(k) + StatusBarText.Render(":"+desc)
	}
	if a.searching {
		return hint("enter", "search") + "  " + hint("esc", "cancel")
	}
	switch a.ctrl.Mode() {
	case controller.ModeOnboarding:
		return hint("space", "select") + "  " + hint("enter", "start") + "  " + hint("q", "quit")
	case controller.ModeLoading:
		return hint("ctrl+c", "quit")
	}
	switch a.ctrl.View().Kind() {
	case controller.ViewSummary, controller.ViewHistoryDetail, controller.ViewCourseDetail:
		return hint("↑↓", "scroll") + "  " + hint("esc", "back") + "  " + hint("tab", "next")
	case controller.ViewProfile:
		return hint("enter", "open") + "  " + hint("d", "remove") + "  " + hint("R", "restart") + "  " + hint("D", "activity")
	}
	return hint("enter", "open") + "  " + hint("/", "search") + "  " + hint("1-5", "tabs") + "  " + hint("q", "quit")
}
