// Package ui provides the Bubble Tea TUI for HeadStart.
package ui

import (
	"github.com/abelbrown/headstart/internal/content"
	"github.com/abelbrown/headstart/internal/controller"
)

// PlanGenerated is sent when a growth plan request settles.
type PlanGenerated struct {
	Ticket controller.Ticket
	Plan   content.GrowthPlan
	Err    error
}

// SummaryGenerated is sent when a book summary request settles.
type SummaryGenerated struct {
	Ticket  controller.Ticket
	Summary content.BookSummary
	Err     error
}

// FigureGenerated is sent when a mentor profile request settles.
type FigureGenerated struct {
	Ticket controller.Ticket
	Figure content.HistoricalFigure
	Err    error
}

// CourseGenerated is sent when a course request settles.
type CourseGenerated struct {
	Ticket controller.Ticket
	Course content.Course
	Err    error
}

// TopicBooksLoaded is sent when topic recommendations arrive.
type TopicBooksLoaded struct {
	Ticket controller.Ticket
	Titles []string
	Err    error
}

// SpeechPlayed is sent once narration has been synthesized and handed to
// the audio output, or failed.
type SpeechPlayed struct {
	Ticket controller.Ticket
	Err    error
}
