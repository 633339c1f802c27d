// Package content defines the records produced by the generation gateway.
//
// JSON field names match the response schemas declared to the model and the
// serialized form kept in the saved-books slot, so they must not change.
package content

import "fmt"

// Step is one block of a daily growth plan.
type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// DailyChallenge is the optional "challenge of the day" attached to a plan.
type DailyChallenge struct {
	Title   string `json:"title"`
	Action  string `json:"action"`
	Benefit string `json:"benefit"`
}

// GrowthPlan is generated once per onboarding and replaced wholesale.
type GrowthPlan struct {
	DailyFocus     string          `json:"dailyFocus"`
	Steps          []Step          `json:"steps"`
	SuggestedBooks []string        `json:"suggestedBooks"`
	Challenge      *DailyChallenge `json:"challenge,omitempty"`
}

// BookSummary is a fifteen-minute digest of a single book.
type BookSummary struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	KeyInsights  []string `json:"keyInsights"`
	MainTakeaway string   `json:"mainTakeaway"`
	ReadingTime  float64  `json:"readingTime"` // minutes
	Category     string   `json:"category,omitempty"`
}

// HistoricalFigure is a mentor profile built around one historical person.
type HistoricalFigure struct {
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Period         string   `json:"period"`
	Legacy         string   `json:"legacy"`
	CorePrinciples []string `json:"corePrinciples"`
	FamousQuote    string   `json:"famousQuote"`
}

// CourseModule is one lesson of a micro-course.
type CourseModule struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Duration string `json:"duration"`
}

// Course is a short structured curriculum on a single topic.
type Course struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Objective     string         `json:"objective"`
	TotalDuration string         `json:"totalDuration"`
	Modules       []CourseModule `json:"modules"`
}

// SpeechText is the narration read aloud for a summary. The frame is Spanish
// to match the default generation language.
func (b BookSummary) SpeechText() string {
	return fmt.Sprintf("%s. Por %s. Idea principal: %s", b.Title, b.Author, b.MainTakeaway)
}
