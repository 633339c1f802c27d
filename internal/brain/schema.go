package brain

import "google.golang.org/genai"

// Response schemas declared to the model. Property names are the wire
// contract shared with internal/content; keep them in sync.

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func strList(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: str(), Description: desc}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

var bookSummarySchema = object(map[string]*genai.Schema{
	"id":           str(),
	"title":        str(),
	"author":       str(),
	"keyInsights":  strList("The 5 most actionable points or ideas."),
	"mainTakeaway": str(),
	"readingTime":  {Type: genai.TypeNumber},
}, "id", "title", "author", "keyInsights", "mainTakeaway", "readingTime")

var historicalFigureSchema = object(map[string]*genai.Schema{
	"name":           str(),
	"title":          str(),
	"period":         str(),
	"legacy":         str(),
	"corePrinciples": strList(""),
	"famousQuote":    str(),
}, "name", "title", "period", "legacy", "corePrinciples", "famousQuote")

var courseSchema = object(map[string]*genai.Schema{
	"id":            str(),
	"title":         str(),
	"objective":     str(),
	"totalDuration": str(),
	"modules": {
		Type: genai.TypeArray,
		Items: object(map[string]*genai.Schema{
			"title":    str(),
			"content":  str(),
			"duration": str(),
		}, "title", "content", "duration"),
	},
}, "id", "title", "objective", "totalDuration", "modules")

var topicBooksSchema = strList("")

var growthPlanSchema = object(map[string]*genai.Schema{
	"dailyFocus": str(),
	"steps": {
		Type: genai.TypeArray,
		Items: object(map[string]*genai.Schema{
			"title":       str(),
			"description": str(),
			"duration":    str(),
		}, "title", "description", "duration"),
	},
	"challenge": object(map[string]*genai.Schema{
		"title":   str(),
		"action":  str(),
		"benefit": str(),
	}, "title", "action", "benefit"),
	"suggestedBooks": strList(""),
}, "dailyFocus", "steps", "challenge", "suggestedBooks")
