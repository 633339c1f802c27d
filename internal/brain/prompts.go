package brain

import (
	"fmt"
	"strings"
)

func languageClause(lang string) string {
	if lang == "" {
		return ""
	}
	return fmt.Sprintf(" Respond only in %s.", lang)
}

func growthPlanPrompt(interests []string, lang string) string {
	return fmt.Sprintf("Create a personal growth plan and a \"Challenge of the Day\" based on: %s.%s",
		strings.Join(interests, ", "), languageClause(lang))
}

func bookSummaryPrompt(title, lang string) string {
	return fmt.Sprintf("Summarize the book %q in a 15-minute format. Focus on self-help, business or discipline ideas.%s",
		title, languageClause(lang))
}

func historicalFigurePrompt(name, lang string) string {
	return fmt.Sprintf("Create a mentorship profile based on the historical figure %q. Extract their life principles and legacy.%s",
		name, languageClause(lang))
}

func coursePrompt(topic, lang string) string {
	return fmt.Sprintf("Create a structured micro-course on the topic %q. It must have between 3 and 5 educational modules.%s",
		topic, languageClause(lang))
}

func topicBooksPrompt(topic, lang string) string {
	return fmt.Sprintf("List 5 popular, highly recommended non-fiction books on the topic %q. Return only the titles.%s",
		topic, languageClause(lang))
}

func speechPrompt(text string) string {
	return "Read this in a clear, inspiring voice: " + text
}
