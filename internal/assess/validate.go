package assess

import (
	"fmt"
	"strings"
)

// ValidationError names the offending draft field. It is raised before any
// write, so a failed DefineTest leaves no partial state behind.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

const minOptions = 2

// validateDraft checks the draft against the definition contract. The draft
// is normalized in place (trimmed title, defaulted difficulty) before checks.
func validateDraft(d *TestDraft) error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if len(d.Questions) == 0 {
		return &ValidationError{Field: "questions", Reason: "at least one question required"}
	}
	if d.TimeLimitMin <= 0 {
		return &ValidationError{Field: "time_limit_min", Reason: "must be greater than zero"}
	}
	if d.PassingScore < 0 || d.PassingScore > 100 {
		return &ValidationError{Field: "passing_score", Reason: "must be within 0..100"}
	}
	for i := range d.Questions {
		q := &d.Questions[i]
		if strings.TrimSpace(q.Prompt) == "" {
			return &ValidationError{Field: fmt.Sprintf("questions[%d].prompt", i), Reason: "required"}
		}
		if len(q.Options) < minOptions {
			return &ValidationError{
				Field:  fmt.Sprintf("questions[%d].options", i),
				Reason: fmt.Sprintf("at least %d options required", minOptions),
			}
		}
		if !containsVerbatim(q.Options, q.CorrectAnswer) {
			return &ValidationError{
				Field:  fmt.Sprintf("questions[%d].correctAnswer", i),
				Reason: "must match one of the options verbatim",
			}
		}
		switch q.Difficulty {
		case "":
			q.Difficulty = DifficultyMedium
		case DifficultyEasy, DifficultyMedium, DifficultyHard:
		default:
			return &ValidationError{
				Field:  fmt.Sprintf("questions[%d].difficulty", i),
				Reason: "must be easy, medium or hard",
			}
		}
	}
	return nil
}

func containsVerbatim(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
