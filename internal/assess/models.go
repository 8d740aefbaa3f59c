package assess

import (
	"time"

	"github.com/eduplex/eduplex-backend/internal/rbac"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Question struct {
	Prompt        string     `json:"prompt"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correct_answer,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
}

// Test is immutable once persisted: edits create a new Test with a new id so
// historical Results stay valid.
type Test struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	CourseID     string     `json:"course_id,omitempty"`
	LessonID     string     `json:"lesson_id,omitempty"`
	Questions    []Question `json:"questions"`
	TimeLimitMin int        `json:"time_limit_min"`
	PassingScore float64    `json:"passing_score"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    int64      `json:"created_at"`
}

// TestDraft is the client-supplied shape for DefineTest.
type TestDraft struct {
	Title        string     `json:"title"`
	CourseID     string     `json:"course_id,omitempty"`
	LessonID     string     `json:"lesson_id,omitempty"`
	Questions    []Question `json:"questions"`
	TimeLimitMin int        `json:"time_limit_min"`
	PassingScore float64    `json:"passing_score"`
}

type AnswerRecord struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
	IsCorrect     bool   `json:"is_correct"`
}

type Feedback struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// Result is append-only: created exactly once per submission, never updated.
type Result struct {
	ID           string         `json:"id"`
	StudentID    string         `json:"student_id"`
	TestID       string         `json:"test_id"`
	Answers      []AnswerRecord `json:"answers"`
	Score        float64        `json:"score"`
	TimeSpentMin float64        `json:"time_spent_min"`
	Feedback     Feedback       `json:"feedback"`
	CompletedAt  time.Time      `json:"completed_at"`
}

// Caller is the authenticated identity threaded into every engine operation.
// It is an explicit value, not ambient request state.
type Caller struct {
	ID   string
	Role rbac.Role
}
