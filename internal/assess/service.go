package assess

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eduplex/eduplex-backend/internal/apperr"
	"github.com/eduplex/eduplex-backend/internal/rbac"
)

// Store is the persistence collaborator for the engine. Tests are read and
// created, never updated; Results are append-only.
type Store interface {
	PutTest(ctx context.Context, t Test) error
	GetTest(ctx context.Context, id string) (Test, error)
	InsertResult(ctx context.Context, r Result) error
	ListResultsByStudent(ctx context.Context, studentID string) ([]Result, error)
	ListResultsByTest(ctx context.Context, testID string) ([]Result, error)
}

type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// DefineTest validates the draft and persists it stamped with the creator.
// Any validation failure happens before the write, so nothing partial lands.
func (s *Service) DefineTest(ctx context.Context, caller Caller, draft TestDraft) (Test, error) {
	if caller.ID == "" {
		return Test{}, apperr.Unauthorized("missing caller identity")
	}
	if caller.Role != rbac.RoleTeacher && caller.Role != rbac.RoleAdmin {
		return Test{}, apperr.Forbidden("only teachers can define tests")
	}
	if err := validateDraft(&draft); err != nil {
		return Test{}, err
	}
	t := Test{
		ID:           s.newID(),
		Title:        draft.Title,
		CourseID:     draft.CourseID,
		LessonID:     draft.LessonID,
		Questions:    draft.Questions,
		TimeLimitMin: draft.TimeLimitMin,
		PassingScore: draft.PassingScore,
		CreatedBy:    caller.ID,
		CreatedAt:    s.now().Unix(),
	}
	if err := s.store.PutTest(ctx, t); err != nil {
		return Test{}, err
	}
	return t, nil
}

// GetTest returns the test for the caller. Students get the answer keys
// stripped; creators and admins see the full definition.
func (s *Service) GetTest(ctx context.Context, caller Caller, id string) (Test, error) {
	t, err := s.store.GetTest(ctx, id)
	if err != nil {
		return Test{}, err
	}
	if caller.Role == rbac.RoleStudent {
		// Copy before stripping so the stored test keeps its keys.
		qs := append([]Question(nil), t.Questions...)
		for i := range qs {
			qs[i].CorrectAnswer = ""
		}
		t.Questions = qs
	}
	return t, nil
}

// Submission is the endpoint-facing outcome of one scored submission.
type Submission struct {
	Score    float64  `json:"score"`
	Passed   bool     `json:"passed"`
	Feedback Feedback `json:"feedback"`
}

// SubmitTest scores a submission against the persisted test, synthesizes
// feedback, and appends the Result in a single write. Scoring is pure, so a
// caller retry recomputes the identical outcome.
func (s *Service) SubmitTest(ctx context.Context, caller Caller, testID string, answers []string, timeSpentMin float64) (Submission, error) {
	if caller.ID == "" {
		return Submission{}, apperr.Unauthorized("missing caller identity")
	}
	t, err := s.store.GetTest(ctx, testID)
	if err != nil {
		return Submission{}, err
	}
	records, score := Score(t, answers)
	fb := Synthesize(t, records)
	if timeSpentMin < 0 {
		timeSpentMin = 0
	}
	res := Result{
		ID:           s.newID(),
		StudentID:    caller.ID,
		TestID:       t.ID,
		Answers:      records,
		Score:        score,
		TimeSpentMin: timeSpentMin,
		Feedback:     fb,
		CompletedAt:  s.now(),
	}
	if err := s.store.InsertResult(ctx, res); err != nil {
		return Submission{}, err
	}
	return Submission{
		Score:    score,
		Passed:   score >= t.PassingScore, // boundary is inclusive
		Feedback: fb,
	}, nil
}

// ListOwnResults returns the caller's results, newest first.
func (s *Service) ListOwnResults(ctx context.Context, caller Caller) ([]Result, error) {
	if caller.ID == "" {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	return s.store.ListResultsByStudent(ctx, caller.ID)
}

// ListTestResults returns all results for a test, best score first. Only the
// test's creator or an admin may read them; anyone else is refused outright
// rather than handed a filtered list.
func (s *Service) ListTestResults(ctx context.Context, caller Caller, testID string) ([]Result, error) {
	if caller.ID == "" {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	t, err := s.store.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	if caller.Role != rbac.RoleAdmin && caller.ID != t.CreatedBy {
		return nil, apperr.Forbidden("not the test creator")
	}
	return s.store.ListResultsByTest(ctx, testID)
}
