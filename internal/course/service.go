package course

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eduplex/eduplex-backend/internal/apperr"
	"github.com/eduplex/eduplex-backend/internal/assess"
	"github.com/eduplex/eduplex-backend/internal/rbac"
)

// Store is the persistence collaborator. Enroll must be an atomic
// add-if-absent at the storage layer: it reports whether a membership row was
// actually inserted, so concurrent enrolls resolve to exactly one.
type Store interface {
	CreateCourse(ctx context.Context, c Course) error
	GetCourse(ctx context.Context, id string) (Course, error)
	ListPublished(ctx context.Context) ([]Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]Course, error)
	ListByStudent(ctx context.Context, studentID string) ([]Course, error)
	Enroll(ctx context.Context, courseID, studentID string, at int64) (bool, error)
	CreateLesson(ctx context.Context, l Lesson) error
	ListLessons(ctx context.Context, courseID string) ([]Lesson, error)
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

type CourseDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Level       Level  `json:"level"`
	ImageURL    string `json:"image_url"`
	IsPublished bool   `json:"is_published"`
}

func (s *Service) CreateCourse(ctx context.Context, caller assess.Caller, draft CourseDraft) (Course, error) {
	if caller.Role != rbac.RoleTeacher && caller.Role != rbac.RoleAdmin {
		return Course{}, apperr.Forbidden("only teachers can create courses")
	}
	if strings.TrimSpace(draft.Title) == "" {
		return Course{}, apperr.Invalid("title required")
	}
	level := draft.Level
	switch level {
	case "":
		level = LevelBeginner
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		return Course{}, apperr.Invalid("level must be beginner, intermediate or advanced")
	}
	c := Course{
		ID:          s.newID(),
		Title:       strings.TrimSpace(draft.Title),
		Description: draft.Description,
		TeacherID:   caller.ID,
		Category:    draft.Category,
		Level:       level,
		ImageURL:    draft.ImageURL,
		IsPublished: draft.IsPublished,
		CreatedAt:   s.now().Unix(),
	}
	if err := s.store.CreateCourse(ctx, c); err != nil {
		return Course{}, err
	}
	return c, nil
}

// Enroll adds the caller to the course. The membership insert is conditional
// at the storage layer, so two racing enrolls yield one row; the loser gets
// "already enrolled" back instead of a duplicate.
func (s *Service) Enroll(ctx context.Context, caller assess.Caller, courseID string) error {
	if caller.ID == "" {
		return apperr.Unauthorized("missing caller identity")
	}
	if _, err := s.store.GetCourse(ctx, courseID); err != nil {
		return err
	}
	inserted, err := s.store.Enroll(ctx, courseID, caller.ID, s.now().Unix())
	if err != nil {
		return err
	}
	if !inserted {
		return apperr.Conflict("already enrolled")
	}
	return nil
}

func (s *Service) ListPublished(ctx context.Context) ([]Course, error) {
	return s.store.ListPublished(ctx)
}

func (s *Service) ListMine(ctx context.Context, caller assess.Caller) ([]Course, error) {
	switch caller.Role {
	case rbac.RoleTeacher, rbac.RoleAdmin:
		return s.store.ListByTeacher(ctx, caller.ID)
	case rbac.RoleStudent:
		return s.store.ListByStudent(ctx, caller.ID)
	default:
		return nil, apperr.Forbidden("unknown role")
	}
}

type LessonDraft struct {
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	VideoURL    string `json:"video_url"`
	FileURL     string `json:"file_url"`
	Order       int    `json:"order"`
	DurationMin int    `json:"duration_min"`
}

func (s *Service) CreateLesson(ctx context.Context, caller assess.Caller, draft LessonDraft) (Lesson, error) {
	if caller.Role != rbac.RoleTeacher && caller.Role != rbac.RoleAdmin {
		return Lesson{}, apperr.Forbidden("only teachers can create lessons")
	}
	if strings.TrimSpace(draft.Title) == "" {
		return Lesson{}, apperr.Invalid("title required")
	}
	if draft.CourseID == "" {
		return Lesson{}, apperr.Invalid("course_id required")
	}
	if _, err := s.store.GetCourse(ctx, draft.CourseID); err != nil {
		return Lesson{}, err
	}
	duration := draft.DurationMin
	if duration <= 0 {
		duration = 45
	}
	l := Lesson{
		ID:          s.newID(),
		CourseID:    draft.CourseID,
		TeacherID:   caller.ID,
		Title:       strings.TrimSpace(draft.Title),
		Content:     draft.Content,
		VideoURL:    draft.VideoURL,
		FileURL:     draft.FileURL,
		Order:       draft.Order,
		DurationMin: duration,
		CreatedAt:   s.now().Unix(),
	}
	if err := s.store.CreateLesson(ctx, l); err != nil {
		return Lesson{}, err
	}
	return l, nil
}

func (s *Service) ListLessons(ctx context.Context, courseID string) ([]Lesson, error) {
	if _, err := s.store.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.store.ListLessons(ctx, courseID)
}
