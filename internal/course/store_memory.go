package course

import (
	"context"
	"sort"
	"sync"

	"github.com/eduplex/eduplex-backend/internal/apperr"
)

type enrollKey struct {
	courseID  string
	studentID string
}

// memoryStore holds courses and memberships behind one mutex, so Enroll gets
// the same add-if-absent atomicity the SQL store's conditional insert gives.
type memoryStore struct {
	mu          sync.Mutex
	courses     map[string]Course
	lessons     map[string][]Lesson
	enrollments map[enrollKey]int64
}

func NewInMemoryStore() Store {
	return &memoryStore{
		courses:     map[string]Course{},
		lessons:     map[string][]Lesson{},
		enrollments: map[enrollKey]int64{},
	}
}

func (m *memoryStore) CreateCourse(_ context.Context, c Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[c.ID] = c
	return nil
}

func (m *memoryStore) GetCourse(_ context.Context, id string) (Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok {
		return Course{}, apperr.NotFound("course not found")
	}
	return c, nil
}

func (m *memoryStore) ListPublished(_ context.Context) ([]Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Course{}
	for _, c := range m.courses {
		if c.IsPublished {
			out = append(out, c)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (m *memoryStore) ListByTeacher(_ context.Context, teacherID string) ([]Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Course{}
	for _, c := range m.courses {
		if c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (m *memoryStore) ListByStudent(_ context.Context, studentID string) ([]Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Course{}
	for k := range m.enrollments {
		if k.studentID != studentID {
			continue
		}
		if c, ok := m.courses[k.courseID]; ok {
			out = append(out, c)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (m *memoryStore) Enroll(_ context.Context, courseID, studentID string, at int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := enrollKey{courseID: courseID, studentID: studentID}
	if _, exists := m.enrollments[k]; exists {
		return false, nil
	}
	m.enrollments[k] = at
	return true, nil
}

func (m *memoryStore) CreateLesson(_ context.Context, l Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lessons[l.CourseID] = append(m.lessons[l.CourseID], l)
	return nil
}

func (m *memoryStore) ListLessons(_ context.Context, courseID string) ([]Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]Lesson(nil), m.lessons[courseID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func sortByCreated(cs []Course) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].CreatedAt > cs[j].CreatedAt })
}
