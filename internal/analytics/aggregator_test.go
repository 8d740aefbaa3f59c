package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/eduplex/eduplex-backend/internal/apperr"
	"github.com/eduplex/eduplex-backend/internal/assess"
	"github.com/eduplex/eduplex-backend/internal/rbac"
)

// fakeStore serves counts from a canned data set so the role views can be
// asserted without a database.
type fakeStore struct {
	userCreatedAt map[string]time.Time
	usersByRole   map[rbac.Role]int
	courses       int
	tests         int

	teacherCourses     map[string]int
	teacherEnrollments map[string]int
	teacherLessons     map[string]int
	teacherTests       map[string]int

	studentEnrollments map[string]int
	studentResults     map[string]ResultStats
}

func (f *fakeStore) CountUsers(ctx context.Context) (int, error) {
	return len(f.userCreatedAt), nil
}

func (f *fakeStore) CountUsersByRole(ctx context.Context, role rbac.Role) (int, error) {
	return f.usersByRole[role], nil
}

func (f *fakeStore) CountUsersCreatedSince(ctx context.Context, since time.Time) (int, error) {
	n := 0
	for _, at := range f.userCreatedAt {
		if !at.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CountCourses(ctx context.Context) (int, error) { return f.courses, nil }
func (f *fakeStore) CountTests(ctx context.Context) (int, error)   { return f.tests, nil }

func (f *fakeStore) CountCoursesByTeacher(ctx context.Context, id string) (int, error) {
	return f.teacherCourses[id], nil
}

func (f *fakeStore) CountEnrollmentsByTeacher(ctx context.Context, id string) (int, error) {
	return f.teacherEnrollments[id], nil
}

func (f *fakeStore) CountLessonsByTeacher(ctx context.Context, id string) (int, error) {
	return f.teacherLessons[id], nil
}

func (f *fakeStore) CountTestsByCreator(ctx context.Context, id string) (int, error) {
	return f.teacherTests[id], nil
}

func (f *fakeStore) CountEnrollmentsByStudent(ctx context.Context, id string) (int, error) {
	return f.studentEnrollments[id], nil
}

func (f *fakeStore) StudentResultStats(ctx context.Context, id string) (ResultStats, error) {
	return f.studentResults[id], nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
}

func newTestAggregator(store Store) *Aggregator {
	a := NewAggregator(store)
	a.now = fixedNow
	return a
}

func TestAggregateAdminCountsNewUsersInWindow(t *testing.T) {
	now := fixedNow()
	store := &fakeStore{
		userCreatedAt: map[string]time.Time{
			"old-1":    now.Add(-30 * 24 * time.Hour),
			"old-2":    now.Add(-8 * 24 * time.Hour),
			"recent-1": now.Add(-2 * 24 * time.Hour),
			"recent-2": now.Add(-6 * 24 * time.Hour),
		},
		usersByRole: map[rbac.Role]int{rbac.RoleTeacher: 1, rbac.RoleStudent: 3},
		courses:     5,
		tests:       7,
	}
	agg := newTestAggregator(store)

	view, err := agg.Aggregate(context.Background(), assess.Caller{ID: "admin-1", Role: rbac.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}
	admin, ok := view.(AdminStats)
	if !ok {
		t.Fatalf("view is %T, want AdminStats", view)
	}
	want := AdminStats{
		TotalUsers:    4,
		TotalTeachers: 1,
		TotalStudents: 3,
		TotalCourses:  5,
		TotalTests:    7,
		NewUsers:      2,
	}
	if admin != want {
		t.Errorf("got %+v, want %+v", admin, want)
	}
}

func TestAggregateTeacherScopedToCaller(t *testing.T) {
	store := &fakeStore{
		teacherCourses:     map[string]int{"teacher-1": 3, "teacher-2": 9},
		teacherEnrollments: map[string]int{"teacher-1": 41},
		teacherLessons:     map[string]int{"teacher-1": 12},
		teacherTests:       map[string]int{"teacher-1": 6},
	}
	agg := newTestAggregator(store)

	view, err := agg.Aggregate(context.Background(), assess.Caller{ID: "teacher-1", Role: rbac.RoleTeacher})
	if err != nil {
		t.Fatal(err)
	}
	teacher, ok := view.(TeacherStats)
	if !ok {
		t.Fatalf("view is %T, want TeacherStats", view)
	}
	want := TeacherStats{MyCourses: 3, MyStudents: 41, MyLessons: 12, MyTests: 6}
	if teacher != want {
		t.Errorf("got %+v, want %+v", teacher, want)
	}
}

func TestAggregateStudentWithNoResults(t *testing.T) {
	store := &fakeStore{
		studentEnrollments: map[string]int{"student-1": 2},
	}
	agg := newTestAggregator(store)

	view, err := agg.Aggregate(context.Background(), assess.Caller{ID: "student-1", Role: rbac.RoleStudent})
	if err != nil {
		t.Fatal(err)
	}
	student, ok := view.(StudentStats)
	if !ok {
		t.Fatalf("view is %T, want StudentStats", view)
	}
	want := StudentStats{EnrolledCourses: 2}
	if student != want {
		t.Errorf("got %+v, want %+v", student, want)
	}
}

func TestAggregateStudentAverages(t *testing.T) {
	store := &fakeStore{
		studentEnrollments: map[string]int{"student-1": 1},
		studentResults: map[string]ResultStats{
			"student-1": {Completed: 4, AverageScore: 72.5, TotalTimeMin: 95},
		},
	}
	agg := newTestAggregator(store)

	view, err := agg.Aggregate(context.Background(), assess.Caller{ID: "student-1", Role: rbac.RoleStudent})
	if err != nil {
		t.Fatal(err)
	}
	student := view.(StudentStats)
	if student.CompletedTests != 4 || student.AverageScore != 72.5 || student.TotalStudyTime != 95 {
		t.Errorf("got %+v", student)
	}
}

func TestAggregateRejectsUnknownRole(t *testing.T) {
	agg := newTestAggregator(&fakeStore{})

	_, err := agg.Aggregate(context.Background(), assess.Caller{ID: "u-1", Role: rbac.Role("superuser")})
	if !apperr.IsCode(err, apperr.CodeInvalid) {
		t.Fatalf("want invalid, got %v", err)
	}
}

func TestAggregateRequiresIdentity(t *testing.T) {
	agg := newTestAggregator(&fakeStore{})

	_, err := agg.Aggregate(context.Background(), assess.Caller{Role: rbac.RoleAdmin})
	if !apperr.IsCode(err, apperr.CodeUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
}
