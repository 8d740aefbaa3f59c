package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/eduplex/eduplex-backend/internal/apperr"
	"github.com/eduplex/eduplex-backend/internal/assess"
	"github.com/eduplex/eduplex-backend/internal/rbac"
)

// Store exposes the point-in-time aggregates the role views are built from.
// Reads need not be transactionally consistent with concurrent writes, but
// every count defaults to zero on an empty data set.
type Store interface {
	CountUsers(ctx context.Context) (int, error)
	CountUsersByRole(ctx context.Context, role rbac.Role) (int, error)
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int, error)
	CountCourses(ctx context.Context) (int, error)
	CountTests(ctx context.Context) (int, error)

	CountCoursesByTeacher(ctx context.Context, teacherID string) (int, error)
	CountEnrollmentsByTeacher(ctx context.Context, teacherID string) (int, error)
	CountLessonsByTeacher(ctx context.Context, teacherID string) (int, error)
	CountTestsByCreator(ctx context.Context, creatorID string) (int, error)

	CountEnrollmentsByStudent(ctx context.Context, studentID string) (int, error)
	StudentResultStats(ctx context.Context, studentID string) (ResultStats, error)
}

// ResultStats aggregates one student's result history.
type ResultStats struct {
	Completed    int
	AverageScore float64
	TotalTimeMin float64
}

// StatsView is the closed set of role-scoped snapshots.
type StatsView interface{ statsView() }

type AdminStats struct {
	TotalUsers    int `json:"total_users"`
	TotalTeachers int `json:"total_teachers"`
	TotalStudents int `json:"total_students"`
	TotalCourses  int `json:"total_courses"`
	TotalTests    int `json:"total_tests"`
	NewUsers      int `json:"new_users"`
}

type TeacherStats struct {
	MyCourses  int `json:"my_courses"`
	MyStudents int `json:"my_students"`
	MyLessons  int `json:"my_lessons"`
	MyTests    int `json:"my_tests"`
}

type StudentStats struct {
	EnrolledCourses int     `json:"enrolled_courses"`
	CompletedTests  int     `json:"completed_tests"`
	AverageScore    float64 `json:"average_score"`
	TotalStudyTime  float64 `json:"total_study_time"`
}

func (AdminStats) statsView()   {}
func (TeacherStats) statsView() {}
func (StudentStats) statsView() {}

const newUserWindow = 7 * 24 * time.Hour

type Aggregator struct {
	store Store
	now   func() time.Time
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Aggregate produces the role-appropriate snapshot for the caller. The role
// switch is exhaustive over the closed set; an unrecognized role is an error,
// never a silent default view.
func (a *Aggregator) Aggregate(ctx context.Context, caller assess.Caller) (StatsView, error) {
	if caller.ID == "" {
		return nil, apperr.Unauthorized("missing caller identity")
	}
	switch caller.Role {
	case rbac.RoleAdmin:
		return a.adminView(ctx)
	case rbac.RoleTeacher:
		return a.teacherView(ctx, caller.ID)
	case rbac.RoleStudent:
		return a.studentView(ctx, caller.ID)
	default:
		return nil, apperr.Invalid(fmt.Sprintf("unknown role %q", caller.Role))
	}
}

func (a *Aggregator) adminView(ctx context.Context) (StatsView, error) {
	var v AdminStats
	var err error
	if v.TotalUsers, err = a.store.CountUsers(ctx); err != nil {
		return nil, err
	}
	if v.TotalTeachers, err = a.store.CountUsersByRole(ctx, rbac.RoleTeacher); err != nil {
		return nil, err
	}
	if v.TotalStudents, err = a.store.CountUsersByRole(ctx, rbac.RoleStudent); err != nil {
		return nil, err
	}
	if v.TotalCourses, err = a.store.CountCourses(ctx); err != nil {
		return nil, err
	}
	if v.TotalTests, err = a.store.CountTests(ctx); err != nil {
		return nil, err
	}
	// Trailing window computed at call time, inclusive boundary.
	since := a.now().Add(-newUserWindow)
	if v.NewUsers, err = a.store.CountUsersCreatedSince(ctx, since); err != nil {
		return nil, err
	}
	return v, nil
}

func (a *Aggregator) teacherView(ctx context.Context, teacherID string) (StatsView, error) {
	var v TeacherStats
	var err error
	if v.MyCourses, err = a.store.CountCoursesByTeacher(ctx, teacherID); err != nil {
		return nil, err
	}
	if v.MyStudents, err = a.store.CountEnrollmentsByTeacher(ctx, teacherID); err != nil {
		return nil, err
	}
	if v.MyLessons, err = a.store.CountLessonsByTeacher(ctx, teacherID); err != nil {
		return nil, err
	}
	if v.MyTests, err = a.store.CountTestsByCreator(ctx, teacherID); err != nil {
		return nil, err
	}
	return v, nil
}

func (a *Aggregator) studentView(ctx context.Context, studentID string) (StatsView, error) {
	var v StudentStats
	var err error
	if v.EnrolledCourses, err = a.store.CountEnrollmentsByStudent(ctx, studentID); err != nil {
		return nil, err
	}
	stats, err := a.store.StudentResultStats(ctx, studentID)
	if err != nil {
		return nil, err
	}
	v.CompletedTests = stats.Completed
	v.AverageScore = stats.AverageScore
	v.TotalStudyTime = stats.TotalTimeMin
	return v, nil
}
