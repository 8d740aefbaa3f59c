package analytics

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/eduplex/eduplex-backend/internal/apperr"
	"github.com/eduplex/eduplex-backend/internal/rbac"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) CountUsers(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (s *SQLStore) CountUsersByRole(ctx context.Context, role rbac.Role) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM users WHERE role=$1`, string(role))
}

func (s *SQLStore) CountUsersCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM users WHERE created_at >= $1`, since.Unix())
}

func (s *SQLStore) CountCourses(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM courses`)
}

func (s *SQLStore) CountTests(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM tests`)
}

func (s *SQLStore) CountCoursesByTeacher(ctx context.Context, teacherID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM courses WHERE teacher_id=$1`, teacherID)
}

func (s *SQLStore) CountEnrollmentsByTeacher(ctx context.Context, teacherID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*)
		FROM course_students cs
		JOIN courses c ON c.id = cs.course_id
		WHERE c.teacher_id=$1`, teacherID)
}

func (s *SQLStore) CountLessonsByTeacher(ctx context.Context, teacherID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM lessons WHERE teacher_id=$1`, teacherID)
}

func (s *SQLStore) CountTestsByCreator(ctx context.Context, creatorID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM tests WHERE created_by=$1`, creatorID)
}

func (s *SQLStore) CountEnrollmentsByStudent(ctx context.Context, studentID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM course_students WHERE student_id=$1`, studentID)
}

func (s *SQLStore) StudentResultStats(ctx context.Context, studentID string) (ResultStats, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(AVG(score),0), COALESCE(SUM(time_spent_min),0)
		FROM results WHERE student_id=$1`, studentID)
	var st ResultStats
	if err := row.Scan(&st.Completed, &st.AverageScore, &st.TotalTimeMin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResultStats{}, nil
		}
		log.Printf("analytics: result stats for %s: %v", studentID, err)
		return ResultStats{}, apperr.Storage(err)
	}
	return st, nil
}

func (s *SQLStore) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		log.Printf("analytics: %v", err)
		return 0, apperr.Storage(err)
	}
	return n, nil
}
