package course

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/eduplex/eduplex-backend/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) CreateCourse(ctx context.Context, c Course) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO courses
		(id,title,description,teacher_id,category,level,image_url,is_published,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		c.ID, c.Title, c.Description, c.TeacherID, c.Category, string(c.Level),
		c.ImageURL, c.IsPublished, c.CreatedAt)
	if err != nil {
		log.Printf("course: create %s: %v", c.ID, err)
		return apperr.Storage(err)
	}
	return nil
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (Course, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,description,teacher_id,category,level,image_url,is_published,created_at
		FROM courses WHERE id=$1`, id)
	var c Course
	var level string
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.Category, &level, &c.ImageURL, &c.IsPublished, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, apperr.NotFound("course not found")
		}
		log.Printf("course: get %s: %v", id, err)
		return Course{}, apperr.Storage(err)
	}
	c.Level = Level(level)
	return c, nil
}

func (s *SQLStore) ListPublished(ctx context.Context) ([]Course, error) {
	return s.list(ctx, `SELECT id,title,description,teacher_id,category,level,image_url,is_published,created_at
		FROM courses WHERE is_published=$1 ORDER BY created_at DESC`, true)
}

func (s *SQLStore) ListByTeacher(ctx context.Context, teacherID string) ([]Course, error) {
	return s.list(ctx, `SELECT id,title,description,teacher_id,category,level,image_url,is_published,created_at
		FROM courses WHERE teacher_id=$1 ORDER BY created_at DESC`, teacherID)
}

func (s *SQLStore) ListByStudent(ctx context.Context, studentID string) ([]Course, error) {
	return s.list(ctx, `SELECT c.id,c.title,c.description,c.teacher_id,c.category,c.level,c.image_url,c.is_published,c.created_at
		FROM courses c
		JOIN course_students cs ON cs.course_id = c.id
		WHERE cs.student_id=$1 ORDER BY c.created_at DESC`, studentID)
}

// Enroll performs the conditional membership insert. ON CONFLICT DO NOTHING
// makes the add-if-absent atomic in both sqlite and postgres; a zero
// rows-affected count means the student was already a member.
func (s *SQLStore) Enroll(ctx context.Context, courseID, studentID string, at int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO course_students (course_id, student_id, enrolled_at)
		VALUES ($1,$2,$3) ON CONFLICT (course_id, student_id) DO NOTHING`,
		courseID, studentID, at)
	if err != nil {
		log.Printf("course: enroll %s into %s: %v", studentID, courseID, err)
		return false, apperr.Storage(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperr.Storage(err)
	}
	return n > 0, nil
}

func (s *SQLStore) CreateLesson(ctx context.Context, l Lesson) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO lessons
		(id,course_id,teacher_id,title,content,video_url,file_url,ord,duration_min,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		l.ID, l.CourseID, l.TeacherID, l.Title, l.Content, l.VideoURL, l.FileURL,
		l.Order, l.DurationMin, l.CreatedAt)
	if err != nil {
		log.Printf("course: create lesson %s: %v", l.ID, err)
		return apperr.Storage(err)
	}
	return nil
}

func (s *SQLStore) ListLessons(ctx context.Context, courseID string) ([]Lesson, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,course_id,teacher_id,title,content,video_url,file_url,ord,duration_min,created_at
		FROM lessons WHERE course_id=$1 ORDER BY ord`, courseID)
	if err != nil {
		log.Printf("course: list lessons for %s: %v", courseID, err)
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	out := []Lesson{}
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.TeacherID, &l.Title, &l.Content, &l.VideoURL, &l.FileURL, &l.Order, &l.DurationMin, &l.CreatedAt); err != nil {
			return nil, apperr.Storage(err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}

func (s *SQLStore) list(ctx context.Context, query string, arg any) ([]Course, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Printf("course: list: %v", err)
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	out := []Course{}
	for rows.Next() {
		var c Course
		var level string
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.Category, &level, &c.ImageURL, &c.IsPublished, &c.CreatedAt); err != nil {
			return nil, apperr.Storage(err)
		}
		c.Level = Level(level)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}
