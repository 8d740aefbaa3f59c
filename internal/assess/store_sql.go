package assess

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/eduplex/eduplex-backend/internal/apperr"
)

// SQLStore persists tests and results over database/sql. Question and answer
// sequences live in JSON columns; timestamps are unix seconds. Works against
// both the sqlite and postgres schemas.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) PutTest(ctx context.Context, t Test) error {
	qj, err := json.Marshal(t.Questions)
	if err != nil {
		return apperr.Invalid("questions not serializable")
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO tests
		(id,title,course_id,lesson_id,questions_json,time_limit_min,passing_score,created_by,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		t.ID, t.Title, nullable(t.CourseID), nullable(t.LessonID), string(qj),
		t.TimeLimitMin, t.PassingScore, t.CreatedBy, t.CreatedAt)
	if err != nil {
		log.Printf("assess: put test %s: %v", t.ID, err)
		return apperr.Storage(err)
	}
	return nil
}

func (s *SQLStore) GetTest(ctx context.Context, id string) (Test, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,course_id,lesson_id,questions_json,time_limit_min,passing_score,created_by,created_at
		FROM tests WHERE id=$1`, id)
	var t Test
	var course, lesson sql.NullString
	var qjson string
	if err := row.Scan(&t.ID, &t.Title, &course, &lesson, &qjson, &t.TimeLimitMin, &t.PassingScore, &t.CreatedBy, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Test{}, apperr.NotFound("test not found")
		}
		log.Printf("assess: get test %s: %v", id, err)
		return Test{}, apperr.Storage(err)
	}
	t.CourseID = course.String
	t.LessonID = lesson.String
	if err := json.Unmarshal([]byte(qjson), &t.Questions); err != nil {
		log.Printf("assess: test %s questions corrupt: %v", id, err)
		return Test{}, apperr.Storage(err)
	}
	return t, nil
}

func (s *SQLStore) InsertResult(ctx context.Context, r Result) error {
	aj, err := json.Marshal(r.Answers)
	if err != nil {
		return apperr.Invalid("answers not serializable")
	}
	fj, err := json.Marshal(r.Feedback)
	if err != nil {
		return apperr.Invalid("feedback not serializable")
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO results
		(id,student_id,test_id,answers_json,score,time_spent_min,feedback_json,completed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.StudentID, r.TestID, string(aj), r.Score, r.TimeSpentMin, string(fj), r.CompletedAt.Unix())
	if err != nil {
		log.Printf("assess: insert result %s: %v", r.ID, err)
		return apperr.Storage(err)
	}
	return nil
}

func (s *SQLStore) ListResultsByStudent(ctx context.Context, studentID string) ([]Result, error) {
	return s.listResults(ctx,
		`SELECT id,student_id,test_id,answers_json,score,time_spent_min,feedback_json,completed_at
		 FROM results WHERE student_id=$1 ORDER BY completed_at DESC`, studentID)
}

func (s *SQLStore) ListResultsByTest(ctx context.Context, testID string) ([]Result, error) {
	return s.listResults(ctx,
		`SELECT id,student_id,test_id,answers_json,score,time_spent_min,feedback_json,completed_at
		 FROM results WHERE test_id=$1 ORDER BY score DESC`, testID)
}

func (s *SQLStore) listResults(ctx context.Context, query string, arg any) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Printf("assess: list results: %v", err)
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var r Result
		var ajson, fjson string
		var completed int64
		if err := rows.Scan(&r.ID, &r.StudentID, &r.TestID, &ajson, &r.Score, &r.TimeSpentMin, &fjson, &completed); err != nil {
			log.Printf("assess: scan result: %v", err)
			return nil, apperr.Storage(err)
		}
		if err := json.Unmarshal([]byte(ajson), &r.Answers); err != nil {
			r.Answers = []AnswerRecord{}
		}
		if err := json.Unmarshal([]byte(fjson), &r.Feedback); err != nil {
			r.Feedback = Feedback{}
		}
		r.CompletedAt = time.Unix(completed, 0).UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
