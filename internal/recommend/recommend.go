// Package recommend is the explicitly non-deterministic course-suggestion
// collaborator. It is kept apart from the assessment engine: nothing here
// feeds scoring or feedback, and its randomness is injected so tests can
// pin it down.
package recommend

import (
	"context"
	"math/rand"

	"github.com/eduplex/eduplex-backend/internal/course"
)

type CoursePick struct {
	CourseID        string `json:"course_id"`
	Title           string `json:"title"`
	Reason          string `json:"reason"`
	MatchPercentage int    `json:"match_percentage"`
}

type StudySlot struct {
	Day      string `json:"day"`
	Topic    string `json:"topic"`
	Duration string `json:"duration"`
}

type Recommendations struct {
	Courses   []CoursePick `json:"courses"`
	StudyPlan []StudySlot  `json:"study_plan"`
	Tips      []string     `json:"tips"`
}

type CourseLister interface {
	ListPublished(ctx context.Context) ([]course.Course, error)
}

type Recommender struct {
	courses CourseLister
	rng     *rand.Rand
}

func New(courses CourseLister, seed int64) *Recommender {
	return &Recommender{courses: courses, rng: rand.New(rand.NewSource(seed))}
}

const maxCoursePicks = 3

var defaultStudyPlan = []StudySlot{
	{Day: "Monday", Topic: "Fundamentals review", Duration: "2h"},
	{Day: "Tuesday", Topic: "Data analysis", Duration: "1.5h"},
	{Day: "Wednesday", Topic: "Applied practice", Duration: "2h"},
	{Day: "Thursday", Topic: "Exercises", Duration: "1h"},
	{Day: "Friday", Topic: "Practice test", Duration: "1.5h"},
}

var defaultTips = []string{
	"Spend at least 30 minutes a day on hands-on practice",
	"Read about new techniques in your field twice a week",
	"Work on small practical projects",
}

// ForStudent picks up to three published courses with a randomized match
// percentage in [70,100). The plan and tips are fixed.
func (r *Recommender) ForStudent(ctx context.Context, studentID string) (Recommendations, error) {
	published, err := r.courses.ListPublished(ctx)
	if err != nil {
		return Recommendations{}, err
	}
	picks := []CoursePick{}
	for i, c := range published {
		if i >= maxCoursePicks {
			break
		}
		picks = append(picks, CoursePick{
			CourseID:        c.ID,
			Title:           c.Title,
			Reason:          "Matches your current level",
			MatchPercentage: 70 + r.rng.Intn(30),
		})
	}
	return Recommendations{
		Courses:   picks,
		StudyPlan: defaultStudyPlan,
		Tips:      defaultTips,
	}, nil
}
