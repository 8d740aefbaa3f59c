package recommend

import (
	"context"
	"testing"

	"github.com/eduplex/eduplex-backend/internal/course"
)

type staticLister struct{ courses []course.Course }

func (s staticLister) ListPublished(ctx context.Context) ([]course.Course, error) {
	return s.courses, nil
}

func catalog(n int) staticLister {
	cs := make([]course.Course, n)
	for i := range cs {
		cs[i] = course.Course{ID: "c-" + string(rune('a'+i)), Title: "Course", IsPublished: true}
	}
	return staticLister{courses: cs}
}

func TestForStudentCapsPicks(t *testing.T) {
	rec := New(catalog(5), 1)
	got, err := rec.ForStudent(context.Background(), "student-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Courses) != maxCoursePicks {
		t.Fatalf("%d picks, want %d", len(got.Courses), maxCoursePicks)
	}
	for _, p := range got.Courses {
		if p.MatchPercentage < 70 || p.MatchPercentage > 99 {
			t.Errorf("match %d outside [70,99]", p.MatchPercentage)
		}
	}
	if len(got.StudyPlan) == 0 || len(got.Tips) == 0 {
		t.Error("plan and tips must always be present")
	}
}

func TestForStudentEmptyCatalog(t *testing.T) {
	rec := New(catalog(0), 1)
	got, err := rec.ForStudent(context.Background(), "student-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Courses) != 0 {
		t.Fatalf("picks from empty catalog: %+v", got.Courses)
	}
	if len(got.Tips) == 0 {
		t.Error("tips missing")
	}
}

func TestSeedPinsMatches(t *testing.T) {
	a, err := New(catalog(3), 42).ForStudent(context.Background(), "s")
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(catalog(3), 42).ForStudent(context.Background(), "s")
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Courses {
		if a.Courses[i].MatchPercentage != b.Courses[i].MatchPercentage {
			t.Fatalf("same seed diverged at pick %d", i)
		}
	}
}
