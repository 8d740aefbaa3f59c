package assess

import (
	"math"
	"reflect"
	"testing"
)

func threeQuestionTest() Test {
	return Test{
		ID:    "t1",
		Title: "Basics",
		Questions: []Question{
			{Prompt: "Q1", Options: []string{"A", "X"}, CorrectAnswer: "A", Difficulty: DifficultyEasy},
			{Prompt: "Q2", Options: []string{"B", "Y"}, CorrectAnswer: "B", Difficulty: DifficultyMedium},
			{Prompt: "Q3", Options: []string{"C", "Z"}, CorrectAnswer: "C", Difficulty: DifficultyHard},
		},
		TimeLimitMin: 30,
		PassingScore: 60,
	}
}

func TestScore(t *testing.T) {
	tt := threeQuestionTest()

	cases := []struct {
		name        string
		submitted   []string
		wantCorrect []bool
		wantScore   float64
	}{
		{
			name:        "two of three correct",
			submitted:   []string{"A", "X", "C"},
			wantCorrect: []bool{true, false, true},
			wantScore:   200.0 / 3.0,
		},
		{
			name:        "short submission counts missing as wrong",
			submitted:   []string{"A"},
			wantCorrect: []bool{true, false, false},
			wantScore:   100.0 / 3.0,
		},
		{
			name:        "extra answers ignored",
			submitted:   []string{"A", "B", "C", "D", "E"},
			wantCorrect: []bool{true, true, true},
			wantScore:   100,
		},
		{
			name:        "empty submission",
			submitted:   nil,
			wantCorrect: []bool{false, false, false},
			wantScore:   0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, score := Score(tt, tc.submitted)
			if len(records) != len(tt.Questions) {
				t.Fatalf("got %d records, want %d", len(records), len(tt.Questions))
			}
			for i, rec := range records {
				if rec.QuestionIndex != i {
					t.Errorf("record %d has index %d", i, rec.QuestionIndex)
				}
				if rec.IsCorrect != tc.wantCorrect[i] {
					t.Errorf("record %d correct=%v, want %v", i, rec.IsCorrect, tc.wantCorrect[i])
				}
			}
			if score != tc.wantScore {
				t.Errorf("score = %v, want %v", score, tc.wantScore)
			}
			if score < 0 || score > 100 {
				t.Errorf("score %v out of range", score)
			}
		})
	}
}

func TestScoreExactFraction(t *testing.T) {
	tt := threeQuestionTest()
	_, score := Score(tt, []string{"A", "X", "C"})
	if want := 100 * (2.0 / 3.0); score != want {
		t.Fatalf("score = %v, want exact %v", score, want)
	}
	// unrounded: 66.666..., not 66.67
	if math.Abs(score-66.6666666666) > 1e-6 {
		t.Fatalf("score %v appears rounded", score)
	}
}

func TestScoreIsPure(t *testing.T) {
	tt := threeQuestionTest()
	sub := []string{"A", "X"}
	r1, s1 := Score(tt, sub)
	r2, s2 := Score(tt, sub)
	if s1 != s2 {
		t.Fatalf("scores differ: %v vs %v", s1, s2)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("records differ: %v vs %v", r1, r2)
	}
}

func TestScoreRecordsMissingAsNoAnswer(t *testing.T) {
	tt := threeQuestionTest()
	records, _ := Score(tt, []string{"A"})
	if records[1].Answer != NoAnswer || records[2].Answer != NoAnswer {
		t.Fatalf("missing answers not recorded as sentinel: %+v", records)
	}
}
