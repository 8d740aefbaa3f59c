package assess

import (
	"strings"
	"testing"
)

func TestSynthesizePartition(t *testing.T) {
	tt := threeQuestionTest()
	records, _ := Score(tt, []string{"A", "X", "C"})
	fb := Synthesize(tt, records)

	if got := len(fb.Strengths) + len(fb.Weaknesses); got != len(records) {
		t.Fatalf("strengths+weaknesses = %d, want %d", got, len(records))
	}
	if len(fb.Strengths) != 2 || len(fb.Weaknesses) != 1 {
		t.Fatalf("got %d strengths, %d weaknesses", len(fb.Strengths), len(fb.Weaknesses))
	}
	if len(fb.Recommendations) == 0 {
		t.Fatal("recommendations must never be empty")
	}
	if !strings.HasPrefix(fb.Weaknesses[0], "Question 2: ") {
		t.Fatalf("weakness label = %q", fb.Weaknesses[0])
	}
}

func TestSynthesizeRecommendationBranches(t *testing.T) {
	tt := threeQuestionTest()

	perfect, _ := Score(tt, []string{"A", "B", "C"})
	fb := Synthesize(tt, perfect)
	if len(fb.Weaknesses) != 0 {
		t.Fatalf("unexpected weaknesses: %v", fb.Weaknesses)
	}
	congrats := fb.Recommendations

	flawed, _ := Score(tt, []string{"A"})
	fb2 := Synthesize(tt, flawed)
	if len(fb2.Weaknesses) == 0 {
		t.Fatal("expected weaknesses")
	}
	if len(fb2.Recommendations) == 0 {
		t.Fatal("recommendations must never be empty")
	}
	if fb2.Recommendations[0] == congrats[0] {
		t.Fatal("weak and perfect submissions share a recommendation set")
	}

	// deterministic: same inputs, same feedback
	fb3 := Synthesize(tt, flawed)
	if strings.Join(fb2.Recommendations, "|") != strings.Join(fb3.Recommendations, "|") {
		t.Fatal("synthesis is not deterministic")
	}
}

func TestSynthesizeCoversForeignRecords(t *testing.T) {
	test := Test{Questions: []Question{{Prompt: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"}}}
	records := []AnswerRecord{
		{QuestionIndex: 0, Answer: "A", IsCorrect: true},
		{QuestionIndex: 7, Answer: "X", IsCorrect: false},
		{QuestionIndex: -1, Answer: "", IsCorrect: false},
	}

	fb := Synthesize(test, records)
	if got := len(fb.Strengths) + len(fb.Weaknesses); got != len(records) {
		t.Fatalf("partition covers %d of %d records", got, len(records))
	}
	if fb.Weaknesses[0] != "Question 8" {
		t.Errorf("foreign record label = %q", fb.Weaknesses[0])
	}
}

func TestSynthesizeTruncatesLongPrompts(t *testing.T) {
	long := strings.Repeat("x", 80)
	tt := Test{Questions: []Question{{Prompt: long, Options: []string{"A", "B"}, CorrectAnswer: "A"}}}
	records, _ := Score(tt, []string{"A"})
	fb := Synthesize(tt, records)

	label := fb.Strengths[0]
	if !strings.HasSuffix(label, "...") {
		t.Fatalf("label missing ellipsis: %q", label)
	}
	if want := "Question 1: " + strings.Repeat("x", 50) + "..."; label != want {
		t.Fatalf("label = %q, want %q", label, want)
	}
}

func TestSynthesizeShortPromptKeptWhole(t *testing.T) {
	tt := Test{Questions: []Question{{Prompt: "Short one", Options: []string{"A", "B"}, CorrectAnswer: "B"}}}
	records, _ := Score(tt, []string{"A"})
	fb := Synthesize(tt, records)
	if fb.Weaknesses[0] != "Question 1: Short one..." {
		t.Fatalf("label = %q", fb.Weaknesses[0])
	}
}
