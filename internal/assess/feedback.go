package assess

import "fmt"

const promptLabelLen = 50

var (
	reinforceRecommendations = []string{
		"We recommend extra practice to reinforce your weak areas",
		"Review the topic again and work through more examples",
	}
	congratsRecommendations = []string{
		"Excellent result! You are ready for the next topic",
		"Congratulations on consolidating your knowledge",
	}
)

// Synthesize derives feedback from a scored answer vector. It is a pure
// branch over the correctness flags: correct answers feed strengths,
// incorrect ones feed weaknesses, and the recommendation set depends only on
// whether any weakness exists. No model call, no randomness.
func Synthesize(test Test, records []AnswerRecord) Feedback {
	fb := Feedback{
		Strengths:  []string{},
		Weaknesses: []string{},
	}
	for _, rec := range records {
		// every record lands in exactly one bucket, even when the index
		// does not point at a question of this test
		label := fmt.Sprintf("Question %d", rec.QuestionIndex+1)
		if rec.QuestionIndex >= 0 && rec.QuestionIndex < len(test.Questions) {
			label = questionLabel(rec.QuestionIndex, test.Questions[rec.QuestionIndex].Prompt)
		}
		if rec.IsCorrect {
			fb.Strengths = append(fb.Strengths, label)
		} else {
			fb.Weaknesses = append(fb.Weaknesses, label)
		}
	}
	if len(fb.Weaknesses) > 0 {
		fb.Recommendations = append([]string(nil), reinforceRecommendations...)
	} else {
		fb.Recommendations = append([]string(nil), congratsRecommendations...)
	}
	return fb
}

func questionLabel(index int, prompt string) string {
	return fmt.Sprintf("Question %d: %s...", index+1, truncateRunes(prompt, promptLabelLen))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
