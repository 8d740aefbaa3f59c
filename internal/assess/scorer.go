package assess

// NoAnswer is recorded for a question the submission never reached.
const NoAnswer = ""

// Score computes the per-question correctness vector and the raw score for a
// submission. It is a pure function: no I/O, no clock, identical inputs give
// identical output. Unanswered questions count as incorrect and stay in the
// denominator; submitted entries beyond the question count are ignored.
func Score(test Test, submitted []string) ([]AnswerRecord, float64) {
	n := len(test.Questions)
	records := make([]AnswerRecord, n)
	correct := 0
	for i := 0; i < n; i++ {
		answer := NoAnswer
		if i < len(submitted) {
			answer = submitted[i]
		}
		ok := answer == test.Questions[i].CorrectAnswer
		if ok {
			correct++
		}
		records[i] = AnswerRecord{QuestionIndex: i, Answer: answer, IsCorrect: ok}
	}
	if n == 0 {
		return records, 0
	}
	return records, float64(correct) / float64(n) * 100
}
