package domain

// ReviewItem is one row of the post-quiz review list.
type ReviewItem struct {
	Question      Question
	UserAnswer    string
	Correct       bool
	CorrectAnswer string
}

// Score counts the questions whose recorded answer matched. Pure function of
// (questions, answers); deterministic, no side effects.
func Score(s *Session) int {
	score := 0
	for i, answer := range s.Answers {
		if i >= len(s.Questions) {
			break
		}
		if AnswerMatches(s.Questions[i], answer) {
			score++
		}
	}
	return score
}

// Review derives the per-question correct/incorrect breakdown for every
// answered question, in question order.
func Review(s *Session) []ReviewItem {
	items := make([]ReviewItem, 0, len(s.Answers))
	for i, answer := range s.Answers {
		if i >= len(s.Questions) {
			break
		}
		q := s.Questions[i]
		items = append(items, ReviewItem{
			Question:      q,
			UserAnswer:    answer,
			Correct:       AnswerMatches(q, answer),
			CorrectAnswer: q.CorrectAnswer(),
		})
	}
	return items
}
