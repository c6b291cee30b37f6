package services

import (
	"github.com/google/uuid"
	"github.com/quizdesk/quiz_platform/models"
)

type QuestionGrade struct {
	QuestionID uuid.UUID
	Submitted  []uuid.UUID
	Correct    []uuid.UUID
	IsCorrect  bool
}

// GradeAnswers scores a submission against the quiz's questions. A question
// counts only when the submitted option set equals the correct option set
// exactly; a skipped question is graded against the empty set, so a question
// with no correct options is satisfied only by submitting nothing.
func GradeAnswers(questions []models.Question, answers map[uuid.UUID][]uuid.UUID) (int, []QuestionGrade) {
	score := 0
	grades := make([]QuestionGrade, 0, len(questions))

	for i := range questions {
		q := &questions[i]
		submitted := answers[q.ID]
		correct := q.CorrectOptionIDs()

		ok := equalOptionSets(submitted, correct)
		if ok {
			score++
		}

		grades = append(grades, QuestionGrade{
			QuestionID: q.ID,
			Submitted:  submitted,
			Correct:    correct,
			IsCorrect:  ok,
		})
	}

	return score, grades
}

func equalOptionSets(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[uuid.UUID]int{}
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		seen[id]--
	}
	for _, v := range seen {
		if v != 0 {
			return false
		}
	}
	return true
}
