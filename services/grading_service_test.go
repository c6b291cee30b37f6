package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/quizdesk/quiz_platform/models"
)

func buildQuestion(correctFlags ...bool) models.Question {
	q := models.Question{ID: uuid.New()}
	for _, correct := range correctFlags {
		q.Options = append(q.Options, models.Option{
			ID:         uuid.New(),
			QuestionID: q.ID,
			Text:       "option",
			IsCorrect:  correct,
		})
	}
	return q
}

func TestGradeAnswersExactSetMatch(t *testing.T) {
	// Correct options are A and C.
	q := buildQuestion(true, false, true, false)
	optA := q.Options[0].ID
	optB := q.Options[1].ID
	optC := q.Options[2].ID

	cases := []struct {
		name      string
		submitted []uuid.UUID
		want      bool
	}{
		{"exact match", []uuid.UUID{optA, optC}, true},
		{"exact match reordered", []uuid.UUID{optC, optA}, true},
		{"subset", []uuid.UUID{optA}, false},
		{"superset", []uuid.UUID{optA, optB, optC}, false},
		{"empty", []uuid.UUID{}, false},
		{"omitted", nil, false},
		{"duplicate selections", []uuid.UUID{optA, optA}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			answers := map[uuid.UUID][]uuid.UUID{}
			if tc.submitted != nil {
				answers[q.ID] = tc.submitted
			}

			score, grades := GradeAnswers([]models.Question{q}, answers)
			if len(grades) != 1 {
				t.Fatalf("expected 1 grade, got %d", len(grades))
			}
			if grades[0].IsCorrect != tc.want {
				t.Fatalf("IsCorrect = %v, want %v", grades[0].IsCorrect, tc.want)
			}
			wantScore := 0
			if tc.want {
				wantScore = 1
			}
			if score != wantScore {
				t.Fatalf("score = %d, want %d", score, wantScore)
			}
		})
	}
}

func TestGradeAnswersZeroCorrectOptions(t *testing.T) {
	q := buildQuestion(false, false)

	score, grades := GradeAnswers([]models.Question{q}, map[uuid.UUID][]uuid.UUID{})
	if score != 1 || !grades[0].IsCorrect {
		t.Fatalf("question with no correct options should be satisfied by no submission, got score=%d", score)
	}

	score, grades = GradeAnswers([]models.Question{q}, map[uuid.UUID][]uuid.UUID{
		q.ID: {q.Options[0].ID},
	})
	if score != 0 || grades[0].IsCorrect {
		t.Fatalf("selecting an option on a zero-correct question should be incorrect, got score=%d", score)
	}
}

func TestGradeAnswersScoreCounting(t *testing.T) {
	questions := make([]models.Question, 5)
	answers := map[uuid.UUID][]uuid.UUID{}
	for i := range questions {
		questions[i] = buildQuestion(true, false, false)
		if i < 3 {
			answers[questions[i].ID] = []uuid.UUID{questions[i].Options[0].ID}
		} else {
			answers[questions[i].ID] = []uuid.UUID{questions[i].Options[1].ID}
		}
	}

	score, grades := GradeAnswers(questions, answers)
	if score != 3 {
		t.Fatalf("score = %d, want 3", score)
	}
	if len(grades) != 5 {
		t.Fatalf("expected a grade for every question, got %d", len(grades))
	}
	for i, g := range grades {
		if g.QuestionID != questions[i].ID {
			t.Fatalf("grade %d refers to wrong question", i)
		}
		if got := len(g.Correct); got != 1 {
			t.Fatalf("grade %d recorded %d correct options, want 1", i, got)
		}
	}
}

func TestEqualOptionSets(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	if !equalOptionSets(nil, nil) {
		t.Fatal("two empty sets should be equal")
	}
	if !equalOptionSets([]uuid.UUID{a, b, c}, []uuid.UUID{c, b, a}) {
		t.Fatal("order must not matter")
	}
	if equalOptionSets([]uuid.UUID{a, a}, []uuid.UUID{a, b}) {
		t.Fatal("duplicates must not pass as a different element")
	}
	if equalOptionSets([]uuid.UUID{a}, nil) {
		t.Fatal("non-empty vs empty should differ")
	}
}
