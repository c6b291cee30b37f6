package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/quizdesk/quiz_platform/models"
)

func buildQuiz(questionCount, optionCount int) []models.Question {
	questions := make([]models.Question, questionCount)
	for i := range questions {
		questions[i] = models.Question{ID: uuid.New(), Text: "q"}
		for j := 0; j < optionCount; j++ {
			questions[i].Options = append(questions[i].Options, models.Option{
				ID:        uuid.New(),
				Text:      "o",
				IsCorrect: j == 0,
			})
		}
	}
	return questions
}

func questionIDSet(views []QuestionView) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(views))
	for _, v := range views {
		set[v.ID] = true
	}
	return set
}

func TestPresentQuestionsNoShuffleKeepsStoredOrder(t *testing.T) {
	questions := buildQuiz(6, 4)

	views := PresentQuestions(questions, false, false)
	if len(views) != len(questions) {
		t.Fatalf("expected %d views, got %d", len(questions), len(views))
	}
	for i, v := range views {
		if v.ID != questions[i].ID {
			t.Fatalf("question %d out of stored order", i)
		}
		for j, o := range v.Options {
			if o.ID != questions[i].Options[j].ID {
				t.Fatalf("option %d of question %d out of stored order", j, i)
			}
		}
	}
}

func TestPresentQuestionsQuestionShuffleKeepsOptionOrder(t *testing.T) {
	questions := buildQuiz(8, 4)
	byID := make(map[uuid.UUID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for trial := 0; trial < 20; trial++ {
		views := PresentQuestions(questions, true, false)

		set := questionIDSet(views)
		if len(set) != len(questions) {
			t.Fatalf("shuffle changed the question set: got %d unique IDs", len(set))
		}
		for _, q := range questions {
			if !set[q.ID] {
				t.Fatalf("question %s missing after shuffle", q.ID)
			}
		}

		for _, v := range views {
			stored := byID[v.ID]
			for j, o := range v.Options {
				if o.ID != stored.Options[j].ID {
					t.Fatal("option order must stay as stored when shuffleOptions is off")
				}
			}
		}
	}
}

func TestPresentQuestionsOptionShuffleKeepsOptionSet(t *testing.T) {
	questions := buildQuiz(3, 6)
	byID := make(map[uuid.UUID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for trial := 0; trial < 20; trial++ {
		views := PresentQuestions(questions, false, true)

		for i, v := range views {
			if v.ID != questions[i].ID {
				t.Fatal("question order must stay as stored when shuffleQuestions is off")
			}
			stored := byID[v.ID]
			seen := make(map[uuid.UUID]bool, len(v.Options))
			for _, o := range v.Options {
				seen[o.ID] = true
			}
			if len(seen) != len(stored.Options) {
				t.Fatalf("option shuffle changed the option set for question %s", v.ID)
			}
			for _, o := range stored.Options {
				if !seen[o.ID] {
					t.Fatalf("option %s missing after shuffle", o.ID)
				}
			}
		}
	}
}

func TestPresentQuestionsDoesNotMutateStoredSlices(t *testing.T) {
	questions := buildQuiz(5, 5)
	originalQuestionIDs := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		originalQuestionIDs[i] = q.ID
	}
	originalOptionIDs := make([]uuid.UUID, len(questions[0].Options))
	for j, o := range questions[0].Options {
		originalOptionIDs[j] = o.ID
	}

	for trial := 0; trial < 10; trial++ {
		PresentQuestions(questions, true, true)
	}

	for i, q := range questions {
		if q.ID != originalQuestionIDs[i] {
			t.Fatal("presentation must not reorder the stored question slice")
		}
	}
	for j, o := range questions[0].Options {
		if o.ID != originalOptionIDs[j] {
			t.Fatal("presentation must not reorder the stored option slice")
		}
	}
}
