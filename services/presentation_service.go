package services

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/quizdesk/quiz_platform/models"
)

// OptionView and QuestionView are the student-facing shapes. Correctness
// flags never leave the server before grading.
type OptionView struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

type QuestionView struct {
	ID       uuid.UUID    `json:"id"`
	Text     string       `json:"text"`
	ImageURL *string      `json:"image_url,omitempty"`
	Options  []OptionView `json:"options"`
}

// PresentQuestions builds the per-call presentation of a quiz. The two
// shuffles are independent, apply to this call only and are never persisted.
func PresentQuestions(questions []models.Question, shuffleQuestions, shuffleOptions bool) []QuestionView {
	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		options := make([]OptionView, len(q.Options))
		for j, o := range q.Options {
			options[j] = OptionView{ID: o.ID, Text: o.Text}
		}
		if shuffleOptions {
			rand.Shuffle(len(options), func(x, y int) {
				options[x], options[y] = options[y], options[x]
			})
		}
		views[i] = QuestionView{ID: q.ID, Text: q.Text, ImageURL: q.ImageURL, Options: options}
	}

	if shuffleQuestions {
		rand.Shuffle(len(views), func(x, y int) {
			views[x], views[y] = views[y], views[x]
		})
	}

	return views
}
