package models

import "github.com/google/uuid"

type Question struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuizID   uuid.UUID `gorm:"not null;index" json:"quiz_id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	ImageURL *string   `gorm:"size:512" json:"image_url,omitempty"`

	Options []Option `gorm:"foreignkey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

// CorrectOptionIDs returns the IDs of the options flagged correct.
func (q *Question) CorrectOptionIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(q.Options))
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
