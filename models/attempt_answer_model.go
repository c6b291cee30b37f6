package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AttemptAnswer is the graded record for one question of one attempt:
// what the student selected, what was correct, and whether the two sets
// matched exactly.
type AttemptAnswer struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AttemptID         uuid.UUID      `gorm:"not null;index" json:"attempt_id"`
	QuestionID        uuid.UUID      `gorm:"not null" json:"question_id"`
	SelectedOptionIDs datatypes.JSON `gorm:"type:jsonb" json:"selected_option_ids"`
	CorrectOptionIDs  datatypes.JSON `gorm:"type:jsonb" json:"correct_option_ids"`
	IsCorrect         bool           `gorm:"not null" json:"is_correct"`

	Attempt  Attempt  `gorm:"foreignkey:AttemptID" json:"-"`
	Question Question `gorm:"foreignkey:QuestionID" json:"-"`
}

// OptionIDsJSON encodes a set of option IDs for a jsonb column. A nil
// slice is stored as an empty array, never as SQL null.
func OptionIDsJSON(ids []uuid.UUID) datatypes.JSON {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

func (a *AttemptAnswer) SelectedIDs() []uuid.UUID {
	return decodeOptionIDs(a.SelectedOptionIDs)
}

func (a *AttemptAnswer) CorrectIDs() []uuid.UUID {
	return decodeOptionIDs(a.CorrectOptionIDs)
}

func decodeOptionIDs(raw datatypes.JSON) []uuid.UUID {
	var ids []uuid.UUID
	if len(raw) == 0 {
		return ids
	}
	_ = json.Unmarshal(raw, &ids)
	return ids
}
