package models

import (
	"time"

	"github.com/google/uuid"
)

type Attempt struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuizID      uuid.UUID  `gorm:"not null;index" json:"quiz_id"`
	StudentID   uuid.UUID  `gorm:"not null;index" json:"student_id"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Score       *int       `json:"score"`

	Quiz    Quiz            `gorm:"foreignkey:QuizID" json:"-"`
	Student User            `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Answers []AttemptAnswer `gorm:"foreignkey:AttemptID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (a *Attempt) Completed() bool {
	return a.CompletedAt != nil
}

// TimeTakenSeconds is zero while the attempt is still in progress.
func (a *Attempt) TimeTakenSeconds() int {
	if a.CompletedAt == nil {
		return 0
	}
	return int(a.CompletedAt.Sub(a.StartedAt).Seconds())
}
