package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuizStatusDraft     = "DRAFT"
	QuizStatusPublished = "PUBLISHED"
)

type Quiz struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID        uuid.UUID  `gorm:"not null;index" json:"teacher_id"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      *string    `gorm:"type:text" json:"description"`
	TimeLimitMinutes *int       `json:"time_limit_minutes"`
	MaxAttempts      int        `gorm:"not null;default:1" json:"max_attempts"`
	ShuffleQuestions bool       `gorm:"not null;default:false" json:"shuffle_questions"`
	ShuffleOptions   bool       `gorm:"not null;default:false" json:"shuffle_options"`
	Status           string     `gorm:"size:20;not null;default:'DRAFT'" json:"status"`
	StartAt          *time.Time `json:"start_at"`
	AccessCode       string     `gorm:"size:10;not null;unique" json:"access_code"`

	Teacher   User       `gorm:"foreignkey:TeacherID" json:"-"`
	Questions []Question `gorm:"foreignkey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Quiz) IsDraft() bool {
	return q.Status == QuizStatusDraft
}

func (q *Quiz) IsPublished() bool {
	return q.Status == QuizStatusPublished
}

// OpenAt reports whether students may start the quiz at the given time.
func (q *Quiz) OpenAt(now time.Time) bool {
	return q.StartAt == nil || !q.StartAt.After(now)
}

// Deadline returns the submission cutoff for an attempt started at the
// given time, or nil when the quiz has no time limit.
func (q *Quiz) Deadline(startedAt time.Time) *time.Time {
	if q.TimeLimitMinutes == nil {
		return nil
	}
	d := startedAt.Add(time.Duration(*q.TimeLimitMinutes) * time.Minute)
	return &d
}
