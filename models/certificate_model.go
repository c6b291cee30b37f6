package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID      uuid.UUID `gorm:"not null;uniqueIndex:idx_certificates_student_quiz" json:"student_id"`
	QuizID         uuid.UUID `gorm:"not null;uniqueIndex:idx_certificates_student_quiz" json:"quiz_id"`
	AttemptID      uuid.UUID `gorm:"not null" json:"attempt_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	CompletionDate time.Time `gorm:"not null" json:"completion_date"`
	CertificateURL string    `gorm:"size:512;not null" json:"certificate_url"`

	Student User `gorm:"foreignkey:StudentID" json:"-"`
	Quiz    Quiz `gorm:"foreignkey:QuizID" json:"-"`
}
