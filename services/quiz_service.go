package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/quizdesk/quiz_platform/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrQuizAlreadyPublished = errors.New("quiz is already published")
	ErrQuizHasNoQuestions   = errors.New("quiz has no questions")
)

// PublishQuiz moves the teacher's draft quiz to published. The draft check
// and the question count run under a quiz row lock in one transaction, so a
// concurrent question delete cannot slip a zero-question quiz through.
func PublishQuiz(db *gorm.DB, quizID, teacherID uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND teacher_id = ?", quizID, teacherID).
			First(&quiz).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return err
		}

		if !quiz.IsDraft() {
			return ErrQuizAlreadyPublished
		}

		var questionCount int64
		if err := tx.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount).Error; err != nil {
			return err
		}
		if questionCount == 0 {
			return ErrQuizHasNoQuestions
		}

		quiz.Status = models.QuizStatusPublished
		return tx.Save(&quiz).Error
	})
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}
