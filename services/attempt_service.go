package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/quizdesk/quiz_platform/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// submitGrace absorbs client clock skew and request latency before a
// timed attempt is treated as overdue.
const submitGrace = 30 * time.Second

var (
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuizNotOpen         = errors.New("quiz is not open yet")
	ErrAttemptLimitReached = errors.New("max attempts reached")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAlreadySubmitted    = errors.New("attempt already submitted")
	ErrDeadlineExceeded    = errors.New("attempt deadline exceeded")
)

type StartedAttempt struct {
	AttemptID        uuid.UUID      `json:"attempt_id"`
	QuizTitle        string         `json:"quiz_title"`
	Questions        []QuestionView `json:"questions"`
	TimeLimitMinutes *int           `json:"time_limit_minutes"`
}

// StartAttempt creates a new attempt for the student on a published quiz
// and returns the presentation the student will answer against. The whole
// check-and-insert runs in one transaction under a quiz row lock, so two
// concurrent starts cannot both pass the max-attempts check.
func StartAttempt(db *gorm.DB, quizID, studentID uuid.UUID) (*StartedAttempt, error) {
	var started *StartedAttempt

	err := db.Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", quizID, models.QuizStatusPublished).
			First(&quiz).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return err
		}

		now := time.Now()
		if !quiz.OpenAt(now) {
			return ErrQuizNotOpen
		}

		if quiz.MaxAttempts > 0 {
			var completed int64
			err := tx.Model(&models.Attempt{}).
				Where("quiz_id = ? AND student_id = ? AND completed_at IS NOT NULL", quizID, studentID).
				Count(&completed).Error
			if err != nil {
				return err
			}
			if completed >= int64(quiz.MaxAttempts) {
				return ErrAttemptLimitReached
			}
		}

		attempt := models.Attempt{QuizID: quizID, StudentID: studentID, StartedAt: now}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		var questions []models.Question
		if err := tx.Preload("Options").Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
			return err
		}

		started = &StartedAttempt{
			AttemptID:        attempt.ID,
			QuizTitle:        quiz.Title,
			Questions:        PresentQuestions(questions, quiz.ShuffleQuestions, quiz.ShuffleOptions),
			TimeLimitMinutes: quiz.TimeLimitMinutes,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return started, nil
}

type SubmitResult struct {
	AttemptID uuid.UUID `json:"attempt_id"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
}

// SubmitAttempt grades the submission and finalizes the attempt. The score,
// completion timestamp and per-question breakdown are written in a single
// transaction under an attempt row lock; a concurrent or repeated submit
// observes the completed attempt and gets ErrAlreadySubmitted. The quiz row
// is locked too and the completed-attempt count re-checked, so when several
// in-progress attempts exist only enough of them to reach the limit can
// finalize.
func SubmitAttempt(db *gorm.DB, quizID, attemptID, studentID uuid.UUID, answers map[uuid.UUID][]uuid.UUID) (*SubmitResult, error) {
	var result *SubmitResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var attempt models.Attempt
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND quiz_id = ? AND student_id = ?", attemptID, quizID, studentID).
			First(&attempt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttemptNotFound
			}
			return err
		}

		if attempt.Completed() {
			return ErrAlreadySubmitted
		}

		var quiz models.Quiz
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&quiz, "id = ?", attempt.QuizID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return err
		}

		// The start-side check only counts completed attempts, so a
		// student can hold several in-progress attempts at once. Finalizing
		// must not push the completed count past the limit.
		if quiz.MaxAttempts > 0 {
			var completed int64
			err := tx.Model(&models.Attempt{}).
				Where("quiz_id = ? AND student_id = ? AND completed_at IS NOT NULL AND id <> ?",
					attempt.QuizID, attempt.StudentID, attempt.ID).
				Count(&completed).Error
			if err != nil {
				return err
			}
			if completed >= int64(quiz.MaxAttempts) {
				return ErrAttemptLimitReached
			}
		}

		now := time.Now()
		if deadline := quiz.Deadline(attempt.StartedAt); deadline != nil && now.After(deadline.Add(submitGrace)) {
			return ErrDeadlineExceeded
		}

		var questions []models.Question
		if err := tx.Preload("Options").Where("quiz_id = ?", attempt.QuizID).Find(&questions).Error; err != nil {
			return err
		}

		score, grades := GradeAnswers(questions, answers)

		rows := make([]models.AttemptAnswer, 0, len(grades))
		for _, g := range grades {
			rows = append(rows, models.AttemptAnswer{
				AttemptID:         attempt.ID,
				QuestionID:        g.QuestionID,
				SelectedOptionIDs: models.OptionIDsJSON(g.Submitted),
				CorrectOptionIDs:  models.OptionIDsJSON(g.Correct),
				IsCorrect:         g.IsCorrect,
			})
		}

		attempt.Score = &score
		attempt.CompletedAt = &now
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		result = &SubmitResult{AttemptID: attempt.ID, Score: score, Total: len(questions)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type AnswerBreakdown struct {
	QuestionID uuid.UUID   `json:"question_id"`
	Selected   []uuid.UUID `json:"selected_option_ids"`
	Correct    []uuid.UUID `json:"correct_option_ids"`
	IsCorrect  bool        `json:"is_correct"`
}

type AttemptResultView struct {
	AttemptID        uuid.UUID         `json:"attempt_id"`
	Score            *int              `json:"score"`
	Total            int               `json:"total"`
	TimeTakenSeconds int               `json:"time_taken_seconds"`
	Answers          []AnswerBreakdown `json:"answers"`
}

// AttemptResult returns the graded outcome of the student's own attempt.
func AttemptResult(db *gorm.DB, quizID, attemptID, studentID uuid.UUID) (*AttemptResultView, error) {
	var attempt models.Attempt
	err := db.Preload("Answers").
		Where("id = ? AND quiz_id = ? AND student_id = ?", attemptID, quizID, studentID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}

	var total int64
	if err := db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&total).Error; err != nil {
		return nil, err
	}

	answers := make([]AnswerBreakdown, 0, len(attempt.Answers))
	for i := range attempt.Answers {
		a := &attempt.Answers[i]
		answers = append(answers, AnswerBreakdown{
			QuestionID: a.QuestionID,
			Selected:   a.SelectedIDs(),
			Correct:    a.CorrectIDs(),
			IsCorrect:  a.IsCorrect,
		})
	}

	return &AttemptResultView{
		AttemptID:        attempt.ID,
		Score:            attempt.Score,
		Total:            int(total),
		TimeTakenSeconds: attempt.TimeTakenSeconds(),
		Answers:          answers,
	}, nil
}

// ExpireOverdueAttempts finalizes in-progress attempts whose deadline has
// passed: score zero, completion stamped at the deadline, no breakdown.
// Such attempts count toward the quiz's max attempts like any other
// completed attempt. Returns the number of attempts expired.
func ExpireOverdueAttempts(db *gorm.DB) (int, error) {
	var overdue []models.Attempt
	err := db.Select("attempts.*").
		Joins("JOIN quizzes ON quizzes.id = attempts.quiz_id").
		Where("attempts.completed_at IS NULL").
		Where("quizzes.time_limit_minutes IS NOT NULL").
		Where("attempts.started_at + make_interval(mins => quizzes.time_limit_minutes) + interval '30 seconds' < now()").
		Find(&overdue).Error
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range overdue {
		err := db.Transaction(func(tx *gorm.DB) error {
			var attempt models.Attempt
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND completed_at IS NULL", overdue[i].ID).
				First(&attempt).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil // finalized concurrently
				}
				return err
			}

			var quiz models.Quiz
			if err := tx.First(&quiz, "id = ?", attempt.QuizID).Error; err != nil {
				return err
			}

			zero := 0
			attempt.Score = &zero
			attempt.CompletedAt = quiz.Deadline(attempt.StartedAt)
			return tx.Save(&attempt).Error
		})
		if err != nil {
			log.Printf("Error expiring attempt %s: %v", overdue[i].ID, err)
			continue
		}
		expired++
	}
	return expired, nil
}
