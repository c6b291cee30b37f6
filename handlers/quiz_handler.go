package handlers

import (
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/quizdesk/quiz_platform/database"
	"github.com/quizdesk/quiz_platform/middleware"
	"github.com/quizdesk/quiz_platform/models"
	"github.com/quizdesk/quiz_platform/services"
	"github.com/quizdesk/quiz_platform/utils"
	"gorm.io/gorm"
)

type QuizRequest struct {
	Title            string     `json:"title" validate:"required,min=1,max=255"`
	Description      *string    `json:"description"`
	TimeLimitMinutes *int       `json:"time_limit_minutes" validate:"omitempty,gt=0"`
	MaxAttempts      *int       `json:"max_attempts" validate:"omitempty,gte=0"`
	ShuffleQuestions *bool      `json:"shuffle_questions"`
	ShuffleOptions   *bool      `json:"shuffle_options"`
	StartAt          *time.Time `json:"start_at"`
}

func CreateQuiz(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	quiz := models.Quiz{
		TeacherID:        ident.UserID,
		Title:            req.Title,
		Description:      req.Description,
		TimeLimitMinutes: req.TimeLimitMinutes,
		MaxAttempts:      1,
		Status:           models.QuizStatusDraft,
		StartAt:          req.StartAt,
	}
	if req.MaxAttempts != nil {
		quiz.MaxAttempts = *req.MaxAttempts
	}
	if req.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *req.ShuffleQuestions
	}
	if req.ShuffleOptions != nil {
		quiz.ShuffleOptions = *req.ShuffleOptions
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		code, err := utils.GenerateUniqueAccessCode(tx)
		if err != nil {
			return err
		}
		quiz.AccessCode = code
		return tx.Create(&quiz).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create quiz"})
	}

	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// QuizUpdateRequest leaves every field optional; omitted fields keep
// their stored values.
type QuizUpdateRequest struct {
	Title            *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description      *string    `json:"description"`
	TimeLimitMinutes *int       `json:"time_limit_minutes" validate:"omitempty,gt=0"`
	MaxAttempts      *int       `json:"max_attempts" validate:"omitempty,gte=0"`
	ShuffleQuestions *bool      `json:"shuffle_questions"`
	ShuffleOptions   *bool      `json:"shuffle_options"`
	StartAt          *time.Time `json:"start_at"`
}

type QuizSummary struct {
	models.Quiz
	QuestionCount int64 `json:"question_count"`
	AttemptCount  int64 `json:"attempt_count"`
}

func ListQuizzes(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var quizzes []models.Quiz
	if err := database.DB.Where("teacher_id = ?", ident.UserID).Order("created_at desc").Find(&quizzes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quizzes"})
	}

	summaries := make([]QuizSummary, len(quizzes))
	for i, quiz := range quizzes {
		var questionCount, attemptCount int64
		database.DB.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount)
		database.DB.Model(&models.Attempt{}).Where("quiz_id = ?", quiz.ID).Count(&attemptCount)
		summaries[i] = QuizSummary{Quiz: quiz, QuestionCount: questionCount, AttemptCount: attemptCount}
	}

	return c.JSON(summaries)
}

func GetQuiz(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	quizID := c.Params("quizId")
	var quiz models.Quiz
	if err := database.DB.Preload("Questions.Options").First(&quiz, "id = ? AND teacher_id = ?", quizID, ident.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	return c.JSON(quiz)
}

func UpdateQuiz(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	quizID := c.Params("quizId")
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ? AND teacher_id = ?", quizID, ident.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var req QuizUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = req.Description
	}
	if req.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = req.TimeLimitMinutes
	}
	if req.MaxAttempts != nil {
		quiz.MaxAttempts = *req.MaxAttempts
	}
	if req.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *req.ShuffleQuestions
	}
	if req.ShuffleOptions != nil {
		quiz.ShuffleOptions = *req.ShuffleOptions
	}
	if req.StartAt != nil {
		quiz.StartAt = req.StartAt
	}

	if err := database.DB.Save(&quiz).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update quiz"})
	}

	return c.JSON(quiz)
}

func DeleteQuiz(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	quizID := c.Params("quizId")
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ? AND teacher_id = ?", quizID, ident.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&models.Question{}).Select("id").Where("quiz_id = ?", quiz.ID)
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		attemptIDs := tx.Model(&models.Attempt{}).Select("id").Where("quiz_id = ?", quiz.ID)
		if err := tx.Where("attempt_id IN (?)", attemptIDs).Delete(&models.AttemptAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Attempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Certificate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quiz).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete quiz"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func PublishQuiz(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	quiz, err := services.PublishQuiz(database.DB, quizID, ident.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuizNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
		case errors.Is(err, services.ErrQuizAlreadyPublished):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Quiz is already published"})
		case errors.Is(err, services.ErrQuizHasNoQuestions):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot publish a quiz with no questions"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to publish quiz"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "quiz": quiz})
}

type AttemptResultRow struct {
	AttemptID   uuid.UUID  `json:"attempt_id"`
	Score       *int       `json:"score"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Student     struct {
		ID       uuid.UUID `json:"id"`
		FullName string    `json:"full_name"`
		Email    string    `json:"email"`
		RollNo   *string   `json:"roll_no,omitempty"`
	} `json:"student"`
}

func QuizResults(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	quizID := c.Params("quizId")
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ? AND teacher_id = ?", quizID, ident.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var attempts []models.Attempt
	if err := database.DB.Preload("Student").Where("quiz_id = ?", quiz.ID).Order("completed_at desc NULLS LAST").Find(&attempts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch results"})
	}

	sum := 0
	rows := make([]AttemptResultRow, len(attempts))
	for i, a := range attempts {
		if a.Score != nil {
			sum += *a.Score
		}
		row := AttemptResultRow{
			AttemptID:   a.ID,
			Score:       a.Score,
			StartedAt:   a.StartedAt,
			CompletedAt: a.CompletedAt,
		}
		row.Student.ID = a.Student.ID
		row.Student.FullName = a.Student.FullName
		row.Student.Email = a.Student.Email
		row.Student.RollNo = a.Student.RollNo
		rows[i] = row
	}

	avgScore := 0
	if len(attempts) > 0 {
		avgScore = int(math.Round(float64(sum) / float64(len(attempts))))
	}

	return c.JSON(fiber.Map{
		"total_attempts": len(attempts),
		"avg_score":      avgScore,
		"attempts":       rows,
	})
}
