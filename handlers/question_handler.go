package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/quizdesk/quiz_platform/database"
	"github.com/quizdesk/quiz_platform/middleware"
	"github.com/quizdesk/quiz_platform/models"
	"gorm.io/gorm"
)

type OptionRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type CreateQuestionRequest struct {
	QuizID   uuid.UUID       `json:"quiz_id" validate:"required"`
	Text     string          `json:"text" validate:"required"`
	ImageURL *string         `json:"image_url"`
	Options  []OptionRequest `json:"options" validate:"required,min=1,dive"`
}

type UpdateQuestionRequest struct {
	Text     string          `json:"text" validate:"required"`
	ImageURL *string         `json:"image_url"`
	Options  []OptionRequest `json:"options" validate:"required,min=1,dive"`
}

func CreateQuestion(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ? AND teacher_id = ?", req.QuizID, ident.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}
	if !quiz.IsDraft() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Questions can only be added while the quiz is a draft"})
	}

	question := models.Question{
		QuizID:   quiz.ID,
		Text:     req.Text,
		ImageURL: req.ImageURL,
	}
	for _, o := range req.Options {
		question.Options = append(question.Options, models.Option{Text: o.Text, IsCorrect: o.IsCorrect})
	}

	if err := database.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}

	return c.Status(fiber.StatusCreated).JSON(question)
}

func UpdateQuestion(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	questionID := c.Params("questionId")
	var question models.Question
	if err := database.DB.Preload("Options").First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ? AND teacher_id = ?", question.QuizID, ident.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	if !quiz.IsDraft() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Questions can only be edited while the quiz is a draft"})
	}

	var req UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		question.Text = req.Text
		if req.ImageURL != nil {
			question.ImageURL = req.ImageURL
		}
		if err := tx.Save(&question).Error; err != nil {
			return err
		}
		return replaceOptions(tx, &question, req.Options)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update question"})
	}

	var updated models.Question
	if err := database.DB.Preload("Options").First(&updated, "id = ?", question.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load question"})
	}
	return c.JSON(updated)
}

// replaceOptions diffs the incoming option set against the stored one by
// text, so an option whose wording is unchanged keeps its identity across
// edits instead of being deleted and recreated.
func replaceOptions(tx *gorm.DB, question *models.Question, incoming []OptionRequest) error {
	existingByText := make(map[string]*models.Option, len(question.Options))
	for i := range question.Options {
		existingByText[question.Options[i].Text] = &question.Options[i]
	}

	kept := make(map[uuid.UUID]bool, len(incoming))
	for _, o := range incoming {
		if existing, ok := existingByText[o.Text]; ok && !kept[existing.ID] {
			kept[existing.ID] = true
			if existing.IsCorrect != o.IsCorrect {
				existing.IsCorrect = o.IsCorrect
				if err := tx.Save(existing).Error; err != nil {
					return err
				}
			}
			continue
		}
		created := models.Option{QuestionID: question.ID, Text: o.Text, IsCorrect: o.IsCorrect}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		kept[created.ID] = true
	}

	for i := range question.Options {
		if !kept[question.Options[i].ID] {
			if err := tx.Delete(&question.Options[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func DeleteQuestion(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	questionID := c.Params("questionId")
	var question models.Question
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ? AND teacher_id = ?", question.QuizID, ident.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	if !quiz.IsDraft() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Questions can only be deleted while the quiz is a draft"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete question"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
