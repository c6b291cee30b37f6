package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/quizdesk/quiz_platform/database"
	"github.com/quizdesk/quiz_platform/middleware"
	"github.com/quizdesk/quiz_platform/models"
	"github.com/quizdesk/quiz_platform/notifications"
	"github.com/quizdesk/quiz_platform/services"
)

type StudentQuizListing struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	TimeLimitMinutes *int       `json:"time_limit_minutes"`
	MaxAttempts      int        `json:"max_attempts"`
	StartAt          *time.Time `json:"start_at"`
	AccessCode       string     `json:"access_code"`
	TeacherName      string     `json:"teacher_name"`
	QuestionCount    int64      `json:"question_count"`
	Attempts         []struct {
		ID          uuid.UUID  `json:"id"`
		Score       *int       `json:"score"`
		CompletedAt *time.Time `json:"completed_at"`
	} `json:"attempts"`
}

func buildStudentListing(quiz *models.Quiz, studentID uuid.UUID) (StudentQuizListing, error) {
	listing := StudentQuizListing{
		ID:               quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		MaxAttempts:      quiz.MaxAttempts,
		StartAt:          quiz.StartAt,
		AccessCode:       quiz.AccessCode,
		TeacherName:      quiz.Teacher.FullName,
	}
	err := database.DB.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&listing.QuestionCount).Error
	if err != nil {
		return StudentQuizListing{}, err
	}

	var attempts []models.Attempt
	err = database.DB.Where("quiz_id = ? AND student_id = ?", quiz.ID, studentID).Find(&attempts).Error
	if err != nil {
		return StudentQuizListing{}, err
	}
	for _, a := range attempts {
		listing.Attempts = append(listing.Attempts, struct {
			ID          uuid.UUID  `json:"id"`
			Score       *int       `json:"score"`
			CompletedAt *time.Time `json:"completed_at"`
		}{ID: a.ID, Score: a.Score, CompletedAt: a.CompletedAt})
	}
	return listing, nil
}

// StudentListQuizzes returns published quizzes bucketed the way the
// student home screen shows them: open now, scheduled for later, and
// already completed by this student.
func StudentListQuizzes(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var quizzes []models.Quiz
	if err := database.DB.Preload("Teacher").Where("status = ?", models.QuizStatusPublished).Find(&quizzes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quizzes"})
	}

	now := time.Now()
	available := []StudentQuizListing{}
	upcoming := []StudentQuizListing{}
	completed := []StudentQuizListing{}

	for i := range quizzes {
		listing, err := buildStudentListing(&quizzes[i], ident.UserID)
		if err != nil {
			log.Printf("Error building quiz listing: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quizzes"})
		}
		if quizzes[i].OpenAt(now) {
			available = append(available, listing)
		} else {
			upcoming = append(upcoming, listing)
		}
		for _, a := range listing.Attempts {
			if a.CompletedAt != nil {
				completed = append(completed, listing)
				break
			}
		}
	}

	return c.JSON(fiber.Map{
		"available": available,
		"upcoming":  upcoming,
		"completed": completed,
	})
}

func StudentGetQuiz(c *fiber.Ctx) error {
	if _, err := middleware.CurrentIdentity(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	quizID := c.Params("quizId")
	var quiz models.Quiz
	err := database.DB.Preload("Teacher").Preload("Questions.Options").
		First(&quiz, "id = ? AND status = ?", quizID, models.QuizStatusPublished).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	return c.JSON(fiber.Map{
		"id":                 quiz.ID,
		"title":              quiz.Title,
		"description":        quiz.Description,
		"time_limit_minutes": quiz.TimeLimitMinutes,
		"max_attempts":       quiz.MaxAttempts,
		"start_at":           quiz.StartAt,
		"teacher_name":       quiz.Teacher.FullName,
		"questions":          services.PresentQuestions(quiz.Questions, false, false),
	})
}

func StudentGetQuizByCode(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	code := c.Params("code")
	var quiz models.Quiz
	err = database.DB.Preload("Teacher").
		First(&quiz, "access_code = ? AND status = ?", code, models.QuizStatusPublished).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	listing, err := buildStudentListing(&quiz, ident.UserID)
	if err != nil {
		log.Printf("Error building quiz listing: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quiz"})
	}
	return c.JSON(listing)
}

func StartQuizAttempt(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	started, err := services.StartAttempt(database.DB, quizID, ident.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuizNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
		case errors.Is(err, services.ErrQuizNotOpen):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Quiz is not open yet"})
		case errors.Is(err, services.ErrAttemptLimitReached):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Max attempts reached"})
		default:
			log.Printf("Error starting attempt: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start quiz"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(started)
}

type SubmitAttemptRequest struct {
	AttemptID uuid.UUID                 `json:"attempt_id" validate:"required"`
	Answers   map[uuid.UUID][]uuid.UUID `json:"answers"`
}

func SubmitQuizAttempt(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var req SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := services.SubmitAttempt(database.DB, quizID, req.AttemptID, ident.UserID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAttemptNotFound), errors.Is(err, services.ErrQuizNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attempt not found"})
		case errors.Is(err, services.ErrAlreadySubmitted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Attempt has already been submitted"})
		case errors.Is(err, services.ErrAttemptLimitReached):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Max attempts reached"})
		case errors.Is(err, services.ErrDeadlineExceeded):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Attempt deadline has passed"})
		default:
			log.Printf("Error submitting attempt: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit quiz"})
		}
	}

	go services.CheckAndGenerateCertificate(result.AttemptID)
	go sendResultEmail(ident.UserID, quizID, result.Score, result.Total)

	return c.JSON(result)
}

func sendResultEmail(studentID, quizID uuid.UUID, score, total int) {
	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return
	}
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		return
	}
	notifications.SendResultEmail(student.FullName, student.Email, quiz.Title, score, total)
}

func QuizAttemptResult(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	attemptID, err := uuid.Parse(c.Query("attempt_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid attempt_id"})
	}

	result, err := services.AttemptResult(database.DB, quizID, attemptID, ident.UserID)
	if err != nil {
		if errors.Is(err, services.ErrAttemptNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attempt not found"})
		}
		log.Printf("Error fetching attempt result: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch result"})
	}

	return c.JSON(result)
}

func ListMyCertificates(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var certificates []models.Certificate
	if err := database.DB.Where("student_id = ?", ident.UserID).Order("completion_date desc").Find(&certificates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch certificates"})
	}

	return c.JSON(certificates)
}
