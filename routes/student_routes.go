package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quizdesk/quiz_platform/handlers"
	"github.com/quizdesk/quiz_platform/middleware"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	student := api.Group("/student", middleware.Protected(), middleware.StudentRequired())

	quizzes := student.Group("/quizzes")
	quizzes.Get("", handlers.StudentListQuizzes)
	quizzes.Get("/code/:code", handlers.StudentGetQuizByCode)
	quizzes.Get("/:quizId", handlers.StudentGetQuiz)
	quizzes.Post("/:quizId/start", handlers.StartQuizAttempt)
	quizzes.Post("/:quizId/submit", handlers.SubmitQuizAttempt)
	quizzes.Get("/:quizId/result", handlers.QuizAttemptResult)

	student.Get("/certificates", handlers.ListMyCertificates)
}
