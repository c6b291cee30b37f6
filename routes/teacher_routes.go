package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quizdesk/quiz_platform/handlers"
	"github.com/quizdesk/quiz_platform/middleware"
)

func TeacherRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	teacher := api.Group("/teacher", middleware.Protected(), middleware.TeacherRequired())

	quizzes := teacher.Group("/quizzes")
	quizzes.Post("", handlers.CreateQuiz)
	quizzes.Get("", handlers.ListQuizzes)
	quizzes.Get("/:quizId", handlers.GetQuiz)
	quizzes.Put("/:quizId", handlers.UpdateQuiz)
	quizzes.Delete("/:quizId", handlers.DeleteQuiz)
	quizzes.Post("/:quizId/publish", handlers.PublishQuiz)
	quizzes.Get("/:quizId/results", handlers.QuizResults)

	questions := teacher.Group("/questions")
	questions.Post("", handlers.CreateQuestion)
	questions.Put("/:questionId", handlers.UpdateQuestion)
	questions.Delete("/:questionId", handlers.DeleteQuestion)
}
