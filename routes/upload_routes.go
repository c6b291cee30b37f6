package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quizdesk/quiz_platform/handlers"
	"github.com/quizdesk/quiz_platform/middleware"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected(), middleware.TeacherRequired())

	uploads := api.Group("/uploads")
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
