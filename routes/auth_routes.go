package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quizdesk/quiz_platform/handlers"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register/teacher", handlers.RegisterTeacher)
	auth.Post("/register/student", handlers.RegisterStudent)
	auth.Post("/login", handlers.LoginUser)
}
