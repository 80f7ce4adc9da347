package routes

import (
	authController "github.com/Edu-213/Arkos-Market/controllers/auth"
	"github.com/Edu-213/Arkos-Market/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/oauth", authController.OAuthLogin)
	app.Get("/api/auth/me", middlewares.AuthMiddleware, authController.Me)
}
