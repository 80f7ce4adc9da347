package routes

import (
	categoryController "github.com/Edu-213/Arkos-Market/controllers/categories"
	"github.com/Edu-213/Arkos-Market/middlewares"

	"github.com/gofiber/fiber/v2"
)

func CategoryRoutes(app *fiber.App) {
	app.Get("/api/admin/category", categoryController.GetCategories)
	app.Post("/api/admin/category", middlewares.AuthMiddleware, categoryController.CreateCategory)
	app.Put("/api/admin/category/:id", middlewares.AuthMiddleware, categoryController.UpdateCategory)
	app.Delete("/api/admin/category/:id", middlewares.AuthMiddleware, categoryController.DeleteCategory)
}
