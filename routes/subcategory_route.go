package routes

import (
	subcategoryController "github.com/Edu-213/Arkos-Market/controllers/subcategories"
	"github.com/Edu-213/Arkos-Market/middlewares"

	"github.com/gofiber/fiber/v2"
)

func SubcategoryRoutes(app *fiber.App) {
	app.Get("/api/admin/subcategory", subcategoryController.GetSubcategories)
	app.Post("/api/admin/subcategory", middlewares.AuthMiddleware, subcategoryController.CreateSubcategory)
	app.Put("/api/admin/subcategory/:id", middlewares.AuthMiddleware, subcategoryController.UpdateSubcategory)
	app.Delete("/api/admin/subcategory/:id", middlewares.AuthMiddleware, subcategoryController.DeleteSubcategory)
}
