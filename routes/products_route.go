package routes

import (
	productController "github.com/Edu-213/Arkos-Market/controllers/products"
	"github.com/Edu-213/Arkos-Market/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoutes(app *fiber.App) {
	app.Get("/api/products", productController.GetProducts)

	app.Get("/api/products/id/:id", productController.GetProductByID)

	app.Get("/api/products/slug/:slug", productController.GetProductBySlug)

	// Admin product management
	app.Post("/api/products", middlewares.AuthMiddleware, productController.CreateProduct)
	app.Put("/api/products/:id", middlewares.AuthMiddleware, productController.UpdateProduct)
	app.Delete("/api/products/:id", middlewares.AuthMiddleware, productController.DeleteProduct)

	app.Post("/api/products/comment/:id", productController.AddComment)

	// Registered last so /id, /slug and /comment win over the path match
	app.Get("/api/products/:departmentName/:categoryName?/:subcategoryName?", productController.GetProductsByPath)
}
