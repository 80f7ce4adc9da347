package routes

import (
	cartController "github.com/Edu-213/Arkos-Market/controllers/cart"
	"github.com/Edu-213/Arkos-Market/middlewares"

	"github.com/gofiber/fiber/v2"
)

func CartRoutes(app *fiber.App) {
	app.Get("/api/cart", middlewares.AuthMiddleware, cartController.GetCart)

	app.Post("/api/cart/add", middlewares.AuthMiddleware, cartController.AddCartItem)

	app.Put("/api/cart/update", middlewares.AuthMiddleware, cartController.UpdateCartItem)

	app.Delete("/api/cart/remove", middlewares.AuthMiddleware, cartController.RemoveCartItem)

	app.Delete("/api/cart/clear", middlewares.AuthMiddleware, cartController.ClearCart)

	// Flush of the anonymous local cart at login
	app.Post("/api/cart/sync", middlewares.AuthMiddleware, cartController.SyncCart)
}
