package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/Edu-213/Arkos-Market/configs"
	"github.com/Edu-213/Arkos-Market/routes"
)

func main() {
	app := fiber.New()

	app.Use(helmet.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     configs.EnvFrontendURL(),
		AllowCredentials: true,
	}))

	configs.ConnectDB()

	// Uploaded product images
	app.Static("/uploads", "./uploads")

	routes.AuthRoutes(app)
	routes.ProductsRoutes(app)
	routes.CartRoutes(app)
	routes.DepartmentRoutes(app)
	routes.CategoryRoutes(app)
	routes.SubcategoryRoutes(app)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Arkos Market API running")
	})

	log.Fatal(app.Listen(":" + configs.EnvPort()))
}
