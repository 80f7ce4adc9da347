package routes

import (
	departmentController "github.com/Edu-213/Arkos-Market/controllers/departments"
	"github.com/Edu-213/Arkos-Market/middlewares"

	"github.com/gofiber/fiber/v2"
)

func DepartmentRoutes(app *fiber.App) {
	app.Get("/api/admin/department", departmentController.GetDepartments)
	app.Post("/api/admin/department", middlewares.AuthMiddleware, departmentController.CreateDepartment)
	app.Put("/api/admin/department/:id", middlewares.AuthMiddleware, departmentController.UpdateDepartment)
	app.Delete("/api/admin/department/:id", middlewares.AuthMiddleware, departmentController.DeleteDepartment)
}
