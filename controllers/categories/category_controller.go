package categoryController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Edu-213/Arkos-Market/configs"
	"github.com/Edu-213/Arkos-Market/middlewares"
	"github.com/Edu-213/Arkos-Market/models"
	"github.com/Edu-213/Arkos-Market/responses"
)

var categoryCollection *mongo.Collection = configs.GetCollection(configs.DB, "categories")
var departmentCollection *mongo.Collection = configs.GetCollection(configs.DB, "departments")

func GetCategories(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := categoryCollection.Find(ctx, bson.M{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching categories: " + err.Error(),
		})
	}

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error parsing categories: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Categories fetched successfully",
		Result:  &fiber.Map{"categories": categories},
	})
}

type categoryRequest struct {
	Name       string  `json:"name" validate:"required"`
	Discount   float64 `json:"discount" validate:"min=0,max=100"`
	Department string  `json:"department" validate:"required"`
}

func CreateCategory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request categoryRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if errs := middlewares.ValidateStruct(request); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Result:  &fiber.Map{"errors": errs},
		})
	}

	departmentID, err := primitive.ObjectIDFromHex(request.Department)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid department Id",
		})
	}

	// The parent department must exist
	if err := departmentCollection.FindOne(ctx, bson.M{"_id": departmentID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Department not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching department: " + err.Error(),
		})
	}

	category := models.Category{Name: request.Name, Discount: request.Discount, Department: departmentID}
	result, err := categoryCollection.InsertOne(ctx, category)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error creating category: " + err.Error(),
		})
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	return c.Status(fiber.StatusCreated).JSON(responses.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Category created successfully",
		Result:  &fiber.Map{"category": category},
	})
}

type updateCategoryRequest struct {
	Name     string  `json:"name" validate:"required"`
	Discount float64 `json:"discount" validate:"min=0,max=100"`
}

func UpdateCategory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid category Id",
		})
	}

	var request updateCategoryRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if errs := middlewares.ValidateStruct(request); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Result:  &fiber.Map{"errors": errs},
		})
	}

	result, err := categoryCollection.UpdateOne(ctx,
		bson.M{"_id": categoryID},
		bson.M{"$set": bson.M{"name": request.Name, "discount": request.Discount}},
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error updating category: " + err.Error(),
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Category not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Category updated successfully",
	})
}

func DeleteCategory(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid category Id",
		})
	}

	result, err := categoryCollection.DeleteOne(ctx, bson.M{"_id": categoryID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error deleting category: " + err.Error(),
		})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Category not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Category deleted successfully",
	})
}
