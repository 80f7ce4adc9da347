package productController

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Edu-213/Arkos-Market/catalog"
	"github.com/Edu-213/Arkos-Market/configs"
	"github.com/Edu-213/Arkos-Market/middlewares"
	"github.com/Edu-213/Arkos-Market/models"
	"github.com/Edu-213/Arkos-Market/responses"
)

var productCollection *mongo.Collection = configs.GetCollection(configs.DB, "products")
var categoryCollection *mongo.Collection = configs.GetCollection(configs.DB, "categories")

var directory = catalog.NewMongoDirectory(
	configs.GetCollection(configs.DB, "departments"),
	configs.GetCollection(configs.DB, "categories"),
	configs.GetCollection(configs.DB, "subcategories"),
)

var resolver = catalog.NewResolver(directory)

// populateProducts builds the response views for a set of products.
func populateProducts(ctx context.Context, products []models.Product) ([]responses.ProductView, error) {
	departments, categories, subcategories, err := directory.HierarchyFor(ctx, products)
	if err != nil {
		return nil, err
	}

	views := make([]responses.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, responses.NewProductView(p, departments, categories, subcategories))
	}
	return views, nil
}

func findAndRespond(c *fiber.Ctx, ctx context.Context, filter bson.M) error {
	cursor, err := productCollection.Find(ctx, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching products: " + err.Error(),
		})
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error parsing products: " + err.Error(),
		})
	}

	if len(products) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No products found",
		})
	}

	views, err := populateProducts(ctx, products)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error populating products: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Products fetched successfully",
		Result:  &fiber.Map{"products": views},
	})
}

// GetProducts lists products, optionally narrowed by a free-text search
// term. The term first tries the hierarchy (subcategory, then category,
// then department) before falling back to name/description.
func GetProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter, err := resolver.SearchFilter(ctx, c.Query("search"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error resolving search: " + err.Error(),
		})
	}

	return findAndRespond(c, ctx, filter)
}

// GetProductByID returns one product with populated hierarchy and pricing.
func GetProductByID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product Id",
		})
	}

	return findOneAndRespond(c, ctx, bson.M{"_id": productID})
}

// GetProductBySlug returns one product looked up by its URL slug.
func GetProductBySlug(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return findOneAndRespond(c, ctx, bson.M{"slug": c.Params("slug")})
}

func findOneAndRespond(c *fiber.Ctx, ctx context.Context, filter bson.M) error {
	var product models.Product
	err := productCollection.FindOne(ctx, filter).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching product: " + err.Error(),
		})
	}

	views, err := populateProducts(ctx, []models.Product{product})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error populating product: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product fetched successfully",
		Result:  &fiber.Map{"product": views[0]},
	})
}

// GetProductsByPath lists products under an explicit department/category/
// subcategory path. Each level resolves scoped to its parent, and the
// first missing level is the one reported.
func GetProductsByPath(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter, err := resolver.PathFilter(ctx, c.Params("departmentName"), c.Params("categoryName"), c.Params("subcategoryName"))
	if err != nil {
		var notFound *catalog.NotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "No " + notFound.Level + " with that name",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error resolving path: " + err.Error(),
		})
	}

	return findAndRespond(c, ctx, filter)
}

type createProductRequest struct {
	Name              string  `validate:"required"`
	Brand             string  `validate:"required"`
	Description       string  `validate:"required"`
	Price             float64 `validate:"required,gt=0"`
	Category          string  `validate:"required"`
	Subcategory       string  `validate:"required"`
	MaxInstallments   int     `validate:"min=0"`
	MaxPurchasedLimit int     `validate:"required,min=1"`
	PixDiscount       float64 `validate:"min=0,max=100"`
	Stock             int     `validate:"min=0"`
}

func parseProductForm(c *fiber.Ctx) (createProductRequest, []middlewares.FieldError) {
	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
	pixDiscount, _ := strconv.ParseFloat(c.FormValue("pixDiscount", "0"), 64)
	maxInstallments, _ := strconv.Atoi(c.FormValue("maxInstallments", "0"))
	maxPurchasedLimit, _ := strconv.Atoi(c.FormValue("maxPurchasedLimit", "1"))
	stock, _ := strconv.Atoi(c.FormValue("stock", "0"))

	request := createProductRequest{
		Name:              c.FormValue("name"),
		Brand:             c.FormValue("brand"),
		Description:       c.FormValue("description"),
		Price:             price,
		Category:          c.FormValue("category"),
		Subcategory:       c.FormValue("subcategory"),
		MaxInstallments:   maxInstallments,
		MaxPurchasedLimit: maxPurchasedLimit,
		PixDiscount:       pixDiscount,
		Stock:             stock,
	}

	return request, middlewares.ValidateStruct(request)
}

// CreateProduct creates a product from a multipart form with up to four
// images. The slug comes from the name and the department is derived from
// the chosen category.
func CreateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	request, errs := parseProductForm(c)
	if errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Result:  &fiber.Map{"errors": errs},
		})
	}

	categoryID, err := primitive.ObjectIDFromHex(request.Category)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid category Id",
		})
	}
	subcategoryID, err := primitive.ObjectIDFromHex(request.Subcategory)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid subcategory Id",
		})
	}

	// The department is always the one of the chosen category
	var category models.Category
	if err := categoryCollection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching category: " + err.Error(),
		})
	}

	images, err := saveUploadedImages(c, 4)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error saving images: " + err.Error(),
		})
	}

	product := models.Product{
		Name:              request.Name,
		Slug:              slug.Make(request.Name),
		Brand:             request.Brand,
		Description:       request.Description,
		Price:             request.Price,
		PixDiscount:       request.PixDiscount,
		Department:        category.Department,
		Category:          categoryID,
		Subcategory:       subcategoryID,
		Image:             images,
		Stock:             request.Stock,
		MaxInstallments:   request.MaxInstallments,
		MaxPurchasedLimit: request.MaxPurchasedLimit,
		CreatedAt:         time.Now(),
		Comments:          []models.Comment{},
	}

	result, err := productCollection.InsertOne(ctx, product)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error creating product: " + err.Error(),
		})
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	return c.Status(fiber.StatusCreated).JSON(responses.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Product created successfully",
		Result:  &fiber.Map{"product": product},
	})
}

type addCommentRequest struct {
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	CommentText string `json:"commentText" validate:"required"`
	Author      string `json:"author" validate:"required"`
}

// AddComment appends a review comment to a product.
func AddComment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product Id",
		})
	}

	var request addCommentRequest
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

	comment := models.Comment{
		Rating:      request.Rating,
		CommentText: request.CommentText,
		Author:      request.Author,
		CreatedAt:   time.Now(),
	}

	result, err := productCollection.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error adding comment: " + err.Error(),
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(responses.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Comment added successfully",
	})
}

// UpdateProduct edits product fields from a multipart form; one image can
// be replaced by index (or appended when no index is sent).
func UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product Id",
		})
	}

	var product models.Product
	if err := productCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching product: " + err.Error(),
		})
	}

	request, errs := parseProductForm(c)
	if errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Result:  &fiber.Map{"errors": errs},
		})
	}

	categoryID, err := primitive.ObjectIDFromHex(request.Category)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid category Id",
		})
	}
	subcategoryID, err := primitive.ObjectIDFromHex(request.Subcategory)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid subcategory Id",
		})
	}

	var category models.Category
	if err := categoryCollection.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching category: " + err.Error(),
		})
	}

	images := product.Image
	if file, err := c.FormFile("image"); err == nil && file != nil {
		imageIndex := -1
		if v := c.FormValue("imageIndex"); v != "" {
			imageIndex, _ = strconv.Atoi(v)
		}
		images, err = replaceImage(c, images, file, imageIndex)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error saving image: " + err.Error(),
			})
		}
	}

	update := bson.M{"$set": bson.M{
		"name":              request.Name,
		"slug":              slug.Make(request.Name),
		"brand":             request.Brand,
		"description":       request.Description,
		"price":             request.Price,
		"pixDiscount":       request.PixDiscount,
		"department":        category.Department,
		"category":          categoryID,
		"subcategory":       subcategoryID,
		"maxInstallments":   request.MaxInstallments,
		"maxPurchasedLimit": request.MaxPurchasedLimit,
		"stock":             request.Stock,
		"image":             images,
	}}

	if _, err := productCollection.UpdateOne(ctx, bson.M{"_id": productID}, update); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error updating product: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product updated successfully",
	})
}

// DeleteProduct removes a product.
func DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product Id",
		})
	}

	result, err := productCollection.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error deleting product: " + err.Error(),
		})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product deleted successfully",
	})
}
