package cartController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Edu-213/Arkos-Market/cart"
	"github.com/Edu-213/Arkos-Market/catalog"
	"github.com/Edu-213/Arkos-Market/configs"
	"github.com/Edu-213/Arkos-Market/middlewares"
	"github.com/Edu-213/Arkos-Market/models"
	"github.com/Edu-213/Arkos-Market/responses"
)

var cartCollection *mongo.Collection = configs.GetCollection(configs.DB, "carts")
var productCollection *mongo.Collection = configs.GetCollection(configs.DB, "products")

var directory = catalog.NewMongoDirectory(
	configs.GetCollection(configs.DB, "departments"),
	configs.GetCollection(configs.DB, "categories"),
	configs.GetCollection(configs.DB, "subcategories"),
)

// userObjectID pulls the authenticated user id out of Locals.
func userObjectID(c *fiber.Ctx) (primitive.ObjectID, bool) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// populateCart attaches full product detail and pricing to every cart
// line. Lines whose product no longer exists are left out of the view.
func populateCart(ctx context.Context, userCart models.Cart) (responses.CartView, error) {
	view := responses.CartView{Items: []responses.CartItemView{}}
	if len(userCart.Items) == 0 {
		return view, nil
	}

	ids := make([]primitive.ObjectID, 0, len(userCart.Items))
	for _, item := range userCart.Items {
		ids = append(ids, item.ProductID)
	}

	cursor, err := productCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return view, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return view, err
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}

	departments, categories, subcategories, err := directory.HierarchyFor(ctx, products)
	if err != nil {
		return view, err
	}

	for _, item := range userCart.Items {
		product, ok := byID[item.ProductID.Hex()]
		if !ok {
			continue
		}
		view.Items = append(view.Items, responses.CartItemView{
			Product:  responses.NewProductView(product, departments, categories, subcategories),
			Quantity: item.Quantity,
		})
	}

	return view, nil
}

// findUserCart returns the persisted cart, or an empty cart shape when the
// user has none yet. Never a not-found error.
func findUserCart(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	var userCart models.Cart
	err := cartCollection.FindOne(ctx, bson.M{"user": userID}).Decode(&userCart)
	if err == mongo.ErrNoDocuments {
		return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return userCart, err
}

// respondWithCart is the shared success path: populate and send the cart.
func respondWithCart(c *fiber.Ctx, ctx context.Context, userID primitive.ObjectID, message string, extra fiber.Map) error {
	userCart, err := findUserCart(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching cart: " + err.Error(),
		})
	}

	view, err := populateCart(ctx, userCart)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error populating cart: " + err.Error(),
		})
	}

	result := fiber.Map{"cart": view}
	for k, v := range extra {
		result[k] = v
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Result:  &result,
	})
}

// GetCart returns the persisted cart of the caller, or an empty cart shape
// when none exists.
func GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := userObjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
	}

	return respondWithCart(c, ctx, userID, "Cart fetched successfully", nil)
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// AddCartItem increments an existing line or inserts a new one, then pins
// the line to the product's purchase cap. The first write is a positional
// $inc; when it matches nothing the item is pushed with an upsert.
func AddCartItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request AddCartItemRequest
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

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product Id",
		})
	}

	userID, ok := userObjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
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

	// First attempt: bump the existing line in place
	result, err := cartCollection.UpdateOne(ctx,
		bson.M{"user": userID, "items.product": productID},
		bson.M{"$inc": bson.M{"items.$.quantity": request.Quantity}},
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error adding to cart: " + err.Error(),
		})
	}

	if result.MatchedCount == 0 {
		// No line yet: push a new one, creating the cart if needed
		quantity := cart.Clamp(request.Quantity, product.MaxPurchasedLimit)
		_, err = cartCollection.UpdateOne(ctx,
			bson.M{"user": userID},
			bson.M{"$push": bson.M{"items": models.CartItem{ProductID: productID, Quantity: quantity}}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error adding to cart: " + err.Error(),
			})
		}
	} else if product.MaxPurchasedLimit >= 1 {
		// The $inc may have pushed the line above the cap: pin it back
		_, err = cartCollection.UpdateOne(ctx,
			bson.M{"user": userID, "items": bson.M{"$elemMatch": bson.M{"product": productID, "quantity": bson.M{"$gt": product.MaxPurchasedLimit}}}},
			bson.M{"$set": bson.M{"items.$.quantity": product.MaxPurchasedLimit}},
		)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error adding to cart: " + err.Error(),
			})
		}
	}

	return respondWithCart(c, ctx, userID, "Successfully added to cart", nil)
}

type UpdateCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItem sets a line to an explicit quantity, clamped to the
// product's purchase cap.
func UpdateCartItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request UpdateCartItemRequest
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

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product Id",
		})
	}

	userID, ok := userObjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
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

	quantity := cart.Clamp(request.Quantity, product.MaxPurchasedLimit)
	result, err := cartCollection.UpdateOne(ctx,
		bson.M{"user": userID, "items.product": productID},
		bson.M{"$set": bson.M{"items.$.quantity": quantity}},
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error updating cart: " + err.Error(),
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product not found in cart",
		})
	}

	return respondWithCart(c, ctx, userID, "Cart updated successfully", nil)
}

type RemoveCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// RemoveCartItem pulls a line out of the cart. Removing a product that is
// not in the cart is a silent no-op success.
func RemoveCartItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request RemoveCartItemRequest
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

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product Id",
		})
	}

	userID, ok := userObjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
	}

	_, err = cartCollection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$pull": bson.M{"items": bson.M{"product": productID}}},
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error removing from cart: " + err.Error(),
		})
	}

	return respondWithCart(c, ctx, userID, "Successfully removed from cart", nil)
}

// ClearCart replaces the items of the cart with an empty set.
func ClearCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := userObjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
	}

	_, err := cartCollection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error clearing cart: " + err.Error(),
		})
	}

	return respondWithCart(c, ctx, userID, "Cart cleared successfully", nil)
}

type SyncCartRequest struct {
	Cart []cart.LocalItem `json:"cart" validate:"dive"`
}

// SyncCart folds the anonymous, locally-persisted cart flushed at login
// into the persisted cart. Unknown products are skipped and reported in
// the per-item result list; quantities are clamped to each product's
// purchase cap. The whole cart is written back in one upsert.
func SyncCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request SyncCartRequest
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

	userID, ok := userObjectID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
	}

	userCart, err := findUserCart(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching cart: " + err.Error(),
		})
	}

	// One product read per distinct incoming id; ids that do not resolve
	// stay out of the map and surface as skipped entries in the report.
	products := make(map[string]models.Product, len(request.Cart))
	for _, item := range request.Cart {
		if _, done := products[item.ProductID]; done {
			continue
		}
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			continue
		}
		var product models.Product
		err = productCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error syncing cart: " + err.Error(),
			})
		}
		products[item.ProductID] = product
	}

	items, report := cart.Merge(userCart.Items, request.Cart, products)
	userCart.Items = items

	_, err = cartCollection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"user": userID, "items": userCart.Items}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error syncing cart: " + err.Error(),
		})
	}

	return respondWithCart(c, ctx, userID, "Cart synced successfully", fiber.Map{"report": report})
}
