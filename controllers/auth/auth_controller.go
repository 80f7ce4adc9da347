package authController

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Edu-213/Arkos-Market/configs"
	"github.com/Edu-213/Arkos-Market/middlewares"
	"github.com/Edu-213/Arkos-Market/models"
	"github.com/Edu-213/Arkos-Market/responses"
)

var userCollection *mongo.Collection = configs.GetCollection(configs.DB, "users")

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func createJwt(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.Id.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.EnvJWTSecret()))
}

type registerRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone" validate:"required"`
	CPF       string `json:"cpf" validate:"required"`
	BirthDate string `json:"birthDate"`
	Gender    string `json:"gender"`
}

// Register creates a local account. Email, phone and CPF must all be
// unused.
func Register(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request registerRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
		})
	}
	if errs := middlewares.ValidateStruct(request); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Result:  &fiber.Map{"errors": errs},
		})
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	cpf := strings.TrimSpace(request.CPF)
	phone := strings.TrimSpace(request.Phone)

	err := userCollection.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"phone": phone},
		bson.M{"cpf": cpf},
	}}).Err()
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "User already registered with this email, CPF or phone",
		})
	}
	if err != mongo.ErrNoDocuments {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error checking user existence",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), 12)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error hashing password",
		})
	}

	user := models.User{
		Id:       primitive.NewObjectID(),
		Name:     request.Name,
		Email:    email,
		Password: string(hashedPassword),
		Phone:    phone,
		CPF:      cpf,
		Gender:   request.Gender,
	}
	if request.BirthDate != "" {
		if birthDate, err := time.Parse("2006-01-02", request.BirthDate); err == nil {
			user.BirthDate = &birthDate
		}
	}

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error saving user, please try again later",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(responses.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "User registered successfully",
	})
}

type loginRequest struct {
	EmailCpf string `json:"emailCpf" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates by email or CPF and answers with a 7-day JWT, also
// set as a cookie for the browser client.
func Login(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request loginRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
		})
	}
	if errs := middlewares.ValidateStruct(request); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Result:  &fiber.Map{"errors": errs},
		})
	}

	identifier := strings.TrimSpace(request.EmailCpf)
	filter := bson.M{"cpf": identifier}
	if emailRegex.MatchString(identifier) {
		filter = bson.M{"email": strings.ToLower(identifier)}
	}

	var user models.User
	err := userCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil && err != mongo.ErrNoDocuments {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching user",
		})
	}
	if err == mongo.ErrNoDocuments || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Incorrect email, CPF or password",
		})
	}

	token, err := createJwt(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error generating token",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		SameSite: "Lax",
	})

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Result: &fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    user.Id.Hex(),
				"name":  user.Name,
				"email": user.Email,
			},
		},
	})
}

// Me returns the profile of the authenticated user, without the password
// hash.
func Me(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
	}
	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid User ID format",
		})
	}

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": userObjectID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching user",
		})
	}

	user.Password = ""
	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User fetched successfully",
		Result:  &fiber.Map{"user": user},
	})
}

type oauthRequest struct {
	Provider string `json:"provider" validate:"required,oneof=google"`
	Token    string `json:"token" validate:"required"`
}

// OAuthLogin verifies a Google id token and signs the user in, creating
// the account on first login.
func OAuthLogin(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var request oauthRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
		})
	}
	if errs := middlewares.ValidateStruct(request); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Validation failed",
			Result:  &fiber.Map{"errors": errs},
		})
	}

	info, err := validateGoogleToken(request.Token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var user models.User
	err = userCollection.FindOne(ctx, bson.M{"email": info.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		user = models.User{
			Id:           primitive.NewObjectID(),
			Name:         info.Name,
			Email:        info.Email,
			GoogleId:     info.Subject,
			ProfileImage: info.Picture,
		}
		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error creating user",
			})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching user",
		})
	} else if user.GoogleId == "" || user.ProfileImage != info.Picture {
		update := bson.M{"$set": bson.M{"googleId": info.Subject, "profileImage": info.Picture}}
		if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.Id}, update); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error updating user",
			})
		}
		user.GoogleId = info.Subject
		user.ProfileImage = info.Picture
	}

	token, err := createJwt(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error generating token",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		SameSite: "Lax",
	})

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Result: &fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":           user.Id.Hex(),
				"name":         user.Name,
				"email":        user.Email,
				"profileImage": user.ProfileImage,
			},
		},
	})
}

type googleTokenInfo struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func validateGoogleToken(token string) (*googleTokenInfo, error) {
	resp, err := http.Get("https://oauth2.googleapis.com/tokeninfo?id_token=" + token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("invalid Google token")
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" || info.Name == "" {
		return nil, errors.New("missing email or name in token")
	}
	return &info, nil
}
