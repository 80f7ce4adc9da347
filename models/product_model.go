package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string             `bson:"name" json:"name" validate:"required"`
	Slug              string             `bson:"slug" json:"slug"`
	Brand             string             `bson:"brand" json:"brand" validate:"required"`
	Description       string             `bson:"description" json:"description" validate:"required"`
	Price             float64            `bson:"price" json:"price" validate:"required,gt=0"`
	PixDiscount       float64            `bson:"pixDiscount" json:"pixDiscount" validate:"min=0,max=100"`
	Department        primitive.ObjectID `bson:"department,omitempty" json:"department,omitempty"`
	Category          primitive.ObjectID `bson:"category" json:"category"`
	Subcategory       primitive.ObjectID `bson:"subcategory" json:"subcategory"`
	Image             []string           `bson:"image" json:"image"`
	Stock             int                `bson:"stock" json:"stock" validate:"min=0"`
	MaxInstallments   int                `bson:"maxInstallments,omitempty" json:"maxInstallments,omitempty"`
	MaxPurchasedLimit int                `bson:"maxPurchasedLimit" json:"maxPurchasedLimit" validate:"min=1"`
	CreatedAt         time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	Comments          []Comment          `bson:"comments" json:"comments"`
}

type Comment struct {
	Rating      int       `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	CommentText string    `bson:"commentText" json:"commentText" validate:"required"`
	Author      string    `bson:"author" json:"author" validate:"required"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
