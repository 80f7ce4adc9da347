package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Cart is the persisted cart of a single user. At most one item per
// distinct product; quantities are kept within [1, maxPurchasedLimit]
// on every mutation path.
type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Items  []CartItem         `bson:"items" json:"items"`
}

type CartItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity" validate:"required,min=1"`
}
