package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Department struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name" validate:"required"`
}

type Category struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string             `bson:"name" json:"name" validate:"required"`
	Discount   float64            `bson:"discount" json:"discount" validate:"min=0,max=100"`
	Department primitive.ObjectID `bson:"department" json:"department"`
}

type Subcategory struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	Discount float64            `bson:"discount" json:"discount" validate:"min=0,max=100"`
	Category primitive.ObjectID `bson:"category" json:"category"`
}
