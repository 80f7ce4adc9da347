package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	Email        string             `bson:"email" json:"email" validate:"required,email"`
	Password     string             `bson:"password,omitempty" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CPF          string             `bson:"cpf,omitempty" json:"cpf,omitempty"`
	BirthDate    *time.Time         `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Gender       string             `bson:"gender,omitempty" json:"gender,omitempty"`
	GoogleId     string             `bson:"googleId,omitempty" json:"googleId,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
}
