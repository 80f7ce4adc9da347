// Package catalog resolves free-text search terms and hierarchy paths
// (department > category > subcategory) into product query filters.
package catalog

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Edu-213/Arkos-Market/models"
)

// Directory looks up hierarchy levels by name. Implementations return
// (nil, nil) when no document matches.
type Directory interface {
	SubcategoryByName(ctx context.Context, name string) (*models.Subcategory, error)
	CategoryByName(ctx context.Context, name string) (*models.Category, error)
	DepartmentByName(ctx context.Context, name string) (*models.Department, error)
	CategoryInDepartment(ctx context.Context, name string, department primitive.ObjectID) (*models.Category, error)
	SubcategoryInCategory(ctx context.Context, name string, category primitive.ObjectID) (*models.Subcategory, error)
}

// NotFoundError names the hierarchy level that failed to resolve.
type NotFoundError struct {
	Level string // "department", "category" or "subcategory"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Level)
}

type Resolver struct {
	dir Directory
}

func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// SearchFilter turns a free-text term into a product filter. Exact
// (case-insensitive) name matches are tried against subcategory, then
// category, then department; the first hit narrows to that subtree. With
// no hierarchy match the term falls back to a substring match on product
// name or description. An empty term matches everything.
func (r *Resolver) SearchFilter(ctx context.Context, term string) (bson.M, error) {
	if term == "" {
		return bson.M{}, nil
	}

	subcategory, err := r.dir.SubcategoryByName(ctx, term)
	if err != nil {
		return nil, err
	}
	if subcategory != nil {
		return bson.M{"subcategory": subcategory.ID}, nil
	}

	category, err := r.dir.CategoryByName(ctx, term)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return bson.M{"category": category.ID}, nil
	}

	department, err := r.dir.DepartmentByName(ctx, term)
	if err != nil {
		return nil, err
	}
	if department != nil {
		return bson.M{"department": department.ID}, nil
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
	}}, nil
}

// PathFilter resolves explicit department/category/subcategory path
// segments, each scoped to its parent. Empty category/subcategory names
// mean the level was not requested. The first level that does not resolve
// is reported through NotFoundError.
func (r *Resolver) PathFilter(ctx context.Context, departmentName, categoryName, subcategoryName string) (bson.M, error) {
	department, err := r.dir.DepartmentByName(ctx, departmentName)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, &NotFoundError{Level: "department"}
	}

	filter := bson.M{"department": department.ID}
	if categoryName == "" {
		return filter, nil
	}

	category, err := r.dir.CategoryInDepartment(ctx, categoryName, department.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &NotFoundError{Level: "category"}
	}

	filter["category"] = category.ID
	if subcategoryName == "" {
		return filter, nil
	}

	subcategory, err := r.dir.SubcategoryInCategory(ctx, subcategoryName, category.ID)
	if err != nil {
		return nil, err
	}
	if subcategory == nil {
		return nil, &NotFoundError{Level: "subcategory"}
	}

	filter["subcategory"] = subcategory.ID
	return filter, nil
}
