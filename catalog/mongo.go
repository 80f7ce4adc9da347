package catalog

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Edu-213/Arkos-Market/models"
)

// MongoDirectory implements Directory on top of the three hierarchy
// collections.
type MongoDirectory struct {
	Departments   *mongo.Collection
	Categories    *mongo.Collection
	Subcategories *mongo.Collection
}

func NewMongoDirectory(departments, categories, subcategories *mongo.Collection) *MongoDirectory {
	return &MongoDirectory{Departments: departments, Categories: categories, Subcategories: subcategories}
}

// exactNameFilter matches the whole name, case-insensitively.
func exactNameFilter(name string) bson.M {
	return bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}}
}

func (d *MongoDirectory) SubcategoryByName(ctx context.Context, name string) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	err := d.Subcategories.FindOne(ctx, exactNameFilter(name)).Decode(&subcategory)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subcategory, nil
}

func (d *MongoDirectory) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := d.Categories.FindOne(ctx, exactNameFilter(name)).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (d *MongoDirectory) DepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	var department models.Department
	err := d.Departments.FindOne(ctx, exactNameFilter(name)).Decode(&department)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (d *MongoDirectory) CategoryInDepartment(ctx context.Context, name string, department primitive.ObjectID) (*models.Category, error) {
	filter := exactNameFilter(name)
	filter["department"] = department

	var category models.Category
	err := d.Categories.FindOne(ctx, filter).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (d *MongoDirectory) SubcategoryInCategory(ctx context.Context, name string, category primitive.ObjectID) (*models.Subcategory, error) {
	filter := exactNameFilter(name)
	filter["category"] = category

	var subcategory models.Subcategory
	err := d.Subcategories.FindOne(ctx, filter).Decode(&subcategory)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subcategory, nil
}

// HierarchyFor batch-loads the departments, categories and subcategories
// referenced by a set of products, keyed by hex id. Used when populating
// product views.
func (d *MongoDirectory) HierarchyFor(ctx context.Context, products []models.Product) (map[string]*models.Department, map[string]*models.Category, map[string]*models.Subcategory, error) {
	departmentIDs := make([]primitive.ObjectID, 0, len(products))
	categoryIDs := make([]primitive.ObjectID, 0, len(products))
	subcategoryIDs := make([]primitive.ObjectID, 0, len(products))
	seen := make(map[string]bool, len(products)*3)

	collect := func(id primitive.ObjectID, into *[]primitive.ObjectID) {
		if id.IsZero() || seen[id.Hex()] {
			return
		}
		seen[id.Hex()] = true
		*into = append(*into, id)
	}

	for _, p := range products {
		collect(p.Department, &departmentIDs)
		collect(p.Category, &categoryIDs)
		collect(p.Subcategory, &subcategoryIDs)
	}

	departments := make(map[string]*models.Department, len(departmentIDs))
	if len(departmentIDs) > 0 {
		cursor, err := d.Departments.Find(ctx, bson.M{"_id": bson.M{"$in": departmentIDs}})
		if err != nil {
			return nil, nil, nil, err
		}
		var docs []models.Department
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, nil, nil, err
		}
		for i := range docs {
			departments[docs[i].ID.Hex()] = &docs[i]
		}
	}

	categories := make(map[string]*models.Category, len(categoryIDs))
	if len(categoryIDs) > 0 {
		cursor, err := d.Categories.Find(ctx, bson.M{"_id": bson.M{"$in": categoryIDs}})
		if err != nil {
			return nil, nil, nil, err
		}
		var docs []models.Category
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, nil, nil, err
		}
		for i := range docs {
			categories[docs[i].ID.Hex()] = &docs[i]
		}
	}

	subcategories := make(map[string]*models.Subcategory, len(subcategoryIDs))
	if len(subcategoryIDs) > 0 {
		cursor, err := d.Subcategories.Find(ctx, bson.M{"_id": bson.M{"$in": subcategoryIDs}})
		if err != nil {
			return nil, nil, nil, err
		}
		var docs []models.Subcategory
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, nil, nil, err
		}
		for i := range docs {
			subcategories[docs[i].ID.Hex()] = &docs[i]
		}
	}

	return departments, categories, subcategories, nil
}
