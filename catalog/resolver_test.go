package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Edu-213/Arkos-Market/catalog"
	"github.com/Edu-213/Arkos-Market/models"
)

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) SubcategoryByName(ctx context.Context, name string) (*models.Subcategory, error) {
	args := m.Called(ctx, name)
	sub, _ := args.Get(0).(*models.Subcategory)
	return sub, args.Error(1)
}

func (m *MockDirectory) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	cat, _ := args.Get(0).(*models.Category)
	return cat, args.Error(1)
}

func (m *MockDirectory) DepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	args := m.Called(ctx, name)
	dep, _ := args.Get(0).(*models.Department)
	return dep, args.Error(1)
}

func (m *MockDirectory) CategoryInDepartment(ctx context.Context, name string, department primitive.ObjectID) (*models.Category, error) {
	args := m.Called(ctx, name, department)
	cat, _ := args.Get(0).(*models.Category)
	return cat, args.Error(1)
}

func (m *MockDirectory) SubcategoryInCategory(ctx context.Context, name string, category primitive.ObjectID) (*models.Subcategory, error) {
	args := m.Called(ctx, name, category)
	sub, _ := args.Get(0).(*models.Subcategory)
	return sub, args.Error(1)
}

func TestSearchFilter_SubcategoryWinsOverCategory(t *testing.T) {
	dir := new(MockDirectory)
	subcategory := &models.Subcategory{ID: primitive.NewObjectID(), Name: "Fones"}
	dir.On("SubcategoryByName", mock.Anything, "Fones").Return(subcategory, nil)

	resolver := catalog.NewResolver(dir)
	filter, err := resolver.SearchFilter(context.Background(), "Fones")

	require.NoError(t, err)
	assert.Equal(t, bson.M{"subcategory": subcategory.ID}, filter)
	dir.AssertNotCalled(t, "CategoryByName", mock.Anything, mock.Anything)
	dir.AssertExpectations(t)
}

func TestSearchFilter_CategoryMatch(t *testing.T) {
	dir := new(MockDirectory)
	category := &models.Category{ID: primitive.NewObjectID(), Name: "Eletrônicos"}
	dir.On("SubcategoryByName", mock.Anything, "Eletrônicos").Return(nil, nil)
	dir.On("CategoryByName", mock.Anything, "Eletrônicos").Return(category, nil)

	resolver := catalog.NewResolver(dir)
	filter, err := resolver.SearchFilter(context.Background(), "Eletrônicos")

	require.NoError(t, err)
	assert.Equal(t, bson.M{"category": category.ID}, filter)
	dir.AssertExpectations(t)
}

func TestSearchFilter_DepartmentMatch(t *testing.T) {
	dir := new(MockDirectory)
	department := &models.Department{ID: primitive.NewObjectID(), Name: "Casa"}
	dir.On("SubcategoryByName", mock.Anything, "Casa").Return(nil, nil)
	dir.On("CategoryByName", mock.Anything, "Casa").Return(nil, nil)
	dir.On("DepartmentByName", mock.Anything, "Casa").Return(department, nil)

	resolver := catalog.NewResolver(dir)
	filter, err := resolver.SearchFilter(context.Background(), "Casa")

	require.NoError(t, err)
	assert.Equal(t, bson.M{"department": department.ID}, filter)
	dir.AssertExpectations(t)
}

func TestSearchFilter_FallsBackToNameAndDescription(t *testing.T) {
	dir := new(MockDirectory)
	dir.On("SubcategoryByName", mock.Anything, "caixa de som").Return(nil, nil)
	dir.On("CategoryByName", mock.Anything, "caixa de som").Return(nil, nil)
	dir.On("DepartmentByName", mock.Anything, "caixa de som").Return(nil, nil)

	resolver := catalog.NewResolver(dir)
	filter, err := resolver.SearchFilter(context.Background(), "caixa de som")

	require.NoError(t, err)
	pattern := primitive.Regex{Pattern: "caixa de som", Options: "i"}
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
	}}, filter)
}

func TestSearchFilter_EmptyTermMatchesEverything(t *testing.T) {
	resolver := catalog.NewResolver(new(MockDirectory))

	filter, err := resolver.SearchFilter(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, bson.M{}, filter)
}

func TestSearchFilter_DirectoryError(t *testing.T) {
	dir := new(MockDirectory)
	dir.On("SubcategoryByName", mock.Anything, "x").Return(nil, errors.New("connection reset"))

	resolver := catalog.NewResolver(dir)
	_, err := resolver.SearchFilter(context.Background(), "x")

	assert.Error(t, err)
}

func TestPathFilter_FullPath(t *testing.T) {
	dir := new(MockDirectory)
	department := &models.Department{ID: primitive.NewObjectID(), Name: "Casa"}
	category := &models.Category{ID: primitive.NewObjectID(), Name: "Móveis", Department: department.ID}
	subcategory := &models.Subcategory{ID: primitive.NewObjectID(), Name: "Sofás", Category: category.ID}

	dir.On("DepartmentByName", mock.Anything, "Casa").Return(department, nil)
	dir.On("CategoryInDepartment", mock.Anything, "Móveis", department.ID).Return(category, nil)
	dir.On("SubcategoryInCategory", mock.Anything, "Sofás", category.ID).Return(subcategory, nil)

	resolver := catalog.NewResolver(dir)
	filter, err := resolver.PathFilter(context.Background(), "Casa", "Móveis", "Sofás")

	require.NoError(t, err)
	assert.Equal(t, bson.M{
		"department":  department.ID,
		"category":    category.ID,
		"subcategory": subcategory.ID,
	}, filter)
}

func TestPathFilter_DepartmentOnly(t *testing.T) {
	dir := new(MockDirectory)
	department := &models.Department{ID: primitive.NewObjectID(), Name: "Casa"}
	dir.On("DepartmentByName", mock.Anything, "Casa").Return(department, nil)

	resolver := catalog.NewResolver(dir)
	filter, err := resolver.PathFilter(context.Background(), "Casa", "", "")

	require.NoError(t, err)
	assert.Equal(t, bson.M{"department": department.ID}, filter)
	dir.AssertNotCalled(t, "CategoryInDepartment", mock.Anything, mock.Anything, mock.Anything)
}

func TestPathFilter_ReportsFirstMissingLevel(t *testing.T) {
	department := &models.Department{ID: primitive.NewObjectID(), Name: "Casa"}

	t.Run("department", func(t *testing.T) {
		dir := new(MockDirectory)
		dir.On("DepartmentByName", mock.Anything, "Nada").Return(nil, nil)

		_, err := catalog.NewResolver(dir).PathFilter(context.Background(), "Nada", "Móveis", "")

		var notFound *catalog.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "department", notFound.Level)
	})

	t.Run("category", func(t *testing.T) {
		dir := new(MockDirectory)
		dir.On("DepartmentByName", mock.Anything, "Casa").Return(department, nil)
		dir.On("CategoryInDepartment", mock.Anything, "Nada", department.ID).Return(nil, nil)

		_, err := catalog.NewResolver(dir).PathFilter(context.Background(), "Casa", "Nada", "")

		var notFound *catalog.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "category", notFound.Level)
	})

	t.Run("subcategory", func(t *testing.T) {
		category := &models.Category{ID: primitive.NewObjectID(), Name: "Móveis", Department: department.ID}
		dir := new(MockDirectory)
		dir.On("DepartmentByName", mock.Anything, "Casa").Return(department, nil)
		dir.On("CategoryInDepartment", mock.Anything, "Móveis", department.ID).Return(category, nil)
		dir.On("SubcategoryInCategory", mock.Anything, "Nada", category.ID).Return(nil, nil)

		_, err := catalog.NewResolver(dir).PathFilter(context.Background(), "Casa", "Móveis", "Nada")

		var notFound *catalog.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "subcategory", notFound.Level)
	})
}
