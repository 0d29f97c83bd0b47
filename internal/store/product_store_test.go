package store_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"catalog-service/internal/model"
	"catalog-service/internal/store"
	"catalog-service/pkg/config"
	"catalog-service/prometheus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

// newTestStore runs the adapter against an in-memory SQLite database; the
// engine behind the interface is swappable by design.
func newTestStore(t *testing.T) store.ProductStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Product{}))

	return store.NewProductStore(db)
}

func mustCreate(t *testing.T, s store.ProductStore, name, category string, price float64) *model.Product {
	t.Helper()

	product, err := s.Create(context.Background(), store.NewProduct{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    category,
	})
	require.NoError(t, err)
	return product
}

func TestCreateAssignsIdentifierAndDefaults(t *testing.T) {
	s := newTestStore(t)

	first := mustCreate(t, s, "Laptop", "electronics", 1200)
	second := mustCreate(t, s, "Keyboard", "electronics", 75)

	assert.Len(t, first.ID, 36)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, first.InStock, "inStock should default to true")
	assert.False(t, first.CreatedAt.IsZero())
	assert.False(t, first.UpdatedAt.IsZero())
}

func TestCreateHonorsExplicitInStock(t *testing.T) {
	s := newTestStore(t)

	inStock := false
	product, err := s.Create(context.Background(), store.NewProduct{
		Name:        "Monitor",
		Description: "4K monitor",
		Price:       300,
		Category:    "electronics",
		InStock:     &inStock,
	})

	require.NoError(t, err)
	assert.False(t, product.InStock)
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(context.Background(), store.NewProduct{
		Name:        "Laptop",
		Description: "High performance laptop",
		Price:       -1,
		Category:    "electronics",
	})

	assert.ErrorIs(t, err, store.ErrInvalid)
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(context.Background(), store.NewProduct{
		Name:        "  ",
		Description: "desc",
		Price:       10,
		Category:    "electronics",
	})

	assert.ErrorIs(t, err, store.ErrInvalid)

	total, countErr := s.Count(context.Background())
	require.NoError(t, countErr)
	assert.Zero(t, total)
}

func TestFindByID(t *testing.T) {
	s := newTestStore(t)
	created := mustCreate(t, s, "Laptop", "electronics", 1200)

	found, err := s.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, found.Name)
	assert.Equal(t, created.Price, found.Price)

	_, err = s.FindByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateByIDAppliesOnlySuppliedFields(t *testing.T) {
	s := newTestStore(t)
	created := mustCreate(t, s, "Laptop", "electronics", 1200)

	price := 999.0
	updated, err := s.UpdateByID(context.Background(), created.ID, store.ProductUpdate{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 999.0, updated.Price)
	assert.Equal(t, "Laptop", updated.Name)
	assert.Equal(t, created.ID, updated.ID)
}

func TestUpdateByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	price := 10.0
	_, err := s.UpdateByID(context.Background(), "no-such-id", store.ProductUpdate{Price: &price})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateByIDRejectsInvalidFields(t *testing.T) {
	s := newTestStore(t)
	created := mustCreate(t, s, "Laptop", "electronics", 1200)

	price := -1.0
	_, err := s.UpdateByID(context.Background(), created.ID, store.ProductUpdate{Price: &price})
	assert.ErrorIs(t, err, store.ErrInvalid)

	_, err = s.UpdateByID(context.Background(), created.ID, store.ProductUpdate{})
	assert.ErrorIs(t, err, store.ErrInvalid)

	// Record must be untouched after rejected updates
	found, findErr := s.FindByID(context.Background(), created.ID)
	require.NoError(t, findErr)
	assert.Equal(t, 1200.0, found.Price)
}

func TestDeleteByIDTwice(t *testing.T) {
	s := newTestStore(t)
	created := mustCreate(t, s, "Laptop", "electronics", 1200)

	require.NoError(t, s.DeleteByID(context.Background(), created.ID))
	assert.ErrorIs(t, s.DeleteByID(context.Background(), created.ID), store.ErrNotFound)

	_, err := s.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCountAndListPage(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 12; i++ {
		mustCreate(t, s, fmt.Sprintf("Product %02d", i), "bulk", float64(i))
	}

	total, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)

	page, err := s.ListPage(context.Background(), 5, 5)
	require.NoError(t, err)
	assert.Len(t, page, 5)

	lastPage, err := s.ListPage(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Len(t, lastPage, 2)
}

func TestFindByCategory(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "Laptop", "electronics", 1200)
	mustCreate(t, s, "Mouse", "electronics", 25)
	mustCreate(t, s, "Desk", "furniture", 150)

	electronics, err := s.FindByCategory(context.Background(), "electronics")
	require.NoError(t, err)
	assert.Len(t, electronics, 2)

	none, err := s.FindByCategory(context.Background(), "groceries")
	require.NoError(t, err)
	assert.Empty(t, none)
}
