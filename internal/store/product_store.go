package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-service/internal/model"
	"catalog-service/prometheus"

	"gorm.io/gorm"
)

// Error kinds surfaced by the store. Handlers translate ErrNotFound to 404 and
// ErrInvalid to 400; anything else is a storage fault.
var (
	ErrNotFound = errors.New("product not found")
	ErrInvalid  = errors.New("invalid product")
)

// NewProduct carries the fields required to create a product. InStock is a
// pointer so "not supplied" can default to true at the store layer.
type NewProduct struct {
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     *bool
}

// ProductUpdate carries a partial set of mutable fields; nil means untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	InStock     *bool
}

// ProductStore mediates all product reads and writes. The backing engine is
// swappable; tests run the same adapter against SQLite.
type ProductStore interface {
	ListAll(ctx context.Context) ([]model.Product, error)
	ListPage(ctx context.Context, skip, limit int) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)
	FindByCategory(ctx context.Context, category string) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, in NewProduct) (*model.Product, error)
	UpdateByID(ctx context.Context, id string, in ProductUpdate) (*model.Product, error)
	DeleteByID(ctx context.Context, id string) error
}

type gormProductStore struct {
	db *gorm.DB
}

// NewProductStore returns a ProductStore backed by the given GORM connection.
func NewProductStore(db *gorm.DB) ProductStore {
	return &gormProductStore{db: db}
}

func (s *gormProductStore) ListAll(ctx context.Context) ([]model.Product, error) {
	defer prometheus.TrackDBOperation("list")(time.Now())

	var products []model.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *gormProductStore) ListPage(ctx context.Context, skip, limit int) ([]model.Product, error) {
	defer prometheus.TrackDBOperation("list_page")(time.Now())

	var products []model.Product
	err := s.db.WithContext(ctx).
		Order("pk").
		Offset(skip).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *gormProductStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("count")(time.Now())

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *gormProductStore) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	defer prometheus.TrackDBOperation("find_by_category")(time.Now())

	var products []model.Product
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *gormProductStore) FindByID(ctx context.Context, id string) (*model.Product, error) {
	defer prometheus.TrackDBOperation("find_by_id")(time.Now())

	var product model.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *gormProductStore) Create(ctx context.Context, in NewProduct) (*model.Product, error) {
	defer prometheus.TrackDBOperation("create")(time.Now())

	if err := checkRequiredText("name", in.Name); err != nil {
		return nil, err
	}
	if err := checkRequiredText("description", in.Description); err != nil {
		return nil, err
	}
	if err := checkRequiredText("category", in.Category); err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrInvalid)
	}

	product := model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		InStock:     true,
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}

	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *gormProductStore) UpdateByID(ctx context.Context, id string, in ProductUpdate) (*model.Product, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())

	var product model.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		if err := checkRequiredText("name", *in.Name); err != nil {
			return nil, err
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		if err := checkRequiredText("description", *in.Description); err != nil {
			return nil, err
		}
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrInvalid)
		}
		updates["price"] = *in.Price
	}
	if in.Category != nil {
		if err := checkRequiredText("category", *in.Category); err != nil {
			return nil, err
		}
		updates["category"] = *in.Category
	}
	if in.InStock != nil {
		updates["in_stock"] = *in.InStock
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalid)
	}

	if err := s.db.WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *gormProductStore) DeleteByID(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func checkRequiredText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s must be a non-empty string", ErrInvalid, field)
	}
	return nil
}
