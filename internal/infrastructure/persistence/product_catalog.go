package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/shared"
	"github.com/shopbooks/backend/internal/infrastructure/persistence/models"
)

// GormProductCatalog implements the read-only ProductCatalog port over the
// products table maintained by the catalog service.
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a new GormProductCatalog
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// FindProduct returns product info or shared.ErrNotFound
func (c *GormProductCatalog) FindProduct(ctx context.Context, id uuid.UUID) (*inventory.ProductInfo, error) {
	var m models.ProductModel
	if err := c.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	info := m.ToDomain()
	return &info, nil
}

// FindProducts lists products ordered by code. A filter with PageSize 0
// returns every product.
func (c *GormProductCatalog) FindProducts(ctx context.Context, filter shared.Filter) ([]inventory.ProductInfo, error) {
	query := c.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Order("code ASC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		switch filter.SearchField {
		case "code":
			query = query.Where("LOWER(code) LIKE LOWER(?)", pattern)
		case "name":
			query = query.Where("LOWER(name) LIKE LOWER(?)", pattern)
		default:
			query = query.Where("LOWER(code) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", pattern, pattern)
		}
	}
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.ProductModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]inventory.ProductInfo, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].ToDomain())
	}
	return products, nil
}

var _ inventory.ProductCatalog = (*GormProductCatalog)(nil)
