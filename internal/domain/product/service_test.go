// internal/domain/product/service_test.go
package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/artstore-backend/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newCatalogService opens an in-memory database and migrates the catalog
// tables, so the filter and pagination SQL runs against a real query engine.
func newCatalogService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection: each new connection to :memory: is a fresh database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Product{}, &ProductImage{}))

	return NewService(db, &config.Config{
		Catalog: config.CatalogConfig{
			PageSize:       6,
			LatestLimit:    4,
			FeaturedLimit:  4,
			MaxSearchLimit: 100,
		},
	})
}

func seedProduct(t *testing.T, s *Service, name string, priceCents int64, fields func(*Product)) *Product {
	t.Helper()
	p := &Product{
		Name:       name,
		Slug:       Slugify(name),
		Category:   "Painting",
		PriceCents: priceCents,
		Stock:      1,
	}
	if fields != nil {
		fields(p)
	}
	require.NoError(t, s.db.Create(p).Error)
	return p
}

func TestSearchProductsPriceWindow(t *testing.T) {
	s := newCatalogService(t)
	seedProduct(t, s, "Small Sketch", 1000, nil)
	mid := seedProduct(t, s, "Sunlit Meadow Study", 6000, nil)
	seedProduct(t, s, "Evening Harbor", 15000, nil)

	result, err := s.SearchProducts(context.Background(), &SearchRequest{Page: 1, Price: "51-100"})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, mid.ID, result.Products[0].ID)
	assert.Equal(t, int64(1), result.TotalCount)
	assert.Equal(t, 1, result.TotalPages)

	// Bounds are inclusive on both ends.
	result, err = s.SearchProducts(context.Background(), &SearchRequest{Page: 1, Price: "60-150"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalCount)
}

func TestSearchProductsDimensionAndQueryFilters(t *testing.T) {
	s := newCatalogService(t)
	oil := seedProduct(t, s, "Harbor in Oil", 6000, func(p *Product) {
		p.Medium = "Oil"
		p.Rating = 4.5
	})
	seedProduct(t, s, "Harbor in Ink", 6000, func(p *Product) {
		p.Medium = "Ink"
		p.Rating = 3.0
	})
	seedProduct(t, s, "Meadow in Oil", 6000, func(p *Product) {
		p.Medium = "Oil"
		p.Rating = 2.0
	})

	result, err := s.SearchProducts(context.Background(), &SearchRequest{Page: 1, Medium: "Oil", Rating: "4"})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, oil.ID, result.Products[0].ID)

	// Name search is a case-insensitive substring match.
	result, err = s.SearchProducts(context.Background(), &SearchRequest{Page: 1, Query: "harbor"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalCount)
}

func TestSearchProductsSortsByPrice(t *testing.T) {
	s := newCatalogService(t)
	seedProduct(t, s, "Mid", 6000, nil)
	seedProduct(t, s, "Cheap", 1000, nil)
	seedProduct(t, s, "Dear", 15000, nil)

	result, err := s.SearchProducts(context.Background(), &SearchRequest{Page: 1, Sort: SortLowest})
	require.NoError(t, err)
	require.Len(t, result.Products, 3)
	assert.Equal(t, "Cheap", result.Products[0].Name)
	assert.Equal(t, "Mid", result.Products[1].Name)
	assert.Equal(t, "Dear", result.Products[2].Name)

	result, err = s.SearchProducts(context.Background(), &SearchRequest{Page: 1, Sort: SortHighest})
	require.NoError(t, err)
	assert.Equal(t, "Dear", result.Products[0].Name)
}

func TestSearchProductsPagesAreDisjoint(t *testing.T) {
	s := newCatalogService(t)
	for i := 0; i < 8; i++ {
		seedProduct(t, s, fmt.Sprintf("Piece %02d", i), int64(1000+i), nil)
	}

	seen := map[uint]bool{}
	for page := 1; page <= 3; page++ {
		result, err := s.SearchProducts(context.Background(), &SearchRequest{Page: page, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(8), result.TotalCount)
		assert.Equal(t, 3, result.TotalPages)
		for _, p := range result.Products {
			assert.False(t, seen[p.ID], "product %d appeared on two pages", p.ID)
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 8)
}

func TestSearchProductsTotalPagesFromFilteredCount(t *testing.T) {
	s := newCatalogService(t)
	for i := 0; i < 4; i++ {
		seedProduct(t, s, fmt.Sprintf("Oil %02d", i), 6000, func(p *Product) { p.Medium = "Oil" })
	}
	for i := 0; i < 4; i++ {
		seedProduct(t, s, fmt.Sprintf("Ink %02d", i), 6000, func(p *Product) { p.Medium = "Ink" })
	}

	result, err := s.SearchProducts(context.Background(), &SearchRequest{Page: 1, Limit: 3, Medium: "Oil"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)

	// Page past the filtered set is valid and empty.
	result, err = s.SearchProducts(context.Background(), &SearchRequest{Page: 3, Limit: 3, Medium: "Oil"})
	require.NoError(t, err)
	assert.Empty(t, result.Products)
}
