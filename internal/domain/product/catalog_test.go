// internal/domain/product/catalog_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
)

func TestParsePriceRange(t *testing.T) {
	min, max, err := ParsePriceRange("51-100")
	require.NoError(t, err)
	assert.Equal(t, int64(5100), min)
	assert.Equal(t, int64(10000), max)

	min, max, err = ParsePriceRange("0-0")
	require.NoError(t, err)
	assert.Equal(t, int64(0), min)
	assert.Equal(t, int64(0), max)

	min, max, err = ParsePriceRange(" 10 - 20 ")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), min)
	assert.Equal(t, int64(2000), max)
}

func TestParsePriceRangeMalformed(t *testing.T) {
	cases := []string{"", "100", "10-20-30", "abc-100", "10-xyz", "10.5-20", "-5-10", "100-50"}
	for _, value := range cases {
		_, _, err := ParsePriceRange(value)
		require.Error(t, err, "value %q", value)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "value %q", value)
	}
}

func TestParseRatingFilter(t *testing.T) {
	rating, err := ParseRatingFilter("4")
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating)

	rating, err = ParseRatingFilter("0")
	require.NoError(t, err)
	assert.Equal(t, 0.0, rating)

	rating, err = ParseRatingFilter("5")
	require.NoError(t, err)
	assert.Equal(t, 5.0, rating)

	for _, value := range []string{"six", "-1", "5.1", ""} {
		_, err := ParseRatingFilter(value)
		require.Error(t, err, "value %q", value)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "value %q", value)
	}
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "price_cents ASC, id ASC", OrderClause(SortLowest))
	assert.Equal(t, "price_cents DESC, id ASC", OrderClause(SortHighest))
	assert.Equal(t, "rating DESC, id ASC", OrderClause(SortRating))
	assert.Equal(t, "created_at DESC, id ASC", OrderClause(SortNewest))
	assert.Equal(t, "created_at DESC, id ASC", OrderClause("bogus"))
	assert.Equal(t, "created_at DESC, id ASC", OrderClause(""))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 6))
	assert.Equal(t, 1, TotalPages(1, 6))
	assert.Equal(t, 1, TotalPages(6, 6))
	assert.Equal(t, 2, TotalPages(7, 6))
	assert.Equal(t, 17, TotalPages(100, 6))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestParseSearchRequestDefaults(t *testing.T) {
	f, err := parseSearchRequest(&SearchRequest{Page: 1}, 6, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, f.page)
	assert.Equal(t, 6, f.limit)
	assert.False(t, f.hasPriceRange)
	assert.False(t, f.hasMinRating)
}

func TestParseSearchRequestAllIsNoConstraint(t *testing.T) {
	req := &SearchRequest{
		Category: "all",
		Style:    "All",
		Price:    "ALL",
		Rating:   "all",
		Page:     1,
	}
	f, err := parseSearchRequest(req, 6, 100)
	require.NoError(t, err)
	assert.Empty(t, f.category)
	assert.Empty(t, f.style)
	assert.False(t, f.hasPriceRange)
	assert.False(t, f.hasMinRating)
}

func TestParseSearchRequestLimitCap(t *testing.T) {
	f, err := parseSearchRequest(&SearchRequest{Page: 1, Limit: 500}, 6, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, f.limit)
}

func TestParseSearchRequestRejectsBadPage(t *testing.T) {
	for _, page := range []int{0, -1} {
		_, err := parseSearchRequest(&SearchRequest{Page: page}, 6, 100)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestParseSearchRequestPropagatesFilterErrors(t *testing.T) {
	_, err := parseSearchRequest(&SearchRequest{Page: 1, Price: "cheap"}, 6, 100)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = parseSearchRequest(&SearchRequest{Page: 1, Rating: "many"}, 6, 100)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestParseSearchRequestPriceAndRating(t *testing.T) {
	req := &SearchRequest{Page: 2, Price: "51-100", Rating: "3", Sort: SortLowest}
	f, err := parseSearchRequest(req, 6, 100)
	require.NoError(t, err)
	assert.True(t, f.hasPriceRange)
	assert.Equal(t, int64(5100), f.minPriceCents)
	assert.Equal(t, int64(10000), f.maxPriceCents)
	assert.True(t, f.hasMinRating)
	assert.Equal(t, 3.0, f.minRating)
	assert.Equal(t, SortLowest, f.sort)
	assert.Equal(t, 2, f.page)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "evening-harbor", Slugify("Evening Harbor"))
	assert.Equal(t, "harbor-print-open-edition", Slugify("Harbor Print, Open Edition"))
	assert.Equal(t, "oil-on-canvas-12", Slugify("  Oil on Canvas #12  "))
	assert.Equal(t, "", Slugify("!!!"))
}
