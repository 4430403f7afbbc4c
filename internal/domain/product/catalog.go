// internal/domain/product/catalog.go
package product

import (
	"strconv"
	"strings"

	"github.com/your-org/artstore-backend/internal/pkg/apperr"
)

// Sort keys accepted by the catalog search.
const (
	SortNewest  = "newest"
	SortLowest  = "lowest"
	SortHighest = "highest"
	SortRating  = "rating"
)

// FilterAll disables a filter dimension.
const FilterAll = "all"

// SearchRequest carries the catalog search parameters. Every dimension
// accepts "all" (or empty) for "no constraint".
type SearchRequest struct {
	Query    string `form:"q"`
	Category string `form:"category"`
	Style    string `form:"style"`
	Subject  string `form:"subject"`
	Medium   string `form:"medium"`
	Material string `form:"material"`
	Size     string `form:"size"`
	Price    string `form:"price"`  // "all" or "min-max" in whole currency units
	Rating   string `form:"rating"` // "all" or minimum rating "1".."5"
	Sort     string `form:"sort"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit"` // 0 means the configured page size
}

// searchFilters is the validated form of a SearchRequest.
type searchFilters struct {
	query         string
	category      string
	style         string
	subject       string
	medium        string
	material      string
	size          string
	hasPriceRange bool
	minPriceCents int64
	maxPriceCents int64
	minRating     float64
	hasMinRating  bool
	sort          string
	page          int
	limit         int
}

// parseSearchRequest validates a SearchRequest into searchFilters.
// Malformed price or rating values are a ValidationError, never silently
// ignored.
func parseSearchRequest(req *SearchRequest, defaultLimit, maxLimit int) (*searchFilters, error) {
	f := &searchFilters{
		query:    normalizeDimension(req.Query),
		category: normalizeDimension(req.Category),
		style:    normalizeDimension(req.Style),
		subject:  normalizeDimension(req.Subject),
		medium:   normalizeDimension(req.Medium),
		material: normalizeDimension(req.Material),
		size:     normalizeDimension(req.Size),
		sort:     strings.TrimSpace(req.Sort),
		page:     req.Page,
		limit:    req.Limit,
	}

	if f.page < 1 {
		return nil, apperr.Validation("page must be a positive integer")
	}

	if f.limit <= 0 {
		f.limit = defaultLimit
	}
	if maxLimit > 0 && f.limit > maxLimit {
		f.limit = maxLimit
	}

	if price := normalizeDimension(req.Price); price != "" {
		min, max, err := ParsePriceRange(price)
		if err != nil {
			return nil, err
		}
		f.hasPriceRange = true
		f.minPriceCents = min
		f.maxPriceCents = max
	}

	if rating := normalizeDimension(req.Rating); rating != "" {
		min, err := ParseRatingFilter(rating)
		if err != nil {
			return nil, err
		}
		f.hasMinRating = true
		f.minRating = min
	}

	return f, nil
}

// normalizeDimension maps "all" and whitespace to the empty string.
func normalizeDimension(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, FilterAll) {
		return ""
	}
	return value
}

// ParsePriceRange parses a "min-max" price filter expressed in whole
// currency units into inclusive cent bounds.
func ParsePriceRange(value string) (minCents, maxCents int64, err error) {
	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return 0, 0, apperr.Validation("invalid price range %q: expected \"min-max\"", value)
	}

	min, err1 := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	max, err2 := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, apperr.Validation("invalid price range %q: bounds must be whole numbers", value)
	}
	if min < 0 || max < 0 {
		return 0, 0, apperr.Validation("invalid price range %q: bounds must not be negative", value)
	}
	if min > max {
		return 0, 0, apperr.Validation("invalid price range %q: min exceeds max", value)
	}

	return min * 100, max * 100, nil
}

// ParseRatingFilter parses a minimum-rating filter value.
func ParseRatingFilter(value string) (float64, error) {
	rating, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, apperr.Validation("invalid rating filter %q: must be a number", value)
	}
	if rating < 0 || rating > 5 {
		return 0, apperr.Validation("invalid rating filter %q: must be between 0 and 5", value)
	}
	return rating, nil
}

// OrderClause maps a sort key to its SQL ordering. Unrecognized keys fall
// back to newest-first. Every ordering is tie-broken by id for determinism.
func OrderClause(sort string) string {
	switch sort {
	case SortLowest:
		return "price_cents ASC, id ASC"
	case SortHighest:
		return "price_cents DESC, id ASC"
	case SortRating:
		return "rating DESC, id ASC"
	default:
		return "created_at DESC, id ASC"
	}
}

// TotalPages computes the page count for a filtered result set.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
