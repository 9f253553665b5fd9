// Package catalog implements the product query/scoring pipeline: request
// parameters to store query, pagination math and similar-product
// resolution.
package catalog

import (
	"net/url"
	"strconv"

	"github.com/ecocart/ecocart/internal/model"
	"github.com/ecocart/ecocart/internal/store"
)

const (
	// DefaultPage and DefaultLimit apply when the parameter is missing
	// or not a positive integer.
	DefaultPage  = 1
	DefaultLimit = 12
)

var sortKeys = map[string]store.Sort{
	"price_asc":  store.SortPriceAsc,
	"price_desc": store.SortPriceDesc,
	"carbon_asc": store.SortCarbonAsc,
	"newest":     store.SortNewest,
	"grade":      store.SortGrade,
}

// BuildListQuery translates recognized request parameters into a store
// query plus the resolved page/limit pair. Filter values that do not
// parse (an unknown grade, a non-numeric price bound) apply no filter
// rather than failing the request; unrecognized sort values fall back to
// the grade ordering.
func BuildListQuery(v url.Values) (store.Query, int, int) {
	page := positiveInt(v.Get("page"), DefaultPage)
	limit := positiveInt(v.Get("limit"), DefaultLimit)

	q := store.Query{
		Category: v.Get("category"),
		Search:   v.Get("search"),
		Sort:     store.SortGrade,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}
	if g, ok := model.ParseGrade(v.Get("grade")); ok {
		q.Grade = g
	}
	if f, ok := parseFloat(v.Get("minPrice")); ok {
		q.MinPrice = &f
	}
	if f, ok := parseFloat(v.Get("maxPrice")); ok {
		q.MaxPrice = &f
	}
	if s, ok := sortKeys[v.Get("sort")]; ok {
		q.Sort = s
	}
	return q, page, limit
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
