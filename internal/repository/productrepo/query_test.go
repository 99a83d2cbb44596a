package productrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"goloja/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildFilter_Empty(t *testing.T) {
	assert.Empty(t, buildFilter(domain.ProductQuery{}))
}

func TestBuildFilter_AllCriteria(t *testing.T) {
	q := domain.ProductQuery{
		NameContains: "shirt",
		Category:     "Shirts",
		Coding:       "NK-01",
		MinRating:    floatPtr(4),
		Price:        &domain.PriceRange{Min: 50, Max: 130, Valid: true},
	}

	want := bson.D{
		{Key: "name", Value: bson.D{{Key: "$regex", Value: "shirt"}, {Key: "$options", Value: "i"}}},
		{Key: "category", Value: "Shirts"},
		{Key: "codings", Value: "NK-01"},
		{Key: "price", Value: bson.D{{Key: "$gte", Value: float64(50)}, {Key: "$lte", Value: float64(130)}}},
		{Key: "rating", Value: bson.D{{Key: "$gte", Value: float64(4)}}},
	}
	assert.Equal(t, want, buildFilter(q))
}

func TestBuildFilter_EscapesRegexMetacharacters(t *testing.T) {
	f := buildFilter(domain.ProductQuery{NameContains: "a.b(c)"})

	assert.Equal(t, bson.D{
		{Key: "name", Value: bson.D{{Key: "$regex", Value: `a\.b\(c\)`}, {Key: "$options", Value: "i"}}},
	}, f)
}

func TestBuildFilter_InvalidPriceMatchesNothing(t *testing.T) {
	f := buildFilter(domain.ProductQuery{Price: &domain.PriceRange{Valid: false}})

	assert.Equal(t, bson.D{matchNothing}, f)
}

func TestBuildSort(t *testing.T) {
	tie := bson.E{Key: "_id", Value: -1}
	cases := map[domain.SortOrder]bson.D{
		domain.SortFeatured: {{Key: "featured", Value: -1}, tie},
		domain.SortLowest:   {{Key: "price", Value: 1}, tie},
		domain.SortHighest:  {{Key: "price", Value: -1}, tie},
		domain.SortTopRated: {{Key: "rating", Value: -1}, tie},
		domain.SortNewest:   {{Key: "createdAt", Value: -1}, tie},
		domain.SortDefault:  {tie},
		"desconhecido":      {tie},
	}
	for order, want := range cases {
		assert.Equal(t, want, buildSort(order), "order=%q", order)
	}
}

func TestFindOptions_Pagination(t *testing.T) {
	opts := findOptions(domain.ProductQuery{Page: 3, PageSize: 10, Sort: domain.SortLowest})

	if assert.NotNil(t, opts.Skip) && assert.NotNil(t, opts.Limit) {
		assert.Equal(t, int64(20), *opts.Skip)
		assert.Equal(t, int64(10), *opts.Limit)
	}
	assert.Equal(t, buildSort(domain.SortLowest), opts.Sort)
}
