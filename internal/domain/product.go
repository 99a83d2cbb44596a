package domain

import (
	"time"
)

// Product é o item do catálogo.
// slug, coding e name são únicos (índices únicos no Document Store).
type Product struct {
	ID           string    `json:"_id" bson:"_id"`
	Name         string    `json:"name" bson:"name" validate:"required"`
	Slug         string    `json:"slug" bson:"slug" validate:"required"`
	Category     string    `json:"category" bson:"category" validate:"required"`
	Brand        string    `json:"brand" bson:"brand" validate:"required"`
	Size         string    `json:"size" bson:"size" validate:"required"`
	Coding       string    `json:"codings" bson:"codings" validate:"required"`
	Image        string    `json:"image" bson:"image" validate:"required"`
	Description  string    `json:"description" bson:"description" validate:"required"`
	Price        float64   `json:"price" bson:"price" validate:"gte=0"`
	PriceIncome  float64   `json:"priceIncome" bson:"priceIncome" validate:"gte=0"`
	PriceOutcome float64   `json:"priceOutcome" bson:"priceOutcome" validate:"gte=0"`
	CountInStock int       `json:"countInStock" bson:"countInStock" validate:"gte=0"`
	Rating       float64   `json:"rating" bson:"rating" validate:"gte=0,lte=5"`
	NumReviews   int       `json:"numReviews" bson:"numReviews" validate:"gte=0"`
	Featured     bool      `json:"featured" bson:"featured"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductSearchParams são os parâmetros crus de /products/search, como chegam na query string.
// Vazio ou "all" significa "sem filtro".
type ProductSearchParams struct {
	Query    string
	Category string
	Coding   string
	Price    string // "min-max"
	Rating   string
	Order    string
	Page     string
	PageSize string
}

// SortOrder é a ordenação normalizada do catálogo.
type SortOrder string

const (
	SortFeatured SortOrder = "featured"
	SortLowest   SortOrder = "lowest"
	SortHighest  SortOrder = "highest"
	SortTopRated SortOrder = "toprated"
	SortNewest   SortOrder = "newest"
	SortDefault  SortOrder = "" // _id desc
)

// PriceRange é um intervalo fechado [Min, Max].
// Valid=false indica que a faixa informada não pôde ser interpretada:
// nenhum produto deve casar.
type PriceRange struct {
	Min   float64
	Max   float64
	Valid bool
}

// ProductQuery é a consulta normalizada do catálogo, pronta para o repositório.
// Ponteiros nil significam "sem filtro".
type ProductQuery struct {
	NameContains string
	Category     string
	Coding       string
	MinRating    *float64
	Price        *PriceRange
	Sort         SortOrder
	Page         int
	PageSize     int
}

// Skip devolve o deslocamento da página.
func (q ProductQuery) Skip() int64 {
	return int64(q.PageSize) * int64(q.Page-1)
}

// ProductPage é o envelope paginado do catálogo.
type ProductPage struct {
	Products      []Product `json:"products"`
	CountProducts int64     `json:"countProducts"`
	Page          int       `json:"page"`
	Pages         int64     `json:"pages"`
}

// TotalPages calcula ceil(total/pageSize).
func TotalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}
