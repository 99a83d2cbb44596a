package productservice

import (
	"strconv"
	"strings"

	"goloja/internal/domain"
)

const (
	DefaultPageSize = 30
	MaxPageSize     = 100

	// anyValue é o marcador de "sem filtro" aceito pelo front-end.
	anyValue = "all"
)

// BuildQuery normaliza os parâmetros crus da busca do catálogo.
// Nunca falha: valores inválidos de paginação caem nos padrões e uma
// faixa de preço ilegível vira uma consulta que não casa nada.
func BuildQuery(params domain.ProductSearchParams) domain.ProductQuery {
	q := domain.ProductQuery{
		NameContains: filterValue(params.Query),
		Category:     filterValue(params.Category),
		Coding:       filterValue(params.Coding),
		Sort:         parseSort(params.Order),
		Page:         parsePage(params.Page),
		PageSize:     parsePageSize(params.PageSize),
	}

	if price := filterValue(params.Price); price != "" {
		r := parsePriceRange(price)
		q.Price = &r
	}
	if rating := filterValue(params.Rating); rating != "" {
		// rating ilegível é ignorado
		if v, err := strconv.ParseFloat(rating, 64); err == nil {
			q.MinRating = &v
		}
	}

	return q
}

// PageQuery monta a consulta da listagem administrativa (sem filtros).
func PageQuery(page, pageSize string) domain.ProductQuery {
	return domain.ProductQuery{
		Page:     parsePage(page),
		PageSize: parsePageSize(pageSize),
	}
}

func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, anyValue) {
		return ""
	}
	return v
}

func parseSort(order string) domain.SortOrder {
	switch s := domain.SortOrder(strings.ToLower(strings.TrimSpace(order))); s {
	case domain.SortFeatured, domain.SortLowest, domain.SortHighest, domain.SortTopRated, domain.SortNewest:
		return s
	default:
		return domain.SortDefault
	}
}

func parsePage(v string) int {
	page, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parsePageSize(v string) int {
	size, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// parsePriceRange interpreta "min-max". Qualquer limite ilegível invalida a faixa.
func parsePriceRange(v string) domain.PriceRange {
	minStr, maxStr, ok := strings.Cut(v, "-")
	if !ok {
		return domain.PriceRange{}
	}
	lo, errMin := strconv.ParseFloat(strings.TrimSpace(minStr), 64)
	hi, errMax := strconv.ParseFloat(strings.TrimSpace(maxStr), 64)
	if errMin != nil || errMax != nil {
		return domain.PriceRange{}
	}
	return domain.PriceRange{Min: lo, Max: hi, Valid: true}
}
