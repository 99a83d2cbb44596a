package productrepo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goloja/internal/domain"
)

// matchNothing é um filtro que nenhum documento satisfaz ($in vazio).
var matchNothing = bson.E{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{}}}}

// buildFilter traduz a consulta normalizada num filtro AND campo a campo.
// O mesmo filtro é usado na busca e na contagem.
func buildFilter(q domain.ProductQuery) bson.D {
	filter := bson.D{}

	if q.NameContains != "" {
		filter = append(filter, bson.E{Key: "name", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(q.NameContains)},
			{Key: "$options", Value: "i"},
		}})
	}
	if q.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: q.Category})
	}
	if q.Coding != "" {
		filter = append(filter, bson.E{Key: "codings", Value: q.Coding})
	}
	if q.Price != nil {
		if !q.Price.Valid {
			filter = append(filter, matchNothing)
		} else {
			filter = append(filter, bson.E{Key: "price", Value: bson.D{
				{Key: "$gte", Value: q.Price.Min},
				{Key: "$lte", Value: q.Price.Max},
			}})
		}
	}
	if q.MinRating != nil {
		filter = append(filter, bson.E{Key: "rating", Value: bson.D{{Key: "$gte", Value: *q.MinRating}}})
	}

	return filter
}

// buildSort mapeia a ordenação; _id desc desempata todas elas para páginas estáveis.
func buildSort(order domain.SortOrder) bson.D {
	tieBreak := bson.E{Key: "_id", Value: -1}

	switch order {
	case domain.SortFeatured:
		return bson.D{{Key: "featured", Value: -1}, tieBreak}
	case domain.SortLowest:
		return bson.D{{Key: "price", Value: 1}, tieBreak}
	case domain.SortHighest:
		return bson.D{{Key: "price", Value: -1}, tieBreak}
	case domain.SortTopRated:
		return bson.D{{Key: "rating", Value: -1}, tieBreak}
	case domain.SortNewest:
		return bson.D{{Key: "createdAt", Value: -1}, tieBreak}
	default:
		return bson.D{tieBreak}
	}
}

// findOptions monta ordenação e paginação (skip = pageSize*(page-1), limit = pageSize).
func findOptions(q domain.ProductQuery) *options.FindOptions {
	return options.Find().
		SetSort(buildSort(q.Sort)).
		SetSkip(q.Skip()).
		SetLimit(int64(q.PageSize))
}
