package databases

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultPageLimit is used when a listing asks for no or a negative limit
const DefaultPageLimit = 10

// MaxPageLimit caps the page size of every listing
const MaxPageLimit = 100

type mongoPaginate struct {
	limit int64
	page  int64
}

func newMongoPaginate(limit, page int) *mongoPaginate {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if page <= 0 {
		page = 1
	}
	return &mongoPaginate{
		limit: int64(limit),
		page:  int64(page),
	}
}

func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	l := mp.limit
	skip := mp.page*mp.limit - mp.limit
	fOpt := options.FindOptions{Limit: &l, Skip: &skip}

	return &fOpt
}

// Paginate returns find options for the given 1-based page, sorted by sortField descending
func Paginate(limit, page int, sortField string) *options.FindOptions {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	return opts.SetSort(bson.D{{Key: sortField, Value: -1}})
}

// PageBounds normalizes a requested limit and page the same way Paginate does
func PageBounds(limit, page int) (int, int) {
	mp := newMongoPaginate(limit, page)
	return int(mp.limit), int(mp.page)
}
