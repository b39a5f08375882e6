package databases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/efiling-api/databases"
)

func TestPaginate(t *testing.T) {
	opts := databases.Paginate(20, 3, "efiledCase.filingDate")

	assert.Equal(t, int64(20), *opts.Limit)
	assert.Equal(t, int64(40), *opts.Skip)
	assert.Equal(t, bson.D{{Key: "efiledCase.filingDate", Value: -1}}, opts.Sort)
}

func TestPageBounds(t *testing.T) {
	limit, page := databases.PageBounds(0, 0)
	assert.Equal(t, databases.DefaultPageLimit, limit)
	assert.Equal(t, 1, page)

	limit, _ = databases.PageBounds(1000, 2)
	assert.Equal(t, databases.MaxPageLimit, limit)
}
