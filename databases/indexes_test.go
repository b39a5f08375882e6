package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/efiling-api/databases"
	"github.com/linesmerrill/efiling-api/databases/mocks"
	"github.com/linesmerrill/efiling-api/models"
)

func indexNames(idx []mongo.IndexModel) []string {
	var names []string
	for _, m := range idx {
		names = append(names, *m.Options.Name)
	}
	return names
}

func TestEnsureIndexes(t *testing.T) {
	tests := []struct {
		scope   models.NationalIDScope
		present string
		absent  string
	}{
		{models.NationalIDScopeEver, databases.NationalIDIndex, databases.OpenNationalIDIndex},
		{models.NationalIDScopeOpen, databases.OpenNationalIDIndex, databases.NationalIDIndex},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			created := map[string][]string{}
			dbHelper := &mocks.DatabaseHelper{}
			for _, name := range []string{"users", "efiledcases", "hearings"} {
				name := name
				coll := &mocks.CollectionHelper{}
				coll.On("CreateIndexes", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
					created[name] = indexNames(args.Get(1).([]mongo.IndexModel))
				})
				if name == "efiledcases" {
					coll.On("DropIndex", mock.Anything, tt.absent).Return(mongo.CommandError{Code: 27, Name: "IndexNotFound"})
				}
				dbHelper.On("Collection", name).Return(coll)
			}

			assert.NoError(t, databases.EnsureIndexes(context.Background(), dbHelper, tt.scope))

			assert.Contains(t, created["users"], databases.UserEmailIndex)
			assert.Contains(t, created["efiledcases"], databases.CaseNumberIndex)
			assert.Contains(t, created["efiledcases"], databases.CaseTextIndex)
			assert.Contains(t, created["efiledcases"], tt.present)
			assert.NotContains(t, created["efiledcases"], tt.absent)
			assert.Contains(t, created["hearings"], databases.HearingJoinLinkIndex)
			assert.Equal(t, tt.present, databases.NationalIDIndexFor(tt.scope))
		})
	}
}

func TestEnsureIndexesStopsOnError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	users := &mocks.CollectionHelper{}
	users.On("CreateIndexes", mock.Anything, mock.Anything).Return(errors.New("mocked-error"))
	dbHelper.On("Collection", "users").Return(users)

	err := databases.EnsureIndexes(context.Background(), dbHelper, models.NationalIDScopeEver)

	assert.ErrorContains(t, err, "users")
	dbHelper.AssertNotCalled(t, "Collection", "efiledcases")
}

func TestEnsureIndexesDropsOtherScopeIndex(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	users := &mocks.CollectionHelper{}
	users.On("CreateIndexes", mock.Anything, mock.Anything).Return(nil)
	cases := &mocks.CollectionHelper{}
	cases.On("CreateIndexes", mock.Anything, mock.Anything).Return(nil)
	cases.On("DropIndex", mock.Anything, databases.NationalIDIndex).Return(nil)
	hearings := &mocks.CollectionHelper{}
	hearings.On("CreateIndexes", mock.Anything, mock.Anything).Return(nil)
	dbHelper.On("Collection", "users").Return(users)
	dbHelper.On("Collection", "efiledcases").Return(cases)
	dbHelper.On("Collection", "hearings").Return(hearings)

	err := databases.EnsureIndexes(context.Background(), dbHelper, models.NationalIDScopeOpen)

	assert.NoError(t, err)
	cases.AssertCalled(t, "DropIndex", mock.Anything, databases.NationalIDIndex)
	cases.AssertNotCalled(t, "DropIndex", mock.Anything, databases.OpenNationalIDIndex)
}

func TestEnsureIndexesDropFailure(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	users := &mocks.CollectionHelper{}
	users.On("CreateIndexes", mock.Anything, mock.Anything).Return(nil)
	cases := &mocks.CollectionHelper{}
	cases.On("CreateIndexes", mock.Anything, mock.Anything).Return(nil)
	cases.On("DropIndex", mock.Anything, databases.OpenNationalIDIndex).Return(errors.New("mocked-error"))
	dbHelper.On("Collection", "users").Return(users)
	dbHelper.On("Collection", "efiledcases").Return(cases)

	err := databases.EnsureIndexes(context.Background(), dbHelper, models.NationalIDScopeEver)

	assert.ErrorContains(t, err, databases.OpenNationalIDIndex)
	dbHelper.AssertNotCalled(t, "Collection", "hearings")
}
