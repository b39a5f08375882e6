package databases

// go generate: mockery --name EFiledCaseDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/efiling-api/models"
)

const efiledCaseName = "efiledcases"

// EFiledCaseDatabase contains the methods to use with the e-filed case database
type EFiledCaseDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.EFiledCase, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.EFiledCase, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	InsertOne(ctx context.Context, efiledCase models.EFiledCase) error
	// FindOneAndUpdate applies update to the first case matching filter and
	// returns the case as it is after the update
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}) (*models.EFiledCase, error)
}

type efiledCaseDatabase struct {
	db DatabaseHelper
}

// NewEFiledCaseDatabase initializes a new instance of e-filed case database with the provided db connection
func NewEFiledCaseDatabase(db DatabaseHelper) EFiledCaseDatabase {
	return &efiledCaseDatabase{
		db: db,
	}
}

func (c *efiledCaseDatabase) FindOne(ctx context.Context, filter interface{}) (*models.EFiledCase, error) {
	efiledCase := &models.EFiledCase{}
	err := c.db.Collection(efiledCaseName).FindOne(ctx, filter).Decode(&efiledCase)
	if err != nil {
		return nil, err
	}
	return efiledCase, nil
}

func (c *efiledCaseDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.EFiledCase, error) {
	var efiledCases []models.EFiledCase
	curr, err := c.db.Collection(efiledCaseName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &efiledCases)
	if err != nil {
		return nil, err
	}
	return efiledCases, nil
}

func (c *efiledCaseDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(efiledCaseName).CountDocuments(ctx, filter)
}

func (c *efiledCaseDatabase) InsertOne(ctx context.Context, efiledCase models.EFiledCase) error {
	_, err := c.db.Collection(efiledCaseName).InsertOne(ctx, efiledCase)
	return err
}

func (c *efiledCaseDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}) (*models.EFiledCase, error) {
	efiledCase := &models.EFiledCase{}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := c.db.Collection(efiledCaseName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&efiledCase)
	if err != nil {
		return nil, err
	}
	return efiledCase, nil
}
