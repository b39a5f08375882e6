package databases

// go generate: mockery --name HearingDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/efiling-api/models"
)

const hearingName = "hearings"

// HearingDatabase contains the methods to use with the hearing database
type HearingDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Hearing, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Hearing, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	InsertOne(ctx context.Context, hearing models.Hearing) error
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}) (*models.Hearing, error)
	// UpdateOne returns the number of matched hearings
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
}

type hearingDatabase struct {
	db DatabaseHelper
}

// NewHearingDatabase initializes a new instance of hearing database with the provided db connection
func NewHearingDatabase(db DatabaseHelper) HearingDatabase {
	return &hearingDatabase{
		db: db,
	}
}

func (h *hearingDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Hearing, error) {
	hearing := &models.Hearing{}
	err := h.db.Collection(hearingName).FindOne(ctx, filter).Decode(&hearing)
	if err != nil {
		return nil, err
	}
	return hearing, nil
}

func (h *hearingDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Hearing, error) {
	var hearings []models.Hearing
	curr, err := h.db.Collection(hearingName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &hearings)
	if err != nil {
		return nil, err
	}
	return hearings, nil
}

func (h *hearingDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return h.db.Collection(hearingName).CountDocuments(ctx, filter)
}

func (h *hearingDatabase) InsertOne(ctx context.Context, hearing models.Hearing) error {
	_, err := h.db.Collection(hearingName).InsertOne(ctx, hearing)
	return err
}

func (h *hearingDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}) (*models.Hearing, error) {
	hearing := &models.Hearing{}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := h.db.Collection(hearingName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&hearing)
	if err != nil {
		return nil, err
	}
	return hearing, nil
}

func (h *hearingDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	res, err := h.db.Collection(hearingName).UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
