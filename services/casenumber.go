package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/efiling-api/databases"
)

// caseNumberAttempts bounds the allocate and insert loop of a filing
const caseNumberAttempts = 5

// CaseNumberAllocator hands out case numbers of the form <year>-<count+1>.
// Uniqueness is enforced by the case number index; callers retry on a
// duplicate key with a raised floor.
type CaseNumberAllocator struct {
	DB databases.EFiledCaseDatabase
}

// FormatCaseNumber renders the year and sequence, zero padded to six digits
func FormatCaseNumber(year int, seq int64) string {
	return fmt.Sprintf("%d-%06d", year, seq)
}

// Allocate returns the next case number and its sequence. The sequence is the
// number of stored cases plus one, and never lower than floor.
func (a CaseNumberAllocator) Allocate(ctx context.Context, now time.Time, floor int64) (string, int64, error) {
	count, err := a.DB.CountDocuments(ctx, bson.M{})
	if err != nil {
		return "", 0, err
	}
	seq := count + 1
	if seq < floor {
		seq = floor
	}
	return FormatCaseNumber(now.Year(), seq), seq, nil
}
