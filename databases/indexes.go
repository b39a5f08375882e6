package databases

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/efiling-api/models"
)

// Index names. Duplicate key errors are told apart by the index they name.
const (
	UserEmailIndex       = "user_email_unique"
	CaseNumberIndex      = "efiledCase_caseNumber_unique"
	NationalIDIndex      = "efiledCase_nationalId_unique"
	OpenNationalIDIndex  = "efiledCase_openNationalId_unique"
	CaseTextIndex        = "efiledCase_text"
	HearingJoinLinkIndex = "hearing_joinLink_unique"
)

// NationalIDIndexFor returns the unique index that enforces the given scope
func NationalIDIndexFor(scope models.NationalIDScope) string {
	if scope == models.NationalIDScopeOpen {
		return OpenNationalIDIndex
	}
	return NationalIDIndex
}

func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user.email", Value: 1}},
			Options: options.Index().SetName(UserEmailIndex).SetUnique(true),
		},
	}
}

func efiledCaseIndexes(scope models.NationalIDScope) []mongo.IndexModel {
	idx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "efiledCase.caseNumber", Value: 1}},
			Options: options.Index().SetName(CaseNumberIndex).SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "efiledCase.litigant.name", Value: "text"},
				{Key: "efiledCase.case.subject", Value: "text"},
				{Key: "efiledCase.case.caseType", Value: "text"},
				{Key: "efiledCase.case.causeOfAction", Value: "text"},
			},
			Options: options.Index().SetName(CaseTextIndex),
		},
		{
			Keys:    bson.D{{Key: "efiledCase.assignedJudge", Value: 1}, {Key: "efiledCase.filingDate", Value: -1}},
			Options: options.Index().SetName("efiledCase_assignedJudge"),
		},
		{
			Keys:    bson.D{{Key: "efiledCase.assignedLawyer", Value: 1}, {Key: "efiledCase.filingDate", Value: -1}},
			Options: options.Index().SetName("efiledCase_assignedLawyer"),
		},
	}
	if scope == models.NationalIDScopeOpen {
		idx = append(idx, mongo.IndexModel{
			Keys:    bson.D{{Key: "efiledCase.openNationalId", Value: 1}},
			Options: options.Index().SetName(OpenNationalIDIndex).SetUnique(true).SetSparse(true),
		})
	} else {
		idx = append(idx, mongo.IndexModel{
			Keys:    bson.D{{Key: "efiledCase.litigant.nationalId", Value: 1}},
			Options: options.Index().SetName(NationalIDIndex).SetUnique(true),
		})
	}
	return idx
}

func hearingIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hearing.joinLink", Value: 1}},
			Options: options.Index().SetName(HearingJoinLinkIndex).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "hearing.caseId", Value: 1}, {Key: "hearing.scheduledAt", Value: 1}},
			Options: options.Index().SetName("hearing_caseId_scheduledAt"),
		},
		{
			Keys:    bson.D{{Key: "hearing.status", Value: 1}, {Key: "hearing.scheduledAt", Value: 1}},
			Options: options.Index().SetName("hearing_status_scheduledAt"),
		},
	}
}

// EnsureIndexes creates the unique and search indexes every collection relies on.
// Uniqueness of emails, case numbers, national IDs and join links is enforced here,
// not by the read-then-write checks in the services.
func EnsureIndexes(ctx context.Context, db DatabaseHelper, scope models.NationalIDScope) error {
	if err := db.Collection(userName).CreateIndexes(ctx, userIndexes()); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", userName, err)
	}
	cases := db.Collection(efiledCaseName)
	if err := cases.CreateIndexes(ctx, efiledCaseIndexes(scope)); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", efiledCaseName, err)
	}
	// a national ID index left over from the other scope would keep enforcing it
	stale := NationalIDIndex
	if scope != models.NationalIDScopeOpen {
		stale = OpenNationalIDIndex
	}
	if err := cases.DropIndex(ctx, stale); err != nil && !IsIndexNotFound(err) {
		return fmt.Errorf("failed to drop %s index %s: %w", efiledCaseName, stale, err)
	}
	if err := db.Collection(hearingName).CreateIndexes(ctx, hearingIndexes()); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", hearingName, err)
	}
	return nil
}
