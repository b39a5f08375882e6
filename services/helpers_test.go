package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/notify"
	"github.com/linesmerrill/efiling-api/policy"
)

var (
	adminActor    = policy.Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	judgeActor    = policy.Actor{ID: primitive.NewObjectID(), Role: models.RoleJudge}
	lawyerActor   = policy.Actor{ID: primitive.NewObjectID(), Role: models.RoleLawyer}
	litigantActor = policy.Actor{ID: primitive.NewObjectID(), Role: models.RoleLitigant}
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)
}

func dupKey(index string) error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: efiling.coll index: " + index + " dup key: { : \"x\" }",
	}}}
}

func validLitigant() models.LitigantInfo {
	return models.LitigantInfo{
		Name:         "Asha Verma",
		MobileNumber: "9876543210",
		NationalID:   "123456789012",
		Address:      "12 Lake Road",
		State:        "Karnataka",
		District:     "Bengaluru Urban",
	}
}

func validCaseInfo() models.CaseInfo {
	return models.CaseInfo{
		CourtType:        "District Court",
		CaseType:         "Civil",
		CauseOfAction:    "Breach of contract",
		DateOfAction:     time.Date(2023, time.November, 2, 0, 0, 0, 0, time.UTC),
		Subject:          "Unpaid invoices",
		Valuation:        "250000",
		CauseAgainstWhom: "Acme Traders",
		ActDetails:       "Indian Contract Act",
		SectionDetails:   "Section 73",
		Relief:           "Recovery of dues",
	}
}

// filedCase is a pending case filed by lawyerActor, assigned to judgeActor and
// linked to litigantActor
func filedCase() *models.EFiledCase {
	lawyer := lawyerActor.ID
	judge := judgeActor.ID
	litigantUser := litigantActor.ID
	l := validLitigant()
	l.UserID = &litigantUser
	stamp := primitive.NewDateTimeFromTime(fixedNow())
	return &models.EFiledCase{
		ID: primitive.NewObjectID(),
		Details: models.EFiledCaseDetails{
			Litigant:       l,
			Case:           validCaseInfo(),
			Status:         models.CaseStatusPending,
			CaseNumber:     "2024-000001",
			FilingDate:     stamp,
			FiledBy:        lawyer,
			AssignedLawyer: &lawyer,
			AssignedJudge:  &judge,
			Documents:      []models.CaseDocument{},
			Timeline: []models.TimelineEntry{{
				Action:      models.ActionCaseFiled,
				Description: "New e-filing case submitted",
				PerformedBy: lawyer,
				Date:        stamp,
			}},
		},
	}
}

type recordingNotifier struct {
	mutex sync.Mutex
	msgs  []notify.Message
	err   error
}

func (r *recordingNotifier) Notify(_ context.Context, msg notify.Message) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.msgs = append(r.msgs, msg)
	return r.err
}

func (r *recordingNotifier) messages() []notify.Message {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]notify.Message(nil), r.msgs...)
}
