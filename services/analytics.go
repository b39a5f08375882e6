package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/efiling-api/databases"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/policy"
)

// dashboardHearings caps the upcoming hearings listed on a dashboard
const dashboardHearings = 5

// Analytics serves the dashboard counts
type Analytics struct {
	UDB databases.UserDatabase
	CDB databases.EFiledCaseDatabase
	HDB databases.HearingDatabase
	Now func() time.Time
}

// Stats returns the user, case and hearing counts. Admin only.
func (a *Analytics) Stats(ctx context.Context, actor policy.Actor) (*models.Stats, error) {
	if err := policy.AuthorizeRole(actor, policy.OpAdmin); err != nil {
		return nil, err
	}
	stats := &models.Stats{
		UsersByRole:   make(map[models.Role]int64, len(models.ValidRoles())),
		CasesByStatus: make(map[models.CaseStatus]int64, len(models.ValidCaseStatuses())),
	}
	for _, role := range models.ValidRoles() {
		n, err := a.UDB.CountDocuments(ctx, bson.M{"user.role": role})
		if err != nil {
			return nil, storeErr("failed to count users", err)
		}
		stats.UsersByRole[role] = n
		stats.TotalUsers += n
	}
	for _, s := range models.ValidCaseStatuses() {
		n, err := a.CDB.CountDocuments(ctx, bson.M{"efiledCase.status": s})
		if err != nil {
			return nil, storeErr("failed to count cases", err)
		}
		stats.CasesByStatus[s] = n
	}
	hearings, err := a.HDB.CountDocuments(ctx, bson.M{"hearing.status": models.HearingStatusScheduled})
	if err != nil {
		return nil, storeErr("failed to count hearings", err)
	}
	stats.ScheduledHearings = hearings
	return stats, nil
}

// Dashboard returns the case counts, today's hearings and the next hearings
// over the cases the actor may view. Every role has one.
func (a *Analytics) Dashboard(ctx context.Context, actor policy.Actor) (*models.Dashboard, error) {
	if err := policy.AuthorizeRole(actor, policy.OpViewCase); err != nil {
		return nil, err
	}
	d := &models.Dashboard{
		Role:          actor.Role,
		CasesByStatus: make(map[models.CaseStatus]int64, len(models.ValidCaseStatuses())),
	}
	for _, s := range models.ValidCaseStatuses() {
		filter := caseScope(actor)
		filter["efiledCase.status"] = s
		n, err := a.CDB.CountDocuments(ctx, filter)
		if err != nil {
			return nil, storeErr("failed to count cases", err)
		}
		d.CasesByStatus[s] = n
		d.TotalCases += n
	}
	d.CaseBacklog = d.CasesByStatus[models.CaseStatusPending] + d.CasesByStatus[models.CaseStatusProcessing]

	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	filter, err := hearingScope(ctx, a.CDB, actor)
	if err != nil {
		return nil, err
	}
	filter["hearing.status"] = bson.M{"$ne": models.HearingStatusCancelled}
	filter["hearing.scheduledAt"] = bson.M{"$gte": today, "$lt": today.AddDate(0, 0, 1)}
	if d.HearingsToday, err = a.HDB.CountDocuments(ctx, filter); err != nil {
		return nil, storeErr("failed to count hearings", err)
	}

	if d.UpcomingHearings, err = upcomingHearings(ctx, a.HDB, a.CDB, actor, now, dashboardHearings); err != nil {
		return nil, err
	}
	return d, nil
}

func (a *Analytics) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
