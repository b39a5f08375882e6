package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/linesmerrill/efiling-api/apperrors"
	"github.com/linesmerrill/efiling-api/databases"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/notify"
	"github.com/linesmerrill/efiling-api/policy"
)

const (
	joinLinkAttempts = 3
	notifyTimeout    = 30 * time.Second
	reminderWindow   = 24 * time.Hour
)

// Hearings schedules hearings on cases and tracks their status
type Hearings struct {
	DB       databases.HearingDatabase
	CDB      databases.EFiledCaseDatabase
	Notifier notify.Notifier
	// LinkBase prefixes join links in notifications, e.g. https://court.example/meeting
	LinkBase    string
	NewJoinLink func() string
	Now         func() time.Time

	// dispatch runs notifications off the request path
	dispatch func(func())
}

// NewHearings returns the hearing scheduler
func NewHearings(db databases.HearingDatabase, cdb databases.EFiledCaseDatabase, n notify.Notifier, linkBase string) *Hearings {
	if n == nil {
		n = notify.Nop{}
	}
	return &Hearings{
		DB:          db,
		CDB:         cdb,
		Notifier:    n,
		LinkBase:    strings.TrimRight(linkBase, "/"),
		NewJoinLink: NewJoinLink,
		Now:         time.Now,
		dispatch:    func(f func()) { go f() },
	}
}

// NewJoinLink returns a fresh meeting identifier
func NewJoinLink() string {
	return "meeting-" + uuid.NewString()
}

// ScheduleHearing creates a hearing on a case and notifies its participants.
// A failed notification never fails the scheduling.
func (h *Hearings) ScheduleHearing(ctx context.Context, caseID string, in models.HearingInput, actor policy.Actor) (*models.Hearing, error) {
	if err := policy.AuthorizeRole(actor, policy.OpScheduleHearing); err != nil {
		return nil, err
	}
	efiledCase, err := loadCase(ctx, h.CDB, caseID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, efiledCase, policy.OpScheduleHearing); err != nil {
		return nil, err
	}

	now := h.now()
	in.Title = strings.TrimSpace(in.Title)
	in.Venue = strings.TrimSpace(in.Venue)
	if fields := h.validate(in, now); len(fields) > 0 {
		return nil, apperrors.Validation("invalid hearing", fields...)
	}
	if in.Title == "" {
		in.Title = "Hearing for case " + efiledCase.Details.CaseNumber
	}

	stamp := primitive.NewDateTimeFromTime(now)
	hearing := models.Hearing{
		Details: models.HearingDetails{
			CaseID:          efiledCase.ID,
			CaseNumber:      efiledCase.Details.CaseNumber,
			Title:           in.Title,
			ScheduledAt:     in.ScheduledAt.UTC(),
			DurationMinutes: in.DurationMinutes,
			Venue:           in.Venue,
			Notes:           strings.TrimSpace(in.Notes),
			Participants:    in.Participants,
			Status:          models.HearingStatusScheduled,
			CreatedBy:       actor.ID,
			CreatedAt:       stamp,
			UpdatedAt:       stamp,
		},
	}

	inserted := false
	for attempt := 0; attempt < joinLinkAttempts; attempt++ {
		hearing.ID = primitive.NewObjectID()
		hearing.Details.JoinLink = h.NewJoinLink()
		err = h.DB.InsertOne(ctx, hearing)
		if err == nil {
			inserted = true
			break
		}
		if !databases.IsDuplicateKeyOn(err, databases.HearingJoinLinkIndex) {
			return nil, storeErr("failed to insert hearing", err)
		}
		zap.S().Warnw("join link collision, regenerating", "joinLink", hearing.Details.JoinLink, "attempt", attempt+1)
	}
	if !inserted {
		return nil, apperrors.Conflict("could not allocate a unique join link for case %s", efiledCase.Details.CaseNumber)
	}

	_, err = h.CDB.FindOneAndUpdate(ctx, bson.M{"_id": efiledCase.ID}, bson.M{
		"$set": bson.M{"efiledCase.updatedAt": stamp},
		"$push": bson.M{"efiledCase.timeline": models.TimelineEntry{
			Action:      models.ActionHearingScheduled,
			Description: fmt.Sprintf("Hearing %q scheduled for %s", hearing.Details.Title, hearing.Details.ScheduledAt.Format(time.RFC1123)),
			PerformedBy: actor.ID,
			Date:        stamp,
		}},
	})
	if err != nil {
		// the hearing is stored; the case keeps its timeline without the entry
		zap.S().Errorw("failed to record hearing on case timeline", "caseId", caseID, "hearingId", hearing.ID.Hex(), "error", err)
	}

	zap.S().Infow("hearing scheduled", "hearingId", hearing.ID.Hex(), "caseId", caseID, "by", actor.ID.Hex())
	h.notifyAsync(hearing, notify.EventHearingScheduled)
	return &hearing, nil
}

// AdvanceStatus moves a hearing along its monotonic status table
func (h *Hearings) AdvanceStatus(ctx context.Context, hearingID string, status models.HearingStatus, actor policy.Actor) (*models.Hearing, error) {
	if err := policy.AuthorizeRole(actor, policy.OpScheduleHearing); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, CheckHearingTransition("", status)
	}
	current, err := h.load(ctx, hearingID)
	if err != nil {
		return nil, err
	}
	if err := h.authorizeOnCase(ctx, current, actor, policy.OpScheduleHearing); err != nil {
		return nil, err
	}
	if err := CheckHearingTransition(current.Details.Status, status); err != nil {
		return nil, err
	}

	filter := bson.M{"_id": current.ID, "hearing.status": current.Details.Status}
	update := bson.M{"$set": bson.M{
		"hearing.status":    status,
		"hearing.updatedAt": primitive.NewDateTimeFromTime(h.now()),
	}}
	updated, err := h.DB.FindOneAndUpdate(ctx, filter, update)
	if err != nil {
		if !databases.IsNotFound(err) {
			return nil, storeErr("failed to update hearing status", err)
		}
		latest, lerr := h.load(ctx, hearingID)
		if lerr != nil {
			return nil, lerr
		}
		if terr := CheckHearingTransition(latest.Details.Status, status); terr != nil {
			return nil, terr
		}
		return nil, apperrors.Conflict("hearing %s was modified concurrently, retry", hearingID)
	}

	zap.S().Infow("hearing status updated", "hearingId", hearingID, "from", current.Details.Status, "to", status)
	if status == models.HearingStatusCancelled {
		h.notifyAsync(*updated, notify.EventHearingCancelled)
	}
	return updated, nil
}

// Get returns a hearing on a case the actor may view
func (h *Hearings) Get(ctx context.Context, hearingID string, actor policy.Actor) (*models.Hearing, error) {
	hearing, err := h.load(ctx, hearingID)
	if err != nil {
		return nil, err
	}
	if err := h.authorizeOnCase(ctx, hearing, actor, policy.OpViewCase); err != nil {
		return nil, err
	}
	return hearing, nil
}

// ListForCase returns the hearings of a case, earliest first
func (h *Hearings) ListForCase(ctx context.Context, caseID string, actor policy.Actor) ([]models.Hearing, error) {
	efiledCase, err := loadCase(ctx, h.CDB, caseID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, efiledCase, policy.OpViewCase); err != nil {
		return nil, err
	}
	hearings, err := h.DB.Find(ctx, bson.M{"hearing.caseId": efiledCase.ID}, options.Find().SetSort(bson.D{{Key: "hearing.scheduledAt", Value: 1}}))
	if err != nil {
		return nil, storeErr("failed to list hearings", err)
	}
	if hearings == nil {
		hearings = []models.Hearing{}
	}
	return hearings, nil
}

// ListForActor returns the upcoming scheduled hearings the actor takes part in
// or that belong to a case the actor may view, soonest first
func (h *Hearings) ListForActor(ctx context.Context, actor policy.Actor, limit int) ([]models.Hearing, error) {
	if err := policy.AuthorizeRole(actor, policy.OpViewCase); err != nil {
		return nil, err
	}
	limit, _ = databases.PageBounds(limit, 1)
	return upcomingHearings(ctx, h.DB, h.CDB, actor, h.now(), limit)
}

// SendReminders notifies the participants of scheduled hearings starting within
// the next day. Each hearing is claimed before it is notified so a reminder
// goes out once. It returns the number of reminders sent.
func (h *Hearings) SendReminders(ctx context.Context) (int, error) {
	now := h.now()
	filter := bson.M{
		"hearing.status": models.HearingStatusScheduled,
		"hearing.scheduledAt": bson.M{
			"$gt":  now,
			"$lte": now.Add(reminderWindow),
		},
		"hearing.reminderSentAt": nil,
	}
	hearings, err := h.DB.Find(ctx, filter)
	if err != nil {
		return 0, storeErr("failed to find hearings needing a reminder", err)
	}

	sent := 0
	for _, hearing := range hearings {
		matched, err := h.DB.UpdateOne(ctx,
			bson.M{"_id": hearing.ID, "hearing.reminderSentAt": nil},
			bson.M{"$set": bson.M{"hearing.reminderSentAt": primitive.NewDateTimeFromTime(now)}},
		)
		if err != nil {
			zap.S().Errorw("failed to claim hearing reminder", "hearingId", hearing.ID.Hex(), "error", err)
			continue
		}
		if matched == 0 {
			continue
		}
		if err := h.Notifier.Notify(ctx, h.message(hearing, notify.EventHearingReminder)); err != nil {
			zap.S().Errorw("failed to send hearing reminder", "hearingId", hearing.ID.Hex(), "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

// hearingScope returns a new filter matching the hearings the actor takes part
// in or that belong to a case the actor may view
func hearingScope(ctx context.Context, cdb databases.EFiledCaseDatabase, actor policy.Actor) (bson.M, error) {
	if actor.Role == models.RoleAdmin {
		return bson.M{}, nil
	}
	cases, err := cdb.Find(ctx, caseScope(actor), options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, storeErr("failed to list cases", err)
	}
	caseIDs := make([]primitive.ObjectID, 0, len(cases))
	for _, c := range cases {
		caseIDs = append(caseIDs, c.ID)
	}
	return bson.M{"$or": []bson.M{
		{"hearing.participants.userId": actor.ID},
		{"hearing.caseId": bson.M{"$in": caseIDs}},
	}}, nil
}

func upcomingHearings(ctx context.Context, hdb databases.HearingDatabase, cdb databases.EFiledCaseDatabase, actor policy.Actor, now time.Time, limit int) ([]models.Hearing, error) {
	filter, err := hearingScope(ctx, cdb, actor)
	if err != nil {
		return nil, err
	}
	filter["hearing.status"] = models.HearingStatusScheduled
	filter["hearing.scheduledAt"] = bson.M{"$gte": now}

	opts := options.Find().
		SetSort(bson.D{{Key: "hearing.scheduledAt", Value: 1}}).
		SetLimit(int64(limit))
	hearings, err := hdb.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("failed to list upcoming hearings", err)
	}
	if hearings == nil {
		hearings = []models.Hearing{}
	}
	return hearings, nil
}

func (h *Hearings) validate(in models.HearingInput, now time.Time) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if in.ScheduledAt.IsZero() {
		fields = append(fields, apperrors.Required("scheduledAt"))
	} else if !in.ScheduledAt.After(now) {
		fields = append(fields, apperrors.FieldError{Field: "scheduledAt", Message: "scheduledAt must be in the future"})
	}
	if in.DurationMinutes <= 0 {
		fields = append(fields, apperrors.FieldError{Field: "durationMinutes", Message: "durationMinutes must be greater than zero"})
	}
	if len(in.Participants) == 0 {
		fields = append(fields, apperrors.FieldError{Field: "participants", Message: "at least one participant is required"})
	}
	for i, p := range in.Participants {
		if p.Role != models.RoleJudge && p.Role != models.RoleLawyer && p.Role != models.RoleLitigant {
			fields = append(fields, apperrors.FieldError{
				Field:   fmt.Sprintf("participants[%d].role", i),
				Message: "participant role must be one of judge, lawyer, litigant",
			})
		}
		if strings.TrimSpace(p.Email) == "" {
			fields = append(fields, apperrors.Required(fmt.Sprintf("participants[%d].email", i)))
		}
	}
	return fields
}

func (h *Hearings) load(ctx context.Context, hearingID string) (*models.Hearing, error) {
	oid, err := primitive.ObjectIDFromHex(hearingID)
	if err != nil {
		return nil, apperrors.NotFound("hearing %s not found", hearingID)
	}
	hearing, err := h.DB.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		if databases.IsNotFound(err) {
			return nil, apperrors.NotFound("hearing %s not found", hearingID)
		}
		return nil, storeErr("failed to get hearing", err)
	}
	return hearing, nil
}

func (h *Hearings) authorizeOnCase(ctx context.Context, hearing *models.Hearing, actor policy.Actor, op policy.Operation) error {
	efiledCase, err := loadCase(ctx, h.CDB, hearing.Details.CaseID.Hex())
	if err != nil {
		return err
	}
	return policy.Authorize(actor, efiledCase, op)
}

func (h *Hearings) notifyAsync(hearing models.Hearing, event string) {
	msg := h.message(hearing, event)
	h.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := h.Notifier.Notify(ctx, msg); err != nil {
			zap.S().Errorw("failed to notify hearing participants", "hearingId", hearing.ID.Hex(), "event", event, "error", err)
		}
	})
}

func (h *Hearings) message(hearing models.Hearing, event string) notify.Message {
	d := hearing.Details
	recipients := make([]notify.Recipient, 0, len(d.Participants))
	for _, p := range d.Participants {
		r := notify.Recipient{Name: p.Name, Email: p.Email}
		if p.UserID != nil {
			r.UserID = p.UserID.Hex()
		}
		recipients = append(recipients, r)
	}

	var subject, intro string
	switch event {
	case notify.EventHearingCancelled:
		subject = "Hearing cancelled: " + d.Title
		intro = fmt.Sprintf("The hearing for case %s has been cancelled.", d.CaseNumber)
	case notify.EventHearingReminder:
		subject = "Hearing reminder: " + d.Title
		intro = fmt.Sprintf("This is a reminder of the upcoming hearing for case %s.", d.CaseNumber)
	default:
		subject = "Hearing scheduled: " + d.Title
		intro = fmt.Sprintf("A hearing has been scheduled for case %s.", d.CaseNumber)
	}

	link := d.JoinLink
	if h.LinkBase != "" {
		link = h.LinkBase + "/" + d.JoinLink
	}
	fields := []notify.Field{
		{Label: "Case number", Value: d.CaseNumber},
		{Label: "Title", Value: d.Title},
		{Label: "Date", Value: d.ScheduledAt.Format(time.RFC1123)},
		{Label: "Duration", Value: fmt.Sprintf("%d minutes", d.DurationMinutes)},
	}
	if d.Venue != "" {
		fields = append(fields, notify.Field{Label: "Venue", Value: d.Venue})
	}
	return notify.Message{
		Recipients: recipients,
		Subject:    subject,
		Event:      event,
		Intro:      intro,
		Fields:     fields,
		Link:       link,
	}
}

func (h *Hearings) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
