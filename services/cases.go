package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/linesmerrill/efiling-api/apperrors"
	"github.com/linesmerrill/efiling-api/databases"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/policy"
)

// Cases owns the e-filed case record and its lifecycle
type Cases struct {
	DB      databases.EFiledCaseDatabase
	UDB     databases.UserDatabase
	Numbers CaseNumberAllocator
	Scope   models.NationalIDScope
	Now     func() time.Time
}

// NewCases returns the case lifecycle service
func NewCases(db databases.EFiledCaseDatabase, udb databases.UserDatabase, scope models.NationalIDScope) *Cases {
	return &Cases{
		DB:      db,
		UDB:     udb,
		Numbers: CaseNumberAllocator{DB: db},
		Scope:   scope,
		Now:     time.Now,
	}
}

// FileCase validates and stores a new e-filed case on behalf of the filing lawyer
func (c *Cases) FileCase(ctx context.Context, litigant models.LitigantInfo, info models.CaseInfo, actor policy.Actor) (*models.EFiledCase, error) {
	if err := policy.AuthorizeRole(actor, policy.OpCreateCase); err != nil {
		return nil, err
	}

	litigant = trimLitigant(litigant)
	info = trimCaseInfo(info)
	if fields := missingFilingFields(litigant, info); len(fields) > 0 {
		return nil, apperrors.Validation("missing required fields", fields...)
	}
	if litigant.UserID != nil {
		u, err := c.UDB.FindOne(ctx, bson.M{"_id": *litigant.UserID})
		if err != nil && !databases.IsNotFound(err) {
			return nil, storeErr("failed to find litigant", err)
		}
		if err != nil || u.Details.Role != models.RoleLitigant {
			return nil, apperrors.Validation("invalid litigant", apperrors.FieldError{
				Field:   "litigant.userId",
				Message: "litigant.userId must reference a registered litigant",
			})
		}
	}

	n, err := c.DB.CountDocuments(ctx, c.nationalIDFilter(litigant.NationalID))
	if err != nil {
		return nil, storeErr("failed to check national ID", err)
	}
	if n > 0 {
		return nil, c.nationalIDConflict(litigant.NationalID)
	}

	now := c.now()
	stamp := primitive.NewDateTimeFromTime(now)
	lawyer := actor.ID
	efiledCase := models.EFiledCase{
		Details: models.EFiledCaseDetails{
			Litigant:       litigant,
			Case:           info,
			Status:         models.CaseStatusPending,
			FilingDate:     stamp,
			FiledBy:        actor.ID,
			AssignedLawyer: &lawyer,
			OpenNationalID: litigant.NationalID,
			Documents:      []models.CaseDocument{},
			Timeline: []models.TimelineEntry{{
				Action:      models.ActionCaseFiled,
				Description: "New e-filing case submitted",
				PerformedBy: actor.ID,
				Date:        stamp,
			}},
			CreatedAt: stamp,
			UpdatedAt: stamp,
		},
	}

	var floor int64
	var lastErr error
	for attempt := 0; attempt < caseNumberAttempts; attempt++ {
		number, seq, err := c.Numbers.Allocate(ctx, now, floor)
		if err != nil {
			return nil, storeErr("failed to allocate case number", err)
		}
		efiledCase.ID = primitive.NewObjectID()
		efiledCase.Details.CaseNumber = number

		err = c.DB.InsertOne(ctx, efiledCase)
		if err == nil {
			zap.S().Infow("case filed", "caseId", efiledCase.ID.Hex(), "caseNumber", number, "by", actor.ID.Hex())
			return &efiledCase, nil
		}
		switch {
		case databases.IsDuplicateKeyOn(err, databases.CaseNumberIndex):
			zap.S().Debugw("case number taken, retrying", "caseNumber", number, "attempt", attempt+1)
			floor = seq + 1
			lastErr = err
		case databases.IsDuplicateKeyOn(err, databases.NationalIDIndexFor(c.Scope)):
			return nil, c.nationalIDConflict(litigant.NationalID)
		default:
			return nil, storeErr("failed to insert case", err)
		}
	}
	return nil, apperrors.Unavailable("could not allocate a case number, retry", lastErr)
}

// UpdateStatus moves a case through the lifecycle and records it in the timeline
func (c *Cases) UpdateStatus(ctx context.Context, caseID string, status models.CaseStatus, actor policy.Actor) (*models.EFiledCase, error) {
	if err := policy.AuthorizeRole(actor, policy.OpChangeStatus); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, CheckCaseTransition("", status)
	}
	current, err := c.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, current, policy.OpChangeStatus); err != nil {
		return nil, err
	}
	if err := CheckCaseTransition(current.Details.Status, status); err != nil {
		return nil, err
	}

	now := primitive.NewDateTimeFromTime(c.now())
	update := bson.M{
		"$set": bson.M{
			"efiledCase.status":    status,
			"efiledCase.updatedAt": now,
		},
		"$push": bson.M{"efiledCase.timeline": models.TimelineEntry{
			Action:      models.ActionStatusUpdated,
			Description: fmt.Sprintf("Case status changed to %s", status),
			PerformedBy: actor.ID,
			Date:        now,
		}},
	}
	if status.IsTerminal() {
		update["$unset"] = bson.M{"efiledCase.openNationalId": ""}
	}
	filter := bson.M{"_id": current.ID, "efiledCase.status": current.Details.Status}

	updated, err := c.DB.FindOneAndUpdate(ctx, filter, update)
	if err != nil {
		if !databases.IsNotFound(err) {
			return nil, storeErr("failed to update case status", err)
		}
		// another writer moved the case between our read and write
		latest, lerr := c.load(ctx, caseID)
		if lerr != nil {
			return nil, lerr
		}
		if terr := CheckCaseTransition(latest.Details.Status, status); terr != nil {
			return nil, terr
		}
		return nil, apperrors.Conflict("case %s was modified concurrently, retry", current.Details.CaseNumber)
	}
	zap.S().Infow("case status updated", "caseId", caseID, "from", current.Details.Status, "to", status, "by", actor.ID.Hex())
	return updated, nil
}

// AddDocument records an already stored document on the case
func (c *Cases) AddDocument(ctx context.Context, caseID, title, locator string, actor policy.Actor) (*models.EFiledCase, error) {
	if err := policy.AuthorizeRole(actor, policy.OpAddDocument); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	locator = strings.TrimSpace(locator)
	var fields []apperrors.FieldError
	if title == "" {
		fields = append(fields, apperrors.Required("title"))
	}
	if locator == "" {
		fields = append(fields, apperrors.Required("fileUrl"))
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation("invalid document", fields...)
	}

	current, err := c.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, current, policy.OpAddDocument); err != nil {
		return nil, err
	}

	now := primitive.NewDateTimeFromTime(c.now())
	update := bson.M{
		"$set": bson.M{"efiledCase.updatedAt": now},
		"$push": bson.M{
			"efiledCase.documents": models.CaseDocument{
				Title:      title,
				FileURL:    locator,
				UploadedBy: actor.ID,
				UploadedAt: now,
			},
			"efiledCase.timeline": models.TimelineEntry{
				Action:      models.ActionDocumentAdded,
				Description: fmt.Sprintf("New document %q was added", title),
				PerformedBy: actor.ID,
				Date:        now,
			},
		},
	}
	return c.apply(ctx, current, update, "failed to add document")
}

// CanAddDocument checks that the actor may attach documents to the case, so
// uploads are rejected before the file reaches the document store
func (c *Cases) CanAddDocument(ctx context.Context, caseID string, actor policy.Actor) error {
	if err := policy.AuthorizeRole(actor, policy.OpAddDocument); err != nil {
		return err
	}
	current, err := c.load(ctx, caseID)
	if err != nil {
		return err
	}
	return policy.Authorize(actor, current, policy.OpAddDocument)
}

// UpdateCaseFields edits the case metadata and litigant contact details
func (c *Cases) UpdateCaseFields(ctx context.Context, caseID string, patch models.CasePatch, actor policy.Actor) (*models.EFiledCase, error) {
	if err := policy.AuthorizeRole(actor, policy.OpUpdateCase); err != nil {
		return nil, err
	}
	set, fields := patchSet(patch)
	if len(fields) > 0 {
		return nil, apperrors.Validation("invalid case fields", fields...)
	}
	if len(set) == 0 {
		return nil, apperrors.Validation("nothing to update", apperrors.FieldError{
			Field:   "patch",
			Message: "at least one editable field is required",
		})
	}

	current, err := c.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, current, policy.OpUpdateCase); err != nil {
		return nil, err
	}

	now := primitive.NewDateTimeFromTime(c.now())
	set["efiledCase.updatedAt"] = now
	update := bson.M{
		"$set": set,
		"$push": bson.M{"efiledCase.timeline": models.TimelineEntry{
			Action:      models.ActionCaseUpdated,
			Description: "Case details were modified",
			PerformedBy: actor.ID,
			Date:        now,
		}},
	}
	return c.apply(ctx, current, update, "failed to update case")
}

// AssignJudge sets the judge of a case. Admin only.
func (c *Cases) AssignJudge(ctx context.Context, caseID, judgeID string, actor policy.Actor) (*models.EFiledCase, error) {
	if err := policy.AuthorizeRole(actor, policy.OpAdmin); err != nil {
		return nil, err
	}
	invalidJudge := apperrors.Validation("invalid judge", apperrors.FieldError{
		Field:   "judgeId",
		Message: "judgeId must reference a registered judge",
	})
	jid, err := primitive.ObjectIDFromHex(judgeID)
	if err != nil {
		return nil, invalidJudge
	}
	judge, err := c.UDB.FindOne(ctx, bson.M{"_id": jid})
	if err != nil {
		if databases.IsNotFound(err) {
			return nil, invalidJudge
		}
		return nil, storeErr("failed to find judge", err)
	}
	if judge.Details.Role != models.RoleJudge {
		return nil, invalidJudge
	}

	current, err := c.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, current, policy.OpAdmin); err != nil {
		return nil, err
	}

	now := primitive.NewDateTimeFromTime(c.now())
	update := bson.M{
		"$set": bson.M{
			"efiledCase.assignedJudge": jid,
			"efiledCase.updatedAt":     now,
		},
		"$push": bson.M{"efiledCase.timeline": models.TimelineEntry{
			Action:      models.ActionJudgeAssigned,
			Description: fmt.Sprintf("Judge %s was assigned to the case", judge.Details.FullName),
			PerformedBy: actor.ID,
			Date:        now,
		}},
	}
	return c.apply(ctx, current, update, "failed to assign judge")
}

// Get returns a case the actor may view
func (c *Cases) Get(ctx context.Context, caseID string, actor policy.Actor) (*models.EFiledCase, error) {
	efiledCase, err := c.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, efiledCase, policy.OpViewCase); err != nil {
		return nil, err
	}
	return efiledCase, nil
}

// List returns the page of cases visible to the actor, newest filing first
func (c *Cases) List(ctx context.Context, actor policy.Actor, q models.CaseQuery) (*models.CaseList, error) {
	if err := policy.AuthorizeRole(actor, policy.OpViewCase); err != nil {
		return nil, err
	}
	filter := caseScope(actor)
	if q.Status != "" {
		if !q.Status.IsValid() {
			return nil, CheckCaseTransition("", q.Status)
		}
		filter["efiledCase.status"] = q.Status
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		filter["$text"] = bson.M{"$search": s}
	}

	limit, page := databases.PageBounds(q.Limit, q.Page)
	total, err := c.DB.CountDocuments(ctx, filter)
	if err != nil {
		return nil, storeErr("failed to count cases", err)
	}
	cases, err := c.DB.Find(ctx, filter, databases.Paginate(limit, page, "efiledCase.filingDate"))
	if err != nil {
		return nil, storeErr("failed to list cases", err)
	}
	if cases == nil {
		cases = []models.EFiledCase{}
	}
	return &models.CaseList{Cases: cases, Pagination: pagination(total, limit, page)}, nil
}

// caseScope returns a new filter matching the cases the actor may view
func caseScope(actor policy.Actor) bson.M {
	switch actor.Role {
	case models.RoleJudge:
		return bson.M{"efiledCase.assignedJudge": actor.ID}
	case models.RoleLawyer:
		return bson.M{"efiledCase.assignedLawyer": actor.ID}
	case models.RoleLitigant:
		return bson.M{"efiledCase.litigant.userId": actor.ID}
	}
	return bson.M{}
}

func (c *Cases) load(ctx context.Context, caseID string) (*models.EFiledCase, error) {
	return loadCase(ctx, c.DB, caseID)
}

// apply runs a single document update that pushes a timeline entry
func (c *Cases) apply(ctx context.Context, current *models.EFiledCase, update bson.M, what string) (*models.EFiledCase, error) {
	updated, err := c.DB.FindOneAndUpdate(ctx, bson.M{"_id": current.ID}, update)
	if err != nil {
		if databases.IsNotFound(err) {
			return nil, apperrors.NotFound("case %s not found", current.ID.Hex())
		}
		return nil, storeErr(what, err)
	}
	return updated, nil
}

func (c *Cases) nationalIDFilter(nationalID string) bson.M {
	if c.Scope == models.NationalIDScopeOpen {
		return bson.M{"efiledCase.openNationalId": nationalID}
	}
	return bson.M{"efiledCase.litigant.nationalId": nationalID}
}

func (c *Cases) nationalIDConflict(nationalID string) error {
	if c.Scope == models.NationalIDScopeOpen {
		return apperrors.Conflict("an open case with national ID %s already exists", nationalID)
	}
	return apperrors.Conflict("a case with national ID %s already exists", nationalID)
}

func (c *Cases) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func loadCase(ctx context.Context, db databases.EFiledCaseDatabase, caseID string) (*models.EFiledCase, error) {
	oid, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return nil, apperrors.NotFound("case %s not found", caseID)
	}
	efiledCase, err := db.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		if databases.IsNotFound(err) {
			return nil, apperrors.NotFound("case %s not found", caseID)
		}
		return nil, storeErr("failed to get case", err)
	}
	return efiledCase, nil
}

func trimLitigant(l models.LitigantInfo) models.LitigantInfo {
	l.Name = strings.TrimSpace(l.Name)
	l.MobileNumber = strings.TrimSpace(l.MobileNumber)
	l.NationalID = strings.TrimSpace(l.NationalID)
	l.Address = strings.TrimSpace(l.Address)
	l.State = strings.TrimSpace(l.State)
	l.District = strings.TrimSpace(l.District)
	return l
}

func trimCaseInfo(i models.CaseInfo) models.CaseInfo {
	i.CourtType = strings.TrimSpace(i.CourtType)
	i.CaseType = strings.TrimSpace(i.CaseType)
	i.CauseOfAction = strings.TrimSpace(i.CauseOfAction)
	i.Subject = strings.TrimSpace(i.Subject)
	i.Valuation = strings.TrimSpace(i.Valuation)
	i.CauseAgainstWhom = strings.TrimSpace(i.CauseAgainstWhom)
	i.ActDetails = strings.TrimSpace(i.ActDetails)
	i.SectionDetails = strings.TrimSpace(i.SectionDetails)
	i.Relief = strings.TrimSpace(i.Relief)
	return i
}

func missingFilingFields(l models.LitigantInfo, i models.CaseInfo) []apperrors.FieldError {
	required := []struct {
		field string
		value string
	}{
		{"litigant.name", l.Name},
		{"litigant.mobileNumber", l.MobileNumber},
		{"litigant.nationalId", l.NationalID},
		{"litigant.address", l.Address},
		{"litigant.state", l.State},
		{"litigant.district", l.District},
		{"case.courtType", i.CourtType},
		{"case.caseType", i.CaseType},
		{"case.causeOfAction", i.CauseOfAction},
		{"case.subject", i.Subject},
		{"case.valuation", i.Valuation},
		{"case.causeAgainstWhom", i.CauseAgainstWhom},
		{"case.actDetails", i.ActDetails},
		{"case.sectionDetails", i.SectionDetails},
		{"case.relief", i.Relief},
	}
	var fields []apperrors.FieldError
	for _, r := range required {
		if r.value == "" {
			fields = append(fields, apperrors.Required(r.field))
		}
	}
	if i.DateOfAction.IsZero() {
		fields = append(fields, apperrors.Required("case.dateOfAction"))
	}
	return fields
}

// patchSet turns a patch into $set paths. A field present but blank is invalid.
func patchSet(p models.CasePatch) (bson.M, []apperrors.FieldError) {
	set := bson.M{}
	var fields []apperrors.FieldError
	str := func(path, name string, v *string) {
		if v == nil {
			return
		}
		s := strings.TrimSpace(*v)
		if s == "" {
			fields = append(fields, apperrors.FieldError{Field: name, Message: name + " cannot be empty"})
			return
		}
		set[path] = s
	}
	str("efiledCase.litigant.mobileNumber", "litigant.mobileNumber", p.MobileNumber)
	str("efiledCase.litigant.address", "litigant.address", p.Address)
	str("efiledCase.litigant.state", "litigant.state", p.State)
	str("efiledCase.litigant.district", "litigant.district", p.District)
	str("efiledCase.case.courtType", "case.courtType", p.CourtType)
	str("efiledCase.case.caseType", "case.caseType", p.CaseType)
	str("efiledCase.case.causeOfAction", "case.causeOfAction", p.CauseOfAction)
	str("efiledCase.case.subject", "case.subject", p.Subject)
	str("efiledCase.case.valuation", "case.valuation", p.Valuation)
	str("efiledCase.case.causeAgainstWhom", "case.causeAgainstWhom", p.CauseAgainstWhom)
	str("efiledCase.case.actDetails", "case.actDetails", p.ActDetails)
	str("efiledCase.case.sectionDetails", "case.sectionDetails", p.SectionDetails)
	str("efiledCase.case.relief", "case.relief", p.Relief)
	if p.DateOfAction != nil {
		if p.DateOfAction.IsZero() {
			fields = append(fields, apperrors.FieldError{Field: "case.dateOfAction", Message: "case.dateOfAction cannot be empty"})
		} else {
			set["efiledCase.case.dateOfAction"] = *p.DateOfAction
		}
	}
	return set, fields
}
