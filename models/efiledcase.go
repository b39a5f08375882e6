package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CaseStatus is the lifecycle status of an e-filed case
type CaseStatus string

// Predefined CaseStatus values
const (
	CaseStatusPending    CaseStatus = "pending"
	CaseStatusProcessing CaseStatus = "processing"
	CaseStatusApproved   CaseStatus = "approved"
	CaseStatusRejected   CaseStatus = "rejected"
)

// ValidCaseStatuses returns all valid CaseStatus values
func ValidCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusPending,
		CaseStatusProcessing,
		CaseStatusApproved,
		CaseStatusRejected,
	}
}

// IsValid checks if the CaseStatus value is one of the predefined constants
func (s CaseStatus) IsValid() bool {
	for _, validStatus := range ValidCaseStatuses() {
		if s == validStatus {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is allowed
func (s CaseStatus) IsTerminal() bool {
	return s == CaseStatusApproved || s == CaseStatusRejected
}

// Timeline actions recorded on a case
const (
	ActionCaseFiled        = "Case Filed"
	ActionStatusUpdated    = "Status Updated"
	ActionDocumentAdded    = "Document Added"
	ActionCaseUpdated      = "Case Updated"
	ActionJudgeAssigned    = "Judge Assigned"
	ActionHearingScheduled = "Hearing Scheduled"
)

// EFiledCase holds the structure for the efiledcases collection in mongo
type EFiledCase struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details EFiledCaseDetails  `json:"efiledCase" bson:"efiledCase"`
	Version int32              `json:"__v" bson:"__v"`
}

// EFiledCaseDetails holds the structure for the inner e-filed case details
type EFiledCaseDetails struct {
	Litigant LitigantInfo `json:"litigant" bson:"litigant"`
	Case     CaseInfo     `json:"case" bson:"case"`

	Status     CaseStatus         `json:"status" bson:"status"`
	CaseNumber string             `json:"caseNumber" bson:"caseNumber"`
	FilingDate primitive.DateTime `json:"filingDate" bson:"filingDate"`

	FiledBy        primitive.ObjectID  `json:"filedBy" bson:"filedBy"`
	AssignedJudge  *primitive.ObjectID `json:"assignedJudge,omitempty" bson:"assignedJudge,omitempty"`
	AssignedLawyer *primitive.ObjectID `json:"assignedLawyer,omitempty" bson:"assignedLawyer,omitempty"`

	// holds the national ID while the case is not in a terminal status
	OpenNationalID string `json:"-" bson:"openNationalId,omitempty"`

	Documents []CaseDocument  `json:"documents" bson:"documents"`
	Timeline  []TimelineEntry `json:"timeline" bson:"timeline"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// LitigantInfo is the litigant sub-record of an e-filed case
type LitigantInfo struct {
	// UserID links the case to a registered litigant, when there is one
	UserID       *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	Name         string              `json:"name" bson:"name"`
	MobileNumber string              `json:"mobileNumber" bson:"mobileNumber"`
	NationalID   string              `json:"nationalId" bson:"nationalId"`
	Address      string              `json:"address" bson:"address"`
	State        string              `json:"state" bson:"state"`
	District     string              `json:"district" bson:"district"`
}

// CaseInfo is the case sub-record of an e-filed case
type CaseInfo struct {
	CourtType        string    `json:"courtType" bson:"courtType"`
	CaseType         string    `json:"caseType" bson:"caseType"`
	CauseOfAction    string    `json:"causeOfAction" bson:"causeOfAction"`
	DateOfAction     time.Time `json:"dateOfAction" bson:"dateOfAction"`
	Subject          string    `json:"subject" bson:"subject"`
	Valuation        string    `json:"valuation" bson:"valuation"`
	CauseAgainstWhom string    `json:"causeAgainstWhom" bson:"causeAgainstWhom"`
	ActDetails       string    `json:"actDetails" bson:"actDetails"`
	SectionDetails   string    `json:"sectionDetails" bson:"sectionDetails"`
	Relief           string    `json:"relief" bson:"relief"`
}

// CaseDocument is a document attached to a case
type CaseDocument struct {
	Title      string             `json:"title" bson:"title"`
	FileURL    string             `json:"fileUrl" bson:"fileUrl"`
	UploadedBy primitive.ObjectID `json:"uploadedBy" bson:"uploadedBy"`
	UploadedAt primitive.DateTime `json:"uploadedAt" bson:"uploadedAt"`
}

// TimelineEntry records a single action taken on a case
type TimelineEntry struct {
	Action      string             `json:"action" bson:"action"`
	Description string             `json:"description" bson:"description"`
	PerformedBy primitive.ObjectID `json:"performedBy" bson:"performedBy"`
	Date        primitive.DateTime `json:"date" bson:"date"`
}

// CasePatch carries the editable metadata of a case. Nil fields are left untouched.
type CasePatch struct {
	MobileNumber     *string    `json:"mobileNumber,omitempty"`
	Address          *string    `json:"address,omitempty"`
	State            *string    `json:"state,omitempty"`
	District         *string    `json:"district,omitempty"`
	CourtType        *string    `json:"courtType,omitempty"`
	CaseType         *string    `json:"caseType,omitempty"`
	CauseOfAction    *string    `json:"causeOfAction,omitempty"`
	DateOfAction     *time.Time `json:"dateOfAction,omitempty"`
	Subject          *string    `json:"subject,omitempty"`
	Valuation        *string    `json:"valuation,omitempty"`
	CauseAgainstWhom *string    `json:"causeAgainstWhom,omitempty"`
	ActDetails       *string    `json:"actDetails,omitempty"`
	SectionDetails   *string    `json:"sectionDetails,omitempty"`
	Relief           *string    `json:"relief,omitempty"`
}

// CaseQuery filters a case listing
type CaseQuery struct {
	Status CaseStatus
	Search string
	Page   int
	Limit  int
}

// CaseList is a page of cases
type CaseList struct {
	Cases      []EFiledCase `json:"efiledCases"`
	Pagination Pagination   `json:"pagination"`
}

// Pagination describes the page returned by a listing
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// NationalIDScope decides how widely a litigant national ID must be unique
type NationalIDScope string

// Predefined NationalIDScope values
const (
	// NationalIDScopeEver allows one case per national ID, ever
	NationalIDScopeEver NationalIDScope = "ever"
	// NationalIDScopeOpen allows one pending or processing case per national ID
	NationalIDScopeOpen NationalIDScope = "open"
)

// IsValid checks if the NationalIDScope value is one of the predefined constants
func (s NationalIDScope) IsValid() bool {
	return s == NationalIDScopeEver || s == NationalIDScopeOpen
}
