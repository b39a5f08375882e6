package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HearingStatus is the status of a scheduled hearing
type HearingStatus string

// Predefined HearingStatus values
const (
	HearingStatusScheduled HearingStatus = "scheduled"
	HearingStatusOngoing   HearingStatus = "ongoing"
	HearingStatusCompleted HearingStatus = "completed"
	HearingStatusCancelled HearingStatus = "cancelled"
)

// ValidHearingStatuses returns all valid HearingStatus values
func ValidHearingStatuses() []HearingStatus {
	return []HearingStatus{
		HearingStatusScheduled,
		HearingStatusOngoing,
		HearingStatusCompleted,
		HearingStatusCancelled,
	}
}

// IsValid checks if the HearingStatus value is one of the predefined constants
func (s HearingStatus) IsValid() bool {
	for _, validStatus := range ValidHearingStatuses() {
		if s == validStatus {
			return true
		}
	}
	return false
}

// Hearing holds the structure for the hearings collection in mongo
type Hearing struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details HearingDetails     `json:"hearing" bson:"hearing"`
	Version int32              `json:"__v" bson:"__v"`
}

// HearingDetails holds the structure for the inner hearing details
type HearingDetails struct {
	CaseID     primitive.ObjectID `json:"caseId" bson:"caseId"`
	CaseNumber string             `json:"caseNumber" bson:"caseNumber"` // denormalized for notifications

	Title           string    `json:"title" bson:"title"`
	ScheduledAt     time.Time `json:"scheduledAt" bson:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes" bson:"durationMinutes"`
	Venue           string    `json:"venue" bson:"venue"`
	Notes           string    `json:"notes" bson:"notes"`

	Participants []Participant `json:"participants" bson:"participants"`

	JoinLink string        `json:"joinLink" bson:"joinLink"`
	Status   HearingStatus `json:"status" bson:"status"`

	CreatedBy      primitive.ObjectID  `json:"createdBy" bson:"createdBy"`
	ReminderSentAt *primitive.DateTime `json:"reminderSentAt" bson:"reminderSentAt"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Participant is a role tagged hearing participant
type Participant struct {
	Role   Role                `json:"role" bson:"role"` // judge, lawyer or litigant
	UserID *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	Name   string              `json:"name" bson:"name"`
	Email  string              `json:"email" bson:"email"`
}

// HearingInput is what a caller supplies to schedule a hearing
type HearingInput struct {
	Title           string        `json:"title"`
	ScheduledAt     time.Time     `json:"scheduledAt"`
	DurationMinutes int           `json:"durationMinutes"`
	Venue           string        `json:"venue"`
	Notes           string        `json:"notes"`
	Participants    []Participant `json:"participants"`
}
