package models

import "strings"

// RoleProfile is the role specific part of a registration. Each role has its
// own variant carrying its own required fields; the set of variants is closed.
type RoleProfile interface {
	Role() Role
	// MissingFields lists every required field that is absent or empty
	MissingFields() []string
	Stored() Profile
	roleProfile()
}

// AdminProfile has no required fields
type AdminProfile struct{}

// JudgeProfile requires the court and jurisdiction of the judge
type JudgeProfile struct {
	CourtID      string
	Jurisdiction string
}

// LawyerProfile requires bar registration details
type LawyerProfile struct {
	BarNumber         string
	Specialization    string
	YearsOfExperience *int
}

// LitigantProfile has no required fields
type LitigantProfile struct{}

// Role returns the role the profile belongs to
func (AdminProfile) Role() Role    { return RoleAdmin }
func (JudgeProfile) Role() Role    { return RoleJudge }
func (LawyerProfile) Role() Role   { return RoleLawyer }
func (LitigantProfile) Role() Role { return RoleLitigant }

// MissingFields lists the required profile fields that are empty. Admins and
// litigants have none.
func (AdminProfile) MissingFields() []string    { return nil }
func (LitigantProfile) MissingFields() []string { return nil }

// MissingFields lists the judge fields that are empty
func (p JudgeProfile) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(p.CourtID) == "" {
		missing = append(missing, "profile.courtId")
	}
	if strings.TrimSpace(p.Jurisdiction) == "" {
		missing = append(missing, "profile.jurisdiction")
	}
	return missing
}

// MissingFields lists the lawyer fields that are empty or out of range
func (p LawyerProfile) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(p.BarNumber) == "" {
		missing = append(missing, "profile.barNumber")
	}
	if strings.TrimSpace(p.Specialization) == "" {
		missing = append(missing, "profile.specialization")
	}
	if p.YearsOfExperience == nil || *p.YearsOfExperience < 0 {
		missing = append(missing, "profile.yearsOfExperience")
	}
	return missing
}

// Stored returns the profile as persisted on the user document
func (AdminProfile) Stored() Profile    { return Profile{} }
func (LitigantProfile) Stored() Profile { return Profile{} }

// Stored returns the trimmed judge profile
func (p JudgeProfile) Stored() Profile {
	return Profile{CourtID: strings.TrimSpace(p.CourtID), Jurisdiction: strings.TrimSpace(p.Jurisdiction)}
}

// Stored returns the trimmed lawyer profile
func (p LawyerProfile) Stored() Profile {
	return Profile{
		BarNumber:         strings.TrimSpace(p.BarNumber),
		Specialization:    strings.TrimSpace(p.Specialization),
		YearsOfExperience: p.YearsOfExperience,
	}
}

func (AdminProfile) roleProfile()    {}
func (JudgeProfile) roleProfile()    {}
func (LawyerProfile) roleProfile()   {}
func (LitigantProfile) roleProfile() {}

// ProfileInput is the loosely typed profile as it arrives in a registration request
type ProfileInput struct {
	CourtID           string `json:"courtId"`
	Jurisdiction      string `json:"jurisdiction"`
	BarNumber         string `json:"barNumber"`
	Specialization    string `json:"specialization"`
	YearsOfExperience *int   `json:"yearsOfExperience"`
}

// ProfileFor narrows the input to the variant of the given role. The second
// return value is false for an unknown role.
func ProfileFor(role Role, in ProfileInput) (RoleProfile, bool) {
	switch role {
	case RoleAdmin:
		return AdminProfile{}, true
	case RoleJudge:
		return JudgeProfile{CourtID: in.CourtID, Jurisdiction: in.Jurisdiction}, true
	case RoleLawyer:
		return LawyerProfile{BarNumber: in.BarNumber, Specialization: in.Specialization, YearsOfExperience: in.YearsOfExperience}, true
	case RoleLitigant:
		return LitigantProfile{}, true
	}
	return nil, false
}
