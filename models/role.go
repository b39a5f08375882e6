package models

// Role is the fixed role a user registers with
type Role string

// Predefined Role values
const (
	RoleAdmin    Role = "admin"
	RoleJudge    Role = "judge"
	RoleLawyer   Role = "lawyer"
	RoleLitigant Role = "litigant"
)

// ValidRoles returns all valid Role values
func ValidRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleJudge,
		RoleLawyer,
		RoleLitigant,
	}
}

// IsValid checks if the Role value is one of the predefined constants
func (r Role) IsValid() bool {
	for _, validRole := range ValidRoles() {
		if r == validRole {
			return true
		}
	}
	return false
}
