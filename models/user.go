package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo
type User struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details UserDetails        `json:"user" bson:"user"`
	Version int32              `json:"__v" bson:"__v"`
}

// UserDetails holds the structure for the inner user structure as defined in the users collection in mongo
type UserDetails struct {
	FullName  string             `json:"fullName" bson:"fullName"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      Role               `json:"role" bson:"role"`
	Profile   Profile            `json:"profile" bson:"profile"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Profile is the persisted shape of a RoleProfile. Only the fields of the
// user's role are populated.
type Profile struct {
	CourtID           string `json:"courtId,omitempty" bson:"courtId,omitempty"`
	Jurisdiction      string `json:"jurisdiction,omitempty" bson:"jurisdiction,omitempty"`
	BarNumber         string `json:"barNumber,omitempty" bson:"barNumber,omitempty"`
	Specialization    string `json:"specialization,omitempty" bson:"specialization,omitempty"`
	YearsOfExperience *int   `json:"yearsOfExperience,omitempty" bson:"yearsOfExperience,omitempty"`
}

// Identity is what the directory hands back after registration or login
type Identity struct {
	ID       string `json:"id"`
	FullName string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Identity returns the public identity of the user
func (u User) Identity() Identity {
	return Identity{
		ID:       u.ID.Hex(),
		FullName: u.Details.FullName,
		Email:    u.Details.Email,
		Role:     u.Details.Role,
	}
}

// UserList is a page of users
type UserList struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}
