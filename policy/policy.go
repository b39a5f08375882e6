package policy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/efiling-api/apperrors"
	"github.com/linesmerrill/efiling-api/models"
)

// Actor is the authenticated caller of a core operation, as resolved by the
// identity provider
type Actor struct {
	ID   primitive.ObjectID
	Role models.Role
}

// Operation is a capability checked against the matrix
type Operation string

// Operations gated by the policy
const (
	OpCreateCase      Operation = "create_case"
	OpViewCase        Operation = "view_case"
	OpUpdateCase      Operation = "update_case"
	OpChangeStatus    Operation = "change_status"
	OpScheduleHearing Operation = "schedule_hearing"
	OpAddDocument     Operation = "add_document"
	OpAdmin           Operation = "admin"
)

// scope narrows a granted capability to the cases it covers
type scope int

const (
	scopeNone scope = iota
	scopeAll
	scopeAssignedJudge
	scopeOwnLawyer
	scopeLitigant
)

var matrix = map[models.Role]map[Operation]scope{
	models.RoleAdmin: {
		OpViewCase:        scopeAll,
		OpUpdateCase:      scopeAll,
		OpChangeStatus:    scopeAll,
		OpScheduleHearing: scopeAll,
		OpAddDocument:     scopeAll,
		OpAdmin:           scopeAll,
	},
	models.RoleJudge: {
		OpViewCase:        scopeAssignedJudge,
		OpUpdateCase:      scopeAssignedJudge,
		OpChangeStatus:    scopeAssignedJudge,
		OpScheduleHearing: scopeAssignedJudge,
		OpAddDocument:     scopeAll,
	},
	models.RoleLawyer: {
		OpCreateCase:      scopeAll,
		OpViewCase:        scopeOwnLawyer,
		OpUpdateCase:      scopeOwnLawyer,
		OpScheduleHearing: scopeOwnLawyer,
		OpAddDocument:     scopeOwnLawyer,
	},
	models.RoleLitigant: {
		OpViewCase: scopeLitigant,
	},
}

func lookup(role models.Role, op Operation) scope {
	ops, ok := matrix[role]
	if !ok {
		return scopeNone
	}
	return ops[op]
}

// AuthorizeRole is the role level pre-check run before a case is loaded. It
// only rejects roles that hold the capability on no case at all.
func AuthorizeRole(actor Actor, op Operation) error {
	if lookup(actor.Role, op) == scopeNone {
		return apperrors.Forbidden("role %s may not %s", roleName(actor.Role), op)
	}
	return nil
}

// Authorize decides whether actor may perform op on c. Everything not granted
// by the matrix is denied.
func Authorize(actor Actor, c *models.EFiledCase, op Operation) error {
	s := lookup(actor.Role, op)
	if s == scopeNone {
		return apperrors.Forbidden("role %s may not %s", roleName(actor.Role), op)
	}
	if s == scopeAll {
		return nil
	}
	if c == nil || !covers(s, actor.ID, c.Details) {
		return apperrors.Forbidden("%s is not permitted on case %s for this %s", op, caseRef(c), actor.Role)
	}
	return nil
}

func covers(s scope, id primitive.ObjectID, d models.EFiledCaseDetails) bool {
	if id.IsZero() {
		return false
	}
	switch s {
	case scopeAssignedJudge:
		return d.AssignedJudge != nil && *d.AssignedJudge == id
	case scopeOwnLawyer:
		return d.AssignedLawyer != nil && *d.AssignedLawyer == id
	case scopeLitigant:
		return d.Litigant.UserID != nil && *d.Litigant.UserID == id
	}
	return false
}

func roleName(r models.Role) string {
	if r == "" {
		return "<none>"
	}
	return string(r)
}

func caseRef(c *models.EFiledCase) string {
	if c == nil {
		return "<unknown>"
	}
	if c.Details.CaseNumber != "" {
		return c.Details.CaseNumber
	}
	return c.ID.Hex()
}
