// Package docs Court E-Filing API.
//
// Documentation of the Court E-Filing API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//     - bearer
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/services"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/auth/register auth registerEndpointID
// Registers a user with a role and role profile. Admin accounts cannot self register.
// responses:
//   201: identityResponse
//   400: errorResponse
//   409: errorResponse

// swagger:parameters registerEndpointID
type registerParamsWrapper struct {
	// in:body
	Body services.RegisterInput
}

// The signed in identity
// swagger:response identityResponse
type identityResponseWrapper struct {
	// in:body
	Body models.Identity
}

// swagger:route POST /api/v1/efiled-cases efiledCases createEFiledCaseID
// Files a new case. Lawyers only.
// responses:
//   201: efiledCaseResponse
//   400: errorResponse
//   403: errorResponse
//   409: errorResponse

// swagger:route GET /api/v1/efiled-cases/{case_id} efiledCases efiledCaseByID
// Gets a single case the caller may view.
// responses:
//   200: efiledCaseResponse
//   403: errorResponse
//   404: errorResponse

// swagger:route PUT /api/v1/efiled-cases/{case_id}/status efiledCases updateEFiledCaseStatusID
// Moves a case from pending or processing to processing, approved or rejected.
// responses:
//   200: efiledCaseResponse
//   400: errorResponse
//   403: errorResponse
//   409: errorResponse

// A single e-filed case with its documents and timeline
// swagger:response efiledCaseResponse
type efiledCaseResponseWrapper struct {
	// in:body
	Body models.EFiledCase
}

// swagger:route GET /api/v1/efiled-cases efiledCases listEFiledCasesID
// Lists the cases visible to the caller, newest filing first.
// responses:
//   200: efiledCasesResponse

// A page of e-filed cases
// swagger:response efiledCasesResponse
type efiledCasesResponseWrapper struct {
	// in:body
	Body models.CaseList
}

// swagger:route POST /api/v1/efiled-cases/{case_id}/hearings hearings scheduleHearingID
// Schedules a hearing and notifies its participants.
// responses:
//   201: hearingResponse
//   400: errorResponse
//   403: errorResponse

// A single hearing
// swagger:response hearingResponse
type hearingResponseWrapper struct {
	// in:body
	Body models.Hearing
}

// swagger:route GET /api/v1/analytics analytics statsID
// Dashboard counts. Admins only.
// responses:
//   200: statsResponse
//   403: errorResponse

// Dashboard counts
// swagger:response statsResponse
type statsResponseWrapper struct {
	// in:body
	Body models.Stats
}

// The error kind, message and every invalid field
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}

// swagger:route GET /api/v1/dashboard analytics dashboardID
// Case counts and upcoming hearings over the cases the caller may view.
// responses:
//   200: dashboardResponse
//   401: errorResponse

// Role scoped dashboard
// swagger:response dashboardResponse
type dashboardResponseWrapper struct {
	// in:body
	Body models.Dashboard
}

// swagger:route GET /api/v1/hearings hearings upcomingHearingsID
// Upcoming hearings across the caller's cases, soonest first.
// responses:
//   200: hearingsResponse
//   401: errorResponse

// Upcoming hearings
// swagger:response hearingsResponse
type hearingsResponseWrapper struct {
	// in:body
	Body []models.Hearing
}
