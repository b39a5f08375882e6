package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/efiling-api/api"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/services"
)

// Hearing exported for testing purposes
type Hearing struct {
	Hearings *services.Hearings
}

// ScheduleHearingHandler schedules a hearing on a case
func (h Hearing) ScheduleHearingHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var in models.HearingInput
	if err := decode(w, r, &in); err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	hearing, err := h.Hearings.ScheduleHearing(ctx, mux.Vars(r)["case_id"], in, actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, hearing)
}

// CaseHearingsHandler returns the hearings of a case, soonest first
func (h Hearing) CaseHearingsHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	hearings, err := h.Hearings.ListForCase(ctx, mux.Vars(r)["case_id"], actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hearings)
}

// HearingsHandler returns the upcoming hearings of the signed in user across
// their cases, soonest first
func (h Hearing) HearingsHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	limit, _ := pageParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	hearings, err := h.Hearings.ListForActor(ctx, actor, limit)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hearings)
}

// HearingByIDHandler returns a single hearing
func (h Hearing) HearingByIDHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	hearing, err := h.Hearings.Get(ctx, mux.Vars(r)["hearing_id"], actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hearing)
}

// UpdateHearingStatusHandler moves a hearing through its lifecycle
func (h Hearing) UpdateHearingStatusHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	var in statusRequest
	if err := decode(w, r, &in); err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	hearing, err := h.Hearings.AdvanceStatus(ctx, mux.Vars(r)["hearing_id"], models.HearingStatus(in.Status), actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hearing)
}
