package handlers

import (
	"net/http"

	"github.com/linesmerrill/efiling-api/api"
	"github.com/linesmerrill/efiling-api/services"
)

// Analytics exported for testing purposes
type Analytics struct {
	Analytics *services.Analytics
}

// StatsHandler returns the admin dashboard counts
func (a Analytics) StatsHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	stats, err := a.Analytics.Stats(ctx, actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// DashboardHandler returns the dashboard of the signed in user
func (a Analytics) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dashboard, err := a.Analytics.Dashboard(ctx, actor)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
