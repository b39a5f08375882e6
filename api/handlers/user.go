package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/efiling-api/api"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/services"
)

// User exported for testing purposes
type User struct {
	Directory *services.Directory
}

// UsersHandler returns a page of users, optionally filtered by role
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	limit, page := pageParams(r)
	role := models.Role(r.URL.Query().Get("role"))

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	users, err := u.Directory.List(ctx, actor, role, limit, page)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// DeleteUserHandler removes a user
func (u User) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := u.Directory.Delete(ctx, actor, mux.Vars(r)["user_id"]); err != nil {
		api.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MeHandler returns the signed in user
func (u User) MeHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := u.Directory.Get(ctx, actor.ID.Hex())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
