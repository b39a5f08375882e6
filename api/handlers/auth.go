package handlers

import (
	"net/http"
	"time"

	"github.com/linesmerrill/efiling-api/api"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/services"
)

// Auth exported for testing purposes
type Auth struct {
	Directory *services.Directory
	Guardian  *api.Guardian
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      models.Identity `json:"user"`
}

// RegisterHandler creates a user and signs them in
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decode(w, r, &in); err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	identity, err := a.Directory.Register(ctx, in)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	a.respondWithToken(w, r, http.StatusCreated, identity)
}

// LoginHandler exchanges an email and password for a bearer token
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decode(w, r, &in); err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	identity, err := a.Directory.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	a.respondWithToken(w, r, http.StatusOK, identity)
}

// TokenHandler issues a bearer token to a caller authenticated with basic auth
func (a Auth) TokenHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := actorOf(r)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.Directory.Get(ctx, actor.ID.Hex())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	a.respondWithToken(w, r, http.StatusOK, user.Identity())
}

// LogoutHandler revokes the bearer token of the request
func (a Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Guardian.RevokeToken(r); err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"revoked": true})
}

func (a Auth) respondWithToken(w http.ResponseWriter, r *http.Request, status int, identity models.Identity) {
	token, expires, err := a.Guardian.IssueToken(identity)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	writeJSON(w, status, tokenResponse{Token: token, ExpiresAt: expires, User: identity})
}
