package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/linesmerrill/efiling-api/api"
	"github.com/linesmerrill/efiling-api/apperrors"
	"github.com/linesmerrill/efiling-api/policy"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// actorOf returns the caller stored by the auth middleware
func actorOf(r *http.Request) (policy.Actor, error) {
	actor, ok := api.ActorFrom(r.Context())
	if !ok {
		return policy.Actor{}, apperrors.Auth("unauthorized")
	}
	return actor, nil
}

// decode reads a JSON body into v, rejecting malformed input as a validation error
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return apperrors.Validation("request body is required", apperrors.Required("body"))
	}
	return apperrors.Validation("malformed request body", apperrors.FieldError{Field: "body", Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// pageParams reads limit and page, leaving zero for absent or bad values
func pageParams(r *http.Request) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return limit, page
}
