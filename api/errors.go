package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/linesmerrill/efiling-api/apperrors"
	"github.com/linesmerrill/efiling-api/models"
)

var kindStatus = map[apperrors.Kind]int{
	apperrors.KindValidation:  http.StatusBadRequest,
	apperrors.KindConflict:    http.StatusConflict,
	apperrors.KindForbidden:   http.StatusForbidden,
	apperrors.KindNotFound:    http.StatusNotFound,
	apperrors.KindAuth:        http.StatusUnauthorized,
	apperrors.KindUnavailable: http.StatusServiceUnavailable,
	apperrors.KindInternal:    http.StatusInternalServerError,
}

// StatusFor maps an error kind to its http status code
func StatusFor(err error) int {
	if status, ok := kindStatus[apperrors.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError logs err and writes the error body matching its kind
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	status := StatusFor(err)

	resp := models.ErrorMessageResponse{Response: models.MessageError{
		Kind:    string(kind),
		Message: err.Error(),
	}}
	for _, f := range apperrors.FieldsOf(err) {
		resp.Response.Fields = append(resp.Response.Fields, models.FieldError{Field: f.Field, Message: f.Message})
	}
	// causes of server side failures stay in the log
	switch kind {
	case apperrors.KindInternal:
		resp.Response.Message = "internal error"
	case apperrors.KindUnavailable:
		resp.Response.Message = "service unavailable"
		var e *apperrors.Error
		if errors.As(err, &e) {
			resp.Response.Message = e.Message
		}
	}

	if status >= http.StatusInternalServerError {
		zap.S().Errorw("request failed",
			"requestId", RequestIDFrom(r.Context()),
			"path", r.URL.Path,
			"kind", kind,
			"error", err)
	} else {
		zap.S().Infow("request rejected",
			"requestId", RequestIDFrom(r.Context()),
			"path", r.URL.Path,
			"kind", kind,
			"error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
