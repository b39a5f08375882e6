package services

import (
	"github.com/linesmerrill/efiling-api/apperrors"
	"github.com/linesmerrill/efiling-api/databases"
)

// storeErr maps a storage failure that is not a not-found or a duplicate key
// onto the caller visible kinds
func storeErr(what string, err error) error {
	if databases.IsTransient(err) {
		return apperrors.Unavailable(what+": storage unavailable", err)
	}
	return apperrors.Internal(what, err)
}
