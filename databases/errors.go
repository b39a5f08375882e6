package databases

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// server error codes
const (
	namespaceNotFoundCode = 26
	indexNotFoundCode     = 27
)

// IsNotFound reports whether err means the filter matched nothing
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsDuplicateKeyOn reports whether err is a unique index violation of the named index
func IsDuplicateKeyOn(err error, index string) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), index)
}

// IsIndexNotFound reports whether err means the index or its collection does not exist
func IsIndexNotFound(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Code == indexNotFoundCode || ce.Code == namespaceNotFoundCode
	}
	return false
}

// IsTransient reports whether err is a connectivity failure the caller may retry
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	var sse mongo.ServerError
	if errors.As(err, &sse) {
		return sse.HasErrorLabel("RetryableWriteError") || sse.HasErrorLabel("TransientTransactionError")
	}
	return strings.Contains(err.Error(), "server selection error")
}
