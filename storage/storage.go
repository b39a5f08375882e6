package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/linesmerrill/efiling-api/config"
)

// DocumentStore keeps uploaded case documents and hands back a stable locator
type DocumentStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// New returns the document store selected by DOCUMENT_STORE. It returns nil
// when no store is configured, which disables uploads.
func New(ctx context.Context, conf *config.Config) (DocumentStore, error) {
	switch conf.DocumentStore {
	case "":
		return nil, nil
	case "cloudinary":
		c, err := NewCloudinary(conf.CloudinaryURL, conf.CloudinaryFolder)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "s3":
		s, err := NewS3(ctx, S3Options{
			Bucket:          conf.S3Bucket,
			Region:          conf.S3Region,
			Endpoint:        conf.S3Endpoint,
			AccessKeyID:     conf.AWSAccessKeyID,
			SecretAccessKey: conf.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown document store %q", conf.DocumentStore)
}

// objectKey builds a collision free key that keeps a readable file name
func objectKey(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, base)
	clean = strings.Trim(clean, ".")
	if clean == "" {
		clean = "document"
	}
	return uuid.NewString() + "-" + clean
}
