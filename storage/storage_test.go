package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/efiling-api/config"
)

func TestObjectKey(t *testing.T) {
	key := objectKey(`C:\scans\Bail application (final).pdf`)

	assert.True(t, strings.HasSuffix(key, "-Bail_application_final.pdf"), key)
	assert.Len(t, strings.TrimSuffix(key, "-Bail_application_final.pdf"), 36)
	assert.True(t, strings.HasSuffix(objectKey("../.."), "-document"))
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Put(t *testing.T) {
	fp := &fakePutter{}
	s := &S3{client: fp, bucket: "court-docs"}

	locator, err := s.Put(context.Background(), "affidavit.pdf", "application/pdf", bytes.NewReader([]byte("%PDF-1.4")))

	require.NoError(t, err)
	key := aws.ToString(fp.input.Key)
	assert.Equal(t, "s3://court-docs/"+key, locator)
	assert.True(t, strings.HasPrefix(key, "documents/"))
	assert.Equal(t, "court-docs", aws.ToString(fp.input.Bucket))
	assert.Equal(t, "application/pdf", aws.ToString(fp.input.ContentType))
	assert.Equal(t, "%PDF-1.4", fp.body)
}

func TestS3PutError(t *testing.T) {
	s := &S3{client: &fakePutter{err: errors.New("access denied")}, bucket: "court-docs"}

	_, err := s.Put(context.Background(), "affidavit.pdf", "", strings.NewReader("x"))

	assert.ErrorContains(t, err, "access denied")
}

type fakeUploader struct {
	params uploader.UploadParams
	result *uploader.UploadResult
	err    error
}

func (f *fakeUploader) Upload(_ context.Context, _ interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.params = params
	return f.result, f.err
}

func TestCloudinaryPut(t *testing.T) {
	fu := &fakeUploader{result: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/court/raw/upload/v1/efiling/x.pdf"}}
	c := &Cloudinary{upload: fu, folder: "efiling"}

	locator, err := c.Put(context.Background(), "order.pdf", "application/pdf", strings.NewReader("x"))

	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/court/raw/upload/v1/efiling/x.pdf", locator)
	assert.Equal(t, "efiling", fu.params.Folder)
	assert.Equal(t, "auto", fu.params.ResourceType)
	assert.True(t, strings.HasSuffix(fu.params.PublicID, "-order"), fu.params.PublicID)
}

func TestCloudinaryPutRejected(t *testing.T) {
	fu := &fakeUploader{result: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}
	c := &Cloudinary{upload: fu}

	_, err := c.Put(context.Background(), "order.pdf", "", strings.NewReader("x"))

	assert.ErrorContains(t, err, "Invalid image file")
}

func TestNewSelectsStore(t *testing.T) {
	store, err := New(context.Background(), &config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, store)

	_, err = New(context.Background(), &config.Config{DocumentStore: "ftp"})
	assert.Error(t, err)

	_, err = New(context.Background(), &config.Config{DocumentStore: "s3"})
	assert.ErrorContains(t, err, "S3_BUCKET")

	_, err = New(context.Background(), &config.Config{DocumentStore: "cloudinary"})
	assert.ErrorContains(t, err, "CLOUDINARY_URL")
}
