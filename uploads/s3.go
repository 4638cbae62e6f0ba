// Package uploads stores product images in S3.
package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// ObjectUploader is the subset of manager.Uploader used here.
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type S3Uploader struct {
	uploader ObjectUploader
	bucket   string
	now      func() time.Time
}

func NewS3Uploader(uploader ObjectUploader, bucket string) *S3Uploader {
	return &S3Uploader{uploader: uploader, bucket: bucket, now: time.Now}
}

// NewFromEnv builds an uploader from the default AWS credential chain.
func NewFromEnv(ctx context.Context, bucket string) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	return NewS3Uploader(manager.NewUploader(s3.NewFromConfig(cfg)), bucket), nil
}

// ValidImage reports whether filename has an accepted image extension.
func ValidImage(filename string) bool {
	return allowedExtensions[strings.ToLower(path.Ext(filename))]
}

// Upload stores body under a unique key and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if !ValidImage(filename) {
		return "", fmt.Errorf("unsupported image type %q", path.Ext(filename))
	}

	key := fmt.Sprintf("images/%s-%s%s", u.now().Format("20060102150405"), uuid.NewString(), strings.ToLower(path.Ext(filename)))
	result, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading %s: %w", filename, err)
	}
	return result.Location, nil
}
