// Package mediastore stores uploaded hero media in S3-compatible object
// storage and hands back publicly served URLs.
package mediastore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ErrTooLarge indicates an upload exceeded the configured size limit.
var ErrTooLarge = errors.New("mediastore: file too large")

// Uploader is the subset of the S3 client the store needs.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads hero media to a bucket under a fixed key prefix.
type S3Store struct {
	client  Uploader
	bucket  string
	prefix  string
	baseURL string
	maxSize int64
}

// New creates an S3Store. baseURL is the public URL root the bucket is
// served from; maxSize of 0 means no limit.
func New(client Uploader, bucket, prefix, baseURL string, maxSize int64) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		maxSize: maxSize,
	}
}

// Save uploads the file and returns the public URL it will be served from.
// The original filename only contributes its extension; keys are fresh
// UUIDs so uploads can never collide or overwrite.
func (s *S3Store) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := s.prefix + uuid.NewString() + path.Ext(filename)

	var buf bytes.Buffer
	if s.maxSize > 0 {
		limited := io.LimitReader(r, s.maxSize+1)
		n, err := io.Copy(&buf, limited)
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		if n > s.maxSize {
			return "", ErrTooLarge
		}
	} else {
		if _, err := io.Copy(&buf, r); err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"original-filename": filename,
			"upload-time":       time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	return s.baseURL + "/" + key, nil
}
