package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"files-manager/internal/config"
	"files-manager/internal/domain/entities"
	domain "files-manager/internal/domain/repository"
)

// S3Blobs stores blobs in an S3-compatible bucket (AWS S3, MinIO). Object
// keys double as blob handles; the PutObject either fully succeeds or
// leaves nothing behind, matching the write contract.
type S3Blobs struct {
	svc    *s3.S3
	bucket string
}

// NewS3Blobs connects to the configured S3-compatible endpoint.
func NewS3Blobs(cfg config.S3Config) (domain.Blobs, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}

	return &S3Blobs{svc: s3.New(sess), bucket: cfg.Bucket}, nil
}

// Write persists the reader's bytes under a new random handle.
func (s *S3Blobs) Write(ctx context.Context, r io.Reader) (string, error) {
	handle := uuid.New().String()
	if err := s.WriteNamed(ctx, handle, r); err != nil {
		return "", err
	}
	return handle, nil
}

// WriteNamed persists the reader's bytes under the given handle.
func (s *S3Blobs) WriteNamed(ctx context.Context, handle string, r io.Reader) error {
	// PutObject needs a seekable body for signing.
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read blob content: %w", err)
	}

	_, err = s.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(handle),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", handle, err)
	}

	return nil
}

// Read opens the blob for reading.
func (s *S3Blobs) Read(ctx context.Context, handle string) (io.ReadCloser, error) {
	out, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(handle),
	})
	if isNotFound(err) {
		return nil, entities.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", handle, err)
	}
	return out.Body, nil
}

// Exists reports whether the handle resolves to a stored object.
func (s *S3Blobs) Exists(ctx context.Context, handle string) (bool, error) {
	_, err := s.svc.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(handle),
	})
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("head object %s: %w", handle, err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}
