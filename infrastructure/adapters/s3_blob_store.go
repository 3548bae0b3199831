package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type s3BlobStore struct {
	s3Svc    *s3.S3
	s3Config *config.S3Config
	logger   outbound.LoggerPort
}

func NewS3BlobStore(s3Svc *s3.S3, s3Config *config.S3Config, logger outbound.LoggerPort) outbound.BlobStorePort {
	return &s3BlobStore{
		s3Svc:    s3Svc,
		s3Config: s3Config,
		logger:   logger,
	}
}

// Put stores the payload under a store-chosen key: the hint's directory and
// extension around a fresh UUID, so concurrent uploads of identically named
// files never collide.
func (s *s3BlobStore) Put(ctx context.Context, data []byte, keyHint string, contentType string) (string, error) {
	key := s.buildKey(keyHint)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}

	if _, err := s.s3Svc.PutObjectWithContext(ctx, putInput); err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload object to S3", map[string]interface{}{
			"bucket": s.s3Config.BucketName,
			"key":    key,
		})
		return "", err
	}

	s.logger.DebugWithFields("Uploaded object to S3", map[string]interface{}{
		"key":  key,
		"size": len(data),
	})

	return key, nil
}

func (s *s3BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.s3Svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to download object from S3", map[string]interface{}{
			"bucket": s.s3Config.BucketName,
			"key":    key,
		})
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *s3BlobStore) Delete(ctx context.Context, key string) error {
	_, err := s.s3Svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to delete object from S3", map[string]interface{}{
			"bucket": s.s3Config.BucketName,
			"key":    key,
		})
	}
	return err
}

func (s *s3BlobStore) PresignedURL(params outbound.PresignParams) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(params.Key),
	}
	if params.ForceDownload {
		input.ResponseContentDisposition = aws.String(
			fmt.Sprintf("attachment; filename=%q", params.Filename))
	} else if params.Filename != "" {
		input.ResponseContentDisposition = aws.String(
			fmt.Sprintf("inline; filename=%q", params.Filename))
	}

	req, _ := s.s3Svc.GetObjectRequest(input)
	url, err := req.Presign(params.Expiry)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to presign S3 URL", map[string]interface{}{
			"key": params.Key,
		})
		return "", err
	}
	return url, nil
}

func (s *s3BlobStore) buildKey(keyHint string) string {
	dir := path.Dir(keyHint)
	ext := path.Ext(keyHint)

	key := uuid.NewString() + ext
	if dir != "." && dir != "/" {
		key = strings.TrimPrefix(dir, "/") + "/" + key
	}
	return key
}
