package services

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	profilePicturePrefix = "profile-pics/"
	presignExpiry        = 5 * time.Minute
)

// Presigner is the subset of the S3 presign client used for media uploads.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// MediaService signs short-lived S3 URLs for profile pictures.
type MediaService struct {
	Presigner Presigner
	Bucket    string
}

// NewMediaService builds a MediaService on top of an S3 client.
func NewMediaService(client *s3.Client, bucket string) *MediaService {
	return &MediaService{Presigner: s3.NewPresignClient(client), Bucket: bucket}
}

func (s *MediaService) configured() error {
	if s == nil || s.Presigner == nil || s.Bucket == "" {
		return newError(KindConfigurationMissing, "media storage is not configured")
	}
	return nil
}

// GenerateUploadURL presigns a PUT for a new object and returns the URL and the
// object key the client should store as its avatar.
func (s *MediaService) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	if err := s.configured(); err != nil {
		return "", "", err
	}
	fileName = path.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == "/" || fileType == "" {
		return "", "", newError(KindInvalidInput, "fileName and fileType are required")
	}

	key := profilePicturePrefix + time.Now().UTC().Format("20060102150405") + "-" + fileName
	req, err := s.Presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", internalError(err, "failed to presign upload of %s", key)
	}
	return req.URL, key, nil
}

// GenerateReadURL presigns a GET for an existing object.
func (s *MediaService) GenerateReadURL(ctx context.Context, key string) (string, error) {
	if err := s.configured(); err != nil {
		return "", err
	}
	if key == "" {
		return "", newError(KindInvalidInput, "key is required")
	}
	req, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", internalError(err, "failed to presign read of %s", key)
	}
	return req.URL, nil
}
