package services

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	put *s3.PutObjectInput
	get *s3.GetObjectInput
}

func (f *fakePresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.put = params
	return &v4.PresignedHTTPRequest{URL: "https://bucket.example/put/" + aws.ToString(params.Key), Method: "PUT"}, nil
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.get = params
	return &v4.PresignedHTTPRequest{URL: "https://bucket.example/get/" + aws.ToString(params.Key), Method: "GET"}, nil
}

func TestMediaServiceUploadURL(t *testing.T) {
	presigner := &fakePresigner{}
	media := &MediaService{Presigner: presigner, Bucket: "avatars"}

	url, key, err := media.GenerateUploadURL(context.Background(), "../me.png", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "profile-pics/"))
	assert.True(t, strings.HasSuffix(key, "-me.png"))
	assert.Equal(t, "https://bucket.example/put/"+key, url)
	assert.Equal(t, "avatars", aws.ToString(presigner.put.Bucket))
	assert.Equal(t, "image/png", aws.ToString(presigner.put.ContentType))

	_, _, err = media.GenerateUploadURL(context.Background(), "", "image/png")
	requireKind(t, err, KindInvalidInput)
}

func TestMediaServiceReadURL(t *testing.T) {
	presigner := &fakePresigner{}
	media := &MediaService{Presigner: presigner, Bucket: "avatars"}

	url, err := media.GenerateReadURL(context.Background(), "profile-pics/1-me.png")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/get/profile-pics/1-me.png", url)

	_, err = media.GenerateReadURL(context.Background(), "")
	requireKind(t, err, KindInvalidInput)
}

func TestMediaServiceRequiresBucket(t *testing.T) {
	media := &MediaService{Presigner: &fakePresigner{}}
	_, _, err := media.GenerateUploadURL(context.Background(), "me.png", "image/png")
	requireKind(t, err, KindConfigurationMissing)

	var missing *MediaService
	_, err = missing.GenerateReadURL(context.Background(), "key")
	requireKind(t, err, KindConfigurationMissing)
}
