package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (uploader *recordingUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	uploader.inputs = append(uploader.inputs, input)
	body, _ := io.ReadAll(input.Body)
	uploader.bodies = append(uploader.bodies, string(body))
	if uploader.err != nil {
		return nil, uploader.err
	}

	return &manager.UploadOutput{}, nil
}

func TestS3Publisher_Publish(t *testing.T) {
	uploader := &recordingUploader{}
	publisher := NewS3PublisherFromUploader(S3Config{Bucket: "tubely-media", Region: "ap-southeast-2"}, uploader)

	err := publisher.Publish(context.Background(), "portrait/abc.processed.mp4", "video/mp4", strings.NewReader("bytes"))
	require.NoError(t, err)

	require.Len(t, uploader.inputs, 1)
	input := uploader.inputs[0]
	assert.Equal(t, "tubely-media", aws.ToString(input.Bucket))
	assert.Equal(t, "portrait/abc.processed.mp4", aws.ToString(input.Key))
	assert.Equal(t, "video/mp4", aws.ToString(input.ContentType))
	assert.Equal(t, "bytes", uploader.bodies[0])
}

func TestS3Publisher_PublishFailure(t *testing.T) {
	uploader := &recordingUploader{err: errors.New("test: access denied")}
	publisher := NewS3PublisherFromUploader(S3Config{Bucket: "tubely-media", Region: "us-east-1"}, uploader)

	err := publisher.Publish(context.Background(), "other/abc.mp4", "video/mp4", strings.NewReader("bytes"))
	assert.ErrorIs(t, err, uploader.err)
}

func TestS3Publisher_PublicURL(t *testing.T) {
	publisher := NewS3PublisherFromUploader(S3Config{Bucket: "tubely-media", Region: "us-east-1"}, &recordingUploader{})
	assert.Equal(t, "https://tubely-media.s3.us-east-1.amazonaws.com/landscape/abc.mp4", publisher.PublicURL("landscape/abc.mp4"))

	cdn := NewS3PublisherFromUploader(S3Config{Bucket: "b", Region: "r", DistributionBase: "https://cdn.example.com/"}, &recordingUploader{})
	assert.Equal(t, "https://cdn.example.com/landscape/abc.mp4", cdn.PublicURL("landscape/abc.mp4"))
}

func TestNewS3Publisher_RequiresBucket(t *testing.T) {
	_, err := NewS3Publisher(context.Background(), S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}
