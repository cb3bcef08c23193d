package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type (
	S3Config struct {
		Bucket string `yaml:"bucket" env:"S3_BUCKET"`
		Region string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`

		// Endpoint overrides the default AWS endpoint resolution, which
		// allows S3-compatible stores (MinIO, LocalStack) to be used.
		Endpoint     string `yaml:"endpoint" env:"S3_ENDPOINT"`
		UsePathStyle bool   `yaml:"use_path_style" env:"S3_USE_PATH_STYLE" env-default:"false"`

		// DistributionBase is the URL prefix used to form public references
		// to published objects (e.g. a CDN domain). Defaults to the virtual-hosted
		// bucket URL.
		DistributionBase string `yaml:"distribution_base" env:"S3_DISTRIBUTION_BASE"`

		PartSizeMiB int64 `yaml:"part_size_mib" env:"S3_PART_SIZE_MIB" env-default:"16"`
	}

	// objectUploader is satisfied by the S3 upload manager.
	objectUploader interface {
		Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
	}

	// S3Publisher publishes objects to an S3 bucket. Bodies are streamed
	// in parts by the upload manager so large files are never held in memory.
	S3Publisher struct {
		uploader         objectUploader
		bucket           string
		distributionBase string
	}
)

// NewS3Publisher constructs an S3Publisher using the default AWS credential chain
// (environment, shared config, instance roles) for the configured region.
func NewS3Publisher(ctx context.Context, cfg S3Config) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("S3 bucket must be configured when using the s3 storage backend")
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(opts *s3.Options) {
		if cfg.Endpoint != "" {
			opts.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		opts.UsePathStyle = cfg.UsePathStyle
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		if cfg.PartSizeMiB > 0 {
			u.PartSize = cfg.PartSizeMiB << 20
		}
	})

	return NewS3PublisherFromUploader(cfg, uploader), nil
}

// NewS3PublisherFromUploader constructs an S3Publisher around an existing
// uploader, such as a pre-configured *manager.Uploader.
func NewS3PublisherFromUploader(cfg S3Config, uploader objectUploader) *S3Publisher {
	base := cfg.DistributionBase
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Publisher{uploader: uploader, bucket: cfg.Bucket, distributionBase: base}
}

func (publisher *S3Publisher) Publish(ctx context.Context, key string, contentType string, body io.Reader) error {
	_, err := publisher.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(publisher.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", publisher.bucket, key, err)
	}

	log.Infof("Uploaded s3://%s/%s\n", publisher.bucket, key)
	return nil
}

func (publisher *S3Publisher) PublicURL(key string) string {
	return joinURL(publisher.distributionBase, key)
}
