package archive

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"cr-go/internal/config"
	"cr-go/internal/rec"
)

// S3Archive is an S3-backed implementation of the Archive interface.
// Recordings are stored as objects under an optional key prefix. Uploads go
// through the multipart upload manager so large recordings stream without
// being buffered whole.
type S3Archive struct {
	name     string
	bucket   string
	prefix   string
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Archive creates an S3 archive from configuration. Credentials come
// from the standard AWS chain unless static credentials are configured.
func NewS3Archive(cfg config.ArchiveConfig) (*S3Archive, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Archive{
		name:     cfg.Name,
		bucket:   cfg.S3Bucket,
		prefix:   cfg.S3Prefix,
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// Put uploads an archived recording to the bucket under prefix/name.
func (a *S3Archive) Put(name string, r io.Reader, size int64) error {
	key := path.Join(a.prefix, name)

	_, err := a.uploader.Upload(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("uploading recording to s3://%s/%s: %w", a.bucket, key, err)
	}
	return nil
}

// ValidateSetup verifies that the bucket exists and is accessible.
func (a *S3Archive) ValidateSetup() error {
	_, err := a.client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: aws.String(a.bucket),
	})
	if err != nil {
		return fmt.Errorf("s3 bucket not accessible: %w", err)
	}
	return nil
}

// Compile-time check that S3Archive implements the Archive interface
var _ rec.Archive = (*S3Archive)(nil)
