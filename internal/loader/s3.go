package loader

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

const s3Scheme = "s3://"

// S3GetObjectAPI is the part of the S3 client the loader needs.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context,
		params *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options configures access to s3:// sources. Empty credentials fall back
// to the default AWS credential chain. A non-nil Client is used as is.
type S3Options struct {
	Region          string         `yaml:"region" toml:"region"`
	AccessKeyID     string         `yaml:"access_key_id" toml:"access_key_id"`
	SecretAccessKey string         `yaml:"secret_access_key" toml:"secret_access_key"`
	Client          S3GetObjectAPI `yaml:"-" toml:"-"`
}

func IsS3URL(source string) bool {
	return strings.HasPrefix(source, s3Scheme)
}

// ParseS3URL splits s3://bucket/key into bucket and key.
func ParseS3URL(source string) (bucket, key string, err error) {
	if !IsS3URL(source) {
		return "", "", errors.Errorf("not an s3 url: %s", source)
	}
	rest := strings.TrimPrefix(source, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", errors.Errorf("s3 url needs a bucket and a key: %s", source)
	}
	return bucket, key, nil
}

func newS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}
	return s3.NewFromConfig(cfg), nil
}

func fetchS3(ctx context.Context, source string, opts S3Options) ([]byte, error) {
	bucket, key, err := ParseS3URL(source)
	if err != nil {
		return nil, err
	}
	api := opts.Client
	if api == nil {
		client, err := newS3Client(ctx, opts)
		if err != nil {
			return nil, err
		}
		api = client
	}
	return GetObject(ctx, api, bucket, key)
}

// GetObject downloads one object into memory.
func GetObject(ctx context.Context, api S3GetObjectAPI, bucket, key string) ([]byte, error) {
	out, err := api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get s3://%s/%s", bucket, key)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
