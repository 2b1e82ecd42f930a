package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"users-api/config"
	"users-api/internal/domain/upload"
)

const keyPrefix = "uploads"

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Client struct {
	logger *zap.Logger
	api    putObjectAPI
	bucket string
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// minio, localstack
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("s3 client ready", zap.String("bucket", cfg.BucketUploads), zap.String("region", cfg.Region))

	return &Client{
		logger: logger,
		api:    api,
		bucket: cfg.BucketUploads,
	}, nil
}

// Save buffers at most limit+1 bytes so oversized bodies never reach the bucket.
func (c *Client) Save(
	ctx context.Context,
	name string,
	contentType string,
	r io.Reader,
	limit int64,
) (*upload.Stored, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, upload.ErrFileTooLarge
	}

	key := path.Join(keyPrefix, name)
	if _, err = c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(n),
	}); err != nil {
		return nil, fmt.Errorf("s3 put %s: %w", key, err)
	}

	c.logger.Debug("upload stored", zap.String("bucket", c.bucket), zap.String("key", key), zap.Int64("size", n))

	return &upload.Stored{
		Name: name,
		Path: fmt.Sprintf("s3://%s/%s", c.bucket, key),
		Size: n,
	}, nil
}
