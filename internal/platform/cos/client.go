package cos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/imamik/vpcprov/internal/config"
	"github.com/imamik/vpcprov/internal/util/naming"
	"github.com/imamik/vpcprov/internal/util/retry"
)

// Client writes archive objects to one COS bucket.
type Client struct {
	s3       *s3.Client
	bucket   string
	prefix   string
	retryOps []retry.Option
}

// NewClient creates a client for the configured archive bucket.
func NewClient(cfg config.ArchiveConfig, accessKey, secretKey string) (*Client, error) {
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("COS HMAC credentials are required for archiving")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return newClient(client, cfg.Bucket, cfg.Prefix), nil
}

func newClient(client *s3.Client, bucket, prefix string) *Client {
	return &Client{
		s3:     client,
		bucket: bucket,
		prefix: prefix,
		retryOps: []retry.Option{
			retry.WithMaxRetries(3),
			retry.WithInitialDelay(500 * time.Millisecond),
			retry.WithMaxDelay(5 * time.Second),
		},
	}
}

// Bucket returns the archive bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// EnsureBucket creates the archive bucket when it does not exist.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.BucketExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.CreateBucket(ctx)
}

// CreateBucket creates the archive bucket.
// Returns nil if the bucket already exists and is owned by us.
func (c *Client) CreateBucket(ctx context.Context) error {
	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", c.bucket, err)
	}
	return nil
}

// BucketExists checks if the archive bucket exists and is accessible.
func (c *Client) BucketExists(ctx context.Context) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", c.bucket, err)
	}
	return true, nil
}

// PutObject uploads data under key.
func (c *Client) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s in bucket %s: %w", key, c.bucket, err)
	}
	return nil
}

// Archive stores doc as JSON under <prefix><name>.json and returns the key.
// Transient failures are retried; missing buckets and denied access are not.
func (c *Client) Archive(ctx context.Context, name string, doc any) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	key := naming.ArchiveObject(c.prefix, name)
	err = retry.Do(ctx, func() error {
		err := c.PutObject(ctx, key, data, "application/json")
		if isNotFoundError(err) || isAccessDenied(err) {
			return retry.Fatal(err)
		}
		return err
	}, c.retryOps...)
	if err != nil {
		return "", err
	}
	return key, nil
}

// isBucketAlreadyOwnedByYou checks if the error indicates the bucket exists and is owned by us.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	var bae *types.BucketAlreadyExists
	if errors.As(err, &bae) {
		return true
	}

	return hasErrorCode(err, "BucketAlreadyOwnedByYou", "BucketAlreadyExists")
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	return hasErrorCode(err, "NotFound", "NoSuchBucket", "404")
}

func isAccessDenied(err error) bool {
	return hasErrorCode(err, "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch")
}

// hasErrorCode falls back to API error codes for services that do not return
// the exact SDK error types.
func hasErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}
