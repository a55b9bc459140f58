package report

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/memolab/internal/config"
	lerrors "github.com/vango-dev/memolab/internal/errors"
)

// ObjectPutter is the part of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client creates an S3 client from the report config. Credentials are
// read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
// A custom endpoint switches to path-style addressing for MinIO and
// LocalStack.
func NewS3Client(cfg config.ReportConfig) *s3.Client {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(envCredentials{}),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

type envCredentials struct{}

func (envCredentials) Retrieve(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, lerrors.New(lerrors.CodeReportUpload).
			WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return creds, nil
}

// Uploader stores reports in a bucket.
type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *slog.Logger
}

// NewUploader creates an uploader. If logger is nil, slog.Default() is used.
func NewUploader(client ObjectPutter, bucket, prefix string, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// Upload stores r under key, or under prefix + report id when key is empty,
// and returns the s3:// location.
func (u *Uploader) Upload(ctx context.Context, r *Report, format, key string) (string, error) {
	if u.bucket == "" {
		return "", lerrors.New(lerrors.CodeReportDestination).WithDetail("no bucket configured")
	}
	if key == "" {
		key = u.prefix + r.ID + Extension(format)
	}

	data, err := r.Marshal(format)
	if err != nil {
		return "", err
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ContentType(format)),
		Metadata: map[string]string{
			"report-id": r.ID,
			"version":   r.Version,
			"generated": r.Generated.Format("2006-01-02T15:04:05Z07:00"),
		},
	})
	if err != nil {
		return "", lerrors.New(lerrors.CodeReportUpload).WithDetailf("s3://%s/%s", u.bucket, key).Wrap(err)
	}

	loc := "s3://" + u.bucket + "/" + key
	u.logger.Info("report uploaded", "location", loc, "bytes", len(data))
	return loc, nil
}

// ParseDestination splits s3://bucket/key. The key may be empty.
func ParseDestination(dest string) (bucket, key string, err error) {
	parsed, perr := url.Parse(dest)
	if perr != nil || parsed.Scheme != "s3" || parsed.Host == "" {
		return "", "", lerrors.New(lerrors.CodeReportDestination).WithDetailf("%q", dest)
	}
	return parsed.Host, strings.TrimPrefix(parsed.Path, "/"), nil
}
