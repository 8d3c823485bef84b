package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/GoWeddingSite/GoWeddingSite/internal/metrics"
)

// DefaultS3Prefix is the key prefix of uploaded recordings.
const DefaultS3Prefix = "messages"

// S3Config holds the bucket settings.
type S3Config struct {
	Region        string
	Bucket        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	Prefix        string
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores recordings in an S3 compatible bucket.
type S3 struct {
	cfg    S3Config
	client objectPutter
	now    func() time.Time
	newKey func() string
}

// NewS3 builds the bucket client from static credentials.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3(cfg, client), nil
}

func newS3(cfg S3Config, client objectPutter) *S3 {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultS3Prefix
	}

	return &S3{
		cfg:    cfg,
		client: client,
		now:    time.Now,
		newKey: uuid.NewString,
	}
}

// Name implements Uploader.
func (s *S3) Name() string {
	return ProviderS3
}

// Upload implements Uploader.
func (s *S3) Upload(ctx context.Context, u Upload) (string, error) {
	if len(u.Data) == 0 {
		return "", ErrEmptyRecording
	}

	key := s.key(u.MIMEType)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(u.Data),
		ContentType: aws.String(u.MIMEType),
		Metadata:    map[string]string{"tag": Tag},
	})
	if err != nil {
		metrics.MediaUploads.WithLabelValues(ProviderS3, metrics.ResultError).Inc()
		return "", pkgerrors.Wrapf(err, "failed to store %s", key)
	}

	metrics.MediaUploads.WithLabelValues(ProviderS3, metrics.ResultOK).Inc()

	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key, nil
}

func (s *S3) key(mimeType string) string {
	now := s.now().UTC()

	return fmt.Sprintf("%s/%04d/%02d/%02d/%s%s",
		s.cfg.Prefix, now.Year(), now.Month(), now.Day(), s.newKey(), Extension(mimeType))
}
