package s3store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"github.com/dmitrymomot/importkit/pkg/failurestore"
	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
)

// S3Client defines the S3 operations used by Store.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store writes every failure as a JSON object under "<prefix>/<run id>/".
// Object names are time-ordered UUIDs, so listing returns save order.
type Store struct {
	client S3Client
	bucket string
	prefix string
}

var _ failurestore.Store = (*Store)(nil)

// Option defines a function that configures the store.
type Option func(*options)

type options struct {
	s3Client        S3Client
	httpClient      *http.Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3.Options)
}

// WithS3Client sets a pre-configured client. Useful for testing.
func WithS3Client(client S3Client) Option {
	return func(o *options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithS3ClientOption adds a custom S3 client option.
func WithS3ClientOption(option func(*s3.Options)) Option {
	return func(o *options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// New creates a store. Without WithS3Client the client is built from the
// default AWS configuration chain, with static credentials when cfg has them.
func New(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}
		awsOptions = append(awsOptions, o.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range o.s3ClientOptions {
				opt(so)
			}
		})
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// RunPrefix returns the key prefix holding the objects of runID.
func (s *Store) RunPrefix(runID uuid.UUID) string {
	if s.prefix == "" {
		return runID.String() + "/"
	}
	return s.prefix + "/" + runID.String() + "/"
}

func (s *Store) Save(ctx context.Context, runID uuid.UUID, failures ...rowvalidator.Failure) error {
	if runID == uuid.Nil {
		return failurestore.ErrMissingRunID
	}

	for _, rec := range failurestore.NewRecords(runID, failures) {
		data, err := json.Marshal(rec)
		if err != nil {
			return errors.Join(failurestore.ErrSaveFailed, err)
		}
		name, err := uuid.NewV7()
		if err != nil {
			return errors.Join(failurestore.ErrSaveFailed, err)
		}

		_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(s.RunPrefix(runID) + name.String() + ".json"),
			Body:          bytes.NewReader(data),
			ContentType:   aws.String("application/json"),
			ContentLength: aws.Int64(int64(len(data))),
		})
		if err != nil {
			return errors.Join(failurestore.ErrSaveFailed, err)
		}
	}
	return nil
}

func (s *Store) List(ctx context.Context, runID uuid.UUID) ([]failurestore.Record, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.RunPrefix(runID)),
	})

	var records []failurestore.Record
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Join(failurestore.ErrListFailed, err)
		}
		for _, obj := range page.Contents {
			rec, found, err := s.get(ctx, aws.ToString(obj.Key))
			if err != nil {
				return nil, errors.Join(failurestore.ErrListFailed, err)
			}
			if found {
				records = append(records, rec)
			}
		}
	}
	return records, nil
}

// get reads one record. An object deleted after listing is reported as not found.
func (s *Store) get(ctx context.Context, key string) (failurestore.Record, bool, error) {
	var rec failurestore.Record

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return rec, false, nil
		}
		return rec, false, err
	}
	defer out.Body.Close()

	if err := failurestore.DecodeRecord(out.Body, &rec); err != nil {
		return rec, false, err
	}
	return rec, true, nil
}
