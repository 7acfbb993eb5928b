package bench

import (
	"bytes"
	"context"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vango-dev/reactor/internal/errors"
)

// PutObjectAPI is the part of the S3 client the publisher uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PublishConfig locates the bucket reports are uploaded to.
type PublishConfig struct {
	Bucket    string
	Region    string
	Prefix    string
	Endpoint  string
	PathStyle bool
}

// Publisher uploads reports to S3.
type Publisher struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewPublisher creates an S3 client for cfg. Credentials are read from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewPublisher(cfg PublishConfig) *Publisher {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  aws.NewCredentialsCache(envCredentials()),
		UsePathStyle: cfg.PathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return NewPublisherWithClient(s3.New(opts), cfg.Bucket, cfg.Prefix)
}

// NewPublisherWithClient uploads through client.
func NewPublisherWithClient(client PutObjectAPI, bucket, prefix string) *Publisher {
	return &Publisher{client: client, bucket: bucket, prefix: prefix}
}

func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "Environment",
		}
		if !creds.HasKeys() {
			return aws.Credentials{}, errors.New("X003").WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are not set")
		}
		return creds, nil
	})
}

// Key returns the object key for rep:
// <prefix>/<profile>/<started, UTC>.json.
func (p *Publisher) Key(rep *Report) string {
	return path.Join(p.prefix, rep.Profile, rep.StartedAt.UTC().Format("20060102T150405Z")+".json")
}

// Publish uploads rep as JSON and returns its object key.
func (p *Publisher) Publish(ctx context.Context, rep *Report) (string, error) {
	var buf bytes.Buffer
	if err := rep.WriteJSON(&buf); err != nil {
		return "", errors.New("X003").Wrap(err)
	}

	key := p.Key(rep)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"profile":    rep.Profile,
			"go-version": rep.GoVersion,
			"started-at": rep.StartedAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New("X003").WithDetail("s3://%s/%s", p.bucket, key).Wrap(err)
	}
	return key, nil
}
