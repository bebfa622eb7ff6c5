package snapshot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Publisher stores a catalogue snapshot under key.
type Publisher interface {
	Publish(ctx context.Context, key string, catalogue *Catalogue) error
}

// ObjectPutter is the subset of the S3 client used by the publisher.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Publisher implements Publisher for snapshots stored in AWS S3.
type s3Publisher struct {
	client ObjectPutter
	bucket string
	logger zerolog.Logger
}

// NewS3Publisher creates an S3 snapshot publisher using the default AWS
// credential chain.
func NewS3Publisher(ctx context.Context, bucket, region string, logger zerolog.Logger) (Publisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewS3PublisherWithClient(s3.NewFromConfig(cfg), bucket, logger), nil
}

// NewS3PublisherWithClient creates an S3 publisher around an existing client.
func NewS3PublisherWithClient(client ObjectPutter, bucket string, logger zerolog.Logger) Publisher {
	return &s3Publisher{
		client: client,
		bucket: bucket,
		logger: logger.With().Str("component", "s3-snapshot-publisher").Logger(),
	}
}

// Publish uploads catalogue as a gzipped object, replacing any previous one.
func (p *s3Publisher) Publish(ctx context.Context, key string, catalogue *Catalogue) error {
	var buf bytes.Buffer
	if err := Encode(&buf, catalogue); err != nil {
		return err
	}

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		ContentType:   aws.String("application/gzip"),
	})
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("bucket", p.bucket).
			Str("key", key).
			Msg("failed to put snapshot to S3")
		return fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", p.bucket, key, err)
	}

	p.logger.Info().
		Str("bucket", p.bucket).
		Str("key", key).
		Int("products", len(catalogue.ProductPrices)).
		Int("bytes", buf.Len()).
		Msg("catalogue snapshot published to S3")

	return nil
}
