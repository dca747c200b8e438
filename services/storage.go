package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/flavioricotta/Obracontrolia/config"
	"github.com/flavioricotta/Obracontrolia/errs"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ReceiptStorage uploads receipt photos to the Supabase storage bucket over
// its S3-compatible endpoint and hands back public URLs.
type ReceiptStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    zerolog.Logger
}

// NewReceiptStorage builds the uploader from STORAGE_* environment
// variables. The endpoint is the project's S3 gateway, e.g.
// https://<ref>.storage.supabase.co/storage/v1/s3.
func NewReceiptStorage(ctx context.Context) (*ReceiptStorage, error) {
	cfg := config.New()

	endpoint := config.GetString(cfg, "STORAGE_S3_ENDPOINT", "")
	accessKey := config.GetString(cfg, "STORAGE_ACCESS_KEY", "")
	secretKey := config.GetString(cfg, "STORAGE_SECRET_KEY", "")
	region := config.GetString(cfg, "STORAGE_REGION", "sa-east-1")
	bucket := config.GetString(cfg, "STORAGE_BUCKET", "receipts")
	publicURL := config.GetString(cfg, "STORAGE_PUBLIC_URL", "")

	switch {
	case endpoint == "":
		return nil, errs.NewEnvironmentVariableError("STORAGE_S3_ENDPOINT")
	case accessKey == "":
		return nil, errs.NewEnvironmentVariableError("STORAGE_ACCESS_KEY")
	case secretKey == "":
		return nil, errs.NewEnvironmentVariableError("STORAGE_SECRET_KEY")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, errs.NewConfigError("storage", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		// Supabase's S3 gateway routes on path, not subdomain
		o.UsePathStyle = true
	})

	return &ReceiptStorage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    log.With().Str("service", "receiptStorage").Logger(),
	}, nil
}

// Upload stores one image under a random key and returns its public URL.
func (s *ReceiptStorage) Upload(ctx context.Context, data []byte, mimeType string) (string, error) {
	key := fmt.Sprintf("%s%s", uuid.New(), extensionFor(mimeType))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to upload receipt image")
		return "", errs.NewServiceUnavailableError("storage", err)
	}

	s.logger.Info().Str("key", key).Int("bytes", len(data)).Msg("Uploaded receipt image")
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
