package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/metrics"
	"go.uber.org/zap"
)

// MaxImageSize is the largest accepted mentor photo
const MaxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ImageUploader stores mentor photos and returns their public URL
type ImageUploader interface {
	UploadImage(ctx context.Context, imageData, key, contentType string) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures the S3-compatible bucket
type Options struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	PublicBaseURL   string
}

// Client uploads images to an S3-compatible bucket
type Client struct {
	s3         putObjectAPI
	bucketName string
	publicBase string
}

var _ ImageUploader = (*Client)(nil)

// NewClient creates a storage client. A custom Endpoint enables
// path-style addressing so MinIO and similar providers work.
func NewClient(opts Options) *Client {
	s3Opts := s3.Options{
		Region: opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			"",
		),
	}
	if opts.Endpoint != "" {
		s3Opts.BaseEndpoint = aws.String(opts.Endpoint)
		s3Opts.UsePathStyle = true
	}

	publicBase := strings.TrimRight(opts.PublicBaseURL, "/")
	if publicBase == "" {
		if opts.Endpoint != "" {
			publicBase = fmt.Sprintf("%s/%s", strings.TrimRight(opts.Endpoint, "/"), opts.BucketName)
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.BucketName, opts.Region)
		}
	}

	logger.Info("Object storage client initialized",
		zap.String("bucket", opts.BucketName),
		zap.String("endpoint", opts.Endpoint),
		zap.String("region", opts.Region),
	)

	return &Client{
		s3:         s3.New(s3Opts),
		bucketName: opts.BucketName,
		publicBase: publicBase,
	}
}

// UploadImage decodes a base64 payload (optionally a data URI) and stores it under key
func (c *Client) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	start := time.Now()
	operation := "uploadImage"

	imageBytes, err := DecodeImage(imageData)
	if err != nil {
		c.record(operation, "error", start)
		return "", err
	}

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageBytes),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)
	if err != nil {
		c.record(operation, "error", start)
		logger.LogAPICall(ctx, "object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	c.record(operation, "success", start)
	logger.LogAPICall(ctx, "object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(imageBytes)),
	)

	return fmt.Sprintf("%s/%s", c.publicBase, key), nil
}

func (c *Client) record(operation, status string, start time.Time) {
	metrics.StorageRequestDuration.WithLabelValues(operation, status).Observe(metrics.MeasureDuration(start))
	metrics.StorageRequestTotal.WithLabelValues(operation, status).Inc()
}

// DecodeImage accepts raw base64 or a data URI (data:image/png;base64,...)
func DecodeImage(imageData string) ([]byte, error) {
	payload := imageData
	if strings.HasPrefix(imageData, "data:") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data URI format")
		}
		payload = parts[1]
	}

	imageBytes, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}
	return imageBytes, nil
}

// ValidateImageType validates the image content type and returns its file extension
func ValidateImageType(contentType string) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("invalid file type: %s. Allowed types: jpeg, jpg, png, webp", contentType)
	}
	return ext, nil
}

// ValidateImageSize validates the decoded image size
func ValidateImageSize(imageData string) error {
	imageBytes, err := DecodeImage(imageData)
	if err != nil {
		return err
	}
	if len(imageBytes) > MaxImageSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", len(imageBytes), MaxImageSize)
	}
	return nil
}
