package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Itish41/ActionScribe/initializers"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"go.uber.org/zap"
)

// Archive stores the raw bytes of uploaded notes in an S3-compatible bucket
// (Supabase storage in production). A nil *Archive archives nothing.
type Archive struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
	logger    *zap.Logger
}

// NewArchive returns nil when cfg is incomplete so uploads still work
// without a bucket.
func NewArchive(cfg initializers.S3Config, logger *zap.Logger) (*Archive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled() {
		logger.Info("[NewArchive] S3 settings incomplete, uploaded notes will not be archived")
		return nil, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Endpoint:         aws.String(cfg.Endpoint),
		DisableSSL:       aws.Bool(false),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Archive{
		client:    s3.New(sess),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger,
	}, nil
}

// Store uploads body under notes/<unix>-<name> and returns the object URL.
func (a *Archive) Store(ctx context.Context, name, contentType string, body []byte) (string, error) {
	if a == nil {
		return "", nil
	}

	key := fmt.Sprintf("notes/%d-%s", now().Unix(), filepath.Base(name))
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}

	_, err := a.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		a.logger.Error("[Store] S3 upload error", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload note to S3: %w", err)
	}

	url := fmt.Sprintf("%s/object/public/%s/%s", a.publicURL, a.bucket, key)
	a.logger.Info("[Store] Note archived", zap.String("url", url))
	return url, nil
}
