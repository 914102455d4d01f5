// Package s3storage uploads profile media to an S3 compatible bucket (AWS S3, MinIO).
package s3storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/user_accounts_backend/internal/core/ports/storage"
	"github.com/SscSPs/user_accounts_backend/internal/platform/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// putObjectAPI is the part of *s3.Client the storage needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Storage implements storage.ObjectStorage on top of an S3 bucket.
type Storage struct {
	client    putObjectAPI
	bucket    string
	keyPrefix string
	baseURL   string
	now       func() time.Time
}

var _ storage.ObjectStorage = (*Storage)(nil)

// New builds an S3 client from cfg. Static credentials are used when an access key is configured,
// otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg config.S3Config, keyPrefix string) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newStorage(client, cfg, keyPrefix), nil
}

func newStorage(client putObjectAPI, cfg config.S3Config, keyPrefix string) *Storage {
	return &Storage{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		baseURL:   publicBaseURL(cfg),
		now:       time.Now,
	}
}

// publicBaseURL is the URL objects are served from, without a trailing slash.
func publicBaseURL(cfg config.S3Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// storageKey returns a random, date partitioned object key, e.g. "media/2026/1/2/<uuid>.png".
func (s *Storage) storageKey(ext string) string {
	d := s.now().UTC()
	key := fmt.Sprintf("%d/%d/%d/%s%s", d.Year(), d.Month(), d.Day(), uuid.NewString(), strings.ToLower(ext))
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}
	return key
}

// Upload puts the file at localPath into the bucket and returns its public URL.
func (s *Storage) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", filepath.Base(localPath), err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat upload: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", filepath.Base(localPath))
	}

	ext := filepath.Ext(localPath)
	contentType, err := detectContentType(f, ext)
	if err != nil {
		return "", err
	}

	key := s.storageKey(ext)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

// detectContentType prefers the extension and falls back to sniffing. The file offset is reset to 0.
func detectContentType(f *os.File, ext string) (string, error) {
	if ct := mime.TypeByExtension(strings.ToLower(ext)); ct != "" {
		return ct, nil
	}
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}
	return http.DetectContentType(buf[:n]), nil
}
