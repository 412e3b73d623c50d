// Package miniostorage provides structure to work with S3-compatible object storage
package miniostorage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/UnendingLoop/ImageOutputs/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/zlog"
)

const aclHeader = "x-amz-acl"

type MinioObjectStorage struct {
	bucket     string
	publicBase string
	client     *minio.Client
}

// NewClient builds the client from the credential file without touching the network
func NewClient(cfg config.Config) (*MinioObjectStorage, error) {
	creds, err := LoadCredentials(cfg.CredentialPath, cfg.CredentialAlias)
	if err != nil {
		return nil, err
	}

	bucket := cfg.BucketName
	if bucket == "" {
		bucket = config.DefaultBucketName
		zlog.Logger.Warn().Msgf("Bucket name is empty. Using default value %q...", bucket)
	}

	client, err := minio.New(creds.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(creds.AccessKey, creds.SecretKey, creds.SessionToken),
		Secure:       creds.Secure,
		BucketLookup: creds.BucketLookup,
		MaxRetries:   1, // повторы подключения делает storage.NewImgStorage, загрузки не повторяются
	})
	if err != nil {
		return nil, err
	}

	return &MinioObjectStorage{
		bucket:     bucket,
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
		client:     client,
	}, nil
}

// NewMinioClient builds the client and makes sure the bucket exists
func NewMinioClient(ctx context.Context, cfg config.Config) (*MinioObjectStorage, error) {
	s, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	// создаем бакет если его нет
	if err := ensureBucket(ctx, s.client, s.bucket); err != nil {
		zlog.Logger.Error().Err(err).Str("bucket", s.bucket).Msg("Failed to ensure bucket in object storage")
		return nil, err
	}

	return s, nil
}

// PutPublic uploads r under key and makes the object publicly readable
func (s *MinioObjectStorage) PutPublic(ctx context.Context, key string, size int64, contentType string, r io.Reader) error {
	if r == nil {
		return errors.New("nil reader passed to storage.PutPublic")
	}

	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{aclHeader: "public-read"},
	}); err != nil {
		return err
	}

	return nil
}

// PublicURL returns browser-accessible URL for key: configured base or path-style endpoint URL
func (s *MinioObjectStorage) PublicURL(key string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + strings.TrimLeft(key, "/")
	}

	return s.client.EndpointURL().JoinPath(s.bucket, key).String()
}

func (s *MinioObjectStorage) Bucket() string {
	return s.bucket
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}
