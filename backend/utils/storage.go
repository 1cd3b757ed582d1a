package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lms/backend/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// uploadURLExpiry is how long a presigned upload link stays valid.
const uploadURLExpiry = 15 * time.Minute

// Storage wraps the S3-compatible object store used for course videos and
// images. The backend never touches file bytes; it only hands out presigned
// upload URLs and records the resulting public URL strings.
type Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewStorage(cfg *config.Config) (*Storage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize object storage client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.MinioBucket, err)
		}
	}

	return &Storage{
		client:  client,
		bucket:  cfg.MinioBucket,
		baseURL: strings.TrimRight(cfg.AssetBaseURL, "/"),
	}, nil
}

// PresignUpload returns a time-limited URL a client can PUT the object to.
func (s *Storage) PresignUpload(ctx context.Context, objectName string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, objectName, uploadURLExpiry)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// PublicURL is where the object will be served from once uploaded.
func (s *Storage) PublicURL(objectName string) string {
	return s.baseURL + "/" + objectName
}
