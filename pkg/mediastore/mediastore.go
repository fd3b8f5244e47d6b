package mediastore

import (
	"context"
	"io"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// Store persists opaque media blobs (resumes, firm logos) referenced by key.
// Contents are never inspected.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
}

var active Store

// Active returns the configured media store
func Active() Store {
	return active
}

// SetActive replaces the configured media store
func SetActive(s Store) {
	active = s
}

type minioStore struct {
	client *minio.Client
	bucket string
}

// Init connects to MinIO and ensures the media bucket exists
func Init(ctx context.Context, cfg *config.MediaConfig) error {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return errors.Wrap(err, "could not create media storage client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return errors.Wrap(err, "could not check media bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return errors.Wrap(err, "could not create media bucket")
		}
	}

	active = &minioStore{client: client, bucket: cfg.Bucket}
	return nil
}

func (s *minioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.Wrapf(err, "could not store object %s", key)
	}
	return nil
}

func (s *minioStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", errors.Wrapf(err, "could not fetch object %s", key)
	}

	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, "", errors.Wrapf(err, "object %s not found", key)
	}
	return obj, stat.ContentType, nil
}
