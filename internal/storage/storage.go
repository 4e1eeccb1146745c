// Package storage persists resume attachments in an object store.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/vancoder1/CampusJobBoardSystem/config"
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// ResumeStore saves and retrieves resume files attached to applications.
type ResumeStore struct {
	backend ObjectStorage
}

// NewResumeStore wraps the given backend.
func NewResumeStore(backend ObjectStorage) *ResumeStore {
	return &ResumeStore{backend: backend}
}

// NewResumeStoreFromConfig selects a backend from config. Returns nil when
// storage is disabled; callers treat a nil store as "resumes unsupported".
func NewResumeStoreFromConfig(ctx context.Context, cfg config.StorageConfig) (*ResumeStore, error) {
	var backend ObjectStorage
	var err error

	switch cfg.Backend {
	case "minio":
		backend, err = NewMinioClient(cfg.Minio)
	case "gcs":
		backend, err = NewGCSClient(ctx, cfg.GCS)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	store := NewResumeStore(backend)
	if err := backend.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Save stores a resume under a key derived from the application id and
// original filename, and returns that key.
func (s *ResumeStore) Save(ctx context.Context, applicationID int, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("resumes/%d/%s", applicationID, path.Base(filename))
	if err := s.backend.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", err
	}
	return key, nil
}

// Open returns a reader for a previously stored resume.
func (s *ResumeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.backend.Get(ctx, key)
}

// Delete removes a stored resume.
func (s *ResumeStore) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

// Bucket returns the configured bucket name.
func (s *ResumeStore) Bucket() string {
	return s.backend.Bucket()
}
