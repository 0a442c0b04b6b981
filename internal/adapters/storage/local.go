package storage

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStorage serves objects from a directory tree laid out as
// <basePath>/<bucket>/<key>. It backs the development server.
type LocalFileStorage struct {
	basePath string
}

// NewLocalFileStorage creates a new LocalFileStorage instance
func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewStorageError("NewLocalFileStorage", "", "", err)
	}

	return &LocalFileStorage{basePath: absPath}, nil
}

// Fetch implements ObjectStorage.Fetch
func (l *LocalFileStorage) Fetch(ctx context.Context, bucket, key string) (*Object, error) {
	if err := validateKey(bucket); err != nil {
		return nil, NewStorageError("Fetch", bucket, key, err)
	}
	if err := validateKey(key); err != nil {
		return nil, NewStorageError("Fetch", bucket, key, err)
	}

	filePath := filepath.Join(l.basePath, bucket, filepath.FromSlash(key))

	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageError("Fetch", bucket, key, ErrObjectNotFound)
		}
		return nil, NewStorageError("Fetch", bucket, key, err)
	}
	if info.IsDir() {
		return nil, NewStorageError("Fetch", bucket, key, ErrObjectNotFound)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, NewStorageError("Fetch", bucket, key, err)
	}

	return &Object{
		Bucket:       bucket,
		Key:          key,
		ContentType:  mime.TypeByExtension(filepath.Ext(key)),
		Data:         data,
		LastModified: info.ModTime(),
	}, nil
}

// Close implements ObjectStorage.Close
func (l *LocalFileStorage) Close() error {
	return nil
}

// validateKey rejects keys that could escape the base directory
func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." {
			return ErrInvalidKey
		}
	}
	return nil
}
