package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DiskStore is a filesystem-backed Store. Objects live under
// root/<bucket>/<key> and are served by the API's /files route.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates a disk store rooted at root. baseURL is the public
// address the files are served from, without a trailing slash.
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "create storage root")
	}
	return &DiskStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Root returns the directory objects are stored under.
func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) Upload(_ context.Context, bucket, key string, data []byte) (string, error) {
	path, err := s.objectPath(bucket, key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "create bucket dir")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "write object")
	}
	return fmt.Sprintf("%s/files/%s/%s", s.baseURL, bucket, key), nil
}

func (s *DiskStore) Remove(_ context.Context, bucket, key string) error {
	path, err := s.objectPath(bucket, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove object")
	}
	return nil
}

// objectPath rejects keys that would escape the storage root.
func (s *DiskStore) objectPath(bucket, key string) (string, error) {
	if bucket == "" || key == "" {
		return "", errors.New("bucket and key are required")
	}
	path := filepath.Join(s.root, bucket, key)
	if !strings.HasPrefix(path, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", errors.Errorf("invalid object key %q", key)
	}
	return path, nil
}
