package storage

import "context"

// Store is the object-storage boundary used for uploaded files.
type Store interface {
	// Upload writes the object and returns its public URL.
	Upload(ctx context.Context, bucket, key string, data []byte) (string, error)

	// Remove deletes the object. Removing a missing object is not an error.
	Remove(ctx context.Context, bucket, key string) error
}
