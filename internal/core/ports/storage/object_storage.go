package storage

import "context"

// ObjectStorage uploads local files to an external media host.
type ObjectStorage interface {
	// Upload sends the file at localPath and returns its public URL.
	// The caller owns localPath and is responsible for removing it.
	Upload(ctx context.Context, localPath string) (string, error)
}
