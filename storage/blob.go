package storage

import (
	"mime/multipart"
	"time"
)

// BlobStore is the object-store collaborator: uploads return the stored
// object's path, reads go through signed URLs, deletes are best-effort.
type BlobStore interface {
	Upload(file *multipart.FileHeader, prefix string) (path string, err error)
	Delete(path string) error
	SignedURL(path string, expiry time.Duration) (string, error)
}

// Blob is the global store instance, set from main
var Blob BlobStore
