// Package storage abstracts where vehicle images live.
//
// Two drivers exist: "local" keeps files under a configured directory and is
// the default; "s3" talks to any S3-compatible object store (AWS, MinIO, R2).
// The driver is picked once at startup from configuration and injected into
// the upload controller.
package storage

import "io"

// Disk is the object-store driver interface.
type Disk interface {
	// Put writes content at key, creating parents as needed.
	Put(key string, content []byte) error

	// PutStream streams r into key.
	PutStream(key string, r io.Reader) error

	// Get reads the whole object at key.
	Get(key string) ([]byte, error)

	// Exists reports whether key holds an object.
	Exists(key string) bool

	// URL returns the public URL serving key.
	URL(key string) string

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}
