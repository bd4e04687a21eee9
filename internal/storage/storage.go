// Package storage persists uploaded files.  The upload pipeline writes
// through Store and the cleanup job lists and removes through it, so both
// work the same against a local directory or an S3 bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrInvalidName is returned for names that would escape the store root.
var ErrInvalidName = errors.New("invalid file name")

// Store is a flat namespace of uploaded files.
type Store interface {
	// Put writes the object and returns the public URL it is served under.
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	// List returns the base names of every stored object.
	List(ctx context.Context) ([]string, error)
	// Remove deletes one object by base name.
	Remove(ctx context.Context, name string) error
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || path.Base(name) != name {
		return ErrInvalidName
	}
	return nil
}

func joinURL(prefix, name string) string {
	return strings.TrimRight(prefix, "/") + "/" + name
}
