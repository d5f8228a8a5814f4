// Package storage abstracts where uploaded binaries live: a cloud
// object store when credentials are configured, the local filesystem
// otherwise. Either way each stored file gets a globally unique name
// and a publicly retrievable URL.
package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// Uploader stores a binary blob under a collision-free name and
// returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
}

// uniqueName keeps the original extension but replaces the rest of
// the filename with a fresh UUID.
func uniqueName(filename string) string {
	return uuid.New().String() + filepath.Ext(filename)
}
