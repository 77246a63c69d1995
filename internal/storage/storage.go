// Package storage persists finished artifacts: the assembled video and the
// marketing copy that goes with it.
package storage

import "context"

// Archiver stores a finished artifact and returns where it ended up.
type Archiver interface {
	Archive(ctx context.Context, localPath string) (string, error)
}
