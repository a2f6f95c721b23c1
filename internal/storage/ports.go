package storage

import (
	"context"
	"io"
)

// AudioStore holds generated audio blobs. Files are written once and never
// updated or deduplicated; every synthesis produces a new object.
type AudioStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (publicURL string, err error)
}
