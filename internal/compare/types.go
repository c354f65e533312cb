package compare

import (
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
)

const (
	DefaultChunkSize = 4096
	MaxChunkSize     = 64 << 20 // 64 MiB
)

// FS is the slice of a billy.Filesystem the comparator needs.
type FS interface {
	Open(name string) (billy.File, error)
	Stat(name string) (os.FileInfo, error)
}

type Request struct {
	Left      string
	Right     string
	ChunkSize int
}

type Reason string

const (
	ReasonNone            Reason = "none"
	ReasonSizeMismatch    Reason = "size_mismatch"
	ReasonContentMismatch Reason = "content_mismatch"
)

type Result struct {
	Identical bool   `json:"identical"`
	Reason    Reason `json:"reason"`

	LeftSize  int64 `json:"left_size"`
	RightSize int64 `json:"right_size"`
	// Offset of the first differing byte, -1 when the content loop never found one.
	Offset int64 `json:"offset"`

	BytesCompared int64         `json:"bytes_compared"`
	Chunks        int64         `json:"chunks"`
	ChunkSize     int           `json:"chunk_size"`
	Elapsed       time.Duration `json:"elapsed_ns"`
}

// NormalizeChunkSize clamps n into (0, MaxChunkSize], substituting
// DefaultChunkSize for non-positive values. The bool reports whether n was changed.
func NormalizeChunkSize(n int) (int, bool) {
	switch {
	case n <= 0:
		return DefaultChunkSize, true
	case n > MaxChunkSize:
		return MaxChunkSize, true
	default:
		return n, false
	}
}
