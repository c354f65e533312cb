// Package compare decides whether two files are byte-for-byte identical.
//
// A comparison runs in three phases: both files are opened, their sizes are
// read from filesystem metadata, and only when the sizes agree is the content
// read in lock-step chunks until the first differing byte or the end of both
// files. A Comparator holds no mutable state, so independent comparisons may
// run concurrently on the same value.
package compare

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

type Comparator struct {
	fs         FS
	logger     *slog.Logger
	now        func() time.Time
	onProgress func(n int64)
}

type Option func(*Comparator)

// WithFS replaces the native filesystem. Paths are passed to fs unchanged.
func WithFS(fs FS) Option {
	return func(c *Comparator) {
		if fs != nil {
			c.fs = fs
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Comparator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used to fill Result.Elapsed.
func WithClock(now func() time.Time) Option {
	return func(c *Comparator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithProgress registers a callback that receives the size of every chunk
// pair compared. It is called from the goroutine running Compare.
func WithProgress(fn func(n int64)) Option {
	return func(c *Comparator) {
		c.onProgress = fn
	}
}

func New(opts ...Option) *Comparator {
	c := &Comparator{
		fs:     osfs.Default,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Files compares left and right on the native filesystem.
func Files(ctx context.Context, left, right string, chunkSize int) (Result, error) {
	return New().Compare(ctx, Request{Left: left, Right: right, ChunkSize: chunkSize})
}

// Compare reports whether req.Left and req.Right hold the same bytes.
//
// Failures to open or stat either path are returned as *OpenError or
// *StatError, failures while reading content as *ReadError; in those cases
// the Result is zero. Cancellation of ctx is observed between chunks and
// returned as ctx.Err().
func (c *Comparator) Compare(ctx context.Context, req Request) (Result, error) {
	chunkSize, adjusted := NormalizeChunkSize(req.ChunkSize)
	if adjusted {
		c.logger.DebugContext(ctx, "chunk size adjusted", "requested", req.ChunkSize, "using", chunkSize)
	}

	started := c.now()
	res := Result{Reason: ReasonNone, Offset: -1, ChunkSize: chunkSize}
	finish := func() (Result, error) {
		res.Elapsed = c.now().Sub(started)
		c.logger.DebugContext(ctx, "comparison finished",
			"left", req.Left,
			"right", req.Right,
			"identical", res.Identical,
			"reason", res.Reason,
			"bytes_compared", res.BytesCompared,
			"chunks", res.Chunks,
			"elapsed", res.Elapsed,
		)
		return res, nil
	}

	left, err := c.open(req.Left)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		_ = left.Close()
	}()

	right, err := c.open(req.Right)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		_ = right.Close()
	}()

	if res.LeftSize, err = c.size(req.Left); err != nil {
		return Result{}, err
	}
	if res.RightSize, err = c.size(req.Right); err != nil {
		return Result{}, err
	}

	if res.LeftSize != res.RightSize {
		res.Reason = ReasonSizeMismatch
		return finish()
	}

	bufL := make([]byte, chunkSize)
	bufR := make([]byte, chunkSize)

	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		nl, err := readChunk(left, bufL)
		if err != nil {
			return Result{}, &ReadError{Path: req.Left, Offset: offset, Err: err}
		}
		nr, err := readChunk(right, bufR)
		if err != nil {
			return Result{}, &ReadError{Path: req.Right, Offset: offset, Err: err}
		}

		// Sizes matched a moment ago, so this only happens when a file
		// changed underneath us.
		if nl != nr {
			c.logger.WarnContext(ctx, "file length changed during comparison",
				"left", req.Left, "right", req.Right, "offset", offset)
			res.Reason = ReasonSizeMismatch
			res.Offset = offset + int64(min(nl, nr))
			return finish()
		}
		if nl == 0 {
			res.Identical = true
			return finish()
		}

		res.Chunks++
		res.BytesCompared += int64(nl)
		c.advance(int64(nl))

		if i := firstDiff(bufL[:nl], bufR[:nr]); i >= 0 {
			res.Reason = ReasonContentMismatch
			res.Offset = offset + int64(i)
			return finish()
		}
		offset += int64(nl)
	}
}

func (c *Comparator) open(path string) (billy.File, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return f, nil
}

func (c *Comparator) size(path string) (int64, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		return 0, &StatError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return 0, &OpenError{Path: path, Err: ErrNotRegular}
	}
	return info.Size(), nil
}

func (c *Comparator) advance(n int64) {
	if n > 0 && c.onProgress != nil {
		c.onProgress(n)
	}
}

// readChunk fills buf as far as the file allows. A short count with a nil
// error means end of file was reached.
func readChunk(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	return n, err
}

func firstDiff(a, b []byte) int {
	if bytes.Equal(a, b) {
		return -1
	}
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return len(a)
}
