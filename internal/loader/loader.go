// Package loader handles program image file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/translate"
)

// DefaultBufferLimit is the largest file size a buffer is provided for.
// Images that fit the buffer but not the program area are rejected later
// by the interpreter.
const DefaultBufferLimit = 1 << 20

// Kind classifies a load failure.
type Kind int

const (
	// SourceUnavailable is returned when the file can not be opened or stat'ed.
	SourceUnavailable Kind = iota + 1
	// AllocationFailed is returned when no buffer for the file size can be provided.
	AllocationFailed
	// ShortRead is returned when fewer bytes than the file size could be read.
	ShortRead
)

var kindNames = map[Kind]string{
	SourceUnavailable: "source unavailable",
	AllocationFailed:  "allocation failed",
	ShortRead:         "short read",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ExitCode returns the process exit status for the failure kind.
func (k Kind) ExitCode() int {
	return int(k)
}

var errBufferLimit = errors.New("file size exceeds buffer limit")

// LoadError describes a failed program image load.
type LoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return translate.From("loading %s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader handles loading program images from disk.
type Loader struct {
	bufferLimit int64
}

// New creates a new program image loader.
func New() *Loader {
	return &Loader{
		bufferLimit: DefaultBufferLimit,
	}
}

// WithBufferLimit sets the largest file size a buffer is provided for.
func (l *Loader) WithBufferLimit(limit int64) *Loader {
	l.bufferLimit = limit
	return l
}

// Load reads the complete file at path.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Kind: SourceUnavailable, Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, &LoadError{Kind: SourceUnavailable, Path: path, Err: err}
	}

	data, err := l.read(file, info.Size())
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return data, nil
}

// loadReader reads exactly size bytes from reader. The name is used in
// error messages.
func (l *Loader) loadReader(reader io.Reader, size int64, name string) ([]byte, error) {
	data, err := l.read(reader, size)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = name
		}
		return nil, err
	}
	return data, nil
}

func (l *Loader) read(reader io.Reader, size int64) ([]byte, error) {
	if size < 0 || size > l.bufferLimit {
		return nil, &LoadError{
			Kind: AllocationFailed,
			Err:  fmt.Errorf("%w: %d bytes, limit is %d", errBufferLimit, size, l.bufferLimit),
		}
	}

	data := make([]byte, size)
	n, err := io.ReadFull(reader, data)
	if err != nil {
		return nil, &LoadError{
			Kind: ShortRead,
			Err:  fmt.Errorf("read %d of %d bytes: %w", n, size, err),
		}
	}
	return data, nil
}
