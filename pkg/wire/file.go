package wire

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/calperiod/calperiod-go/pkg/calendar"
	"github.com/calperiod/calperiod-go/pkg/period"
)

// File appends envelopes to a period file.
// It is safe for concurrent use from multiple goroutines.
type File struct {
	file   *os.File
	w      *Writer
	mu     sync.Mutex
	closed bool
}

// AppendFile opens path for appending, creating it with permissions 0644 if
// it doesn't exist.
func AppendFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &File{
		file: f,
		w:    NewWriter(f),
	}, nil
}

// Write appends v, an Instant or Range, as one envelope.
func (f *File) Write(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrFileClosed
	}
	return f.w.Write(v)
}

// Close closes the file. It is safe to call Close multiple times.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.file.Close()
}

// Filter specifies criteria for values read from a file.
// Zero fields match every value.
type Filter struct {
	// Kind keeps only values of this kind.
	Kind Kind

	// Unit keeps only ranges of this resolution. Instants never match.
	Unit calendar.Unit

	// Within keeps ranges intersecting it and instants inside it.
	Within period.Range
}

// Matches reports whether v, an Instant or Range, satisfies every criterion.
func (f Filter) Matches(v any) bool {
	switch x := v.(type) {
	case period.Instant:
		if f.Kind != KindUnknown && f.Kind != KindInstant {
			return false
		}
		if f.Unit != 0 {
			return false
		}
		return f.Within.IsEmpty() || f.Within.ContainsInstant(x)
	case period.Range:
		if f.Kind != KindUnknown && f.Kind != KindRange {
			return false
		}
		if f.Unit != 0 && x.Unit() != f.Unit {
			return false
		}
		return f.Within.IsEmpty() || f.Within.Intersects(x)
	}
	return false
}

// FileReader reads values from a period file.
type FileReader struct {
	file   *os.File
	r      *Reader
	filter Filter
}

// OpenFile opens a period file for reading values matching filter.
func OpenFile(path string, filter Filter) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &FileReader{
		file:   f,
		r:      NewReader(f),
		filter: filter,
	}, nil
}

// Next returns the next value that matches the filter.
// Returns io.EOF when no more values are available.
func (r *FileReader) Next() (any, error) {
	for {
		v, err := r.r.Next()
		if err != nil {
			return nil, err
		}
		if r.filter.Matches(v) {
			return v, nil
		}
	}
}

// ReadAll returns the remaining matching values.
func (r *FileReader) ReadAll() ([]any, error) {
	var out []any
	for {
		v, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}

// Close closes the underlying file.
func (r *FileReader) Close() error {
	return r.file.Close()
}
