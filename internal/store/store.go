// Package store persists record collections as JSON Lines files.
//
// Every read and write holds an exclusive flock on a sidecar lock file, so
// concurrent focus processes see a consistent collection. Writes go to a temp
// file that is renamed over the original.
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// maxRecordBytes bounds a single JSONL line.
const maxRecordBytes = 1 << 20

// File is a JSONL collection of T stored at a single path.
type File[T any] struct {
	path string
}

// NewFile returns a collection backed by path. The file and its directory
// are created on first use.
func NewFile[T any](path string) *File[T] {
	return &File[T]{path: path}
}

// Read returns every record in the collection. A missing file is an empty
// collection.
func (f *File[T]) Read() ([]T, error) {
	unlock, err := f.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return f.load()
}

// Update passes the current records to fn and replaces the collection with
// what it returns. Nothing is written when fn fails.
func (f *File[T]) Update(fn func(items []T) ([]T, error)) error {
	unlock, err := f.lock()
	if err != nil {
		return err
	}
	defer unlock()

	items, err := f.load()
	if err != nil {
		return err
	}
	if items, err = fn(items); err != nil {
		return err
	}
	return f.save(items)
}

func (f *File[T]) lock() (unlock func(), err error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	lockFile, err := os.OpenFile(f.path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		lockFile.Close()
		return nil, fmt.Errorf("lock %s: %w", f.path, err)
	}
	return func() {
		syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)
		lockFile.Close()
	}, nil
}

func (f *File[T]) load() ([]T, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	items, err := decode[T](file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return items, nil
}

// decode reads one T per line, skipping blank lines.
func decode[T any](r io.Reader) ([]T, error) {
	var items []T
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxRecordBytes)
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, item)
	}
	return items, scanner.Err()
}

// save writes items to a temp file in the same directory, then renames it
// over the collection.
func (f *File[T]) save(items []T) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for i := range items {
		if err := enc.Encode(items[i]); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
