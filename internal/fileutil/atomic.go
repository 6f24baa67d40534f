// Package fileutil writes report artifacts without leaving half-written
// files behind.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic creates the parent directory, streams write into a temp file
// next to path and renames it into place once write succeeds.
func WriteAtomic(path string, write func(io.Writer) error) error {
	var b Batch
	if err := b.Add(path, write); err != nil {
		return err
	}
	return b.Commit()
}

// Batch stages several files and moves them into place together. Nothing
// reaches its final path until Commit; Abort removes whatever was staged.
type Batch struct {
	staged []stagedFile
}

type stagedFile struct {
	tmp, path string
}

// Add writes one file into a temp file next to path.
func (b *Batch) Add(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	b.staged = append(b.staged, stagedFile{tmp: tmp.Name(), path: path})
	return nil
}

// Commit renames every staged file into place, in the order added. A
// rename that fails midway leaves the files before it already replaced.
func (b *Batch) Commit() error {
	for i, s := range b.staged {
		if err := os.Rename(s.tmp, s.path); err != nil {
			b.staged = b.staged[i:]
			b.Abort()
			return err
		}
	}
	b.staged = nil
	return nil
}

// Abort removes staged files that were not committed.
func (b *Batch) Abort() {
	for _, s := range b.staged {
		_ = os.Remove(s.tmp)
	}
	b.staged = nil
}
