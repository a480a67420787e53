package ioutils

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/handiism/ccvtac/internal/model"
	"golang.org/x/text/unicode/norm"
)

// Mover moves tagged audio files into the destination library.
//
// The destination directory comes from the PathConfig and the tag record.
// File names are kept, normalized to NFC and sanitized. Existing files at the
// destination are overwritten.
type Mover struct {
	paths *model.PathConfig
}

// NewMover creates a Mover for the given destination layout.
func NewMover(paths *model.PathConfig) *Mover {
	return &Mover{paths: paths}
}

// Destination returns where src will be moved for rec.
func (m *Mover) Destination(rec model.TagRecord, src string) string {
	dir := norm.NFC.String(m.paths.Directory(rec))
	name := model.SanitizeFileName(norm.NFC.String(filepath.Base(src)))
	return filepath.Join(dir, name)
}

// Move moves every path into the directory for rec.
//
// A failure on one file does not stop the others. The returned slice holds
// the destinations of the files that were moved; the error joins the
// failures.
func (m *Mover) Move(ctx context.Context, rec model.TagRecord, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	dir := norm.NFC.String(m.paths.Directory(rec))
	if err := EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var (
		moved []string
		errs  []error
	)
	for _, src := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		dst := m.Destination(rec, src)
		if err := MoveFile(ctx, src, dst); err != nil {
			errs = append(errs, fmt.Errorf("failed to move %q: %w", filepath.Base(src), err))
			continue
		}
		moved = append(moved, dst)
	}

	return moved, errors.Join(errs...)
}
