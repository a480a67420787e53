package postprocess

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/handiism/ccvtac/internal/audio"
	"github.com/handiism/ccvtac/internal/bundle"
)

// ErrPartialFailure is returned when at least one bundle failed.
var ErrPartialFailure = errors.New("some bundles failed")

// Stage names the step of bundle processing that failed.
type Stage string

const (
	StageMetadata Stage = "metadata"
	StageArtwork  Stage = "artwork"
	StageTagging  Stage = "tagging"
	StageMoving   Stage = "moving"
	StageCleanup  Stage = "cleanup"
)

// BundleError records why one bundle failed.
type BundleError struct {
	ResourceKey string
	Stage       Stage
	Err         error
}

func (e *BundleError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.ResourceKey, e.Stage, e.Err)
}

func (e *BundleError) Unwrap() error {
	return e.Err
}

// Report summarizes one pipeline run.
type Report struct {
	// Bundles is the number of valid bundles found.
	Bundles int

	// Succeeded counts bundles that finished every step.
	Succeeded int

	// Rejected lists resource keys whose files did not form a bundle.
	Rejected []bundle.Rejected

	// Failures lists the bundles that failed, ordered by resource key.
	Failures []*BundleError

	// Moved lists the destination of every moved audio file, sorted.
	Moved []string

	// PlaylistPath is the written playlist, empty when none was created.
	PlaylistPath string
}

// Err returns nil when every bundle succeeded. Otherwise it joins
// ErrPartialFailure with each bundle's error.
func (r *Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures)+1)
	errs = append(errs, ErrPartialFailure)
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Summary is a one-line description of the run.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d of %d bundle(s) processed, %d file(s) moved", r.Succeeded, r.Bundles, len(r.Moved))
	if n := len(r.Failures); n > 0 {
		fmt.Fprintf(&sb, ", %d failed", n)
	}
	if n := len(r.Rejected); n > 0 {
		fmt.Fprintf(&sb, ", %d skipped", n)
	}
	return sb.String()
}

// collector gathers results from concurrent bundle workers.
type collector struct {
	mu        sync.Mutex
	succeeded int
	failures  []*BundleError
	moved     []string
	entries   []audio.PlaylistEntry
	playlists []string
}

func (c *collector) fail(err *BundleError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, err)
}

func (c *collector) move(dsts []string, entries []audio.PlaylistEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moved = append(c.moved, dsts...)
	c.entries = append(c.entries, entries...)
}

func (c *collector) succeed(playlistTitle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.succeeded++
	if playlistTitle != "" {
		c.playlists = append(c.playlists, playlistTitle)
	}
}

// fill copies the collected results into r in a stable order.
func (c *collector) fill(r *Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r.Succeeded = c.succeeded
	r.Failures = slices.Clone(c.failures)
	slices.SortFunc(r.Failures, func(a, b *BundleError) int {
		return strings.Compare(a.ResourceKey, b.ResourceKey)
	})
	r.Moved = slices.Clone(c.moved)
	slices.Sort(r.Moved)
}

func (c *collector) playlistEntries() []audio.PlaylistEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := slices.Clone(c.entries)
	slices.SortFunc(entries, func(a, b audio.PlaylistEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries
}

// playlistTitle returns the smallest non-empty source playlist title seen.
func (c *collector) playlistTitle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.playlists) == 0 {
		return ""
	}
	return slices.Min(c.playlists)
}
