package bundle

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/handiism/ccvtac/internal/model"
)

// keyPattern finds the last bracketed 11-character identifier in a file name.
var keyPattern = regexp.MustCompile(`^.*\[([\p{L}\p{N}_-]{11})\]`)

// Kind classifies a file within a bundle.
type Kind int

const (
	KindOther Kind = iota
	KindAudio
	KindMetadata
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindMetadata:
		return "metadata"
	case KindImage:
		return "image"
	default:
		return "other"
	}
}

// Extensions are the file name suffixes that identify each kind of file.
// Matching ignores case. A suffix may span several dots, as in ".info.json".
type Extensions struct {
	Audio    []string
	Metadata string
	Image    string
}

// Rejected is a resource key whose files do not form a valid bundle.
type Rejected struct {
	ResourceKey string
	Reason      string
}

func (r Rejected) String() string {
	return fmt.Sprintf("%s: %s", r.ResourceKey, r.Reason)
}

// Grouper builds bundles from a file listing.
type Grouper struct {
	exts Extensions
}

// NewGrouper creates a Grouper for the given extensions.
func NewGrouper(exts Extensions) *Grouper {
	norm := Extensions{
		Audio:    make([]string, 0, len(exts.Audio)),
		Metadata: strings.ToLower(exts.Metadata),
		Image:    strings.ToLower(exts.Image),
	}
	for _, ext := range exts.Audio {
		norm.Audio = append(norm.Audio, strings.ToLower(ext))
	}
	return &Grouper{exts: norm}
}

// entry is one file that carries a resource key.
type entry struct {
	key  string
	path string
	kind Kind
}

// tally collects the files seen for one key.
type tally struct {
	audio    []string
	metadata []string
	images   []string
}

// Group sorts paths into bundles. Paths without a resource key are ignored.
// Both results are ordered by resource key.
func (g *Grouper) Group(paths []string) ([]model.Bundle, []Rejected) {
	tallies := make(map[string]*tally)
	for _, e := range g.entries(paths) {
		t, ok := tallies[e.key]
		if !ok {
			t = &tally{}
			tallies[e.key] = t
		}
		switch e.kind {
		case KindAudio:
			t.audio = append(t.audio, e.path)
		case KindMetadata:
			t.metadata = append(t.metadata, e.path)
		case KindImage:
			t.images = append(t.images, e.path)
		}
	}

	var (
		bundles  []model.Bundle
		rejected []Rejected
	)
	for key, t := range tallies {
		if reason := t.problem(); reason != "" {
			rejected = append(rejected, Rejected{ResourceKey: key, Reason: reason})
			continue
		}
		bundles = append(bundles, model.NewBundle(key, t.audio, t.metadata[0], t.images[0]))
	}

	slices.SortFunc(bundles, func(a, b model.Bundle) int {
		return cmp.Compare(a.ResourceKey, b.ResourceKey)
	})
	slices.SortFunc(rejected, func(a, b Rejected) int {
		return cmp.Compare(a.ResourceKey, b.ResourceKey)
	})

	return bundles, rejected
}

// entries is the first pass: every path with a key, classified by kind.
func (g *Grouper) entries(paths []string) []entry {
	var out []entry
	for _, path := range paths {
		key, ok := ResourceKey(path)
		if !ok {
			continue
		}
		out = append(out, entry{key: key, path: path, kind: g.Classify(path)})
	}
	return out
}

func (t *tally) problem() string {
	switch {
	case len(t.audio) == 0:
		return "no audio files"
	case len(t.metadata) != 1:
		return fmt.Sprintf("expected 1 metadata file, found %d", len(t.metadata))
	case len(t.images) != 1:
		return fmt.Sprintf("expected 1 image file, found %d", len(t.images))
	}
	return ""
}

// Classify reports the kind of a file from its name.
func (g *Grouper) Classify(path string) Kind {
	name := strings.ToLower(filepath.Base(path))

	// Checked first so that a metadata suffix like ".info.json" is not
	// shadowed by a shorter one.
	if g.exts.Metadata != "" && strings.HasSuffix(name, g.exts.Metadata) {
		return KindMetadata
	}
	if g.exts.Image != "" && strings.HasSuffix(name, g.exts.Image) {
		return KindImage
	}
	for _, ext := range g.exts.Audio {
		if ext != "" && strings.HasSuffix(name, ext) {
			return KindAudio
		}
	}
	return KindOther
}

// ResourceKey extracts the bracketed identifier from the base name of path.
// When several bracketed tokens qualify, the last one wins.
func ResourceKey(path string) (string, bool) {
	m := keyPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ListFiles returns the regular files directly inside dir, sorted by name.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
