package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/ccvtac/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrouper() *Grouper {
	return NewGrouper(Extensions{
		Audio:    []string{".m4a", ".mp3"},
		Metadata: ".info.json",
		Image:    ".jpg",
	})
}

func TestGroup_SingleBundle(t *testing.T) {
	paths := []string{
		"track1[AbCdEfGhIjK].m4a",
		"track1[AbCdEfGhIjK].info.json",
		"track1[AbCdEfGhIjK].jpg",
		"notes.txt",
	}

	bundles, rejected := newTestGrouper().Group(paths)

	require.Len(t, bundles, 1)
	assert.Empty(t, rejected)
	assert.Equal(t, model.Bundle{
		ResourceKey:  "AbCdEfGhIjK",
		AudioPaths:   []string{"track1[AbCdEfGhIjK].m4a"},
		MetadataPath: "track1[AbCdEfGhIjK].info.json",
		ImagePath:    "track1[AbCdEfGhIjK].jpg",
	}, bundles[0])
}

func TestGroup_SplitChapters(t *testing.T) {
	paths := []string{
		"/dl/Show - 002 Part B [x_y-z012345].m4a",
		"/dl/Show [x_y-z012345].info.json",
		"/dl/Show - 001 Part A [x_y-z012345].m4a",
		"/dl/Show [x_y-z012345].jpg",
		"/dl/Show [x_y-z012345].m4a",
	}

	bundles, rejected := newTestGrouper().Group(paths)

	require.Len(t, bundles, 1)
	assert.Empty(t, rejected)
	assert.Equal(t, []string{
		"/dl/Show - 001 Part A [x_y-z012345].m4a",
		"/dl/Show - 002 Part B [x_y-z012345].m4a",
		"/dl/Show [x_y-z012345].m4a",
	}, bundles[0].AudioPaths)
}

func TestGroup_RejectsIncompleteGroups(t *testing.T) {
	paths := []string{
		// no audio
		"a [aaaaaaaaaaa].info.json",
		"a [aaaaaaaaaaa].jpg",
		// no metadata
		"b [bbbbbbbbbbb].m4a",
		"b [bbbbbbbbbbb].jpg",
		// two images
		"c [ccccccccccc].m4a",
		"c [ccccccccccc].info.json",
		"c [ccccccccccc].jpg",
		"c [ccccccccccc] alt.jpg",
		// valid
		"d [ddddddddddd].mp3",
		"d [ddddddddddd].info.json",
		"d [ddddddddddd].jpg",
	}

	bundles, rejected := newTestGrouper().Group(paths)

	require.Len(t, bundles, 1)
	assert.Equal(t, "ddddddddddd", bundles[0].ResourceKey)

	assert.Equal(t, []Rejected{
		{ResourceKey: "aaaaaaaaaaa", Reason: "no audio files"},
		{ResourceKey: "bbbbbbbbbbb", Reason: "expected 1 metadata file, found 0"},
		{ResourceKey: "ccccccccccc", Reason: "expected 1 image file, found 2"},
	}, rejected)
}

func TestGroup_Invariants(t *testing.T) {
	paths := []string{
		"x [key-one_001].m4a",
		"x [key-one_001].MP3",
		"x [key-one_001].info.json",
		"x [key-one_001].JPG",
		"x [key-one_001].webm",
		"y [key-two_002].m4a",
		"y [key-two_002].info.json",
		"y [key-two_002].jpg",
		"z [short].m4a",
		"cover.jpg",
	}

	bundles, _ := newTestGrouper().Group(paths)
	require.Len(t, bundles, 2)

	seen := make(map[string]bool)
	for _, b := range bundles {
		assert.False(t, seen[b.ResourceKey], "duplicate key %s", b.ResourceKey)
		seen[b.ResourceKey] = true

		assert.NotEmpty(t, b.AudioPaths)
		assert.NotEmpty(t, b.MetadataPath)
		assert.NotEmpty(t, b.ImagePath)

		for _, p := range append(b.Audio(), b.Sidecars()...) {
			key, ok := ResourceKey(p)
			require.True(t, ok)
			assert.Equal(t, b.ResourceKey, key)
			assert.Contains(t, paths, p)
		}
	}

	assert.Len(t, bundles[0].AudioPaths, 2, "both case variants of the audio extensions count")
}

func TestGroup_Empty(t *testing.T) {
	bundles, rejected := newTestGrouper().Group(nil)
	assert.Empty(t, bundles)
	assert.Empty(t, rejected)
}

func TestGroup_KeyTakenFromBaseName(t *testing.T) {
	// The directory carries a key-like token; only the file name counts.
	paths := []string{
		"/music/[AAAAAAAAAAA]/song.m4a",
		"/music/[AAAAAAAAAAA]/song.info.json",
		"/music/[AAAAAAAAAAA]/song.jpg",
	}

	bundles, rejected := newTestGrouper().Group(paths)
	assert.Empty(t, bundles)
	assert.Empty(t, rejected)
}

func TestClassify(t *testing.T) {
	g := newTestGrouper()

	tests := []struct {
		path string
		want Kind
	}{
		{"a.m4a", KindAudio},
		{"a.M4A", KindAudio},
		{"a.mp3", KindAudio},
		{"a.info.json", KindMetadata},
		{"a.INFO.JSON", KindMetadata},
		{"a.json", KindOther},
		{"a.jpg", KindImage},
		{"a.webp", KindOther},
		{"a.m4a.part", KindOther},
	}

	for _, tt := range tests {
		if got := g.Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestGroup_TitleWithBracketedToken(t *testing.T) {
	g := NewGrouper(Extensions{Audio: []string{".m4a"}, Metadata: ".info.json", Image: ".jpg"})

	var paths []string
	for _, base := range []string{"/dl/A [Live_Stream] [AAAAAAAAAAA]", "/dl/B [Live_Stream] [BBBBBBBBBBB]"} {
		paths = append(paths, base+".m4a", base+".info.json", base+".jpg")
	}

	bundles, rejected := g.Group(paths)
	assert.Empty(t, rejected)
	require.Len(t, bundles, 2)
	assert.Equal(t, "AAAAAAAAAAA", bundles[0].ResourceKey)
	assert.Equal(t, []string{"/dl/A [Live_Stream] [AAAAAAAAAAA].m4a"}, bundles[0].AudioPaths)
	assert.Equal(t, "BBBBBBBBBBB", bundles[1].ResourceKey)
}

func TestResourceKey(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"Song [AbCdEfGhIjK].m4a", "AbCdEfGhIjK", true},
		{"Song [a-b_c-d_e-f].m4a", "a-b_c-d_e-f", true},
		{"Song [AbCdEfGhIj].m4a", "", false},
		{"Song [AbCdEfGhIjKL].m4a", "", false},
		{"Song AbCdEfGhIjK.m4a", "", false},
		{"Song [AbCdEf.hIjK].m4a", "", false},
		{"A [Live_Stream] [AAAAAAAAAAA].m4a", "AAAAAAAAAAA", true},
		{"A [AAAAAAAAAAA] [Live].m4a", "AAAAAAAAAAA", true},
		{"曲 [あいうえおかきくけこさ].m4a", "あいうえおかきくけこさ", true},
	}

	for _, tt := range tests {
		got, ok := ResourceKey(tt.path)
		assert.Equal(t, tt.wantOK, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b [BBBBBBBBBBB].m4a", "a [AAAAAAAAAAA].m4a"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub [CCCCCCCCCCC].m4a"), 0o755))

	files, err := ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a [AAAAAAAAAAA].m4a"),
		filepath.Join(dir, "b [BBBBBBBBBBB].m4a"),
	}, files)
}

func TestListFiles_MissingDirectory(t *testing.T) {
	_, err := ListFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
