package audio

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/ccvtac/internal/model"
)

// ErrUnsupportedFormat is returned for audio files no writer can tag.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// TagEditAction defines how to handle individual tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty removes the tag.
	TagEmpty TagEditAction = iota

	// TagModify writes the detected or default value. A field without a
	// value leaves the existing tag untouched.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds the edit action for each tag field.
//
// Example:
//
//	cfg := &TagConfig{
//	    Title:    TagModify,
//	    Artist:   TagModify,
//	    Album:    TagModify,
//	    Year:     TagModify,
//	    Composer: TagModify,
//	    Comment:  TagDoNotModify, // keep the downloader's comment
//	}
type TagConfig struct {
	Title    TagEditAction
	Artist   TagEditAction
	Album    TagEditAction
	Year     TagEditAction
	Composer TagEditAction
	Comment  TagEditAction
}

// DefaultTagConfig returns a configuration that writes every field.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Title:    TagModify,
		Artist:   TagModify,
		Album:    TagModify,
		Year:     TagModify,
		Composer: TagModify,
		Comment:  TagModify,
	}
}

// edit is the resolved change for one tag field.
type edit struct {
	action TagEditAction
	value  string
}

func (e edit) set() bool   { return e.action == TagModify }
func (e edit) clear() bool { return e.action == TagEmpty }

// edits are the changes one tag record makes to a file.
type edits struct {
	title    edit
	artist   edit
	album    edit
	year     edit
	composer edit
	comment  edit
}

func (c *TagConfig) resolve(rec model.TagRecord) edits {
	comment := model.None[string]()
	if rec.Comment != "" {
		comment = model.Default(rec.Comment)
	}
	return edits{
		title:    resolveField(c.Title, rec.Title),
		artist:   resolveField(c.Artist, rec.Artist),
		album:    resolveField(c.Album, rec.Album),
		year:     resolveField(c.Year, rec.Year),
		composer: resolveField(c.Composer, rec.Composers),
		comment:  resolveField(c.Comment, comment),
	}
}

func resolveField[T comparable](action TagEditAction, f model.Field[T]) edit {
	if action == TagModify {
		value := f.String()
		if value == "" {
			return edit{action: TagDoNotModify}
		}
		return edit{action: TagModify, value: value}
	}
	return edit{action: action}
}

// containerWriter writes resolved edits into one audio container format.
type containerWriter interface {
	write(path string, e edits, artwork []byte) error
}

// Tagger writes tag records to audio files, choosing the container writer
// from the file extension:
//   - .mp3 - ID3v2 frames
//   - .m4a, .mp4 - iTunes-style atoms
//   - .flac - Vorbis comments and a PICTURE block
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.WriteTags(ctx, "/work/Song [AbCdEfGhIjK].m4a", rec, jpegBytes)
//	if errors.Is(err, ErrUnsupportedFormat) {
//	    // skip
//	}
type Tagger struct {
	config  *TagConfig
	writers map[string]containerWriter
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	mp4 := mp4Writer{}
	return &Tagger{
		config: config,
		writers: map[string]containerWriter{
			".mp3":  id3Writer{},
			".m4a":  mp4,
			".mp4":  mp4,
			".flac": flacWriter{},
		},
	}
}

// Supports reports whether path has an extension the Tagger can write.
func (t *Tagger) Supports(path string) bool {
	_, ok := t.writers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// WriteTags writes rec to the audio file at path. artwork is embedded as the
// front cover when not nil.
func (t *Tagger) WriteTags(ctx context.Context, path string, rec model.TagRecord, artwork []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	w, ok := t.writers[ext]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := w.write(path, t.config.resolve(rec), artwork); err != nil {
		return fmt.Errorf("failed to tag %s: %w", filepath.Base(path), err)
	}
	return nil
}
