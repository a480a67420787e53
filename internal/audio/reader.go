package audio

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// Tags are the values read back from an audio file.
type Tags struct {
	Format   string
	FileType string
	Title    string
	Artist   string
	Album    string
	Composer string
	Comment  string
	Year     int

	// HasPicture reports whether embedded cover art was found.
	HasPicture bool
}

// ReadTags reads the tags of the audio file at path.
func ReadTags(path string) (*Tags, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close() // nolint: errcheck

	m, err := tag.ReadFrom(fh)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags from %s: %w", path, err)
	}

	return &Tags{
		Format:     string(m.Format()),
		FileType:   string(m.FileType()),
		Title:      m.Title(),
		Artist:     m.Artist(),
		Album:      m.Album(),
		Composer:   m.Composer(),
		Comment:    m.Comment(),
		Year:       m.Year(),
		HasPicture: m.Picture() != nil,
	}, nil
}
