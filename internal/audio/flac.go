package audio

import (
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

type vorbisField struct {
	name string
	edit edit
}

// flacWriter tags FLAC files. Existing Vorbis comments that the edits do not
// touch are carried over.
type flacWriter struct{}

func (flacWriter) write(path string, e edits, artwork []byte) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return err
	}

	fields := []vorbisField{
		{flacvorbis.FIELD_TITLE, e.title},
		{flacvorbis.FIELD_ARTIST, e.artist},
		{flacvorbis.FIELD_ALBUM, e.album},
		{flacvorbis.FIELD_DATE, e.year},
		{"COMPOSER", e.composer},
		{"COMMENT", e.comment},
	}

	comment := flacvorbis.New()
	var kept []*flac.MetaDataBlock
	for _, block := range f.Meta {
		switch {
		case block.Type == flac.VorbisComment:
			old, err := flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				continue
			}
			comment.Vendor = old.Vendor
			for _, c := range old.Comments {
				if !touchesField(c, fields) {
					comment.Comments = append(comment.Comments, c)
				}
			}
		case block.Type == flac.Picture && artwork != nil:
			// replaced below
		default:
			kept = append(kept, block)
		}
	}

	for _, field := range fields {
		if field.edit.set() {
			if err := comment.Add(field.name, field.edit.value); err != nil {
				return err
			}
		}
	}

	commentBlock := comment.Marshal()
	kept = append(kept, &commentBlock)

	if artwork != nil {
		picture, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front Cover",
			artwork,
			"image/jpeg",
		)
		if err != nil {
			return err
		}
		pictureBlock := picture.Marshal()
		kept = append(kept, &pictureBlock)
	}

	f.Meta = kept
	return f.Save(path)
}

// touchesField reports whether a "NAME=value" comment belongs to a field
// that is being set or cleared.
func touchesField(comment string, fields []vorbisField) bool {
	name, _, _ := strings.Cut(comment, "=")
	for _, field := range fields {
		if strings.EqualFold(name, field.name) && (field.edit.set() || field.edit.clear()) {
			return true
		}
	}
	return false
}
