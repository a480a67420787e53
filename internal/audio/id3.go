package audio

import (
	"github.com/bogem/id3v2"
)

// id3Writer tags MP3 files.
type id3Writer struct{}

func (id3Writer) write(path string, e edits, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	applyTextFrame(tag, tag.CommonID("Title"), e.title)
	applyTextFrame(tag, tag.CommonID("Artist"), e.artist)
	applyTextFrame(tag, tag.CommonID("Album/Movie/Show title"), e.album)
	applyTextFrame(tag, tag.CommonID("Year"), e.year)
	applyTextFrame(tag, tag.CommonID("Composer"), e.composer)

	// COMM frames accumulate, so the old comment is always dropped first.
	if e.comment.set() || e.comment.clear() {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
	if e.comment.set() {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "",
			Text:        e.comment.value,
		})
	}

	if artwork != nil {
		updateArtwork(tag, artwork)
	}

	return tag.Save()
}

func applyTextFrame(tag *id3v2.Tag, id string, e edit) {
	switch {
	case e.clear():
		tag.DeleteFrames(id)
	case e.set():
		tag.AddTextFrame(id, id3v2.EncodingUTF8, e.value)
	}
}

// updateArtwork embeds cover art as an attached picture frame.
func updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}
