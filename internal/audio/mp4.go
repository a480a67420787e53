package audio

import (
	"strconv"

	mp4tag "github.com/Sorrow446/go-mp4tag"
)

// mp4Writer tags M4A/MP4 files.
type mp4Writer struct{}

func (mp4Writer) write(path string, e edits, artwork []byte) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return err
	}
	defer mp4.Close()

	var (
		tags = &mp4tag.MP4Tags{}
		del  []string
	)

	setAtom(&tags.Title, &del, "title", e.title)
	setAtom(&tags.Artist, &del, "artist", e.artist)
	setAtom(&tags.Album, &del, "album", e.album)
	setAtom(&tags.Composer, &del, "composer", e.composer)
	setAtom(&tags.Comment, &del, "comment", e.comment)

	switch {
	case e.year.clear():
		del = append(del, "year")
	case e.year.set():
		year, err := strconv.ParseInt(e.year.value, 10, 32)
		if err == nil {
			tags.Year = int32(year)
		}
	}

	if artwork != nil {
		tags.Pictures = []*mp4tag.MP4Picture{{
			Format: mp4tag.ImageTypeJPEG,
			Data:   artwork,
		}}
	}

	return mp4.Write(tags, del)
}

func setAtom(dst *string, del *[]string, name string, e edit) {
	switch {
	case e.clear():
		*del = append(*del, name)
	case e.set():
		*dst = e.value
	}
}
