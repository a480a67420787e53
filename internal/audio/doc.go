// Package audio writes tag records into audio files, reads them back and
// generates playlists.
//
// # Tagging
//
// The Tagger picks a writer from the file extension:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.WriteTags(ctx, path, rec, artworkBytes)
//
// Supported containers:
//   - MP3 (ID3v2: TIT2, TPE1, TALB, year, TCOM, COMM, APIC)
//   - M4A/MP4 (iTunes atoms, cover art)
//   - FLAC (Vorbis comments, PICTURE block)
//
// Other extensions fail with ErrUnsupportedFormat. Writing the same record
// twice leaves the file with one comment and one picture.
//
// # Reading
//
//	tags, err := audio.ReadTags(path)
//	fmt.Println(tags.Title, tags.Year)
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist("Downloads", "/music", entries)
//	os.WriteFile("/music/Downloads.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
