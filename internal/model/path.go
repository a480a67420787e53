package model

import (
	"path/filepath"
	"regexp"
	"strings"
)

// PathConfig holds the destination layout for moved files.
//
// SubPathFormat is joined to Root and supports placeholders that are replaced
// with the bundle's tag values:
//   - {artist} - Artist, or "Unknown Artist"
//   - {album} - Album, or "Unknown Album"
//   - {year} - Release year, or "Unknown Year"
//   - {title} - Title
//
// An empty SubPathFormat moves every file directly into Root.
//
// Example configuration:
//
//	cfg := &PathConfig{
//	    Root:                   "/home/user/Music",
//	    SubPathFormat:          "{artist}/{album}",
//	    PlaylistFileNameFormat: "{playlist}",
//	    PlaylistFormat:         PlaylistFormatM3U,
//	}
type PathConfig struct {
	// Root is the destination directory.
	Root string

	// SubPathFormat is the directory template below Root.
	// Example: "{artist}/{album}"
	SubPathFormat string

	// PlaylistFileNameFormat is the filename template for playlists (without extension).
	// Supports {playlist} and {date}.
	PlaylistFileNameFormat string

	// PlaylistFormat determines the playlist file type and extension.
	PlaylistFormat PlaylistFormat
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps a settings value (m3u, pls, wpl, zpl) to a format.
// Unknown values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	case "zpl":
		return PlaylistFormatZPL
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
//
// Returns:
//   - ".m3u" for PlaylistFormatM3U
//   - ".pls" for PlaylistFormatPLS
//   - ".wpl" for PlaylistFormatWPL
//   - ".zpl" for PlaylistFormatZPL
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatM3U:
		return ".m3u"
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// Directory computes the destination folder for a bundle's files.
func (c *PathConfig) Directory(rec TagRecord) string {
	if strings.TrimSpace(c.SubPathFormat) == "" {
		return c.Root
	}

	sub := c.SubPathFormat
	sub = strings.ReplaceAll(sub, "{artist}", SanitizeFileName(valueOr(rec.Artist, "Unknown Artist")))
	sub = strings.ReplaceAll(sub, "{album}", SanitizeFileName(valueOr(rec.Album, "Unknown Album")))
	sub = strings.ReplaceAll(sub, "{title}", SanitizeFileName(valueOr(rec.Title, "Unknown Title")))
	year := "Unknown Year"
	if rec.Year.Present {
		year = rec.Year.String()
	}
	sub = strings.ReplaceAll(sub, "{year}", year)

	path := filepath.Join(c.Root, sub)

	// Limit path length for cross-platform compatibility (Windows MAX_PATH)
	if len(path) >= 248 {
		path = path[:247]
	}

	return path
}

// PlaylistPath computes the playlist file path below Root.
//
// playlist is substituted for {playlist}; date (already formatted) for {date}.
func (c *PathConfig) PlaylistPath(playlist, date string) string {
	fileName := c.PlaylistFileNameFormat
	if fileName == "" {
		fileName = "{playlist}"
	}
	fileName = strings.ReplaceAll(fileName, "{playlist}", playlist)
	fileName = strings.ReplaceAll(fileName, "{date}", date)
	fileName = SanitizeFileName(fileName)
	ext := c.PlaylistFormat.Extension()
	filePath := filepath.Join(c.Root, fileName+ext)

	// Limit total path length for Windows compatibility
	if len(filePath) >= 260 {
		maxLen := 11 - len(ext)
		if maxLen > 0 && maxLen < len(fileName) {
			filePath = filepath.Join(c.Root, fileName[:maxLen]+ext)
		}
	}

	return filePath
}

func valueOr(f Field[string], fallback string) string {
	if !f.Present || strings.TrimSpace(f.Value) == "" {
		return fallback
	}
	return f.Value
}

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpace    = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
// It is applied to every name the pipeline creates, so the rules hold on Windows too.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func SanitizeFileName(name string) string {
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
