package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/ccvtac/internal/audio"
	"github.com/handiism/ccvtac/internal/bundle"
	"github.com/handiism/ccvtac/internal/model"
)

// ErrNoAudioExtensions is returned by Validate when no audio extension is set.
var ErrNoAudioExtensions = errors.New("at least one audio extension is required")

// Settings holds all configuration options.
type Settings struct {
	// Directories
	WorkingDirectory string `json:"working_directory"`
	MoveToDirectory  string `json:"move_to_directory"`
	MoveToPathFormat string `json:"move_to_path_format"` // {artist}, {album}, {year}, {title}

	// File recognition
	AudioExtensions   []string `json:"audio_extensions"`
	MetadataExtension string   `json:"metadata_extension"`
	ImageExtension    string   `json:"image_extension"`

	// Tagging
	ModifyTags         bool `json:"modify_tags"`
	UploadYearFallback bool `json:"upload_year_fallback"`

	// Cover art
	EmbedImages    bool `json:"embed_images"`
	ArtworkResize  bool `json:"artwork_resize"`
	ArtworkMaxSize int  `json:"artwork_max_size"`

	// Processing
	MaxConcurrentBundles int  `json:"max_concurrent_bundles"`
	KeepSidecarFiles     bool `json:"keep_sidecar_files"`

	// Playlist settings
	CreatePlaylist         bool   `json:"create_playlist"`
	PlaylistFormat         string `json:"playlist_format"` // m3u, pls, wpl, zpl
	PlaylistFileNameFormat string `json:"playlist_file_name_format"`
	M3UExtended            bool   `json:"m3u_extended"`

	VerboseOutput bool `json:"verbose_output"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		WorkingDirectory: filepath.Join(homeDir, "Downloads", "ccvtac"),
		MoveToDirectory:  filepath.Join(homeDir, "Music", "ccvtac"),
		MoveToPathFormat: "",

		AudioExtensions:   []string{".m4a", ".mp3", ".flac"},
		MetadataExtension: ".info.json",
		ImageExtension:    ".jpg",

		ModifyTags:         true,
		UploadYearFallback: false,

		EmbedImages:    true,
		ArtworkResize:  false,
		ArtworkMaxSize: 1000,

		MaxConcurrentBundles: 4,
		KeepSidecarFiles:     false,

		CreatePlaylist:         false,
		PlaylistFormat:         "m3u",
		PlaylistFileNameFormat: "{playlist} {date}",
		M3UExtended:            true,
	}
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "settings.json"
	}
	return filepath.Join(dir, "ccvtac", "settings.json")
}

// Load reads settings from a JSON file. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem with the settings at once.
func (s *Settings) Validate() error {
	var errs []error

	if strings.TrimSpace(s.WorkingDirectory) == "" {
		errs = append(errs, errors.New("working directory is required"))
	}
	if strings.TrimSpace(s.MoveToDirectory) == "" {
		errs = append(errs, errors.New("move-to directory is required"))
	}
	if len(s.audioExtensions()) == 0 {
		errs = append(errs, ErrNoAudioExtensions)
	}
	if strings.TrimSpace(s.MetadataExtension) == "" {
		errs = append(errs, errors.New("metadata extension is required"))
	}
	if strings.TrimSpace(s.ImageExtension) == "" {
		errs = append(errs, errors.New("image extension is required"))
	}
	if s.MaxConcurrentBundles < 1 {
		errs = append(errs, fmt.Errorf("max concurrent bundles must be at least 1, got %d", s.MaxConcurrentBundles))
	}
	if s.EmbedImages && s.ArtworkResize && s.ArtworkMaxSize < 1 {
		errs = append(errs, fmt.Errorf("artwork max size must be positive, got %d", s.ArtworkMaxSize))
	}
	switch strings.ToLower(s.PlaylistFormat) {
	case "", "m3u", "pls", "wpl", "zpl":
	default:
		errs = append(errs, fmt.Errorf("unknown playlist format %q", s.PlaylistFormat))
	}

	return errors.Join(errs...)
}

// ToPathConfig converts settings to PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		Root:                   s.MoveToDirectory,
		SubPathFormat:          s.MoveToPathFormat,
		PlaylistFileNameFormat: s.PlaylistFileNameFormat,
		PlaylistFormat:         model.ParsePlaylistFormat(s.PlaylistFormat),
	}
}

// ToExtensions converts settings to the file suffixes used for grouping.
func (s *Settings) ToExtensions() bundle.Extensions {
	return bundle.Extensions{
		Audio:    s.audioExtensions(),
		Metadata: normalizeExtension(s.MetadataExtension),
		Image:    normalizeExtension(s.ImageExtension),
	}
}

// ToTagConfig converts settings to the per-field tag actions. With
// ModifyTags off only cover art is written.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	if s.ModifyTags {
		return audio.DefaultTagConfig()
	}
	return &audio.TagConfig{
		Title:    audio.TagDoNotModify,
		Artist:   audio.TagDoNotModify,
		Album:    audio.TagDoNotModify,
		Year:     audio.TagDoNotModify,
		Composer: audio.TagDoNotModify,
		Comment:  audio.TagDoNotModify,
	}
}

// ArtworkSize returns the maximum cover art edge in pixels, or 0 when
// artwork is not resized.
func (s *Settings) ArtworkSize() int {
	if !s.ArtworkResize {
		return 0
	}
	return s.ArtworkMaxSize
}

func (s *Settings) audioExtensions() []string {
	var exts []string
	for _, ext := range s.AudioExtensions {
		if ext = normalizeExtension(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// normalizeExtension adds the leading dot: "m4a" becomes ".m4a".
func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
