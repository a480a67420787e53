package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/handiism/ccvtac/internal/audio"
	"github.com/handiism/ccvtac/internal/model"
)

func TestDefaultSettings_Valid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("DefaultSettings().Validate() = %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, DefaultSettings()) {
		t.Errorf("Load() = %+v, want defaults", got)
	}
}

func TestLoad_KeepsDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{"move_to_directory": "/music", "max_concurrent_bundles": 2}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.MoveToDirectory != "/music" {
		t.Errorf("MoveToDirectory = %q, want %q", got.MoveToDirectory, "/music")
	}
	if got.MaxConcurrentBundles != 2 {
		t.Errorf("MaxConcurrentBundles = %d, want 2", got.MaxConcurrentBundles)
	}
	if got.MetadataExtension != ".info.json" {
		t.Errorf("MetadataExtension = %q, want default", got.MetadataExtension)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid JSON")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	want := DefaultSettings()
	want.MoveToPathFormat = "{artist}/{album}"
	want.AudioExtensions = []string{".opus"}
	want.KeepSidecarFiles = true

	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr bool
		target  error
	}{
		{"defaults", func(s *Settings) {}, false, nil},
		{"no working directory", func(s *Settings) { s.WorkingDirectory = " " }, true, nil},
		{"no destination", func(s *Settings) { s.MoveToDirectory = "" }, true, nil},
		{"no audio extensions", func(s *Settings) { s.AudioExtensions = []string{"", " "} }, true, ErrNoAudioExtensions},
		{"no metadata extension", func(s *Settings) { s.MetadataExtension = "" }, true, nil},
		{"zero concurrency", func(s *Settings) { s.MaxConcurrentBundles = 0 }, true, nil},
		{"bad artwork size", func(s *Settings) { s.ArtworkResize = true; s.ArtworkMaxSize = 0 }, true, nil},
		{"artwork size ignored without resize", func(s *Settings) { s.ArtworkMaxSize = 0 }, false, nil},
		{"bad playlist format", func(s *Settings) { s.PlaylistFormat = "xspf" }, true, nil},
		{"upper-case playlist format", func(s *Settings) { s.PlaylistFormat = "PLS" }, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Validate() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestToExtensions(t *testing.T) {
	s := DefaultSettings()
	s.AudioExtensions = []string{"m4a", ".MP3", ""}
	s.MetadataExtension = "info.json"

	got := s.ToExtensions()

	if !reflect.DeepEqual(got.Audio, []string{".m4a", ".MP3"}) {
		t.Errorf("Audio = %v", got.Audio)
	}
	if got.Metadata != ".info.json" {
		t.Errorf("Metadata = %q, want %q", got.Metadata, ".info.json")
	}
	if got.Image != ".jpg" {
		t.Errorf("Image = %q, want %q", got.Image, ".jpg")
	}
}

func TestToPathConfig(t *testing.T) {
	s := DefaultSettings()
	s.MoveToDirectory = "/music"
	s.MoveToPathFormat = "{artist}"
	s.PlaylistFormat = "wpl"

	got := s.ToPathConfig()

	want := &model.PathConfig{
		Root:                   "/music",
		SubPathFormat:          "{artist}",
		PlaylistFileNameFormat: "{playlist} {date}",
		PlaylistFormat:         model.PlaylistFormatWPL,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToPathConfig() = %+v, want %+v", got, want)
	}
}

func TestToTagConfig(t *testing.T) {
	s := DefaultSettings()
	if got := s.ToTagConfig(); !reflect.DeepEqual(got, audio.DefaultTagConfig()) {
		t.Errorf("ToTagConfig() = %+v, want defaults", got)
	}

	s.ModifyTags = false
	if got := s.ToTagConfig(); got.Title != audio.TagDoNotModify || got.Comment != audio.TagDoNotModify {
		t.Errorf("ToTagConfig() with ModifyTags off = %+v", got)
	}
}

func TestArtworkSize(t *testing.T) {
	s := DefaultSettings()
	if got := s.ArtworkSize(); got != 0 {
		t.Errorf("ArtworkSize() = %d, want 0 without resize", got)
	}
	s.ArtworkResize = true
	if got := s.ArtworkSize(); got != 1000 {
		t.Errorf("ArtworkSize() = %d, want 1000", got)
	}
}
