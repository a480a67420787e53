package model

import "slices"

// Bundle groups the files that share one resource key.
//
// A bundle is only ever built with at least one audio file, exactly one
// metadata document and exactly one image. Several audio files mean the
// source video was split into chapters.
type Bundle struct {
	// ResourceKey is the identifier embedded in every file name of the bundle.
	ResourceKey string

	// AudioPaths lists the bundle's audio files, unique and sorted.
	AudioPaths []string

	// MetadataPath is the info JSON document for the resource.
	MetadataPath string

	// ImagePath is the thumbnail used as cover art.
	ImagePath string
}

// NewBundle creates a Bundle, copying and sorting the audio paths.
func NewBundle(key string, audio []string, metadataPath, imagePath string) Bundle {
	paths := slices.Clone(audio)
	slices.Sort(paths)
	paths = slices.Compact(paths)

	return Bundle{
		ResourceKey:  key,
		AudioPaths:   paths,
		MetadataPath: metadataPath,
		ImagePath:    imagePath,
	}
}

// Audio returns a copy of the audio paths so callers cannot mutate the bundle.
func (b Bundle) Audio() []string {
	return slices.Clone(b.AudioPaths)
}

// Sidecars returns the non-audio files of the bundle.
func (b Bundle) Sidecars() []string {
	return []string{b.MetadataPath, b.ImagePath}
}
