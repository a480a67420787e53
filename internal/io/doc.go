// Package ioutils provides file system and image processing utilities for
// moving tagged files into the music library.
//
// # File Operations
//
//	// Move a file, falling back to copy and delete across file systems
//	err := ioutils.MoveFile(ctx, "/work/song.m4a", "/music/song.m4a")
//
//	// Delete sidecar files
//	n, err := ioutils.RemoveFiles(b.Sidecars()...)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Mover
//
// Mover places a bundle's audio files below the destination root using the
// PathConfig's sub-path template:
//
//	m := ioutils.NewMover(&model.PathConfig{Root: "/music", SubPathFormat: "{artist}/{album}"})
//	moved, err := m.Move(ctx, rec, b.Audio())
//
// # Image Processing
//
// The ImageService turns thumbnails into JPEG cover art:
//
//	svc := ioutils.NewImageService()
//	art, err := svc.PrepareArtwork(ctx, thumbnail, 500)
package ioutils
