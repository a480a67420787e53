// Package model defines the core data structures used throughout
// the ccvtac post-processing pipeline.
//
// # Bundle
//
// Bundle is the set of files a single download produced for one resource key
// (usually a video ID): one or more audio files, one info JSON document and one
// thumbnail image:
//
//	b := model.Bundle{
//	    ResourceKey:  "AbCdEfGhIjK",
//	    AudioPaths:   []string{"/work/Song [AbCdEfGhIjK].m4a"},
//	    MetadataPath: "/work/Song [AbCdEfGhIjK].info.json",
//	    ImagePath:    "/work/Song [AbCdEfGhIjK].jpg",
//	}
//
// # Document
//
// Document is the subset of the downloader's info JSON that tag detection
// reads. Use LoadDocument to decode it from disk.
//
// # Tag records
//
// TagRecord holds the finished values for one bundle. Every value is a Field,
// which records whether a value is present and which rule produced it:
//
//	rec.Title.Value    // "Song"
//	rec.Title.Source   // "description (Topic style)", empty when defaulted
//	rec.Title.Present  // false means no value at all
//
// # Destination paths
//
// PathConfig controls how moved files are laid out, using placeholders:
//
//	cfg := &model.PathConfig{Root: "/music", SubPathFormat: "{artist}/{album}"}
//	dir := cfg.Directory(rec) // "/music/Artist/Album"
//
// Available placeholders: {artist}, {album}, {year}, {title}
package model
