// Package bundle groups the files of a download directory by the resource
// key embedded in their names.
//
// yt-dlp writes every file of one video with the video identifier in square
// brackets, for example
//
//	Some Song [AbCdEfGhIjK].m4a
//	Some Song [AbCdEfGhIjK].info.json
//	Some Song [AbCdEfGhIjK].jpg
//
// A Grouper collects such files into model.Bundle values. A key is only
// bundled when it has at least one audio file, exactly one metadata document
// and exactly one image; any other combination is reported as Rejected.
//
// # Basic Usage
//
//	files, err := bundle.ListFiles(workDir)
//	if err != nil {
//	    return err
//	}
//
//	g := bundle.NewGrouper(bundle.Extensions{
//	    Audio:    []string{".m4a", ".mp3"},
//	    Metadata: ".info.json",
//	    Image:    ".jpg",
//	})
//	bundles, rejected := g.Group(files)
//
// Split chapters produce several audio files for one key; they all end up in
// the same bundle.
package bundle
