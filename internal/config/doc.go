// Package config provides configuration management for ccvtac.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation
//   - Conversion to the option types of other packages
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Reads downloads from ~/Downloads/ccvtac
//	// Moves tagged audio to ~/Music/ccvtac
//	// Groups .m4a, .mp3 and .flac with .info.json and .jpg sidecars
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    return err
//	}
//	if err := settings.Validate(); err != nil {
//	    return err
//	}
//
// A missing file is not an error; the defaults are returned.
//
// # Saving Settings
//
//	settings.MoveToPathFormat = "{artist}/{album}"
//	err := settings.Save(config.DefaultPath())
//
// # Configuration Options
//
// Settings includes options for:
//   - Working and destination directories, destination layout
//   - File extensions used to group downloads
//   - Tag writing and the upload-year fallback
//   - Cover art embedding and resizing
//   - Concurrency and sidecar cleanup
//   - Playlist generation
package config
