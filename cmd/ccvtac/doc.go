// Command ccvtac tags and files audio downloaded alongside info JSON and
// thumbnail sidecars.
//
// Usage:
//
//	ccvtac process [--work-dir DIR] [--move-to DIR] [--playlist]
//	ccvtac detect video [AbCdEfGhIjK].info.json
//	ccvtac tags "Artist - Title.m4a"
//
// Settings are read from --config, or from the user config directory when
// the flag is empty. Flags given on the command line override them.
package main
