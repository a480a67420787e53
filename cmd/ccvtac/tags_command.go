package main

import (
	"github.com/spf13/cobra"

	"github.com/handiism/ccvtac/internal/audio"
)

func newTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <audio file>...",
		Short: "Print the tags stored in audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout(), false)
			for _, path := range args {
				tags, err := audio.ReadTags(path)
				if err != nil {
					return err
				}
				out.header(path)
				out.line("Format:    %s (%s)", tags.Format, tags.FileType)
				out.line("Title:     %s", tags.Title)
				out.line("Artist:    %s", tags.Artist)
				out.line("Album:     %s", tags.Album)
				out.line("Year:      %d", tags.Year)
				out.line("Composer:  %s", tags.Composer)
				out.line("Artwork:   %t", tags.HasPicture)
				if tags.Comment != "" {
					out.dim("%s", tags.Comment)
				}
			}
			return nil
		},
	}
}
