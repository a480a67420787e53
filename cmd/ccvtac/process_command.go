package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/ccvtac/internal/config"
	"github.com/handiism/ccvtac/internal/postprocess"
)

type processOptions struct {
	workDir            string
	moveTo             string
	pathFormat         string
	concurrency        int
	playlist           bool
	keepSidecars       bool
	uploadYearFallback bool
	noImages           bool
}

// apply copies every flag the user set onto settings.
func (o *processOptions) apply(cmd *cobra.Command, settings *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("work-dir") {
		settings.WorkingDirectory = o.workDir
	}
	if flags.Changed("move-to") {
		settings.MoveToDirectory = o.moveTo
	}
	if flags.Changed("path-format") {
		settings.MoveToPathFormat = o.pathFormat
	}
	if flags.Changed("concurrency") {
		settings.MaxConcurrentBundles = o.concurrency
	}
	if flags.Changed("playlist") {
		settings.CreatePlaylist = o.playlist
	}
	if flags.Changed("keep-sidecars") {
		settings.KeepSidecarFiles = o.keepSidecars
	}
	if flags.Changed("upload-year-fallback") {
		settings.UploadYearFallback = o.uploadYearFallback
	}
	if flags.Changed("no-images") {
		settings.EmbedImages = !o.noImages
	}
}

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var opts processOptions

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Tag, move and clean up every bundle in the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			opts.apply(cmd, settings)
			if err := settings.Validate(); err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := newPrinter(cmd.OutOrStdout(), settings.VerboseOutput)
			out.header("♫ ccvtac")
			out.dim("%s → %s", settings.WorkingDirectory, settings.MoveToDirectory)

			pipeline := postprocess.New(settings, postprocess.DefaultCollaborators(settings), out.event)
			report, err := pipeline.RunDirectory(runCtx)
			if err != nil && runCtx.Err() != nil {
				out.line("Cancelled.")
				return context.Canceled
			}
			if errors.Is(err, postprocess.ErrPartialFailure) && report != nil {
				return errors.New(report.Summary())
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.workDir, "work-dir", "w", "", "Directory holding the downloaded files")
	flags.StringVarP(&opts.moveTo, "move-to", "o", "", "Destination root for tagged audio")
	flags.StringVar(&opts.pathFormat, "path-format", "", "Sub-path under the destination, e.g. {artist}/{album}")
	flags.IntVarP(&opts.concurrency, "concurrency", "j", 0, "Bundles processed at once")
	flags.BoolVar(&opts.playlist, "playlist", false, "Write a playlist of the moved files")
	flags.BoolVar(&opts.keepSidecars, "keep-sidecars", false, "Keep info JSON and image files")
	flags.BoolVar(&opts.uploadYearFallback, "upload-year-fallback", false, "Use the upload year when no release year is found")
	flags.BoolVar(&opts.noImages, "no-images", false, "Do not embed artwork")

	return cmd
}
