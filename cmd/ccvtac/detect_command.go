package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/handiism/ccvtac/internal/bundle"
	"github.com/handiism/ccvtac/internal/model"
	"github.com/handiism/ccvtac/internal/tagging"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <info.json>",
		Short: "Show the tags that would be written for a metadata file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}

			doc, err := model.LoadDocument(args[0])
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout(), true)
			assembler := tagging.NewAssembler(tagging.Options{
				UploadYearFallback: settings.UploadYearFallback,
				Report: func(line string) {
					if settings.VerboseOutput {
						out.dim("%s", line)
					}
				},
			})

			key, _ := bundle.ResourceKey(filepath.Base(args[0]))
			rec := assembler.Assemble(model.NewBundle(key, nil, args[0], ""), doc)

			out.header(fmt.Sprintf("%s (%s)", filepath.Base(args[0]), doc.ID))
			printField(out, "Title", rec.Title)
			printField(out, "Artist", rec.Artist)
			printField(out, "Album", rec.Album)
			printField(out, "Year", rec.Year)
			printField(out, "Composers", rec.Composers)
			return nil
		},
	}
}

func printField[T comparable](out *printer, name string, f model.Field[T]) {
	switch {
	case f.IsDetected():
		out.line("%-10s %s", name+":", f.String())
		out.dim("%-10s from %s", "", f.Source)
	case f.Present:
		out.line("%-10s %s", name+":", f.String())
		out.dim("%-10s default", "")
	default:
		out.dim("%-10s (none)", name+":")
	}
}
