package tagging

import (
	"fmt"

	"github.com/handiism/ccvtac/internal/detect"
	"github.com/handiism/ccvtac/internal/model"
)

// Options configure an Assembler.
type Options struct {
	// Report receives one diagnostic line per field. Nil discards them.
	Report func(string)

	// UploadYearFallback uses the upload year when no release year is found.
	UploadYearFallback bool
}

// Assembler builds tag records from info documents.
type Assembler struct {
	opts Options
}

// NewAssembler creates an Assembler.
func NewAssembler(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

// Assemble detects every tag field of b from doc. The bundle only
// identifies the resource; all values come from the document.
func (a *Assembler) Assemble(b model.Bundle, doc *model.Document) model.TagRecord {
	if doc == nil {
		doc = &model.Document{}
	}
	text := detect.TextOf(doc)

	rec := model.TagRecord{
		Title:     detect.DetectString(text, detect.TitleRules, defaultString(doc.Title)),
		Artist:    detect.DetectString(text, detect.ArtistRules, defaultString(doc.Uploader)),
		Album:     detect.DetectString(text, detect.AlbumRules, model.None[string]()),
		Year:      detect.DetectYear(text, detect.YearRules, a.defaultYear(doc)),
		Composers: detect.DetectJoined(text, detect.ComposerRules, detect.Separator, model.None[string]()),
		Comment:   doc.Comment(),
	}

	reportField(a, "title", rec.Title)
	reportField(a, "artist", rec.Artist)
	reportField(a, "album", rec.Album)
	reportField(a, "year", rec.Year)
	reportField(a, "composer(s)", rec.Composers)

	return rec
}

func (a *Assembler) defaultYear(doc *model.Document) model.Field[uint16] {
	if !a.opts.UploadYearFallback {
		return model.None[uint16]()
	}
	if year, ok := doc.UploadYear(); ok {
		return model.Default(year)
	}
	return model.None[uint16]()
}

func defaultString(s string) model.Field[string] {
	if s == "" {
		return model.None[string]()
	}
	return model.Default(s)
}

func reportField[T comparable](a *Assembler, name string, f model.Field[T]) {
	switch {
	case f.IsDetected():
		a.report("• Found %s %q in %s", name, f.String(), f.Source)
	case f.String() != "":
		a.report("• No %s found; using %q", name, f.String())
	default:
		a.report("• No %s found.", name)
	}
}

func (a *Assembler) report(format string, args ...any) {
	if a.opts.Report != nil {
		a.opts.Report(fmt.Sprintf(format, args...))
	}
}
