// Package tagging turns a bundle's info document into a model.TagRecord.
//
// The Assembler runs the detect rule tables for every field and fills in
// defaults where nothing was detected:
//
//	title    the document title
//	artist   the uploader
//	album    none
//	year     none, or the upload year with Options.UploadYearFallback
//	composer none
//
// Assembly is pure: the same bundle and document always give the same record.
//
//	a := tagging.NewAssembler(tagging.Options{
//	    Report: func(line string) { fmt.Println(line) },
//	})
//	rec := a.Assemble(b, doc)
package tagging
