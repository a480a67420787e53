// Package detect extracts tag values from the free text of a download's
// info document using ordered tables of pattern rules.
//
// A Rule is plain data: a compiled pattern, the capture group whose text is
// the value, the text it searches (title or description) and a label that is
// only used to report where a value came from. Rule order is priority.
//
// Single-value fields use first-match-wins:
//
//	title := detect.DetectString(text, detect.TitleRules, model.Default(doc.Title))
//
// Years are matched the same way and then parsed; text that does not parse as
// a year resolves to the default:
//
//	year := detect.DetectYear(text, detect.YearRules, model.None[uint16]())
//
// Multi-value fields collect every match of every rule, deduplicated in order
// of first appearance:
//
//	composers := detect.DetectJoined(text, detect.ComposerRules, detect.Separator, model.None[string]())
package detect
