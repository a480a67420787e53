package detect

import (
	"fmt"
	"regexp"

	"github.com/handiism/ccvtac/internal/model"
)

// Source selects which text of a document a rule searches.
type Source int

const (
	// Description is the free-text video description.
	Description Source = iota

	// Title is the video title.
	Title
)

func (s Source) String() string {
	switch s {
	case Description:
		return "description"
	case Title:
		return "title"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Text holds the two strings rules may search.
type Text struct {
	Title       string
	Description string
}

// TextOf returns the searchable text of a document.
func TextOf(doc *model.Document) Text {
	if doc == nil {
		return Text{}
	}
	return Text{Title: doc.Title, Description: doc.Description}
}

// Select returns the text for a source.
func (t Text) Select(s Source) string {
	if s == Title {
		return t.Title
	}
	return t.Description
}

// Rule is one extraction scheme for a tag field.
type Rule struct {
	// Pattern is applied to the selected source text.
	Pattern *regexp.Regexp

	// Group is the capture group holding the value; 0 is the whole match.
	Group int

	// Source is the text the pattern searches.
	Source Source

	// Label describes the rule in diagnostics. It has no effect on matching.
	Label string
}

// NewRule compiles a rule. It panics when the pattern is invalid or the
// group does not exist, so tables fail at program start rather than mid-batch.
func NewRule(pattern string, group int, source Source, label string) Rule {
	re := regexp.MustCompile(pattern)
	if group < 0 || group > re.NumSubexp() {
		panic(fmt.Sprintf("detect: group %d out of range for pattern %q", group, pattern))
	}
	return Rule{Pattern: re, Group: group, Source: source, Label: label}
}

// Match returns the rule's group from the leftmost match in its source text.
func (r Rule) Match(text Text) (string, bool) {
	m := r.Pattern.FindStringSubmatchIndex(text.Select(r.Source))
	if m == nil {
		return "", false
	}
	return r.group(text.Select(r.Source), m), true
}

// MatchAll returns the rule's group from every non-overlapping match.
func (r Rule) MatchAll(text Text) []string {
	src := text.Select(r.Source)
	matches := r.Pattern.FindAllStringSubmatchIndex(src, -1)
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		values = append(values, r.group(src, m))
	}
	return values
}

// group extracts the rule's capture group from a match index slice. A group
// that did not take part in the match yields an empty string.
func (r Rule) group(src string, m []int) string {
	start, end := m[2*r.Group], m[2*r.Group+1]
	if start < 0 {
		return ""
	}
	return src[start:end]
}
