package detect

import (
	"slices"
	"testing"

	"github.com/handiism/ccvtac/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const topicDescription = "Artist · Song\n\nAlbumName\n\nSome text ℗ 2019 more"

func TestDetectString_FirstMatchWins(t *testing.T) {
	text := Text{Description: topicDescription}

	got := DetectString(text, TitleRules, model.Default("fallback"))

	// The Topic rule captures group 1, the text before " · ".
	assert.Equal(t, "Artist", got.Value)
	assert.Equal(t, labelTopic, got.Source)
	assert.True(t, got.IsDetected())
}

func TestDetectString_StopsAtFirstMatch(t *testing.T) {
	// The second rule has no pattern and would panic if it were evaluated.
	rules := []Rule{
		NewRule(`S(o)ng`, 1, Title, "first"),
		{Group: 0, Source: Title, Label: "never evaluated"},
	}

	var got model.Field[string]
	require.NotPanics(t, func() {
		got = DetectString(Text{Title: "Song"}, rules, model.None[string]())
	})

	assert.Equal(t, "o", got.Value)
	assert.Equal(t, "first", got.Source)
}

func TestDetectString_TrimsCapture(t *testing.T) {
	rules := []Rule{NewRule(`Album:(.+)`, 1, Description, "description")}

	got := DetectString(Text{Description: "Album:   Padded Name   "}, rules, model.None[string]())

	assert.Equal(t, "Padded Name", got.Value)
}

func TestDetectString_DefaultWhenNothingMatches(t *testing.T) {
	text := Text{Title: "Just a title", Description: "Nothing useful here."}

	got := DetectString(text, TitleRules, model.Default("Just a title"))
	assert.Equal(t, model.Default("Just a title"), got)
	assert.False(t, got.IsDetected())

	none := DetectString(text, AlbumRules, model.None[string]())
	assert.False(t, none.Present)
	assert.Empty(t, none.Source)
}

func TestDetectString_RuleOrderDecidesWinner(t *testing.T) {
	text := Text{Description: "Artist · Song\n\nAlbumName\n\nAlbum: Other ℗ 2019 x"}

	ordered := slices.Clone(AlbumRules[:2])
	swapped := []Rule{ordered[1], ordered[0]}

	first := DetectString(text, ordered, model.None[string]())
	second := DetectString(text, swapped, model.None[string]())

	assert.Equal(t, "Other ℗ 2019 x", first.Value)
	assert.Equal(t, "AlbumName", second.Value)
	assert.NotEqual(t, first.Value, second.Value)
}

func TestDetectYear(t *testing.T) {
	tests := []struct {
		name       string
		text       Text
		rules      []Rule
		def        model.Field[uint16]
		wantValue  uint16
		wantSource string
		wantFound  bool
	}{
		{
			name:       "bracketed year in title",
			text:       Text{Title: "Song [2021] (Live)"},
			rules:      YearRules,
			def:        model.None[uint16](),
			wantValue:  2021,
			wantSource: "title",
			wantFound:  true,
		},
		{
			name:      "no year anywhere",
			text:      Text{Title: "Song (Live)", Description: "no dates"},
			rules:     YearRules,
			def:       model.Default(uint16(1999)),
			wantValue: 1999,
			wantFound: true,
		},
		{
			name:      "match that is not a number falls back to default",
			text:      Text{Title: "Year: MMXX"},
			rules:     []Rule{NewRule(`Year: (\w+)`, 1, Title, "title"), NewRule(`(\d{4})`, 1, Title, "digits")},
			def:       model.None[uint16](),
			wantFound: false,
		},
		{
			name:      "value overflowing uint16 falls back to default",
			text:      Text{Title: "99999"},
			rules:     []Rule{NewRule(`\d+`, 0, Title, "title")},
			def:       model.Default(uint16(2000)),
			wantValue: 2000,
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectYear(tt.text, tt.rules, tt.def)
			assert.Equal(t, tt.wantFound, got.Present)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantSource, got.Source)
		})
	}
}

func TestDetectJoined_UnionOfAllRules(t *testing.T) {
	text := Text{
		Description: "Composed by: A. Smith",
		Title:       "Composed by: J. Doe",
	}

	got := DetectJoined(text, ComposerRules, Separator, model.None[string]())

	assert.Equal(t, "A. Smith; J. Doe", got.Value)
	assert.Equal(t, "description, title", got.Source)
}

func TestDetectJoined_DeduplicatesInOrder(t *testing.T) {
	text := Text{
		Description: "Composer: Bob\n作曲：山田\nComposed by Bob",
		Title:       "Composer: 山田",
	}

	got := DetectJoined(text, ComposerRules, Separator, model.None[string]())

	assert.Equal(t, "Bob; 山田", got.Value)
	assert.Equal(t, "description", got.Source)
}

func TestDetectJoined_DefaultWhenEmpty(t *testing.T) {
	got := DetectJoined(Text{Title: "Song"}, ComposerRules, Separator, model.None[string]())
	assert.False(t, got.Present)
}

func TestNewRule_PanicsOnBadGroup(t *testing.T) {
	assert.Panics(t, func() { NewRule(`(a)`, 2, Title, "bad") })
	assert.Panics(t, func() { NewRule(`(a`, 0, Title, "bad") })
}

func TestRule_MatchAllUsesSelectedSource(t *testing.T) {
	rule := NewRule(`x(\d)`, 1, Title, "title")

	got := rule.MatchAll(Text{Title: "x1 x2 x3", Description: "x9"})

	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestTextOf(t *testing.T) {
	doc := &model.Document{Title: "T", Description: "D", Uploader: "U"}

	text := TextOf(doc)

	assert.Equal(t, "T", text.Select(Title))
	assert.Equal(t, "D", text.Select(Description))
	assert.Equal(t, Text{}, TextOf(nil))
}
