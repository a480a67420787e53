package detect

// Go's regexp package has no lookaround. Where a scheme only needs context
// around the value, the context is consumed and the value captured in a group.

const (
	// Track · Artist, blank line, Album, blank line, ... ℗ YEAR
	topicStyle = `(.+) · (.+)(?:\n|\r|\r\n){2}(.+)(?:\n|\r|\r\n){2}.*℗ ([12]\d{3})\D`

	// Topic layout without a usable year after ℗.
	pseudoTopicStyle = `(.+) · (.+)(?:\n|\r|\r\n){2}(.+)(?:\n|\r|\r\n){2}.*℗`

	// Artist 1st『Track』[YEAR], Artist 1枚目『Track』[YEAR] or Artist Vol.2『Track』[YEAR]
	bracketedRelease = `(.+) (?:\d[\p{L}\p{N}_]{2}|Vol\.\d)?『(.+)』\[([12]\d{3})\]`

	// Artist「Track」[YEAR] or Artist - 『Track』[YEAR]
	quotedRelease = `(.+)(?: - )?[「『](.+)[」』]\[([12]\d{3})\]`

	composerCredit = `(?:[Cc]omposed by:? |[Cc]omposer: |作曲[:：])(.+)`
)

const (
	labelTopic       = "description (Topic style)"
	labelPseudoTopic = "description (pseudo-Topic style)"
)

// TitleRules detect the track title.
var TitleRules = []Rule{
	NewRule(topicStyle, 1, Description, labelTopic),
	NewRule(pseudoTopicStyle, 1, Description, labelPseudoTopic),
	NewRule(bracketedRelease, 2, Title, "title"),
}

// ArtistRules detect the performing artist.
var ArtistRules = []Rule{
	NewRule(topicStyle, 2, Description, labelTopic),
	NewRule(pseudoTopicStyle, 2, Description, labelPseudoTopic),
	NewRule(quotedRelease, 1, Title, "title"),
}

// AlbumRules detect the album name.
var AlbumRules = []Rule{
	NewRule(`[Aa]lbum: (.+)`, 1, Description, "description"),
	NewRule(topicStyle, 3, Description, labelTopic),
	NewRule(pseudoTopicStyle, 3, Description, labelPseudoTopic),
	NewRule(`'s ['"](.+)['"] album`, 1, Description, "description"),
	NewRule(`Vol\.\d『(.+)』\s?#\d`, 1, Description, "description"),
	NewRule(`^[\p{L}\p{N}_]{3}アルバム『(.+)』`, 1, Description, "description"),
}

// YearRules detect the release year.
var YearRules = []Rule{
	NewRule(`[(（\[［【]([12]\d{3})[)）\]］】]`, 1, Title, "title"),
	NewRule(`℗ ([12]\d{3})\s`, 1, Description, `description's "℗" symbol`),
	NewRule(`[Rr]eleased [io]n: ([12]\d{3})`, 1, Description, "description 'released on' date"),
	NewRule(`([12]\d{3})(?:[./年]\d{1,2}[./月]\d{1,2}日?\s?)?\s?(?:[Rr]elease|リリース|発売)`, 1, Description, "description's year-first date"),
	// Only the digits are captured; YYYY年 would never parse as a year.
	NewRule(`([12]\d{3})年\d{1,2}月\d{1,2}日\s?[Rr]elease`, 1, Description, "description's 年月日-style release date"),
	NewRule(bracketedRelease, 3, Title, "title"),
	NewRule(bracketedRelease, 3, Description, "description"),
}

// ComposerRules detect composer credits. Every match of every rule is kept.
var ComposerRules = []Rule{
	NewRule(composerCredit, 1, Description, "description"),
	NewRule(composerCredit, 1, Title, "title"),
}
