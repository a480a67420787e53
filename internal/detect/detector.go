package detect

import (
	"slices"
	"strconv"
	"strings"

	"github.com/handiism/ccvtac/internal/model"
)

// Separator joins the values of multi-value fields.
const Separator = "; "

// DetectString evaluates rules in order and returns the trimmed value of the
// first match. Later rules are not evaluated once one matches. When nothing
// matches, def is returned unchanged.
func DetectString(text Text, rules []Rule, def model.Field[string]) model.Field[string] {
	value, label, ok := first(text, rules)
	if !ok {
		return def
	}
	return model.Detected(value, label)
}

// DetectYear works like DetectString and then parses the match as a year.
// A match that is not an unsigned 16-bit number counts as a miss and yields
// def; no further rules are tried.
func DetectYear(text Text, rules []Rule, def model.Field[uint16]) model.Field[uint16] {
	value, label, ok := first(text, rules)
	if !ok {
		return def
	}

	year, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return def
	}
	return model.Detected(uint16(year), label)
}

// DetectJoined applies every rule and joins all matched values with sep.
// Values are trimmed and deduplicated, keeping the order in which they first
// appear. The Source of the result lists the labels of the rules that
// contributed. When no rule matches, def is returned.
func DetectJoined(text Text, rules []Rule, sep string, def model.Field[string]) model.Field[string] {
	var (
		values []string
		labels []string
		seen   = make(map[string]struct{})
	)

	for _, rule := range rules {
		contributed := false
		for _, v := range rule.MatchAll(text) {
			v = strings.TrimSpace(v)
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
			contributed = true
		}
		if contributed && !slices.Contains(labels, rule.Label) {
			labels = append(labels, rule.Label)
		}
	}

	if len(values) == 0 {
		return def
	}
	return model.Detected(strings.Join(values, sep), strings.Join(labels, ", "))
}

func first(text Text, rules []Rule) (value, label string, ok bool) {
	for _, rule := range rules {
		if v, matched := rule.Match(text); matched {
			return strings.TrimSpace(v), rule.Label, true
		}
	}
	return "", "", false
}
