// Package script buckets text by Unicode script family and splits tokens
// into words of a single family.
package script

import (
	"strings"
	"unicode"
)

type Family int

const (
	None Family = iota
	Latin
	Cyrillic
	Han
)

// order in which families are tested; the first one present wins.
var detectOrder = []Family{Latin, Cyrillic, Han}

func (f Family) String() string {
	switch f {
	case Latin:
		return "Latin"
	case Cyrillic:
		return "Cyrillic"
	case Han:
		return "Han"
	}
	return "None"
}

func (f Family) table() *unicode.RangeTable {
	switch f {
	case Latin:
		return unicode.Latin
	case Cyrillic:
		return unicode.Cyrillic
	case Han:
		return unicode.Han
	}
	return nil
}

// Has reports whether s contains at least one rune of family f.
func Has(s string, f Family) bool {
	rt := f.table()
	if rt == nil {
		return false
	}
	for _, r := range s {
		if unicode.Is(rt, r) {
			return true
		}
	}
	return false
}

// Classify returns the first family (Latin, then Cyrillic, then Han) that has
// any presence in s. A single Latin letter puts a mixed token into Latin.
func Classify(s string) Family {
	for _, f := range detectOrder {
		if Has(s, f) {
			return f
		}
	}
	return None
}

// Segment replaces every rune outside family f with a space and splits the
// result on whitespace. For None the token is only split.
func Segment(token string, f Family) []string {
	rt := f.table()
	if rt == nil {
		return strings.Fields(token)
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.Is(rt, r) {
			return r
		}
		return ' '
	}, token)

	return strings.Fields(cleaned)
}
