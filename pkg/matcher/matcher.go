// Package matcher runs ordered regexp pattern lists against single words.
package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// Pattern is a compiled pattern table entry.
type Pattern struct {
	Source string

	// anchor is the required first letter of a word, 0 for unanchored patterns.
	anchor rune
	re     *regexp.Regexp
}

// Result describes the first pattern that matched a word.
type Result struct {
	Match   string
	Pattern string
}

// Tracer receives a note for every word that triggered a pattern.
type Tracer interface {
	Trace(word, pattern string)
}

type TracerFunc func(word, pattern string)

func (f TracerFunc) Trace(word, pattern string) { f(word, pattern) }

// LogTracer writes traces through logrus at debug level.
type LogTracer struct{}

func (LogTracer) Trace(word, pattern string) {
	log.Debugf("[censor] word %q triggered pattern %q", word, pattern)
}

// Compile builds a case-insensitive pattern. A pattern starting with '^'
// followed by a letter is anchored on that letter.
func Compile(source string) (*Pattern, error) {
	re, err := regexp.Compile("(?i)" + source)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", source, err)
	}

	p := &Pattern{Source: source, re: re}
	if rest, ok := strings.CutPrefix(source, "^"); ok {
		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsLetter(r) {
			p.anchor = unicode.ToLower(r)
		}
	}

	return p, nil
}

// MustCompile is like Compile but panics on a malformed pattern.
func MustCompile(source string) *Pattern {
	p, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return p
}

// Anchored reports whether the pattern only applies to words starting with its anchor letter.
func (p *Pattern) Anchored() bool {
	return p.anchor != 0
}

func (p *Pattern) appliesTo(first rune) bool {
	return p.anchor == 0 || p.anchor == first
}

// applicable drops anchored patterns whose anchor differs from the first
// letter of word. Order is kept.
func applicable(word string, candidates []*Pattern) []*Pattern {
	first, _ := utf8.DecodeRuneInString(word)
	first = unicode.ToLower(first)

	out := make([]*Pattern, 0, len(candidates))
	for _, p := range candidates {
		if p.appliesTo(first) {
			out = append(out, p)
		}
	}
	return out
}

// Search returns the first candidate, in order, that matches word. Table
// order decides: there is no ranking by match length. A nil tracer disables
// tracing.
func Search(word string, candidates []*Pattern, tr Tracer) (Result, bool) {
	for _, p := range applicable(word, candidates) {
		match := p.re.FindStringIndex(word)
		if match == nil {
			continue
		}

		if tr != nil {
			tr.Trace(word, p.Source)
		}
		return Result{Match: word[match[0]:match[1]], Pattern: p.Source}, true
	}

	return Result{}, false
}
