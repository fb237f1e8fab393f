// Package censor detects and masks abusive words in Cyrillic, Latin and Han
// text, and rewrites disguised Cyrillic spellings.

// Important notice: Test data files contain examples of explicit language
// and offensive terms required for pattern validation. These examples:
// - Are intentionally provocative to test edge cases
// - Do not represent the author's views
// - Should be treated as technical test artifacts only

// If you find such content disturbing or prefer to avoid exposure
// to sensitive language patterns:
// 1. Do not inspect the 'test_data' directories
// 2. Avoid reviewing test case literals
package censor

import (
	"strings"

	"wordfilter/pkg/matcher"
	"wordfilter/pkg/patterns"
	"wordfilter/pkg/script"
)

// Filter is not safe for concurrent use while SetOptions runs: callers that
// share a Filter between goroutines must serialize option updates against
// matching themselves.
type Filter struct {
	patterns *patterns.Compiled
	fixes    []fixRule
	opts     Options
}

// New compiles the pattern and replacement tables and applies opts over the
// defaults. Any malformed pattern fails construction.
func New(table patterns.Table, replacements Replacements, opts ...Option) (*Filter, error) {
	compiled, err := table.Compile()
	if err != nil {
		return nil, err
	}

	fixes, err := replacements.compile()
	if err != nil {
		return nil, err
	}

	f := &Filter{
		patterns: compiled,
		fixes:    fixes,
		opts:     defaultOptions(),
	}
	if err := f.SetOptions(opts...); err != nil {
		return nil, err
	}

	return f, nil
}

// Options returns a copy of the current configuration.
func (f *Filter) Options() Options {
	return f.opts.clone()
}

// SetOptions merges opts into the current configuration. Fields no option
// touches keep their values; on error nothing changes.
func (f *Filter) SetOptions(opts ...Option) error {
	next := f.opts.clone()
	for _, opt := range opts {
		if err := opt(&next); err != nil {
			return err
		}
	}

	f.opts = next
	return nil
}

func (f *Filter) tracer() matcher.Tracer {
	if !f.opts.Debug {
		return nil
	}
	if f.opts.Tracer != nil {
		return f.opts.Tracer
	}
	return matcher.LogTracer{}
}

// search runs every sub-word of token through the matcher and calls hit for
// each match. hit returns false to stop.
func (f *Filter) search(token string, hit func(matcher.Result) bool) {
	tr := f.tracer()
	for _, word := range script.Segment(token, script.Classify(token)) {
		candidates := f.patterns.Select(word, f.opts.Languages)
		if len(candidates) == 0 {
			continue
		}

		res, ok := matcher.Search(word, candidates, tr)
		if ok && !hit(res) {
			return
		}
	}
}

// IsBad reports whether any word of text matches an active pattern.
func (f *Filter) IsBad(text string) bool {
	found := false
	for _, token := range strings.Split(text, " ") {
		f.search(token, func(matcher.Result) bool {
			found = true
			return false
		})
		if found {
			return true
		}
	}

	return false
}

// Replace masks matched substrings with the placeholder. Replacement works on
// the whole space-delimited token, so punctuation around a word survives and
// every occurrence of the match inside the token is masked.
func (f *Filter) Replace(text string) string {
	tokens := strings.Split(text, " ")
	for i, token := range tokens {
		f.search(token, func(res matcher.Result) bool {
			if res.Match != "" {
				tokens[i] = strings.ReplaceAll(tokens[i], res.Match, f.opts.Placeholder)
			}
			return true
		})
	}

	return strings.Join(tokens, " ")
}
