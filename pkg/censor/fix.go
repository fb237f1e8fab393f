package censor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Replacement is one entry of the fix table. Replacement may reference
// capture groups as $1 or ${name}.
type Replacement struct {
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// Replacements is an ordered fix table; declaration order matters.
type Replacements []Replacement

type fixRule struct {
	re          *regexp.Regexp
	replacement string
}

// LoadReplacements reads a fix table from a JSON or YAML list.
func LoadReplacements(path string) (Replacements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rs Replacements
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &rs)
	default:
		err = json.Unmarshal(data, &rs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode replacement table %s: %w", path, err)
	}

	return rs, nil
}

func (rs Replacements) compile() ([]fixRule, error) {
	rules := make([]fixRule, 0, len(rs))
	for _, r := range rs {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile replacement pattern %q: %w", r.Pattern, err)
		}
		rules = append(rules, fixRule{re: re, replacement: r.Replacement})
	}
	return rules, nil
}

// Fix rewrites the first match of a replacement pattern in text. The table
// is walked from the end and every hit overwrites the previous result, so
// the earliest declared matching entry wins. Only one substitution is ever
// applied. A capitalized input keeps its leading capital.
func (f *Filter) Fix(text string) string {
	first, _ := utf8.DecodeRuneInString(text)
	capital := unicode.IsUpper(first)

	result := text
	for i := len(f.fixes) - 1; i >= 0; i-- {
		rule := f.fixes[i]
		loc := rule.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}

		out := make([]byte, 0, len(text))
		out = append(out, text[:loc[0]]...)
		out = rule.re.ExpandString(out, rule.replacement, text, loc)
		out = append(out, text[loc[1]:]...)

		result = string(out)
		if capital {
			result = capitalize(result)
		}
	}

	return result
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}
	// Casers are stateful and must not be shared between goroutines.
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}
