// Package patterns holds the per-language pattern tables and picks the
// candidate list for a word.
package patterns

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"wordfilter/pkg/matcher"
	"wordfilter/pkg/script"
)

type Language string

const (
	RU Language = "ru"
	EN Language = "en"
	FI Language = "fi"
	SV Language = "sv"
	ZH Language = "zh"
)

var ErrUnknownLanguage = errors.New("unknown language")

// latinOrder is the order Latin tables are concatenated in.
var latinOrder = []Language{EN, FI, SV}

// ParseLanguage validates a language tag.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case RU, EN, FI, SV, ZH:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// Languages is a set of active languages.
type Languages map[Language]bool

// NewLanguages builds a set from tags, rejecting unknown ones.
func NewLanguages(tags ...string) (Languages, error) {
	set := make(Languages, len(tags))
	for _, tag := range tags {
		l, err := ParseLanguage(tag)
		if err != nil {
			return nil, err
		}
		set[l] = true
	}
	return set, nil
}

// Sorted returns the tags in a stable order.
func (ls Languages) Sorted() []string {
	out := make([]string, 0, len(ls))
	for _, l := range []Language{RU, EN, FI, SV, ZH} {
		if ls[l] {
			out = append(out, string(l))
		}
	}
	return out
}

// Table maps a language to its ordered pattern sources.
type Table map[Language][]string

// Load reads a table from a JSON or YAML file, picked by extension.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode pattern table %s: %w", path, err)
	}

	t := make(Table, len(raw))
	for tag, list := range raw {
		l, err := ParseLanguage(tag)
		if err != nil {
			return nil, err
		}
		t[l] = list
	}

	return t, nil
}

// Compiled is a table with every pattern compiled.
type Compiled struct {
	tables map[Language][]*matcher.Pattern
}

// Compile compiles every pattern of the table. The first malformed pattern
// fails the whole table.
func (t Table) Compile() (*Compiled, error) {
	c := &Compiled{tables: make(map[Language][]*matcher.Pattern, len(t))}
	for l, sources := range t {
		list := make([]*matcher.Pattern, 0, len(sources))
		for _, s := range sources {
			p, err := matcher.Compile(s)
			if err != nil {
				return nil, fmt.Errorf("%s table: %w", l, err)
			}
			list = append(list, p)
		}
		c.tables[l] = list
	}

	return c, nil
}

// Select returns the ordered candidates for word:
//   - the whole ru table for Cyrillic words when ru is active;
//   - en, fi and sv tables, in that order, for Latin words;
//   - the zh table for Han words.
func (c *Compiled) Select(word string, active Languages) []*matcher.Pattern {
	if active[RU] && script.Has(word, script.Cyrillic) {
		return c.tables[RU]
	}

	if script.Has(word, script.Latin) {
		var out []*matcher.Pattern
		for _, l := range latinOrder {
			if active[l] {
				out = append(out, c.tables[l]...)
			}
		}
		return out
	}

	if script.Has(word, script.Han) && active[ZH] {
		return c.tables[ZH]
	}

	return nil
}
