// Package taxonomy holds the static industry table that drives profile
// resolution, guidance derivation and keyword-based hashtag generation.
// The table is parsed once at startup and read-only afterwards.
package taxonomy

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// Entry is one industry: the keyword set it matches on plus the guidance
// template it expands to.
type Entry struct {
	Key              string   `yaml:"key"`
	Display          string   `yaml:"display"`
	Keywords         []string `yaml:"keywords"`
	Tags             []string `yaml:"tags"`
	Themes           []string `yaml:"themes"`
	Direction        string   `yaml:"direction"`
	VisualThemes     []string `yaml:"visual_themes"`
	BrandPersonality string   `yaml:"brand_personality"`
}

// Table is an ordered industry taxonomy. Entry order is significant: ties in
// keyword-overlap scoring resolve to the earlier entry, keeping matching
// deterministic.
type Table struct {
	entries   []Entry
	byKey     map[string]int
	byDisplay map[string]int
	universe  map[string]struct{}
}

type tableFile struct {
	Industries []Entry `yaml:"industries"`
}

func Parse(raw []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy yaml: %w", err)
	}
	if len(file.Industries) == 0 {
		return nil, fmt.Errorf("taxonomy has no industries")
	}

	table := &Table{
		entries:   file.Industries,
		byKey:     make(map[string]int, len(file.Industries)),
		byDisplay: make(map[string]int, len(file.Industries)),
		universe:  make(map[string]struct{}),
	}
	for i, entry := range file.Industries {
		if entry.Key == "" || entry.Display == "" || len(entry.Keywords) == 0 {
			return nil, fmt.Errorf("taxonomy entry %d is incomplete", i)
		}
		table.byKey[strings.ToLower(entry.Key)] = i
		table.byDisplay[strings.ToLower(entry.Display)] = i
		for _, keyword := range entry.Keywords {
			table.universe[strings.ToLower(keyword)] = struct{}{}
		}
	}
	return table, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the embedded table, parsed once per process.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(taxonomyYAML)
	})
	return defaultTable, defaultErr
}

func (t *Table) Entries() []Entry {
	return t.entries
}

// ByIndustry resolves an industry name, matching either the normalized key or
// the display name case-insensitively.
func (t *Table) ByIndustry(industry string) (Entry, bool) {
	needle := strings.ToLower(strings.TrimSpace(industry))
	if needle == "" {
		return Entry{}, false
	}
	if i, ok := t.byKey[needle]; ok {
		return t.entries[i], true
	}
	if i, ok := t.byDisplay[needle]; ok {
		return t.entries[i], true
	}
	return Entry{}, false
}

// MatchWords scores every industry by keyword overlap with the given word set
// and returns the best entry with its score. Requires at least one overlap.
func (t *Table) MatchWords(words []string) (Entry, int, bool) {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[strings.ToLower(word)] = struct{}{}
	}

	bestIdx, bestScore := -1, 0
	for i, entry := range t.entries {
		score := 0
		for _, keyword := range entry.Keywords {
			if _, ok := set[strings.ToLower(keyword)]; ok {
				score++
			}
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return Entry{}, 0, false
	}
	return t.entries[bestIdx], bestScore, true
}

// MatchText tokenizes free text and matches it against the table.
func (t *Table) MatchText(text string) (Entry, int, bool) {
	return t.MatchWords(Tokenize(text))
}

// KnownKeywords filters the given words down to those present in any
// industry's keyword set, preserving order and dropping duplicates.
func (t *Table) KnownKeywords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, word := range words {
		lower := strings.ToLower(word)
		if _, known := t.universe[lower]; !known {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, lower)
	}
	return out
}

// Tokenize splits free text into lowercase word tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
