// Package merchant implements the spec §4.2 merchant resolver: a
// read-only, compiled-pattern lookup table shared across pipeline runs.
// Extending the merchant set is a data change (see default.go), not a
// code change, per SPEC_FULL's Design Notes.
package merchant

import (
	"regexp"
	"strings"
)

// Entry maps one compiled pattern to a canonical merchant name and a
// match weight in [0, 1]. Patterns are matched case-insensitively and
// tolerate run-of-whitespace between words (built by Compile).
type Entry struct {
	Pattern *regexp.Regexp
	Name    string
	Weight  float64
}

// Table is a read-only, ordered set of merchant entries. Safe for
// concurrent use by multiple pipeline invocations — it is never mutated
// after construction.
type Table struct {
	entries []Entry
}

// NewTable builds a Table from raw (pattern, canonical name, weight)
// triples, matching the external contract in spec §6. Patterns are
// treated as case-insensitive, whitespace-tolerant substrings unless
// they already look like a regex (contain a regex metacharacter such as
// a backslash, a character class, '.' or a repetition).
func NewTable(rows []Row) *Table {
	t := &Table{entries: make([]Entry, 0, len(rows))}
	for _, r := range rows {
		re := Compile(r.Pattern)
		if re == nil {
			continue
		}
		t.entries = append(t.entries, Entry{Pattern: re, Name: r.Name, Weight: r.Weight})
	}
	return t
}

// Row is the plain-data shape of one merchant-table override entry,
// suitable for loading from YAML/JSON (see internal/common.Config).
type Row struct {
	Pattern string  `yaml:"pattern" json:"pattern"`
	Name    string  `yaml:"name" json:"name"`
	Weight  float64 `yaml:"weight" json:"weight"`
}

// Compile turns a human-authored fragment like "trader joe's" or
// "whole\s*foods" into a case-insensitive, whitespace-tolerant regexp.
// A fragment containing regex metacharacters is passed through mostly
// as-is (still wrapped case-insensitive); a plain phrase has its
// internal spaces loosened to `[\s\-]*` so "tim hortons" also matches
// "TIM  HORTONS" or "Tim-Hortons" run together by a noisy OCR pass.
func Compile(fragment string) *regexp.Regexp {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil
	}
	if looksLikeRegex(fragment) {
		re, err := regexp.Compile(`(?i)` + fragment)
		if err != nil {
			return nil
		}
		return re
	}
	words := strings.Fields(fragment)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	pattern := `(?i)` + strings.Join(words, `[\s\-]*`)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

func looksLikeRegex(s string) bool {
	for _, r := range s {
		switch r {
		case '\\', '[', ']', '(', ')', '|', '+', '*', '?', '^', '$', '.', '{', '}':
			return true
		}
	}
	return false
}

// scanWindow is how many leading lines of the transcript the resolver
// considers, per spec §4.2 ("restricted to the first ~20 lines").
const scanWindow = 20

// Resolve scans the first scanWindow lines of the transcript against the
// table and returns the highest-weight match. Ties are broken by first
// occurrence in the transcript. Returns ("Unknown Store", 0.0) if no
// pattern matches.
func (t *Table) Resolve(transcript string) (name string, confidence float64) {
	lines := strings.Split(transcript, "\n")
	if len(lines) > scanWindow {
		lines = lines[:scanWindow]
	}
	window := strings.Join(lines, "\n")

	bestWeight := -1.0
	bestPos := -1
	bestName := ""
	for _, e := range t.entries {
		loc := e.Pattern.FindStringIndex(window)
		if loc == nil {
			continue
		}
		if e.Weight > bestWeight || (e.Weight == bestWeight && loc[0] < bestPos) {
			bestWeight = e.Weight
			bestPos = loc[0]
			bestName = e.Name
		}
	}
	if bestPos == -1 {
		return "Unknown Store", 0.0
	}
	return bestName, bestWeight
}
