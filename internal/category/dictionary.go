// Package category resolves a best-effort spending category for each
// transaction from a merchant keyword dictionary plus built-in fallback
// rules. The dictionary is loaded once per engine instance and is
// read-only afterwards, so concurrent parses share it without locking.
package category

import (
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"
)

// defaultSources are the fallback dictionary locations probed after any
// explicitly configured path. The first source found wins.
var defaultSources = []string{
	"categories.csv",
	"/mnt/data/categories.csv",
}

type entry struct {
	key      string
	category string
}

// Dictionary maps normalized merchant keywords to categories, preserving
// insertion order so earlier entries win ties during matching.
type Dictionary struct {
	entries []entry
	index   map[string]int
}

// Load builds a dictionary from the first readable keyword,category table
// among explicitPath (when non-empty) and the default locations, then
// merges the built-in rules with insert-if-absent semantics. A missing or
// unreadable table is not an error; the built-ins alone still apply.
func Load(explicitPath string) *Dictionary {
	d := &Dictionary{index: make(map[string]int)}

	candidates := defaultSources
	if explicitPath != "" {
		candidates = append([]string{explicitPath}, defaultSources...)
	}
	for _, path := range candidates {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		d.readTable(f)
		f.Close()
		break
	}

	d.mergeBuiltins()
	return d
}

// Builtins returns a dictionary holding only the built-in rules, with no
// external table consulted.
func Builtins() *Dictionary {
	d := &Dictionary{index: make(map[string]int)}
	d.mergeBuiltins()
	return d
}

func (d *Dictionary) mergeBuiltins() {
	for _, r := range builtInRules {
		d.putIfAbsent(NormalizeKey(r.Keyword), r.Category)
	}
}

// readTable parses a two-column keyword,category table leniently: rows
// with fewer than two fields or a blank key or value are skipped, and a
// malformed row ends the read without failing the load.
func (d *Dictionary) readTable(r io.Reader) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	for {
		row, err := cr.Read()
		if err != nil {
			return
		}
		if len(row) < 2 {
			continue
		}
		k := NormalizeKey(row[0])
		v := strings.TrimSpace(row[1])
		if k == "" || v == "" {
			continue
		}
		d.put(k, v)
	}
}

func (d *Dictionary) put(key, cat string) {
	if i, ok := d.index[key]; ok {
		d.entries[i].category = cat
		return
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, entry{key: key, category: cat})
}

func (d *Dictionary) putIfAbsent(key, cat string) {
	if _, ok := d.index[key]; !ok {
		d.put(key, cat)
	}
}

// Len reports the number of dictionary entries, built-ins included.
func (d *Dictionary) Len() int { return len(d.entries) }

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeKey lower-cases text, collapses non-alphanumeric runs to
// single spaces, and trims the result.
func NormalizeKey(s string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), " "))
}
