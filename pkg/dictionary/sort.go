package dictionary

import (
	"sort"

	"github.com/japaniel/latindict/pkg/db"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator compares at base strength: case and diacritics are ignored.
// Collators are not safe for concurrent use, so each sort builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase, collate.IgnoreDiacritics)
}

// SortByWord orders entries by word using locale-aware, case-insensitive
// collation. Entries that collate equal keep their relative order.
func SortByWord(words []db.WordEntry) {
	c := newCollator()
	sort.SliceStable(words, func(i, j int) bool {
		return c.CompareString(words[i].Word, words[j].Word) < 0
	})
}
