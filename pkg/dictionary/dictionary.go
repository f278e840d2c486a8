/*
Package dictionary loads word lists and hands the checker an ordered,
de-duplicated sequence of normalized words.

Two source formats are supported: plain text (one word per line) and a
compact little-endian binary form that skips re-parsing large lists on
every invocation. Word order is preserved from the source; the order a
dictionary is inserted into the BK-tree shapes the tree, so sources
should list frequent words first.
*/
package dictionary

import (
	"github.com/tchap/go-patricia/v2/patricia"
)

// Dictionary is an ordered set of distinct normalized words. Membership
// queries go through a patricia trie, so the checker's exact-lookup fast
// path costs O(len(word)) rather than a tree descent.
type Dictionary struct {
	words []string
	trie  *patricia.Trie
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{
		trie: patricia.NewTrie(),
	}
}

// Add appends a word, keeping first-occurrence order. Duplicates and empty
// strings are dropped. The rank stored in the trie is the word's position,
// starting at 1.
func (d *Dictionary) Add(word string) {
	if word == "" {
		return
	}
	if item := d.trie.Get(patricia.Prefix(word)); item != nil {
		return
	}
	d.words = append(d.words, word)
	d.trie.Insert(patricia.Prefix(word), len(d.words))
}

// Contains reports exact membership.
func (d *Dictionary) Contains(word string) bool {
	return d.trie.Get(patricia.Prefix(word)) != nil
}

// Rank returns a word's 1-based position in the dictionary, or 0 when absent.
func (d *Dictionary) Rank(word string) int {
	if item := d.trie.Get(patricia.Prefix(word)); item != nil {
		return item.(int)
	}
	return 0
}

// Words returns the dictionary in insertion order. The returned slice is the
// dictionary's own backing storage; callers must not mutate it.
func (d *Dictionary) Words() []string {
	return d.words
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Truncated returns a dictionary holding only the first n words. When n is
// zero, negative, or at least Len, the receiver itself comes back.
func (d *Dictionary) Truncated(n int) *Dictionary {
	if n <= 0 || n >= len(d.words) {
		return d
	}
	trimmed := New()
	for _, w := range d.words[:n] {
		trimmed.Add(w)
	}
	return trimmed
}
