/*
Package bktree implements the metric-space index behind spelling suggestion.

A BK-tree arranges dictionary words so that near matches for a query can be
found without scanning the whole dictionary. Every node holds one word and
keys its children by the exact metric distance between its own word and the
child's word. During a search for matches within maxDistance of a query, a
node at distance d from the query only needs its children whose key k falls
inside [d-maxDistance, d+maxDistance]; by the triangle inequality no word in
the other subtrees can qualify.

The tree is built once by sequential Insert calls and is read-only afterwards.
Concurrent Search and Lookup calls on a built tree need no locking.
*/
package bktree

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spellserve/spellserve/pkg/metric"
)

// ErrVisitBudget reports that a search ran out of its node-visit budget
// before the traversal completed. The results returned alongside it are
// valid but possibly incomplete.
var ErrVisitBudget = errors.New("bktree: visit budget exhausted before traversal completed")

// Tree is a BK-tree over words. The zero state (no inserts yet) is a valid
// empty tree: Lookup reports false and Search returns no results.
type Tree struct {
	root *node
	dist metric.Distance
	size int
}

// node children are keyed by the exact distance from this node's word
// to the child's word. A distance collision on insert recurses into the
// existing child subtree instead of overwriting it.
type node struct {
	word     string
	children map[int]*node
}

// Result is one accepted search candidate with its true distance to the query.
type Result struct {
	Word     string
	Distance int
}

// SearchOptions bound a single Search call.
type SearchOptions struct {
	// MaxResults stops the traversal once this many candidates are accepted.
	// Zero or negative means unbounded.
	MaxResults int

	// MaxVisits caps how many nodes the traversal may touch. When the cap is
	// hit before the traversal finishes, Search returns what it found along
	// with ErrVisitBudget. Zero or negative means unbounded.
	MaxVisits int
}

// New creates an empty tree over the given distance function.
// The function must be a true metric; see the package comment.
func New(dist metric.Distance) *Tree {
	return &Tree{dist: dist}
}

// Insert adds a word to the tree. The first insert becomes the root;
// later inserts descend by distance and attach as a leaf at the first
// unoccupied distance key. Words already present are ignored, so the
// tree holds each distinct word once.
func (t *Tree) Insert(word string) {
	if word == "" {
		return
	}

	if t.root == nil {
		t.root = &node{word: word}
		t.size++
		return
	}

	curr := t.root
	for {
		d := t.dist.Distance(word, curr.word)
		if d == 0 {
			return
		}
		child, ok := curr.children[d]
		if !ok {
			if curr.children == nil {
				curr.children = make(map[int]*node)
			}
			curr.children[d] = &node{word: word}
			t.size++
			return
		}
		curr = child
	}
}

// InsertAll inserts words in order. Order shapes the tree (earlier words sit
// shallower and are discovered first) but never affects which words match.
func (t *Tree) InsertAll(words []string) {
	for _, w := range words {
		t.Insert(w)
	}
}

// Size returns the number of distinct words held by the tree.
func (t *Tree) Size() int {
	return t.size
}

// Lookup reports whether word is present. This is the degenerate search at
// distance zero: descend along the single child at key d until d == 0 (found)
// or the child is missing (absent).
func (t *Tree) Lookup(word string) bool {
	curr := t.root
	for curr != nil {
		d := t.dist.Distance(word, curr.word)
		if d == 0 {
			return true
		}
		curr = curr.children[d]
	}
	return false
}

// Search returns words within maxDistance of query, in traversal discovery
// order. Only words whose true distance is <= maxDistance are ever returned,
// regardless of any cap. Results are not sorted by distance here; ranking is
// the caller's policy.
func (t *Tree) Search(query string, maxDistance int, opts SearchOptions) ([]Result, error) {
	if t.root == nil || maxDistance < 0 {
		return nil, nil
	}

	var results []Result
	visits := 0

	stack := []*node{t.root}
	for len(stack) > 0 {
		if opts.MaxVisits > 0 && visits >= opts.MaxVisits {
			log.Debugf("search for %q stopped at visit budget %d with %d results", query, opts.MaxVisits, len(results))
			return results, ErrVisitBudget
		}

		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visits++

		d := t.dist.Distance(query, curr.word)
		if d <= maxDistance {
			results = append(results, Result{Word: curr.word, Distance: d})
			if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
				return results, nil
			}
		}

		// Prune: a subtree keyed at k can only contain matches when
		// |k - d| <= maxDistance.
		for k, child := range curr.children {
			if k >= d-maxDistance && k <= d+maxDistance {
				stack = append(stack, child)
			}
		}
	}

	return results, nil
}
