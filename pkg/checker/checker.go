/*
Package checker is the correction engine: it classifies input tokens against
a dictionary and proposes nearby valid words for the misses.

A Checker owns a BK-tree built once from the dictionary at construction.
After that it is a pure query layer; Check, Classify and Suggest never
mutate shared state, so one Checker can serve any number of goroutines.
*/
package checker

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spellserve/spellserve/internal/utils"
	"github.com/spellserve/spellserve/pkg/bktree"
	"github.com/spellserve/spellserve/pkg/dictionary"
	"github.com/spellserve/spellserve/pkg/metric"
)

// Defaults for the suggestion policy knobs. Both are configuration,
// callers can override them per Checker.
const (
	DefaultMaxDistance    = 2
	DefaultMaxSuggestions = 3
)

// Options tune the suggestion policy of a Checker.
type Options struct {
	// MaxDistance is the suggestion search threshold. Zero means
	// DefaultMaxDistance; exact-only matching needs no suggestions at all.
	MaxDistance int

	// MaxSuggestions caps how many candidates a miss gets.
	// Zero means DefaultMaxSuggestions.
	MaxSuggestions int

	// VisitBudget caps nodes visited per suggestion search. Zero means
	// unbounded. When the budget runs out, whatever was found so far is
	// returned and the exhaustion is logged.
	VisitBudget int
}

func (o Options) withDefaults() Options {
	if o.MaxDistance <= 0 {
		o.MaxDistance = DefaultMaxDistance
	}
	if o.MaxSuggestions <= 0 {
		o.MaxSuggestions = DefaultMaxSuggestions
	}
	return o
}

// Miss is one unknown token and its suggested corrections,
// in input encounter order.
type Miss struct {
	Token       string
	Suggestions []string
}

// Checker holds the built index plus the suggestion policy.
type Checker struct {
	dict *dictionary.Dictionary
	tree *bktree.Tree
	opts Options
}

// New builds a Checker over dict using the given distance function.
// The build phase inserts every dictionary word in order; this is the
// single sequential stage, everything after is read-only.
func New(dict *dictionary.Dictionary, dist metric.Distance, opts Options) *Checker {
	tree := bktree.New(dist)
	tree.InsertAll(dict.Words())

	log.Debugf("Built index: %d words", tree.Size())

	return &Checker{
		dict: dict,
		tree: tree,
		opts: opts.withDefaults(),
	}
}

// Tree exposes the underlying index, mainly for direct Search access.
func (c *Checker) Tree() *bktree.Tree {
	return c.tree
}

// Known reports whether the normalized token is a dictionary word.
// Membership goes through the dictionary's trie rather than a BK
// descent; both answer the same question.
func (c *Checker) Known(token string) bool {
	return c.dict.Contains(token)
}

// Classify partitions tokens into dictionary words and unknowns,
// preserving input order within each partition.
func (c *Checker) Classify(tokens []string) (known, unknown []string) {
	for _, tok := range tokens {
		if c.Known(tok) {
			known = append(known, tok)
		} else {
			unknown = append(unknown, tok)
		}
	}
	return known, unknown
}

// Suggest returns up to MaxSuggestions dictionary words within MaxDistance
// of the token, sorted by ascending distance; equally distant candidates
// keep their traversal discovery order. A visit-budget exhaustion returns
// the partial result alongside bktree.ErrVisitBudget.
func (c *Checker) Suggest(token string) ([]string, error) {
	results, err := c.SuggestResults(token, c.opts.MaxDistance, c.opts.MaxSuggestions)
	if err != nil && err != bktree.ErrVisitBudget {
		return nil, err
	}

	words := make([]string, len(results))
	for i, r := range results {
		words[i] = r.Word
	}
	return words, err
}

// SuggestResults is Suggest with explicit threshold and cap, keeping the
// per-candidate distances. Used by callers that let clients override the
// configured policy per request.
func (c *Checker) SuggestResults(token string, maxDistance, limit int) ([]bktree.Result, error) {
	results, err := c.tree.Search(token, maxDistance, bktree.SearchOptions{
		MaxResults: limit,
		MaxVisits:  c.opts.VisitBudget,
	})
	if err != nil && err != bktree.ErrVisitBudget {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	return results, err
}

// Check reads whitespace-delimited tokens from r and reports each token
// absent from the dictionary together with its suggestions, in the order
// the tokens were encountered. Tokens that normalize to something
// uncheckable (digits, pure punctuation, character runs) pass silently.
func (c *Checker) Check(r io.Reader) ([]Miss, error) {
	var misses []Miss

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		token := utils.NormalizeToken(scanner.Text())
		if !utils.IsCheckable(token) {
			continue
		}
		if c.Known(token) {
			continue
		}

		suggestions, err := c.Suggest(token)
		if err == bktree.ErrVisitBudget {
			log.Debugf("suggestion search for %q hit visit budget, %d partial suggestions", token, len(suggestions))
		} else if err != nil {
			return misses, err
		}

		misses = append(misses, Miss{Token: token, Suggestions: suggestions})
	}
	if err := scanner.Err(); err != nil {
		return misses, fmt.Errorf("failed to read input: %w", err)
	}

	return misses, nil
}
