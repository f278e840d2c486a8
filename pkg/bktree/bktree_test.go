package bktree

import (
	"fmt"
	"testing"

	"github.com/spellserve/spellserve/pkg/metric"
)

func buildTree(words ...string) *Tree {
	t := New(metric.Levenshtein{})
	t.InsertAll(words)
	return t
}

// every inserted word must be found, nothing else ever is
func TestLookup(t *testing.T) {
	words := []string{"cat", "rat", "bat", "hat", "hello", "there", "their"}
	tree := buildTree(words...)

	for _, w := range words {
		if !tree.Lookup(w) {
			t.Errorf("Lookup(%q) = false after insert", w)
		}
	}

	absent := []string{"cot", "hats", "her", "", "ratt", "helo"}
	for _, w := range absent {
		if tree.Lookup(w) {
			t.Errorf("Lookup(%q) = true, word was never inserted", w)
		}
	}
}

func TestEmptyTree(t *testing.T) {
	tree := New(metric.Levenshtein{})

	if tree.Lookup("anything") {
		t.Error("Lookup on empty tree must report false")
	}
	results, err := tree.Search("anything", 2, SearchOptions{})
	if err != nil {
		t.Fatalf("Search on empty tree returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search on empty tree returned %d results, want 0", len(results))
	}
	if tree.Size() != 0 {
		t.Errorf("Size() = %d on empty tree", tree.Size())
	}
}

func TestDuplicateInsert(t *testing.T) {
	tree := buildTree("cat", "rat", "cat", "cat", "rat")

	if tree.Size() != 2 {
		t.Errorf("Size() = %d after duplicate inserts, want 2", tree.Size())
	}

	results, _ := tree.Search("cat", 0, SearchOptions{})
	if len(results) != 1 || results[0].Word != "cat" {
		t.Errorf("Search at distance 0 returned %v, want exactly [cat]", results)
	}
}

// dictionary {cat rat bat hat}, query "cot".
// Pairwise: cot-cat=1, cot-rat=2, cot-bat=2, cot-hat=2 so only "cat" is in range 1.
func TestSearchDistanceOne(t *testing.T) {
	lev := metric.Levenshtein{}
	distances := map[string]int{"cat": 1, "rat": 2, "bat": 2, "hat": 2}
	for w, want := range distances {
		if d := lev.Distance("cot", w); d != want {
			t.Fatalf("precondition: Distance(cot, %s) = %d, expected %d", w, d, want)
		}
	}

	tree := buildTree("cat", "rat", "bat", "hat")
	results, err := tree.Search("cot", 1, SearchOptions{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Word != "cat" || results[0].Distance != 1 {
		t.Errorf("Search(cot, 1) = %v, want [{cat 1}]", results)
	}
}

func TestSearchExact(t *testing.T) {
	tree := buildTree("hello", "help", "hollow")

	if !tree.Lookup("hello") {
		t.Error("Lookup(hello) = false")
	}
	results, _ := tree.Search("hello", 0, SearchOptions{})
	if len(results) != 1 || results[0].Word != "hello" {
		t.Errorf("Search(hello, 0) = %v, want [{hello 0}]", results)
	}
}

// no false positives: every result's true distance is within the threshold,
// whatever the cap
func TestSearchNoFalsePositives(t *testing.T) {
	words := []string{
		"cat", "cot", "coat", "goat", "boat", "bat", "bait",
		"rate", "rat", "hat", "hate", "heat", "great",
	}
	tree := buildTree(words...)
	lev := metric.Levenshtein{}

	queries := []string{"cat", "got", "eat", "grate", "xyz"}
	for _, q := range queries {
		for threshold := 0; threshold <= 3; threshold++ {
			for _, limit := range []int{0, 1, 2, 100} {
				results, err := tree.Search(q, threshold, SearchOptions{MaxResults: limit})
				if err != nil {
					t.Fatalf("Search(%q, %d) failed: %v", q, threshold, err)
				}
				for _, r := range results {
					if d := lev.Distance(q, r.Word); d > threshold {
						t.Errorf("Search(%q, %d) returned %q at true distance %d", q, threshold, r.Word, d)
					}
					if d := lev.Distance(q, r.Word); d != r.Distance {
						t.Errorf("Search(%q, %d) reported distance %d for %q, true distance %d",
							q, threshold, r.Distance, r.Word, d)
					}
				}
			}
		}
	}
}

// completeness against a linear scan of the same dictionary
func TestSearchMatchesLinearScan(t *testing.T) {
	words := []string{
		"some", "soup", "sample", "simple", "staple", "stumble",
		"ample", "apple", "maple", "dimple", "pimple", "temple",
	}
	tree := buildTree(words...)
	lev := metric.Levenshtein{}

	for _, q := range []string{"ample", "sumple", "tame", "appl"} {
		for threshold := 0; threshold <= 2; threshold++ {
			want := make(map[string]bool)
			for _, w := range words {
				if lev.Distance(q, w) <= threshold {
					want[w] = true
				}
			}

			results, err := tree.Search(q, threshold, SearchOptions{})
			if err != nil {
				t.Fatalf("Search(%q, %d) failed: %v", q, threshold, err)
			}
			got := make(map[string]bool)
			for _, r := range results {
				got[r.Word] = true
			}

			if len(got) != len(want) {
				t.Errorf("Search(%q, %d) found %v, linear scan found %v", q, threshold, got, want)
				continue
			}
			for w := range want {
				if !got[w] {
					t.Errorf("Search(%q, %d) missed %q", q, threshold, w)
				}
			}
		}
	}
}

func TestSearchResultCap(t *testing.T) {
	tree := buildTree("cat", "bat", "hat", "rat", "mat", "sat", "fat", "pat")

	for _, limit := range []int{1, 2, 3, 5} {
		results, err := tree.Search("cot", 2, SearchOptions{MaxResults: limit})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) > limit {
			t.Errorf("cap %d: got %d results", limit, len(results))
		}
	}

	// uncapped search over the same words qualifies all eight
	results, _ := tree.Search("cot", 2, SearchOptions{})
	if len(results) != 8 {
		t.Errorf("uncapped search found %d of 8 qualifying words", len(results))
	}
}

func TestSearchVisitBudget(t *testing.T) {
	words := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		words = append(words, fmt.Sprintf("word%d", i))
	}
	tree := buildTree(words...)

	results, err := tree.Search("word1", 2, SearchOptions{MaxVisits: 5})
	if err != ErrVisitBudget {
		t.Fatalf("expected ErrVisitBudget, got %v with %d results", err, len(results))
	}

	// results handed back with the budget error must still be true matches
	lev := metric.Levenshtein{}
	for _, r := range results {
		if lev.Distance("word1", r.Word) > 2 {
			t.Errorf("budget-limited search returned out-of-range word %q", r.Word)
		}
	}

	// a generous budget completes without error
	if _, err := tree.Search("word1", 2, SearchOptions{MaxVisits: 10000}); err != nil {
		t.Errorf("search under generous budget failed: %v", err)
	}
}

func TestNegativeMaxDistance(t *testing.T) {
	tree := buildTree("cat")
	results, err := tree.Search("cat", -1, SearchOptions{})
	if err != nil || len(results) != 0 {
		t.Errorf("Search with negative threshold: results=%v err=%v, want none", results, err)
	}
}

func BenchmarkSearch(b *testing.B) {
	words := make([]string, 0, 5000)
	for i := 0; i < 5000; i++ {
		words = append(words, fmt.Sprintf("word%d", i))
	}
	tree := buildTree(words...)

	queries := []string{"word123", "wrd42", "word999x", "nothing"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search(queries[i%len(queries)], 2, SearchOptions{MaxResults: 3})
	}
}
