package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spellserve/spellserve/pkg/checker"
)

// RunFilter streams tokens from in through the checker and writes one line
// per miss to out, in encounter order:
//
//	recieve: receive, relieve
//	teh: the, ten, tea
//
// Misses with no suggestions in range print a bare "token:". Returns the
// number of misses so the caller can pick an exit code.
func RunFilter(chk *checker.Checker, in io.Reader, out io.Writer) (int, error) {
	misses, err := chk.Check(in)
	if err != nil {
		return len(misses), err
	}

	for _, m := range misses {
		line := m.Token + ":"
		if len(m.Suggestions) > 0 {
			line += " " + strings.Join(m.Suggestions, ", ")
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return len(misses), fmt.Errorf("failed to write report: %w", err)
		}
	}

	return len(misses), nil
}

// RunFilterFiles checks the named files concurrently and writes the combined
// report to out, grouped per file in argument order. With more than one file
// each line is prefixed with its file name, the way grep does. Returns the
// total miss count across all files.
func RunFilterFiles(ctx context.Context, chk *checker.Checker, paths []string, workers int, out io.Writer) (int, error) {
	sources := make([]io.Reader, len(paths))
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return 0, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		sources[i] = f
	}

	results, err := chk.CheckAll(ctx, sources, workers)
	if err != nil {
		return 0, err
	}

	total := 0
	for i, misses := range results {
		total += len(misses)
		for _, m := range misses {
			line := m.Token + ":"
			if len(m.Suggestions) > 0 {
				line += " " + strings.Join(m.Suggestions, ", ")
			}
			if len(paths) > 1 {
				line = paths[i] + ": " + line
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return total, fmt.Errorf("failed to write report: %w", err)
			}
		}
	}

	return total, nil
}
