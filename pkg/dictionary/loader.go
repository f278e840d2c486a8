package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spellserve/spellserve/internal/utils"
)

// Load reads a dictionary from path, picking the reader by format.
// A missing or unreadable source is an error for the caller to treat
// as fatal; there is no partial fallback.
func Load(path string) (*Dictionary, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatBinary:
		return LoadBinaryFile(path)
	case FormatText:
		return LoadTextFile(path)
	default:
		return nil, fmt.Errorf("unsupported dictionary format for %s", path)
	}
}

// LoadTextFile reads a plain text word list, one word per line.
func LoadTextFile(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer file.Close()

	dict, err := LoadText(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}

	log.Debugf("Loaded %d words from text dictionary %s", dict.Len(), path)
	return dict, nil
}

// LoadText reads one word per line from r. Lines are trimmed and lowercased;
// blank lines, comment lines and repeated words are skipped. Order is
// preserved, so frequency-sorted sources keep common words shallow in
// the tree.
func LoadText(r io.Reader) (*Dictionary, error) {
	dict := New()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		word := utils.NormalizeWord(line)
		if word == "" {
			continue
		}
		dict.Add(word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return dict, nil
}

// Format identifies a dictionary source format.
type Format int

const (
	FormatUnknown Format = iota
	FormatText           // one word per line
	FormatBinary         // little-endian binary, see binary.go
)

// DetectFormat decides the source format from the file extension and, for
// binary files, a header sanity check. The file must exist.
func DetectFormat(path string) (Format, error) {
	if _, err := os.Stat(path); err != nil {
		return FormatUnknown, fmt.Errorf("dictionary source %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin":
		if err := validateBinaryHeader(path); err != nil {
			return FormatUnknown, err
		}
		return FormatBinary, nil
	case ".txt", ".dict", "":
		return FormatText, nil
	default:
		return FormatUnknown, fmt.Errorf("unrecognized dictionary extension on %s", path)
	}
}
