package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Binary layout, little-endian throughout:
//
//	int32   word count
//	per word:
//	  uint16 byte length
//	  []byte word (UTF-8)
//	  uint32 rank (1-based position in the source list)
//
// Ranks are redundant with position but cheap, and they let a reader
// verify ordering without trusting file order.

// maxWordCount guards against reading a corrupt or hostile header.
const maxWordCount = 1_000_000

// LoadBinaryFile reads a binary dictionary written by WriteBinary.
func LoadBinaryFile(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open binary dictionary %s: %w", path, err)
	}
	defer file.Close()

	dict, err := ReadBinary(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read binary dictionary %s: %w", path, err)
	}

	log.Debugf("Loaded %d words from binary dictionary %s", dict.Len(), path)
	return dict, nil
}

// ReadBinary decodes a binary dictionary stream.
func ReadBinary(r io.Reader) (*Dictionary, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if count < 0 || count > maxWordCount {
		return nil, fmt.Errorf("implausible word count in header: %d", count)
	}

	dict := New()
	for i := 0; i < int(count); i++ {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("truncated dictionary: header promised %d words, got %d", count, i)
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint32
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("failed to read rank: %w", err)
		}

		dict.Add(string(wordBytes))
	}

	return dict, nil
}

// SaveBinaryFile writes dict to path in the binary format.
func SaveBinaryFile(dict *Dictionary, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := WriteBinary(dict, w); err != nil {
		return fmt.Errorf("failed to write binary dictionary %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	log.Debugf("Wrote %d words to binary dictionary %s", dict.Len(), path)
	return nil
}

// WriteBinary encodes dict onto w in the binary format.
func WriteBinary(dict *Dictionary, w io.Writer) error {
	words := dict.Words()
	if len(words) > maxWordCount {
		return fmt.Errorf("dictionary too large for binary format: %d words", len(words))
	}

	if err := binary.Write(w, binary.LittleEndian, int32(len(words))); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, word := range words {
		if len(word) > int(^uint16(0)) {
			return fmt.Errorf("word %q exceeds maximum encodable length", word)
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := w.Write([]byte(word)); err != nil {
			return err
		}
		// rank is uint32: word lists routinely exceed the uint16 range
		if err := binary.Write(w, binary.LittleEndian, uint32(i+1)); err != nil {
			return err
		}
	}

	return nil
}

// validateBinaryHeader checks that a .bin file is large enough to hold a
// header and that the advertised word count is plausible.
func validateBinaryHeader(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() < 4 {
		return fmt.Errorf("file %s is too small (%d bytes) to be a binary dictionary", path, info.Size())
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var count int32
	if err := binary.Read(file, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	if count < 0 || count > maxWordCount {
		return fmt.Errorf("implausible word count in %s: %d", path, count)
	}

	return nil
}
