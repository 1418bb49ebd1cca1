// Package configfile loads the line-oriented keyboard configuration file
// format, building a keywalk.Keyboard from it.
//
// The parser follows a line-oriented embedded-data loader style: a
// bufio.Scanner over the input, one decision per line, accumulated into
// typed records before anything is built.
package configfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rafaelsanzio/keywalk"
	"github.com/rafaelsanzio/keywalk/internal/walkerr"
)

const maxLineLength = 1024

// Load reads the keyboard configuration file at path and returns a
// validated Keyboard.
func Load(path string) (*keywalk.Keyboard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, walkerr.Resourcef("opening configuration file %s: %v", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the keyboard configuration format from r and returns a
// validated Keyboard.
func Parse(r io.Reader) (*keywalk.Keyboard, error) {
	scanner := bufio.NewScanner(r)
	// Two extra bytes leave room for a "\r\n" terminator after a line of
	// maxLineLength bytes.
	scanner.Buffer(make([]byte, maxLineLength+2), maxLineLength+2)

	lines, err := readSignificantLines(scanner)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, walkerr.Configurationf("configuration file is empty")
	}

	n, rest, err := parseCount(lines)
	if err != nil {
		return nil, err
	}
	if len(rest) < n {
		return nil, walkerr.Configurationf("declared %d keys but only %d lines remain", n, len(rest))
	}

	keyLines, rest := rest[:n], rest[n:]
	keys, baseOrder, err := parseKeyLines(keyLines)
	if err != nil {
		return nil, err
	}

	rest, err = consumeBlankSeparator(rest)
	if err != nil {
		return nil, err
	}

	kb := keywalk.NewKeyboard(keys)
	if err := applyAdjacency(kb, baseOrder, rest); err != nil {
		return nil, err
	}
	if err := kb.Validate(); err != nil {
		return nil, err
	}
	return kb, nil
}

// rawLine is a line from the file along with whether it was blank, kept
// so the blank separator between key lines and adjacency lines can be
// recognized after comment/leading-blank skipping has already happened.
type rawLine struct {
	text  string
	blank bool
}

// readSignificantLines scans every line of the file, skipping leading
// blank and comment lines, and stops once it has seen the first
// non-blank non-comment line (the count line) — after that point blank
// lines are meaningful (the separator) and are kept.
func readSignificantLines(scanner *bufio.Scanner) ([]rawLine, error) {
	var out []rawLine
	seenContent := false
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > maxLineLength {
			return nil, walkerr.Configurationf("line exceeds %d bytes", maxLineLength)
		}
		if !seenContent {
			if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
				continue
			}
			seenContent = true
		}
		out = append(out, rawLine{text: line, blank: strings.TrimSpace(line) == ""})
	}
	if err := scanner.Err(); err != nil {
		return nil, walkerr.Resourcef("reading configuration file: %v", err)
	}
	return out, nil
}

func parseCount(lines []rawLine) (int, []rawLine, error) {
	n, err := strconv.Atoi(strings.TrimSpace(lines[0].text))
	if err != nil || n <= 0 {
		return 0, nil, walkerr.Configurationf("first line must be a positive integer key count, got %q", lines[0].text)
	}
	return n, lines[1:], nil
}

// parseKeyLines parses the N key definition lines `-<base><variants...>`,
// returning keys in declared order and a base-character-to-declared-index
// map used later to resolve adjacency lines.
func parseKeyLines(lines []rawLine) ([]keywalk.Key, map[byte]int, error) {
	keys := make([]keywalk.Key, 0, len(lines))
	baseOrder := make(map[byte]int, len(lines))
	for i, l := range lines {
		if l.blank || !strings.HasPrefix(l.text, "-") || len(l.text) < 2 {
			return nil, nil, walkerr.Configurationf("key line %d: expected \"-<base><variants...>\", got %q", i+1, l.text)
		}
		base := l.text[1]
		variants := []byte(l.text[2:])
		if _, dup := baseOrder[base]; dup {
			return nil, nil, walkerr.Configurationf("key line %d: duplicate base character %s", i+1, formatByte(base))
		}
		baseOrder[base] = i
		keys = append(keys, keywalk.NewKey(base, variants, true))
	}
	return keys, baseOrder, nil
}

func consumeBlankSeparator(lines []rawLine) ([]rawLine, error) {
	if len(lines) == 0 {
		return lines, nil
	}
	if !lines[0].blank {
		return nil, walkerr.Configurationf("expected a blank separator line after key definitions, got %q", lines[0].text)
	}
	return lines[1:], nil
}

// applyAdjacency parses zero or more adjacency lines and wires each named
// key's neighbor list. Keys with no adjacency line keep zero neighbors.
func applyAdjacency(kb *keywalk.Keyboard, baseOrder map[byte]int, lines []rawLine) error {
	defined := make(map[byte]bool, len(baseOrder))
	for i, l := range lines {
		if l.blank {
			continue
		}
		if len(l.text) < 2 {
			return walkerr.Configurationf("adjacency line %d: too short, got %q", i+1, l.text)
		}
		base := l.text[0]
		idx, ok := baseOrder[base]
		if !ok {
			return walkerr.Configurationf("adjacency line %d: base character %s was not declared as a key", i+1, formatByte(base))
		}
		if defined[base] {
			return walkerr.Configurationf("adjacency line %d: redefinition of key %s's adjacency", i+1, formatByte(base))
		}
		defined[base] = true

		// l.text[1] is the separator byte; any single byte is tolerated
		// and discarded.
		neighborBases := l.text[2:]
		neighbors := make([]int, 0, len(neighborBases))
		for j := 0; j < len(neighborBases); j++ {
			nb := neighborBases[j]
			nIdx, ok := baseOrder[nb]
			if !ok {
				return walkerr.Configurationf("adjacency line %d: neighbor base character %s was not declared as a key", i+1, formatByte(nb))
			}
			neighbors = append(neighbors, nIdx)
		}
		if err := kb.Wire(idx, neighbors); err != nil {
			return err
		}
	}
	_ = len(baseOrder)
	return nil
}

func formatByte(b byte) string {
	return fmt.Sprintf("%q", string(rune(b)))
}
