package sentiment

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Lexicon maps lower-cased terms to their mean valence.
type Lexicon map[string]float64

func (l Lexicon) Valence(term string) (float64, bool) {
	v, ok := l[term]
	return v, ok
}

func (l Lexicon) Has(term string) bool {
	_, ok := l[term]
	return ok
}

func LoadLexiconFile(path string) (Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()
	lex, err := LoadLexicon(f)
	if err != nil {
		return nil, fmt.Errorf("load lexicon %s: %w", path, err)
	}
	return lex, nil
}

// LoadLexicon reads VADER-format lines: term, tab, mean valence, then any
// number of ignored tab-separated columns. Blank lines are skipped.
func LoadLexicon(r io.Reader) (Lexicon, error) {
	lex := Lexicon{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		fields := strings.Split(raw, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected term and valence", line)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse valence: %w", line, err)
		}
		lex[strings.ToLower(strings.TrimSpace(fields[0]))] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan lexicon: %w", err)
	}
	if len(lex) == 0 {
		return nil, fmt.Errorf("lexicon is empty")
	}
	return lex, nil
}
