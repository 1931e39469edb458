package ngram

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v2"

	"corpus_dashboard/internal/tokenize"
)

//go:embed concepts.yaml
var defaultConcepts []byte

const maxReportedVariants = 5

type Concept struct {
	Term     string   `yaml:"term"`
	Variants []string `yaml:"variants"`
}

// Dictionary is a compiled concept table. Variants that tokenize to the same
// word sequence are merged so an occurrence is never counted twice.
type Dictionary struct {
	concepts []compiledConcept
}

type compiledConcept struct {
	term     string
	variants []variant
}

type variant struct {
	surface string
	tokens  []string
	prefix  bool
}

type ConceptMatch struct {
	Term          string         `json:"term"`
	Variants      []string       `json:"variants"`
	VariantCounts map[string]int `json:"variant_counts"`
	Count         int            `json:"count"`
}

func DefaultDictionary() Dictionary {
	d, err := LoadDictionary(bytes.NewReader(defaultConcepts))
	if err != nil {
		panic(fmt.Sprintf("embedded concept dictionary: %v", err))
	}
	return d
}

func LoadDictionaryFile(path string) (Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dictionary{}, fmt.Errorf("open concepts: %w", err)
	}
	defer f.Close()
	d, err := LoadDictionary(f)
	if err != nil {
		return Dictionary{}, fmt.Errorf("load concepts %s: %w", path, err)
	}
	return d, nil
}

func LoadDictionary(r io.Reader) (Dictionary, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Dictionary{}, fmt.Errorf("read concepts: %w", err)
	}
	var doc struct {
		Concepts []Concept `yaml:"concepts"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Dictionary{}, fmt.Errorf("decode concepts: %w", err)
	}
	return NewDictionary(doc.Concepts)
}

func NewDictionary(concepts []Concept) (Dictionary, error) {
	if len(concepts) == 0 {
		return Dictionary{}, fmt.Errorf("concept dictionary is empty")
	}
	out := Dictionary{concepts: make([]compiledConcept, 0, len(concepts))}
	for _, c := range concepts {
		term := strings.TrimSpace(c.Term)
		if term == "" {
			return Dictionary{}, fmt.Errorf("concept with empty term")
		}
		cc := compiledConcept{term: term}
		for _, raw := range c.Variants {
			v, ok := compileVariant(raw)
			if !ok {
				return Dictionary{}, fmt.Errorf("concept %q: variant %q has no words", term, raw)
			}
			if !slices.ContainsFunc(cc.variants, v.sameAs) {
				cc.variants = append(cc.variants, v)
			}
		}
		if len(cc.variants) == 0 {
			return Dictionary{}, fmt.Errorf("concept %q has no variants", term)
		}
		out.concepts = append(out.concepts, cc)
	}
	return out, nil
}

func compileVariant(raw string) (variant, bool) {
	surface := strings.ToLower(strings.TrimSpace(raw))
	prefix := strings.HasSuffix(surface, "*")
	tokens := tokenize.Words(surface)
	if len(tokens) == 0 {
		return variant{}, false
	}
	return variant{surface: surface, tokens: tokens, prefix: prefix}, true
}

func (v variant) sameAs(o variant) bool {
	return v.prefix == o.prefix && slices.Equal(v.tokens, o.tokens)
}

func (v variant) matchAt(words []string, i int) bool {
	if i+len(v.tokens) > len(words) {
		return false
	}
	last := len(v.tokens) - 1
	for j, tok := range v.tokens {
		w := words[i+j]
		if j == last && v.prefix {
			if !strings.HasPrefix(w, tok) {
				return false
			}
			continue
		}
		if w != tok {
			return false
		}
	}
	return true
}

func (d Dictionary) Terms() []string {
	out := make([]string, 0, len(d.concepts))
	for _, c := range d.concepts {
		out = append(out, c.term)
	}
	return out
}

// Match counts every concept over lower-cased word tokens. Only concepts that
// occur are returned, most frequent first, ties in dictionary order.
func (d Dictionary) Match(words []string) []ConceptMatch {
	out := []ConceptMatch{}
	for _, c := range d.concepts {
		counts := make([]int, len(c.variants))
		total := 0
		for i := range words {
			for k, v := range c.variants {
				if v.matchAt(words, i) {
					counts[k]++
					total++
				}
			}
		}
		if total == 0 {
			continue
		}
		m := ConceptMatch{Term: c.term, VariantCounts: map[string]int{}, Count: total}
		order := make([]int, 0, len(c.variants))
		for k, n := range counts {
			if n > 0 {
				m.VariantCounts[c.variants[k].surface] = n
				order = append(order, k)
			}
		}
		slices.SortStableFunc(order, func(a, b int) int { return counts[b] - counts[a] })
		for _, k := range order[:min(len(order), maxReportedVariants)] {
			m.Variants = append(m.Variants, c.variants[k].surface)
		}
		out = append(out, m)
	}
	slices.SortStableFunc(out, func(a, b ConceptMatch) int { return b.Count - a.Count })
	return out
}
