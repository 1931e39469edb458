package compare

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Runner executes fn for every index in [0, n). A nil Runner runs
// sequentially.
type Runner func(n int, fn func(i int))

func sequential(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}

// Matrix is a symmetric Jaccard similarity table with a 1.0 diagonal.
type Matrix struct {
	ids   []string
	index map[string]int
	cells [][]float64
}

func newMatrix(ids []string) Matrix {
	m := Matrix{
		ids:   append([]string(nil), ids...),
		index: make(map[string]int, len(ids)),
		cells: make([][]float64, len(ids)),
	}
	for i, id := range ids {
		m.index[id] = i
		m.cells[i] = make([]float64, len(ids))
		m.cells[i][i] = 1
	}
	return m
}

func (m Matrix) IDs() []string {
	return append([]string(nil), m.ids...)
}

func (m Matrix) Len() int {
	return len(m.ids)
}

func (m Matrix) Lookup(a, b string) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownText, a)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownText, b)
	}
	return m.cells[i][j], nil
}

// MarshalJSON writes {id: {id: similarity}} with rows and columns in corpus
// order.
func (m Matrix) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, row := range m.ids {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeKey(&b, row); err != nil {
			return nil, err
		}
		b.WriteByte('{')
		for j, col := range m.ids {
			if j > 0 {
				b.WriteByte(',')
			}
			if err := writeKey(&b, col); err != nil {
				return nil, err
			}
			v, err := json.Marshal(m.cells[i][j])
			if err != nil {
				return nil, fmt.Errorf("marshal similarity %s/%s: %w", row, col, err)
			}
			b.Write(v)
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func writeKey(b *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("marshal matrix key: %w", err)
	}
	b.Write(k)
	b.WriteByte(':')
	return nil
}

// UnmarshalJSON reads a matrix written by MarshalJSON. Row order is not
// preserved by JSON objects, so ids come back sorted.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode similarity matrix: %w", err)
	}
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := newMatrix(ids)
	for i, a := range ids {
		for j, b := range ids {
			v, ok := raw[a][b]
			if !ok {
				return fmt.Errorf("decode similarity matrix: missing cell %s/%s", a, b)
			}
			out.cells[i][j] = v
		}
	}
	*m = out
	return nil
}

type Comparison struct {
	Pairs  []Overlap `json:"pairs"`
	Matrix Matrix    `json:"similarity_matrix"`
}

// SimilarityMatrix computes each of the n(n-1)/2 unique pairs once through
// run and mirrors the result into the matrix.
func SimilarityMatrix(texts []Named, run Runner) (Comparison, error) {
	if err := checkIDs(texts); err != nil {
		return Comparison{}, fmt.Errorf("similarity matrix: %w", err)
	}
	if run == nil {
		run = sequential
	}

	type pair struct{ i, j int }
	todo := make([]pair, 0, len(texts)*(len(texts)-1)/2)
	for i := range texts {
		for j := i + 1; j < len(texts); j++ {
			todo = append(todo, pair{i, j})
		}
	}
	pairs := make([]Overlap, len(todo))
	run(len(todo), func(k int) {
		p := todo[k]
		pairs[k] = PairwiseOverlap(texts[p.i], texts[p.j])
	})

	ids := make([]string, len(texts))
	for i, t := range texts {
		ids[i] = t.ID
	}
	m := newMatrix(ids)
	for k, p := range todo {
		m.cells[p.i][p.j] = pairs[k].Jaccard
		m.cells[p.j][p.i] = pairs[k].Jaccard
	}
	return Comparison{Pairs: pairs, Matrix: m}, nil
}

// Pair returns the overlap record for a and b oriented so Text1 is a.
func (c Comparison) Pair(a, b string) (Overlap, error) {
	if _, err := c.Matrix.Lookup(a, b); err != nil {
		return Overlap{}, err
	}
	for _, p := range c.Pairs {
		switch {
		case a == b && (p.Text1 == a || p.Text2 == a):
			return self(p, a), nil
		case p.Text1 == a && p.Text2 == b:
			return p, nil
		case p.Text1 == b && p.Text2 == a:
			return p.swapped(), nil
		}
	}
	return Overlap{}, fmt.Errorf("%w: no pair %q/%q", ErrUnknownText, a, b)
}

func (o Overlap) swapped() Overlap {
	o.Text1, o.Text2 = o.Text2, o.Text1
	o.UniqueToText1, o.UniqueToText2 = o.UniqueToText2, o.UniqueToText1
	o.OverlapPercent1, o.OverlapPercent2 = o.OverlapPercent2, o.OverlapPercent1
	return o
}

// self rebuilds the reflexive record for id from any pair that contains it.
func self(p Overlap, id string) Overlap {
	if p.Text2 == id {
		p = p.swapped()
	}
	size := p.SharedWords + p.UniqueToText1
	out := Overlap{Text1: id, Text2: id, SharedWords: size, UnionWords: size, Jaccard: 1}
	if size > 0 {
		out.OverlapPercent1, out.OverlapPercent2 = 100, 100
	}
	return out
}
