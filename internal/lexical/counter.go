package lexical

import "slices"

// Entry is one ranked key from a Counter.
type Entry struct {
	Key   string
	Count int
}

// Counter counts string keys and remembers the order in which each key was
// first seen, which is the tie-break for ranking.
type Counter struct {
	counts map[string]int
	order  []string
	total  int
}

func NewCounter() *Counter {
	return &Counter{counts: map[string]int{}}
}

func (c *Counter) Add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
	c.total++
}

func (c *Counter) Count(key string) int {
	return c.counts[key]
}

func (c *Counter) Len() int {
	return len(c.order)
}

func (c *Counter) Total() int {
	return c.total
}

// Top returns the k most frequent keys, count descending, ties in first
// occurrence order. k <= 0 returns every key.
func (c *Counter) Top(k int) []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, Entry{Key: key, Count: c.counts[key]})
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return b.Count - a.Count
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
