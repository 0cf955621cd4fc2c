package ingest

import "sort"

// Counter is a per-call frequency table that remembers the order in which
// distinct keys were first seen.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty frequency table.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add counts one occurrence of key.
func (c *Counter) Add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// AddAll counts every key in order.
func (c *Counter) AddAll(keys []string) {
	for _, k := range keys {
		c.Add(k)
	}
}

// MostCommon returns up to limit keys seen at least minCount times, ordered
// by descending count. Equal counts keep first-seen order. limit <= 0 means
// no cap.
func (c *Counter) MostCommon(limit, minCount int) []string {
	ranked := make([]string, 0, len(c.order))
	for _, k := range c.order {
		if c.counts[k] >= minCount {
			ranked = append(ranked, k)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return c.counts[ranked[i]] > c.counts[ranked[j]]
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
