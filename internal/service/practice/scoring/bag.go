package scoring

// Bag is a counted multiset of tokens. Order is discarded except for the
// first-seen order of distinct tokens, which keeps hint output stable.
type Bag struct {
	counts map[string]int
	order  []string
}

// NewBag counts tokens.
func NewBag(tokens []string) *Bag {
	b := &Bag{counts: make(map[string]int, len(tokens))}
	for _, t := range tokens {
		if b.counts[t] == 0 {
			b.order = append(b.order, t)
		}
		b.counts[t]++
	}
	return b
}

// Count returns how many times tok occurs.
func (b *Bag) Count(tok string) int { return b.counts[tok] }

// Contains reports whether tok occurs at least once.
func (b *Bag) Contains(tok string) bool { return b.counts[tok] > 0 }

// Len returns the total number of tokens, duplicates included.
func (b *Bag) Len() int {
	n := 0
	for _, c := range b.counts {
		n += c
	}
	return n
}

// Distinct returns the distinct tokens in first-seen order.
func (b *Bag) Distinct() []string { return b.order }

// intersect walks want in order and consumes a copy of the bag's counts.
// Each occurrence in want matches at most once, so the matched total is the
// multiset intersection size; the tokens left over are returned in order.
func (b *Bag) intersect(want []string) (matched int, missing []string) {
	remaining := make(map[string]int, len(want))
	for _, t := range want {
		if _, seen := remaining[t]; !seen {
			remaining[t] = b.counts[t]
		}
	}
	for _, t := range want {
		if remaining[t] > 0 {
			remaining[t]--
			matched++
			continue
		}
		missing = append(missing, t)
	}
	return matched, missing
}
