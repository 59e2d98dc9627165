package analyzer

import (
	"sort"
	"strings"
)

// itemKeySeparator joins itemset elements into a map key. Abstracted
// statements are source text and never contain the ASCII unit separator.
const itemKeySeparator = "\x1f"

// Itemset is an unordered set of abstracted statements kept in canonical
// (sorted, duplicate-free) form.
type Itemset []string

// NewItemset builds a canonical itemset from arbitrary items
func NewItemset(items ...string) Itemset {
	set := make(map[string]struct{}, len(items))
	out := make(Itemset, 0, len(items))
	for _, item := range items {
		if _, ok := set[item]; ok {
			continue
		}
		set[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// Key returns a string uniquely identifying the itemset
func (s Itemset) Key() string {
	return strings.Join(s, itemKeySeparator)
}

// IsSubsetOf reports whether every element of s is in other
func (s Itemset) IsSubsetOf(other Itemset) bool {
	set := make(map[string]struct{}, len(other))
	for _, item := range other {
		set[item] = struct{}{}
	}
	for _, item := range s {
		if _, ok := set[item]; !ok {
			return false
		}
	}
	return true
}

// FrequentItemset is an itemset together with the indices of the transactions containing it
type FrequentItemset struct {
	Items   Itemset
	Support []int // ascending transaction indices
}

// Score is the clone priority of the itemset: |items| * (|support| - 1)
func (f FrequentItemset) Score() int {
	return len(f.Items) * (len(f.Support) - 1)
}

// ItemsetTable is the miner output: itemsets in the order they were found
// (1-itemsets by first appearance, then each round in generation order).
type ItemsetTable struct {
	entries []FrequentItemset
	index   map[string]int
}

func newItemsetTable() *ItemsetTable {
	return &ItemsetTable{index: make(map[string]int)}
}

func (t *ItemsetTable) add(f FrequentItemset) {
	key := f.Items.Key()
	if _, ok := t.index[key]; ok {
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, f)
}

// Len returns the number of frequent itemsets
func (t *ItemsetTable) Len() int {
	return len(t.entries)
}

// Entries returns the frequent itemsets in discovery order
func (t *ItemsetTable) Entries() []FrequentItemset {
	out := make([]FrequentItemset, len(t.entries))
	copy(out, t.entries)
	return out
}

// Support returns the support of the given itemset, if it is frequent
func (t *ItemsetTable) Support(items ...string) ([]int, bool) {
	i, ok := t.index[NewItemset(items...).Key()]
	if !ok {
		return nil, false
	}
	return t.entries[i].Support, true
}

// AprioriMiner finds all unordered itemsets shared by at least minSupport transactions
type AprioriMiner struct {
	minSupport int
}

// NewAprioriMiner creates a miner. Thresholds below 1 are raised to 1.
func NewAprioriMiner(minSupport int) *AprioriMiner {
	if minSupport < 1 {
		minSupport = 1
	}
	return &AprioriMiner{minSupport: minSupport}
}

// Mine runs Apriori over the transactions. Each transaction is the list of
// abstracted statements of one sequence; its index is its position.
func (m *AprioriMiner) Mine(transactions [][]string) *ItemsetTable {
	result := newItemsetTable()
	if len(transactions) == 0 {
		return result
	}

	sets := make([]map[string]struct{}, len(transactions))
	for i, tx := range transactions {
		sets[i] = make(map[string]struct{}, len(tx))
		for _, item := range tx {
			sets[i][item] = struct{}{}
		}
	}

	current := m.frequentSingletons(transactions)
	for _, f := range current {
		result.add(f)
	}

	for k := 2; len(current) > 0; k++ {
		var next []FrequentItemset
		tried := make(map[string]bool)

		for i := 0; i < len(current); i++ {
			for j := i + 1; j < len(current); j++ {
				merged, ok := mergeItemsets(current[i].Items, current[j].Items, k-2)
				if !ok {
					continue
				}
				key := merged.Key()
				if tried[key] {
					continue
				}
				tried[key] = true

				support := supportOf(merged, sets)
				if len(support) >= m.minSupport {
					next = append(next, FrequentItemset{Items: merged, Support: support})
				}
			}
		}

		for _, f := range next {
			result.add(f)
		}
		current = next
	}

	return result
}

// frequentSingletons builds 1-itemsets in first-appearance order and drops infrequent ones
func (m *AprioriMiner) frequentSingletons(transactions [][]string) []FrequentItemset {
	var order []string
	support := make(map[string][]int)

	for tIdx, tx := range transactions {
		for _, item := range tx {
			ids, seen := support[item]
			if !seen {
				order = append(order, item)
			}
			if len(ids) > 0 && ids[len(ids)-1] == tIdx {
				continue
			}
			support[item] = append(ids, tIdx)
		}
	}

	out := make([]FrequentItemset, 0, len(order))
	for _, item := range order {
		if len(support[item]) >= m.minSupport {
			out = append(out, FrequentItemset{Items: Itemset{item}, Support: support[item]})
		}
	}
	return out
}

// mergeItemsets joins two (k-1)-itemsets into a k-itemset when they share
// their first prefixSize elements and differ in the last one.
func mergeItemsets(a, b Itemset, prefixSize int) (Itemset, bool) {
	if len(a) != len(b) || len(a) != prefixSize+1 {
		return nil, false
	}

	for i := 0; i < prefixSize; i++ {
		if a[i] != b[i] {
			return nil, false
		}
	}

	if prefixSize > 0 && a[prefixSize] == b[prefixSize] {
		return nil, false
	}

	merged := make([]string, 0, len(a)+1)
	merged = append(merged, a...)
	merged = append(merged, b...)
	union := NewItemset(merged...)
	if len(union) != prefixSize+2 {
		return nil, false
	}
	return union, true
}

// supportOf returns the ascending indices of transactions containing every item
func supportOf(items Itemset, sets []map[string]struct{}) []int {
	var support []int
	for tIdx, set := range sets {
		contained := true
		for _, item := range items {
			if _, ok := set[item]; !ok {
				contained = false
				break
			}
		}
		if contained {
			support = append(support, tIdx)
		}
	}
	return support
}
