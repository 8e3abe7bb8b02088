package derivater

import (
	"sort"
)

// exprTable is an insertion-ordered set of expressions keyed by structural
// equality. Sum groups terms by remainder and Product groups factors by base
// with it.
type exprTable struct {
	buckets map[uint64][]int
	keys    []Expr
}

func (t *exprTable) indexOf(e Expr) int {
	for _, i := range t.buckets[e.Hash()] {
		if t.keys[i].Equal(e) {
			return i
		}
	}
	return -1
}

// insert returns the index of e, adding it first if it isn't present.
func (t *exprTable) insert(e Expr) (int, bool) {
	h := e.Hash()
	for _, i := range t.buckets[h] {
		if t.keys[i].Equal(e) {
			return i, false
		}
	}
	if t.buckets == nil {
		t.buckets = make(map[uint64][]int)
	}
	t.keys = append(t.keys, e)
	idx := len(t.keys) - 1
	t.buckets[h] = append(t.buckets[h], idx)
	return idx, true
}

// foldDuplicates replaces every run of k identical elements with fold(e, k),
// keeping first-occurrence order, until no element repeats.
func foldDuplicates(es []Expr, fold func(e Expr, k int) Expr) []Expr {
	for {
		var table exprTable
		var counts []int
		for _, e := range es {
			i, added := table.insert(e)
			if added {
				counts = append(counts, 1)
			} else {
				counts[i]++
			}
		}
		if len(table.keys) == len(es) {
			return es
		}
		next := make([]Expr, len(table.keys))
		for i, e := range table.keys {
			if counts[i] == 1 {
				next[i] = e
			} else {
				next[i] = fold(e, counts[i])
			}
		}
		es = next
	}
}

// sortByKey orders es by the display string of key(e), then by node kind,
// then by hash. The hash separates distinct constants that share a name.
func sortByKey(es []Expr, key func(Expr) Expr) {
	type keyed struct {
		e    Expr
		key  string
		kind string
		hash uint64
	}
	ks := make([]keyed, len(es))
	for i, e := range es {
		k := key(e)
		ks[i] = keyed{e: e, key: k.String(), kind: kindName(k), hash: k.Hash()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].key != ks[j].key {
			return ks[i].key < ks[j].key
		}
		if ks[i].kind != ks[j].kind {
			return ks[i].kind < ks[j].kind
		}
		return ks[i].hash < ks[j].hash
	})
	for i := range ks {
		es[i] = ks[i].e
	}
}
