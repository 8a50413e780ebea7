package batch

import (
	"path/filepath"

	"github.com/matzehuels/spritestrip/pkg/manifest"
)

// chains partitions job indices so that any two jobs touching a common path,
// where at least one of them writes it, land in the same chain. Chains are
// ordered by their first job and each lists its jobs in input order.
func chains(jobs []manifest.Job) [][]int {
	parent := make([]int, len(jobs))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	writers := make(map[string]int)
	readers := make(map[string][]int)
	for i, j := range jobs {
		for _, in := range j.Inputs {
			in = filepath.Clean(in)
			if w, ok := writers[in]; ok {
				union(i, w)
			}
			readers[in] = append(readers[in], i)
		}
		out := filepath.Clean(j.OutputPath())
		if w, ok := writers[out]; ok {
			union(i, w)
		}
		for _, r := range readers[out] {
			union(i, r)
		}
		writers[out] = i
	}

	index := make(map[int]int)
	var out [][]int
	for i := range jobs {
		root := find(i)
		k, ok := index[root]
		if !ok {
			k = len(out)
			index[root] = k
			out = append(out, nil)
		}
		out[k] = append(out[k], i)
	}
	return out
}
