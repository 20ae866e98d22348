// Package reach implements the abstract reachability filter: a cheap
// bitset BFS over the 2·nterm-vertex quotient graph that rejects port
// configurations where the goal class is unreachable even in the abstract
// graph.
package reach

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/lucasbrandao/repmaze/pkg/portconfig"
)

const (
	dirE = portconfig.DirE
	dirW = portconfig.DirW
	dirN = portconfig.DirN
	dirS = portconfig.DirS
)

func isEW(dir int) bool { return dir == dirE || dir == dirW }

// vertexOf maps a terminal (dir, idx) to its quotient-graph vertex: EW
// terminals occupy [0, n), NS terminals occupy [n, 2n).
func vertexOf(n, dir, idx int) int {
	if isEW(dir) {
		return idx
	}
	return n + idx
}

// Filter owns the reusable scratch bitsets for one nterm value. Callers
// create one Filter per search run and call Reachable repeatedly; no
// allocation happens after construction.
type Filter struct {
	n         int
	adj       []*bitset.BitSet // adjacency: adj[v] has bit w set iff v -> w
	reachable *bitset.BitSet
	frontier  *bitset.BitSet
	next      *bitset.BitSet
}

// New allocates a Filter sized for port configurations with the given
// nterm. The adjacency bitsets are reused (cleared, not reallocated) by
// every call to Reachable.
func New(n int) *Filter {
	verts := 2 * n
	adj := make([]*bitset.BitSet, verts)
	for i := range adj {
		adj[i] = bitset.New(uint(verts))
	}
	return &Filter{
		n:         n,
		adj:       adj,
		reachable: bitset.New(uint(verts)),
		frontier:  bitset.New(uint(verts)),
		next:      bitset.New(uint(verts)),
	}
}

func (f *Filter) buildAdjacency(pc *portconfig.PC) {
	n := f.n
	for _, row := range f.adj {
		row.ClearAll()
	}
	n4 := 4 * n
	for idx, active := range pc.Normal {
		if !active {
			continue
		}
		src := idx / n4
		dst := idx % n4
		sd, si := src/n, src%n
		dd, di := dst/n, dst%n
		v := vertexOf(n, sd, si)
		w := vertexOf(n, dd, di)
		f.adj[v].Set(uint(w))
	}
	for si := 0; si < n; si++ {
		for di := 0; di < n; di++ {
			if si == di {
				continue
			}
			if pc.NXPort(si, di) {
				v := vertexOf(n, dirE, si)
				w := vertexOf(n, dirE, di)
				f.adj[v].Set(uint(w))
			}
			if pc.NYPort(si, di) {
				v := vertexOf(n, dirN, si)
				w := vertexOf(n, dirN, di)
				f.adj[v].Set(uint(w))
			}
		}
	}
}

// Reachable reports whether the goal class (vertex 1) is reachable from
// the start class (vertex 0) in pc's quotient graph.
func (f *Filter) Reachable(pc *portconfig.PC) bool {
	f.buildAdjacency(pc)

	f.reachable.ClearAll()
	f.frontier.ClearAll()
	f.reachable.Set(0)
	f.frontier.Set(0)

	for f.frontier.Any() {
		f.next.ClearAll()
		for v, ok := f.frontier.NextSet(0); ok; v, ok = f.frontier.NextSet(v + 1) {
			f.next.InPlaceUnion(f.adj[v])
		}
		f.next.InPlaceDifference(f.reachable)
		if f.next.None() {
			break
		}
		f.reachable.InPlaceUnion(f.next)
		f.frontier, f.next = f.next, f.frontier
	}
	return f.reachable.Test(1)
}
