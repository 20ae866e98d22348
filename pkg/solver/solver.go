// Package solver computes the shortest start-to-goal path length in the
// infinite directed graph induced by a port configuration, in both
// iterative-deepening (default) and full-BFS modes.
package solver

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/gammazero/deque"
	"github.com/lucasbrandao/repmaze/pkg/portconfig"
)

// MaxDepth bounds the IDDFS outer loop. Exceeding it without finding the
// goal is reported identically to genuine unsolvability (spec: "no usable
// maze" either way).
const MaxDepth = 200

// Canonical directions. Only E and N survive canonicalisation; W and S
// terminals fold into the E/N terminal of the adjacent block.
const (
	CanonE = 0
	CanonN = 1
)

const (
	tdirE = portconfig.DirE
	tdirW = portconfig.DirW
	tdirN = portconfig.DirN
	tdirS = portconfig.DirS
)

// State is a canonical point in the infinite grid: the physical location
// shared by up to two adjacent block instances.
type State struct {
	X, Y, Dir, Idx int
}

// Start and Goal are fixed for every search.
var (
	Start = State{X: 0, Y: 1, Dir: CanonE, Idx: 0}
	Goal  = State{X: 0, Y: 1, Dir: CanonE, Idx: 1}
)

func (s State) hash() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(s.X))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(s.Y))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(s.Dir))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(s.Idx))
	return xxhash.Sum64(buf[:])
}

// toCanonical folds a block-local terminal (bx, by, tdir, tidx) to its
// canonical state. W and S terminals map onto the neighbouring block's E/N
// terminal, since a port connects the same pair of terminals regardless of
// which side it's named from.
func toCanonical(bx, by, tdir, tidx int) State {
	switch tdir {
	case tdirE:
		return State{X: bx, Y: by, Dir: CanonE, Idx: tidx}
	case tdirW:
		return State{X: bx - 1, Y: by, Dir: CanonE, Idx: tidx}
	case tdirN:
		return State{X: bx, Y: by, Dir: CanonN, Idx: tidx}
	case tdirS:
		return State{X: bx, Y: by - 1, Dir: CanonN, Idx: tidx}
	default:
		return State{X: -1, Y: -1}
	}
}

// neighbors appends every state reachable from s via one active port to
// dst and returns the extended slice. Order is fixed by flat destination
// index, which in turn fixes tie-breaking among equally short paths.
func neighbors(pc *portconfig.PC, s State, dst []State) []State {
	n := pc.NTerm
	n4 := 4 * n

	if s.Dir == CanonE {
		bx, by := s.X, s.Y
		if by > 0 {
			if bx > 0 {
				src := tdirE*n + s.Idx
				for d := 0; d < n4; d++ {
					if !pc.Normal[src*n4+d] {
						continue
					}
					ns := toCanonical(bx, by, d/n, d%n)
					if ns.X >= 0 && ns.Y >= 0 {
						dst = append(dst, ns)
					}
				}
			} else {
				for dj := 0; dj < n; dj++ {
					if dj == s.Idx {
						continue
					}
					if pc.NXPort(s.Idx, dj) {
						dst = append(dst, State{X: 0, Y: by, Dir: CanonE, Idx: dj})
					}
				}
			}
		}

		bx2, by2 := s.X+1, s.Y
		if bx2 > 0 && by2 > 0 {
			src := tdirW*n + s.Idx
			for d := 0; d < n4; d++ {
				if !pc.Normal[src*n4+d] {
					continue
				}
				ns := toCanonical(bx2, by2, d/n, d%n)
				if ns.X >= 0 && ns.Y >= 0 {
					dst = append(dst, ns)
				}
			}
		}
	} else {
		bx, by := s.X, s.Y
		if bx > 0 {
			if by > 0 {
				src := tdirN*n + s.Idx
				for d := 0; d < n4; d++ {
					if !pc.Normal[src*n4+d] {
						continue
					}
					ns := toCanonical(bx, by, d/n, d%n)
					if ns.X >= 0 && ns.Y >= 0 {
						dst = append(dst, ns)
					}
				}
			} else {
				for dj := 0; dj < n; dj++ {
					if dj == s.Idx {
						continue
					}
					if pc.NYPort(s.Idx, dj) {
						dst = append(dst, State{X: bx, Y: 0, Dir: CanonN, Idx: dj})
					}
				}
			}
		}

		bx2, by2 := s.X, s.Y+1
		if bx2 > 0 && by2 > 0 {
			src := tdirS*n + s.Idx
			for d := 0; d < n4; d++ {
				if !pc.Normal[src*n4+d] {
					continue
				}
				ns := toCanonical(bx2, by2, d/n, d%n)
				if ns.X >= 0 && ns.Y >= 0 {
					dst = append(dst, ns)
				}
			}
		}
	}
	return dst
}

// Result is the outcome of a solve: Length is -1 if no path was found
// within the depth cap (genuine unsolvability and cap-exhaustion are
// reported identically). Path is present only when requested and a path
// was found.
type Result struct {
	Length int
	Path   []State
}

// Options configures a Solve call.
type Options struct {
	// WithPath requests path recovery; omitting it saves an allocation.
	WithPath bool
	// BFS selects full breadth-first search instead of the default IDDFS.
	BFS bool
	// MinLimit starts the IDDFS outer loop above 0 — used by the top-down
	// driver, since removing a port from a parent can only lengthen or
	// invalidate its shortest path, never shorten it.
	MinLimit int
}

// Solve computes the shortest Start-to-Goal path length in pc's induced
// graph.
func Solve(pc *portconfig.PC, opts Options) Result {
	if pc.NTerm < 2 {
		return Result{Length: -1}
	}
	if opts.BFS {
		return solveBFS(pc, opts)
	}
	return solveIDDFS(pc, opts)
}

// --- Transposition table: open-addressing, state -> minimum depth seen. ---

type ttSlot struct {
	occupied bool
	state    State
	depth    int
}

type transTable struct {
	slots []ttSlot
	count int
}

func newTransTable() *transTable {
	return &transTable{slots: make([]ttSlot, 8192)}
}

func (t *transTable) clear() {
	for i := range t.slots {
		t.slots[i] = ttSlot{}
	}
	t.count = 0
}

func (t *transTable) mask() uint64 { return uint64(len(t.slots) - 1) }

func (t *transTable) rebuild() {
	old := t.slots
	t.slots = make([]ttSlot, len(old)*2)
	mask := t.mask()
	for _, e := range old {
		if !e.occupied {
			continue
		}
		h := e.state.hash() & mask
		for t.slots[h].occupied {
			h = (h + 1) & mask
		}
		t.slots[h] = e
	}
}

// update records state s at depth, returning true if s should be explored
// (new entry, or this depth is strictly shallower than previously seen).
func (t *transTable) update(s State, depth int) bool {
	if t.count*2 >= len(t.slots) {
		t.rebuild()
	}
	mask := t.mask()
	h := s.hash() & mask
	for t.slots[h].occupied {
		if t.slots[h].state == s {
			if depth < t.slots[h].depth {
				t.slots[h].depth = depth
				return true
			}
			return false
		}
		h = (h + 1) & mask
	}
	t.slots[h] = ttSlot{occupied: true, state: s, depth: depth}
	t.count++
	return true
}

func solveIDDFS(pc *portconfig.PC, opts Options) Result {
	tt := newTransTable()
	pathStack := make([]State, MaxDepth+1)

	lastCount := -1
	var found bool
	var foundDepth int

	minLimit := opts.MinLimit
	if minLimit < 0 {
		minLimit = 0
	}

	var dfs func(cur State, depth, limit int) bool
	dfs = func(cur State, depth, limit int) bool {
		if cur == Goal {
			pathStack[depth] = cur
			foundDepth = depth
			return true
		}
		if depth >= limit {
			return false
		}
		pathStack[depth] = cur

		nbrs := neighbors(pc, cur, make([]State, 0, 8*pc.NTerm))
		for _, nb := range nbrs {
			if !tt.update(nb, depth+1) {
				continue
			}
			if dfs(nb, depth+1, limit) {
				return true
			}
		}
		return false
	}

	for limit := minLimit; limit <= MaxDepth; limit++ {
		tt.clear()
		tt.update(Start, 0)

		if dfs(Start, 0, limit) {
			found = true
			break
		}
		if tt.count == lastCount {
			break
		}
		lastCount = tt.count
	}

	if !found {
		return Result{Length: -1}
	}

	pathLen := foundDepth + 1
	result := Result{Length: pathLen - 1}
	if opts.WithPath {
		result.Path = append([]State(nil), pathStack[:pathLen]...)
	}
	return result
}

// --- BFS mode: dense (state, parent_index) vector plus an open-addressing
// index from state to its position in that vector, avoiding pointer-chasing
// visited tables in favor of a flat array and index-based parent chaining. ---

type bfsNode struct {
	state  State
	parent int
}

type bfsIndex struct {
	slots []int32 // dense-vector index + 1; 0 means empty
	count int
}

func newBFSIndex(capacity int) *bfsIndex {
	size := 1024
	for size < capacity*2 {
		size *= 2
	}
	return &bfsIndex{slots: make([]int32, size)}
}

func (b *bfsIndex) mask() uint64 { return uint64(len(b.slots) - 1) }

func solveBFS(pc *portconfig.PC, opts Options) Result {
	dense := make([]bfsNode, 0, 1024)
	index := newBFSIndex(1024)

	insert := func(s State, parent int) bool {
		if index.count*2 >= len(index.slots) {
			index = index.grow(dense)
		}
		mask := index.mask()
		h := s.hash() & mask
		for index.slots[h] != 0 {
			if dense[index.slots[h]-1].state == s {
				return false
			}
			h = (h + 1) & mask
		}
		dense = append(dense, bfsNode{state: s, parent: parent})
		index.slots[h] = int32(len(dense))
		index.count++
		return true
	}

	q := deque.New[int](64)
	insert(Start, -1)
	q.PushBack(0)

	nbrBuf := make([]State, 0, 8*pc.NTerm)
	goalIdx := -1

	for q.Len() > 0 {
		cur := q.PopFront()
		if dense[cur].state == Goal {
			goalIdx = cur
			break
		}
		nbrBuf = nbrBuf[:0]
		nbrBuf = neighbors(pc, dense[cur].state, nbrBuf)
		for _, nb := range nbrBuf {
			if insert(nb, cur) {
				q.PushBack(len(dense) - 1)
			}
		}
	}

	if goalIdx == -1 {
		return Result{Length: -1}
	}

	// Recover path by walking parent indices back to the root.
	var rev []State
	for i := goalIdx; i != -1; i = dense[i].parent {
		rev = append(rev, dense[i].state)
	}
	length := len(rev) - 1
	result := Result{Length: length}
	if opts.WithPath {
		path := make([]State, len(rev))
		for i, s := range rev {
			path[len(rev)-1-i] = s
		}
		result.Path = path
	}
	return result
}

func (b *bfsIndex) grow(dense []bfsNode) *bfsIndex {
	nb := &bfsIndex{slots: make([]int32, len(b.slots)*2)}
	mask := nb.mask()
	for i, node := range dense {
		h := node.state.hash() & mask
		for nb.slots[h] != 0 {
			h = (h + 1) & mask
		}
		nb.slots[h] = int32(i + 1)
		nb.count++
	}
	return nb
}
