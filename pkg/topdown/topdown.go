// Package topdown implements the best-first top-down driver: starting
// from the fully-connected port configuration, repeatedly remove one port
// at a time, preferring to expand the deepest-solving parents first.
package topdown

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/lucasbrandao/repmaze/pkg/canon"
	"github.com/lucasbrandao/repmaze/pkg/portconfig"
	"github.com/lucasbrandao/repmaze/pkg/reach"
)

// PrioMax bounds the priority-stack array. A parent whose solved length
// reaches or exceeds this is clamped to the top bucket.
const PrioMax = 1000

// visitedSet is an open-addressing set of T-byte flat snapshots, hashed
// with a 64-bit mix (xxhash) instead of a hand-rolled multiplicative /
// xorshift mix.
type visitedSet struct {
	slots []visitedSlot
	count int
}

type visitedSlot struct {
	occupied bool
	hash     uint64
	key      []byte
}

func newVisitedSet() *visitedSet {
	return &visitedSet{slots: make([]visitedSlot, 1024)}
}

func (v *visitedSet) mask() uint64 { return uint64(len(v.slots) - 1) }

func (v *visitedSet) rebuild() {
	old := v.slots
	v.slots = make([]visitedSlot, len(old)*2)
	mask := v.mask()
	for _, s := range old {
		if !s.occupied {
			continue
		}
		h := s.hash & mask
		for v.slots[h].occupied {
			h = (h + 1) & mask
		}
		v.slots[h] = s
	}
}

// contains reports whether key is already present, without modifying the
// set.
func (v *visitedSet) contains(key []byte) bool {
	h := xxhash.Sum64(key)
	mask := v.mask()
	slot := h & mask
	for v.slots[slot].occupied {
		if v.slots[slot].hash == h && bytes.Equal(v.slots[slot].key, key) {
			return true
		}
		slot = (slot + 1) & mask
	}
	return false
}

// insert adds key if absent and reports whether it was newly inserted.
func (v *visitedSet) insert(key []byte) bool {
	if v.count*2 >= len(v.slots) {
		v.rebuild()
	}
	h := xxhash.Sum64(key)
	mask := v.mask()
	slot := h & mask
	for v.slots[slot].occupied {
		if v.slots[slot].hash == h && bytes.Equal(v.slots[slot].key, key) {
			return false
		}
		slot = (slot + 1) & mask
	}
	v.slots[slot] = visitedSlot{occupied: true, hash: h, key: append([]byte(nil), key...)}
	v.count++
	return true
}

// stackSet is the PRIO_MAX array of LIFO stacks of flat-byte snapshots.
type stackSet struct {
	buckets [PrioMax][][]byte
	top     int // highest bucket known to possibly be non-empty
}

func (s *stackSet) push(priority int, snapshot []byte) {
	if priority < 0 {
		priority = 0
	}
	if priority >= PrioMax {
		priority = PrioMax - 1
	}
	s.buckets[priority] = append(s.buckets[priority], snapshot)
	if priority > s.top {
		s.top = priority
	}
}

// pop returns the top snapshot of the highest non-empty bucket and that
// bucket's index (used as the min_limit hint for solving it), or ok=false
// if every bucket is empty.
func (s *stackSet) pop() (snapshot []byte, priority int, ok bool) {
	for s.top >= 0 {
		b := s.buckets[s.top]
		if len(b) == 0 {
			s.top--
			continue
		}
		last := len(b) - 1
		snapshot = b[last]
		priority = s.top
		s.buckets[s.top] = b[:last]
		return snapshot, priority, true
	}
	return nil, 0, false
}

// Driver owns the visited set and priority stacks for one top-down search
// run. It generalises `pkg/fuzz/runner.go`'s round loop (seed, loop until
// interrupted, per-round reporting) to deterministic best-first expansion
// instead of randomized rounds.
type Driver struct {
	n          int
	candidates []int
	visited    *visitedSet
	stacks     *stackSet
	filter     *reach.Filter
}

// New seeds a Driver for port configurations of the given nterm: builds
// the candidate list (every non-self-loop flat index), marks the
// fully-connected configuration visited, and pushes it at priority 1.
func New(n int) *Driver {
	d := &Driver{
		n:       n,
		visited: newVisitedSet(),
		stacks:  &stackSet{top: -1},
		filter:  reach.New(n),
	}
	seed := portconfig.Create(n)
	for i := 0; i < seed.Total(); i++ {
		if seed.IsSelfLoop(i) {
			continue
		}
		d.candidates = append(d.candidates, i)
		seed.FlatSet(i, true)
	}
	canonSeed := canon.Normalize(seed)
	key := canonSeed.FlatBytes()
	d.visited.insert(key)
	d.stacks.push(1, seed.FlatBytes())
	return d
}

// Evaluator is supplied by the caller (typically pkg/orchestrate) to run
// the shared filter/solve/update-best pipeline on a popped candidate. It
// returns the solved length (-1 if unsolvable or filtered out), which the
// driver uses as the priority for that candidate's children.
type Evaluator func(pc *portconfig.PC, minLimit int) (length int)

// Stats reports how many candidates were visited/pruned during a Run.
type Stats struct {
	Popped  int
	Pruned  int
	Visited int
}

// Run pops candidates in best-first order and calls eval on each, feeding
// its reported length back in as the priority (and IDDFS min_limit) for
// that candidate's children. Stops when stop() reports true or every
// stack is empty.
func (d *Driver) Run(stop func() bool, eval Evaluator) Stats {
	var stats Stats
	for {
		if stop() {
			return stats
		}
		snapshot, priority, ok := d.stacks.pop()
		if !ok {
			return stats
		}
		pc := portconfig.FromFlatBytes(d.n, snapshot)
		stats.Popped++

		length := eval(pc, priority)

		for _, i := range d.candidates {
			if !pc.FlatGet(i) {
				continue
			}
			child := pc.Clone()
			child.FlatSet(i, false)

			canonChild := canon.Normalize(child)
			key := canonChild.FlatBytes()
			if d.visited.contains(key) {
				continue
			}
			if !d.filter.Reachable(canonChild) {
				stats.Pruned++
				continue
			}
			d.visited.insert(key)
			stats.Visited++
			d.stacks.push(length, key)
		}
	}
}
