// Package canon implements canonical normalisation of port configurations:
// folding the two independent index symmetries (EW on [2,n), NS on [0,n))
// down to a single representative form.
package canon

import "github.com/lucasbrandao/repmaze/pkg/portconfig"

const (
	dirE = portconfig.DirE
	dirW = portconfig.DirW
	dirN = portconfig.DirN
	dirS = portconfig.DirS
)

func isEW(dir int) bool { return dir == dirE || dir == dirW }

// mapping tracks the first-appearance-order assignment of old index -> new
// index for one of the two symmetry groups.
type mapping struct {
	img    []int // old index -> new index, -1 until assigned
	next   int   // next free image to hand out
	fixed0 bool  // true for EW: indices 0 and 1 are identity-fixed
}

func newMapping(n int, fixed0 bool) *mapping {
	m := &mapping{img: make([]int, n), next: 0}
	for i := range m.img {
		m.img[i] = -1
	}
	if fixed0 {
		m.img[0] = 0
		m.img[1] = 1
		m.next = 2
	}
	m.fixed0 = fixed0
	return m
}

func (m *mapping) touch(i int) {
	if m.img[i] != -1 {
		return
	}
	m.img[i] = m.next
	m.next++
}

func (m *mapping) finalize() {
	for i := range m.img {
		if m.img[i] == -1 {
			m.img[i] = m.next
			m.next++
		}
	}
}

// Normalize returns a new, canonicalised PC. The input is not modified.
func Normalize(pc *portconfig.PC) *portconfig.PC {
	n := pc.NTerm
	ew := newMapping(n, true)
	ns := newMapping(n, false)

	n4 := 4 * n
	// Pass 1: first-appearance-order scan, normal ports by flat index
	// src*4n+dst, then nx ports by si*n+di, then ny ports the same way.
	for idx, active := range pc.Normal {
		if !active {
			continue
		}
		src := idx / n4
		dst := idx % n4
		sd, si := src/n, src%n
		dd, di := dst/n, dst%n
		touchTerminal(ew, ns, sd, si)
		touchTerminal(ew, ns, dd, di)
	}
	for si := 0; si < n; si++ {
		for di := 0; di < n; di++ {
			if si == di {
				continue
			}
			if pc.NXPort(si, di) {
				ew.touch(si)
				ew.touch(di)
			}
		}
	}
	for si := 0; si < n; si++ {
		for di := 0; di < n; di++ {
			if si == di {
				continue
			}
			if pc.NYPort(si, di) {
				ns.touch(si)
				ns.touch(di)
			}
		}
	}
	ew.finalize()
	ns.finalize()

	// Pass 2: rebuild with the resolved permutations applied.
	out := portconfig.Create(n)
	for idx, active := range pc.Normal {
		if !active {
			continue
		}
		src := idx / n4
		dst := idx % n4
		sd, si := src/n, src%n
		dd, di := dst/n, dst%n
		newSi := mappedIndex(ew, ns, sd, si)
		newDi := mappedIndex(ew, ns, dd, di)
		out.SetNormalPort(sd, newSi, dd, newDi, true)
	}
	for si := 0; si < n; si++ {
		for di := 0; di < n; di++ {
			if si == di {
				continue
			}
			if pc.NXPort(si, di) {
				_ = out.SetNXPort(ew.img[si], ew.img[di], true)
			}
		}
	}
	for si := 0; si < n; si++ {
		for di := 0; di < n; di++ {
			if si == di {
				continue
			}
			if pc.NYPort(si, di) {
				_ = out.SetNYPort(ns.img[si], ns.img[di], true)
			}
		}
	}
	return out
}

func touchTerminal(ew, ns *mapping, dir, idx int) {
	if isEW(dir) {
		ew.touch(idx)
	} else {
		ns.touch(idx)
	}
}

func mappedIndex(ew, ns *mapping, dir, idx int) int {
	if isEW(dir) {
		return ew.img[idx]
	}
	return ns.img[idx]
}

// IsCanonical reports whether pc is already in normal form: normalising it
// produces byte-identical port arrays.
func IsCanonical(pc *portconfig.PC) bool {
	norm := Normalize(pc)
	return equalBool(pc.Normal, norm.Normal) &&
		equalBool(pc.NX, norm.NX) &&
		equalBool(pc.NY, norm.NY)
}

func equalBool(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
