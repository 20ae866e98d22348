// Package portconfig implements the port configuration (PC): the three
// boolean port arrays that fully describe a repeating maze tile.
package portconfig

import (
	"fmt"

	"github.com/lucasbrandao/repmaze/pkg/errs"
)

// Terminal direction indices within a normal block.
const (
	DirE = 0 // East
	DirW = 1 // West
	DirN = 2 // North
	DirS = 3 // South
)

// PC holds the port configuration shared by every tile instance of a given
// block class (normal, nx, ny). All three arrays store 0/1 as bool; there is
// no way to construct a PC whose arrays contain anything else.
type PC struct {
	NTerm int

	// Normal holds (4*NTerm)^2 entries: src_terminal*4*NTerm + dst_terminal,
	// where terminal = dir*NTerm + idx.
	Normal []bool

	// NX holds NTerm*(NTerm-1) entries for the x=0 column's E-to-E edges
	// (si != di): si*(NTerm-1) + adjust(si, di).
	NX []bool

	// NY holds NTerm*(NTerm-1) entries for the y=0 row's N-to-N edges,
	// indexed the same way as NX.
	NY []bool
}

// Create returns an all-zero PC for the given nterm. Panics if n < 2 — the
// caller (CLI / config validation) is responsible for rejecting n < 2 with
// errs.ErrInvalidArgument before reaching here.
func Create(n int) *PC {
	if n < 2 {
		panic(fmt.Sprintf("portconfig: nterm must be >= 2, got %d", n))
	}
	n4 := 4 * n
	return &PC{
		NTerm:  n,
		Normal: make([]bool, n4*n4),
		NX:     make([]bool, n*(n-1)),
		NY:     make([]bool, n*(n-1)),
	}
}

// Clone deep-copies p.
func (p *PC) Clone() *PC {
	c := &PC{
		NTerm:  p.NTerm,
		Normal: make([]bool, len(p.Normal)),
		NX:     make([]bool, len(p.NX)),
		NY:     make([]bool, len(p.NY)),
	}
	copy(c.Normal, p.Normal)
	copy(c.NX, p.NX)
	copy(c.NY, p.NY)
	return c
}

// Clear zeroes every port without reallocating.
func (p *PC) Clear() {
	for i := range p.Normal {
		p.Normal[i] = false
	}
	for i := range p.NX {
		p.NX[i] = false
	}
	for i := range p.NY {
		p.NY[i] = false
	}
}

// Total returns T, the flat length (4n)^2 + 2n(n-1).
func (p *PC) Total() int {
	return len(p.Normal) + len(p.NX) + len(p.NY)
}

// adjust maps a destination index di != si into [0, n-1), excluding the
// self-loop slot.
func adjust(si, di int) int {
	if di < si {
		return di
	}
	return di - 1
}

func normalIndex(n, sd, si, dd, di int) int {
	n4 := 4 * n
	src := sd*n + si
	dst := dd*n + di
	return src*n4 + dst
}

func edgeIndex(n, si, di int) int {
	return si*(n-1) + adjust(si, di)
}

// NormalPort reports whether the port src(sd,si) -> dst(dd,di) is active.
func (p *PC) NormalPort(sd, si, dd, di int) bool {
	return p.Normal[normalIndex(p.NTerm, sd, si, dd, di)]
}

// SetNormalPort enables or disables the normal-block port.
func (p *PC) SetNormalPort(sd, si, dd, di int, v bool) {
	p.Normal[normalIndex(p.NTerm, sd, si, dd, di)] = v
}

// NXPort reports whether E[si] -> E[di] is active in the nx block.
// Requires si != di; callers that might pass si == di should check first —
// this function panics instead of silently misbehaving.
func (p *PC) NXPort(si, di int) bool {
	mustDistinct(si, di)
	return p.NX[edgeIndex(p.NTerm, si, di)]
}

// SetNXPort enables or disables the nx-block port. Returns
// errs.ErrInvalidArgument if si == di.
func (p *PC) SetNXPort(si, di int, v bool) error {
	if si == di {
		return fmt.Errorf("nx port si==di==%d: %w", si, errs.ErrInvalidArgument)
	}
	p.NX[edgeIndex(p.NTerm, si, di)] = v
	return nil
}

// NYPort reports whether N[si] -> N[di] is active in the ny block.
func (p *PC) NYPort(si, di int) bool {
	mustDistinct(si, di)
	return p.NY[edgeIndex(p.NTerm, si, di)]
}

// SetNYPort enables or disables the ny-block port. Returns
// errs.ErrInvalidArgument if si == di.
func (p *PC) SetNYPort(si, di int, v bool) error {
	if si == di {
		return fmt.Errorf("ny port si==di==%d: %w", si, errs.ErrInvalidArgument)
	}
	p.NY[edgeIndex(p.NTerm, si, di)] = v
	return nil
}

func mustDistinct(si, di int) {
	if si == di {
		panic(fmt.Sprintf("portconfig: si==di==%d not addressable (self-loops excluded)", si))
	}
}

// FlatGet reads port i from the concatenation [Normal | NX | NY].
func (p *PC) FlatGet(i int) bool {
	if i < len(p.Normal) {
		return p.Normal[i]
	}
	i -= len(p.Normal)
	if i < len(p.NX) {
		return p.NX[i]
	}
	i -= len(p.NX)
	return p.NY[i]
}

// FlatSet writes port i.
func (p *PC) FlatSet(i int, v bool) {
	if i < len(p.Normal) {
		p.Normal[i] = v
		return
	}
	i -= len(p.Normal)
	if i < len(p.NX) {
		p.NX[i] = v
		return
	}
	i -= len(p.NX)
	p.NY[i] = v
}

// FlatFlip toggles port i.
func (p *PC) FlatFlip(i int) {
	p.FlatSet(i, !p.FlatGet(i))
}

// SetFromFlat bulk-copies a length-Total() bool slice into the three arrays.
func (p *PC) SetFromFlat(data []bool) {
	n1 := len(p.Normal)
	n2 := len(p.NX)
	copy(p.Normal, data[:n1])
	copy(p.NX, data[n1:n1+n2])
	copy(p.NY, data[n1+n2:])
}

// FlatBytes packs the PC into a T-byte snapshot (0x00/0x01 per port), used
// by pkg/topdown for visited-set keys and stack storage.
func (p *PC) FlatBytes() []byte {
	buf := make([]byte, p.Total())
	i := 0
	for _, v := range p.Normal {
		if v {
			buf[i] = 1
		}
		i++
	}
	for _, v := range p.NX {
		if v {
			buf[i] = 1
		}
		i++
	}
	for _, v := range p.NY {
		if v {
			buf[i] = 1
		}
		i++
	}
	return buf
}

// FromFlatBytes rebuilds a PC of the given nterm from a T-byte snapshot
// produced by FlatBytes.
func FromFlatBytes(n int, buf []byte) *PC {
	p := Create(n)
	data := make([]bool, len(buf))
	for i, b := range buf {
		data[i] = b != 0
	}
	p.SetFromFlat(data)
	return p
}

// Randomize sets each port independently via a fair coin flip drawn from
// rng (typically pkg/sample.RNG.Bit).
func (p *PC) Randomize(bit func() bool) {
	for i := 0; i < p.Total(); i++ {
		p.FlatSet(i, bit())
	}
}

// IsSelfLoop reports whether flat index i addresses a normal-block port
// whose source and destination terminal are identical. NX/NY ports are
// never self-loops (the adjusted indexing excludes them structurally).
// A self-loop port connects a terminal to itself and can never shorten or
// lengthen any path, so candidate generators exclude these flat indices
// from every search.
func (p *PC) IsSelfLoop(flatI int) bool {
	if flatI >= len(p.Normal) {
		return false
	}
	n4 := 4 * p.NTerm
	src := flatI / n4
	dst := flatI % n4
	return src == dst
}
