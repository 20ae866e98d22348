// Package mazeio implements the maze string grammar (parse and print) and
// the pretty-printers used to present a solved maze and its path.
package mazeio

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/lucasbrandao/repmaze/pkg/errs"
	"github.com/lucasbrandao/repmaze/pkg/portconfig"
	"github.com/lucasbrandao/repmaze/pkg/solver"
)

var dirNames = [4]string{"E", "W", "N", "S"}

func parseDir(c rune) (int, bool) {
	switch unicode.ToUpper(c) {
	case 'E':
		return portconfig.DirE, true
	case 'W':
		return portconfig.DirW, true
	case 'N':
		return portconfig.DirN, true
	case 'S':
		return portconfig.DirS, true
	default:
		return 0, false
	}
}

type scanner struct {
	s   string
	pos int
}

func (sc *scanner) skipWS() {
	for sc.pos < len(sc.s) && unicode.IsSpace(rune(sc.s[sc.pos])) {
		sc.pos++
	}
}

func (sc *scanner) peek() byte {
	if sc.pos >= len(sc.s) {
		return 0
	}
	return sc.s[sc.pos]
}

// skipStr skips whitespace then consumes s if present, reporting whether
// it matched.
func (sc *scanner) skipStr(s string) bool {
	sc.skipWS()
	rest := sc.s[sc.pos:]
	if len(rest) >= len(s) && strings.EqualFold(rest[:len(s)], s) {
		sc.pos += len(s)
		return true
	}
	return false
}

// parseTerminal parses a token like "E0" or "N12", returning its
// direction and index.
func (sc *scanner) parseTerminal() (dir, idx int, ok bool) {
	sc.skipWS()
	if sc.pos >= len(sc.s) {
		return 0, 0, false
	}
	d, isDir := parseDir(rune(sc.s[sc.pos]))
	if !isDir {
		return 0, 0, false
	}
	start := sc.pos + 1
	p := start
	for p < len(sc.s) && sc.s[p] >= '0' && sc.s[p] <= '9' {
		p++
	}
	if p == start {
		return 0, 0, false
	}
	n := 0
	for _, c := range sc.s[start:p] {
		n = n*10 + int(c-'0')
	}
	sc.pos = p
	return d, n, true
}

func (sc *scanner) hasNone() bool {
	sc.skipWS()
	return strings.HasPrefix(sc.s[sc.pos:], "(none)")
}

func (sc *scanner) consumeNone() {
	sc.pos += len("(none)")
}

// parseEntries parses a comma-separated list of "TERM->TERM" entries up
// to the next ';' or end of string, invoking set for each syntactically
// valid entry it finds.
func (sc *scanner) parseEntries(set func(sd, si, dd, di int)) {
	sc.skipWS()
	if sc.hasNone() {
		sc.consumeNone()
		return
	}
	for sc.pos < len(sc.s) && sc.peek() != ';' {
		sd, si, ok := sc.parseTerminal()
		if !ok {
			break
		}
		sc.skipWS()
		if sc.peek() == '-' {
			sc.pos++
		}
		if sc.peek() == '>' {
			sc.pos++
		}
		dd, di, ok := sc.parseTerminal()
		if !ok {
			break
		}
		set(sd, si, dd, di)
		sc.skipWS()
		if sc.peek() == ',' {
			sc.pos++
		}
	}
}

// DetectNterm scans a maze string and returns one more than the maximum
// terminal index observed, floored at 2.
func DetectNterm(s string) int {
	max := -1
	sc := &scanner{s: s}
	for sc.pos < len(sc.s) {
		if _, isDir := parseDir(rune(sc.s[sc.pos])); isDir {
			save := sc.pos
			_, idx, ok := sc.parseTerminal()
			if ok {
				if idx > max {
					max = idx
				}
				continue
			}
			sc.pos = save
		}
		sc.pos++
	}
	n := max + 1
	if n < 2 {
		n = 2
	}
	return n
}

// Parse builds a PC of the given nterm from a maze string. Returns
// errs.ErrParseFailure if the "normal:" section is absent. Entries with
// out-of-range or self-loop (nx/ny) indices are silently dropped.
func Parse(nterm int, s string) (*portconfig.PC, error) {
	sc := &scanner{s: s}
	if !sc.skipStr("normal:") {
		return nil, fmt.Errorf("missing \"normal:\" section: %w", errs.ErrParseFailure)
	}
	pc := portconfig.Create(nterm)

	sc.parseEntries(func(sd, si, dd, di int) {
		if sd >= 0 && sd < 4 && si >= 0 && si < nterm &&
			dd >= 0 && dd < 4 && di >= 0 && di < nterm {
			pc.SetNormalPort(sd, si, dd, di, true)
		}
	})

	sc.skipWS()
	if sc.peek() == ';' {
		sc.pos++
	}
	if sc.skipStr("nx:") {
		sc.parseEntries(func(_, si, _, di int) {
			if si >= 0 && si < nterm && di >= 0 && di < nterm && si != di {
				_ = pc.SetNXPort(si, di, true)
			}
		})
	} else {
		return pc, nil
	}

	sc.skipWS()
	if sc.peek() == ';' {
		sc.pos++
	}
	if sc.skipStr("ny:") {
		sc.parseEntries(func(_, si, _, di int) {
			if si >= 0 && si < nterm && di >= 0 && di < nterm && si != di {
				_ = pc.SetNYPort(si, di, true)
			}
		})
	}

	return pc, nil
}

// Fprint writes the maze string representation: "normal: ...; nx: ...;
// ny: ...". Each section prints "(none)" when empty.
func Fprint(w io.Writer, pc *portconfig.PC) {
	n := pc.NTerm

	fmt.Fprint(w, "normal:")
	first := true
	for sd := 0; sd < 4; sd++ {
		for si := 0; si < n; si++ {
			for dd := 0; dd < 4; dd++ {
				for di := 0; di < n; di++ {
					if !pc.NormalPort(sd, si, dd, di) {
						continue
					}
					if first {
						fmt.Fprintf(w, " %s%d->%s%d", dirNames[sd], si, dirNames[dd], di)
					} else {
						fmt.Fprintf(w, ",%s%d->%s%d", dirNames[sd], si, dirNames[dd], di)
					}
					first = false
				}
			}
		}
	}
	if first {
		fmt.Fprint(w, " (none)")
	}

	fmt.Fprint(w, "; nx:")
	first = true
	for si := 0; si < n; si++ {
		for di := 0; di < n; di++ {
			if di == si || !pc.NXPort(si, di) {
				continue
			}
			if first {
				fmt.Fprintf(w, " E%d->E%d", si, di)
			} else {
				fmt.Fprintf(w, ",E%d->E%d", si, di)
			}
			first = false
		}
	}
	if first {
		fmt.Fprint(w, " (none)")
	}

	fmt.Fprint(w, "; ny:")
	first = true
	for si := 0; si < n; si++ {
		for di := 0; di < n; di++ {
			if di == si || !pc.NYPort(si, di) {
				continue
			}
			if first {
				fmt.Fprintf(w, " N%d->N%d", si, di)
			} else {
				fmt.Fprintf(w, ",N%d->N%d", si, di)
			}
			first = false
		}
	}
	if first {
		fmt.Fprint(w, " (none)")
	}
	fmt.Fprintln(w)
}

// String returns the maze string representation.
func String(pc *portconfig.PC) string {
	var sb strings.Builder
	Fprint(&sb, pc)
	return strings.TrimRight(sb.String(), "\n")
}

// PrintTable writes a human-readable port matrix for the normal block,
// plus nx/ny port lists. '*' marks an active port, '.' an absent one.
func PrintTable(w io.Writer, pc *portconfig.PC) {
	n := pc.NTerm
	fmt.Fprintf(w, "Normal block port table (%d terminals):\n", 4*n)

	fmt.Fprint(w, "      ")
	for dd := 0; dd < 4; dd++ {
		for di := 0; di < n; di++ {
			fmt.Fprintf(w, " %s%-2d", dirNames[dd], di)
		}
	}
	fmt.Fprintln(w)

	for sd := 0; sd < 4; sd++ {
		for si := 0; si < n; si++ {
			fmt.Fprintf(w, "  %s%-2d ", dirNames[sd], si)
			for dd := 0; dd < 4; dd++ {
				for di := 0; di < n; di++ {
					c := '.'
					if pc.NormalPort(sd, si, dd, di) {
						c = '*'
					}
					fmt.Fprintf(w, "  %c ", c)
				}
			}
			fmt.Fprintln(w)
		}
	}

	printEdgeList := func(label string, get func(si, di int) bool, dirName string) {
		fmt.Fprintf(w, "%s block ports: ", label)
		first := true
		for si := 0; si < n; si++ {
			for di := 0; di < n; di++ {
				if di == si || !get(si, di) {
					continue
				}
				if !first {
					fmt.Fprint(w, ", ")
				}
				fmt.Fprintf(w, "%s%d->%s%d", dirName, si, dirName, di)
				first = false
			}
		}
		if first {
			fmt.Fprint(w, "(none)")
		}
		fmt.Fprintln(w)
	}
	printEdgeList("nx", pc.NXPort, "E")
	printEdgeList("ny", pc.NYPort, "N")
}

func stateDirName(dir int) string {
	if dir == solver.CanonN {
		return "N"
	}
	return "E"
}

// PrintGrid shows the (x,y) positions a path visits, with comma-separated
// step numbers at each cell. Rows print from high y to low y.
func PrintGrid(w io.Writer, path []solver.State) {
	if len(path) == 0 {
		return
	}
	minX, maxX := path[0].X, path[0].X
	minY, maxY := path[0].Y, path[0].Y
	for _, s := range path[1:] {
		if s.X < minX {
			minX = s.X
		}
		if s.X > maxX {
			maxX = s.X
		}
		if s.Y < minY {
			minY = s.Y
		}
		if s.Y > maxY {
			maxY = s.Y
		}
	}

	cellAt := func(x, y int) string {
		var steps []string
		for i, s := range path {
			if s.X == x && s.Y == y {
				steps = append(steps, fmt.Sprint(i))
			}
		}
		if len(steps) == 0 {
			return "."
		}
		return strings.Join(steps, ",")
	}

	colWidth := make([]int, maxX-minX+1)
	for c := range colWidth {
		colWidth[c] = 4
	}
	cells := make(map[[2]int]string)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			cell := cellAt(x, y)
			cells[[2]int{x, y}] = cell
			if len(cell)+2 > colWidth[x-minX] {
				colWidth[x-minX] = len(cell) + 2
			}
		}
	}

	fmt.Fprintln(w, "Grid (step numbers at each position):")
	fmt.Fprint(w, "y\\x  ")
	for x := minX; x <= maxX; x++ {
		fmt.Fprintf(w, "%-*d", colWidth[x-minX], x)
	}
	fmt.Fprintln(w)

	for y := maxY; y >= minY; y-- {
		fmt.Fprintf(w, "%-4d ", y)
		for x := minX; x <= maxX; x++ {
			fmt.Fprintf(w, "%-*s", colWidth[x-minX], cells[[2]int{x, y}])
		}
		fmt.Fprintln(w)
	}
}

type blockTerm struct {
	bx, by, td, ti int
}

func endpoints(s solver.State) [2]blockTerm {
	if s.Dir == solver.CanonE {
		return [2]blockTerm{
			{s.X, s.Y, portconfig.DirE, s.Idx},
			{s.X + 1, s.Y, portconfig.DirW, s.Idx},
		}
	}
	return [2]blockTerm{
		{s.X, s.Y, portconfig.DirN, s.Idx},
		{s.X, s.Y + 1, portconfig.DirS, s.Idx},
	}
}

// PrintVerbose prints each path transition annotated with the block
// position, block type, and port used.
func PrintVerbose(w io.Writer, pc *portconfig.PC, path []solver.State) {
	if len(path) == 0 {
		return
	}
	fmt.Fprintf(w, "Path details (%d steps):\n", len(path)-1)

	for step := 0; step < len(path)-1; step++ {
		s1, s2 := path[step], path[step+1]
		p1, p2 := endpoints(s1), endpoints(s2)

		found := false
		for _, a := range p1 {
			for _, b := range p2 {
				if a.bx != b.bx || a.by != b.by {
					continue
				}
				bx, by := a.bx, a.by
				sd, si, dd, di := a.td, a.ti, b.td, b.ti
				var btype string
				hasPort := false
				switch {
				case bx > 0 && by > 0:
					btype = "normal"
					hasPort = pc.NormalPort(sd, si, dd, di)
				case bx == 0 && by > 0:
					btype = "nx"
					if sd == portconfig.DirE && dd == portconfig.DirE && si != di {
						hasPort = pc.NXPort(si, di)
					}
				case bx > 0 && by == 0:
					btype = "ny"
					if sd == portconfig.DirN && dd == portconfig.DirN && si != di {
						hasPort = pc.NYPort(si, di)
					}
				}
				if hasPort {
					fmt.Fprintf(w, "  #%-3d (%d,%d,%s%d) --[%s%d->%s%d @ %s(%d,%d)]--> (%d,%d,%s%d)\n",
						step,
						s1.X, s1.Y, stateDirName(s1.Dir), s1.Idx,
						dirNames[sd], si, dirNames[dd], di, btype, bx, by,
						s2.X, s2.Y, stateDirName(s2.Dir), s2.Idx)
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			fmt.Fprintf(w, "  #%-3d (%d,%d,%s%d) --> (%d,%d,%s%d)  [transition unknown]\n",
				step,
				s1.X, s1.Y, stateDirName(s1.Dir), s1.Idx,
				s2.X, s2.Y, stateDirName(s2.Dir), s2.Idx)
		}
	}
}

// PrintState formats a single state as "(x,y,E0)" / "(x,y,N1)".
func PrintState(s solver.State) string {
	return fmt.Sprintf("(%d,%d,%s%d)", s.X, s.Y, stateDirName(s.Dir), s.Idx)
}

// PrintPath formats a whole path as "state0 -> state1 -> ...".
func PrintPath(path []solver.State) string {
	parts := make([]string, len(path))
	for i, s := range path {
		parts[i] = PrintState(s)
	}
	return strings.Join(parts, " -> ")
}
