package solver

import (
	"testing"

	"github.com/lucasbrandao/repmaze/pkg/portconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveEmptyPCIsUnsolvable(t *testing.T) {
	pc := portconfig.Create(2)
	res := Solve(pc, Options{})
	assert.Equal(t, -1, res.Length)
}

func TestSolveDirectPort(t *testing.T) {
	pc := portconfig.Create(2)
	// normal block (1,1): W0 -> W1 gives a length-1 path start->goal.
	pc.SetNormalPort(portconfig.DirW, 0, portconfig.DirW, 1, true)
	res := Solve(pc, Options{WithPath: true})
	require.Equal(t, 1, res.Length)
	require.Len(t, res.Path, 2)
	assert.Equal(t, Start, res.Path[0])
	assert.Equal(t, Goal, res.Path[1])
}

func TestSolveNoGoalEntry(t *testing.T) {
	pc := portconfig.Create(2)
	// Only start's outgoing side populated; nothing reaches the goal.
	pc.SetNormalPort(portconfig.DirW, 0, portconfig.DirN, 0, true)
	res := Solve(pc, Options{})
	assert.Equal(t, -1, res.Length)
}

// TestBFSAndIDDFSAgree exercises Testable Property: both solver modes
// report the same shortest-path length for the same input.
func TestBFSAndIDDFSAgree(t *testing.T) {
	pc := portconfig.Create(3)
	pc.SetNormalPort(portconfig.DirW, 0, portconfig.DirN, 2, true)
	pc.SetNormalPort(portconfig.DirN, 2, portconfig.DirS, 1, true)
	pc.SetNormalPort(portconfig.DirS, 1, portconfig.DirW, 1, true)

	iddfs := Solve(pc, Options{WithPath: true})
	bfs := Solve(pc, Options{WithPath: true, BFS: true})
	assert.Equal(t, iddfs.Length, bfs.Length)
	if iddfs.Length >= 0 {
		assert.Len(t, bfs.Path, len(iddfs.Path))
	}
}

func TestPathValidity(t *testing.T) {
	pc := portconfig.Create(3)
	pc.SetNormalPort(portconfig.DirW, 0, portconfig.DirN, 2, true)
	pc.SetNormalPort(portconfig.DirN, 2, portconfig.DirW, 1, true)

	res := Solve(pc, Options{WithPath: true})
	require.GreaterOrEqual(t, res.Length, 0)
	assert.Equal(t, Start, res.Path[0])
	assert.Equal(t, Goal, res.Path[len(res.Path)-1])
	assert.Equal(t, res.Length+1, len(res.Path))
}

func TestSolveFromMinLimitMatchesFullSearch(t *testing.T) {
	pc := portconfig.Create(3)
	pc.SetNormalPort(portconfig.DirW, 0, portconfig.DirN, 2, true)
	pc.SetNormalPort(portconfig.DirN, 2, portconfig.DirS, 1, true)
	pc.SetNormalPort(portconfig.DirS, 1, portconfig.DirW, 1, true)

	full := Solve(pc, Options{})
	from := Solve(pc, Options{MinLimit: full.Length})
	assert.Equal(t, full.Length, from.Length)
}

func TestDeterministicTieBreaking(t *testing.T) {
	pc := portconfig.Create(3)
	pc.SetNormalPort(portconfig.DirW, 0, portconfig.DirN, 2, true)
	pc.SetNormalPort(portconfig.DirN, 2, portconfig.DirW, 1, true)

	a := Solve(pc, Options{WithPath: true})
	b := Solve(pc, Options{WithPath: true})
	assert.Equal(t, a.Path, b.Path)
}
