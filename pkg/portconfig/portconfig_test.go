package portconfig

import (
	"testing"

	"github.com/lucasbrandao/repmaze/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndTotal(t *testing.T) {
	pc := Create(3)
	assert.Equal(t, 3, pc.NTerm)
	assert.Equal(t, (4*3)*(4*3)+2*3*(3-1), pc.Total())
}

func TestCreatePanicsOnSmallN(t *testing.T) {
	assert.Panics(t, func() { Create(1) })
}

func TestCloneIsIndependent(t *testing.T) {
	pc := Create(2)
	pc.SetNormalPort(DirE, 0, DirN, 1, true)
	clone := pc.Clone()
	clone.SetNormalPort(DirE, 0, DirN, 1, false)
	assert.True(t, pc.NormalPort(DirE, 0, DirN, 1))
	assert.False(t, clone.NormalPort(DirE, 0, DirN, 1))
}

func TestClear(t *testing.T) {
	pc := Create(2)
	for i := 0; i < pc.Total(); i++ {
		pc.FlatSet(i, true)
	}
	pc.Clear()
	for i := 0; i < pc.Total(); i++ {
		assert.False(t, pc.FlatGet(i))
	}
}

func TestNXSetRejectsSelfIndex(t *testing.T) {
	pc := Create(3)
	err := pc.SetNXPort(1, 1, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestNYSetRejectsSelfIndex(t *testing.T) {
	pc := Create(3)
	err := pc.SetNYPort(2, 2, true)
	require.Error(t, err)
}

func TestNXNYDistinctIndicesRoundTrip(t *testing.T) {
	pc := Create(4)
	for si := 0; si < 4; si++ {
		for di := 0; di < 4; di++ {
			if si == di {
				continue
			}
			require.NoError(t, pc.SetNXPort(si, di, true))
			require.NoError(t, pc.SetNYPort(si, di, true))
			assert.True(t, pc.NXPort(si, di))
			assert.True(t, pc.NYPort(si, di))
		}
	}
}

// TestFlatTypedEquivalence exercises Testable Property 1: every port
// reachable through a typed accessor is reachable at exactly one flat index,
// and vice versa.
func TestFlatTypedEquivalence(t *testing.T) {
	n := 3
	pc := Create(n)
	seen := make(map[int]bool)

	flatIdx := 0
	for sd := 0; sd < 4; sd++ {
		for si := 0; si < n; si++ {
			for dd := 0; dd < 4; dd++ {
				for di := 0; di < n; di++ {
					idx := normalIndex(n, sd, si, dd, di)
					assert.False(t, seen[idx], "duplicate normal flat index")
					seen[idx] = true
				}
			}
		}
	}
	flatIdx = len(pc.Normal)
	assert.Equal(t, flatIdx, len(seen))

	pc.SetNormalPort(DirN, 1, DirS, 2, true)
	idx := normalIndex(n, DirN, 1, DirS, 2)
	assert.True(t, pc.FlatGet(idx))

	require.NoError(t, pc.SetNXPort(0, 2, true))
	nxIdx := len(pc.Normal) + edgeIndex(n, 0, 2)
	assert.True(t, pc.FlatGet(nxIdx))

	require.NoError(t, pc.SetNYPort(2, 0, true))
	nyIdx := len(pc.Normal) + len(pc.NX) + edgeIndex(n, 2, 0)
	assert.True(t, pc.FlatGet(nyIdx))
}

func TestFlatFlip(t *testing.T) {
	pc := Create(2)
	assert.False(t, pc.FlatGet(5))
	pc.FlatFlip(5)
	assert.True(t, pc.FlatGet(5))
	pc.FlatFlip(5)
	assert.False(t, pc.FlatGet(5))
}

func TestFlatBytesRoundTrip(t *testing.T) {
	pc := Create(3)
	pc.SetNormalPort(DirE, 0, DirW, 1, true)
	require.NoError(t, pc.SetNXPort(0, 1, true))
	buf := pc.FlatBytes()
	rebuilt := FromFlatBytes(3, buf)
	assert.Equal(t, pc.Normal, rebuilt.Normal)
	assert.Equal(t, pc.NX, rebuilt.NX)
	assert.Equal(t, pc.NY, rebuilt.NY)
}

func TestRandomizeCoversAllPorts(t *testing.T) {
	pc := Create(2)
	i := 0
	pc.Randomize(func() bool {
		i++
		return i%2 == 0
	})
	assert.Equal(t, pc.Total(), i)
}

func TestIsSelfLoop(t *testing.T) {
	n := 2
	pc := Create(n)
	idx := normalIndex(n, DirE, 0, DirE, 0)
	assert.True(t, pc.IsSelfLoop(idx))

	idx2 := normalIndex(n, DirE, 0, DirN, 1)
	assert.False(t, pc.IsSelfLoop(idx2))

	assert.False(t, pc.IsSelfLoop(len(pc.Normal)))
}

func TestAdjustExcludesSelf(t *testing.T) {
	n := 4
	for si := 0; si < n; si++ {
		used := make(map[int]bool)
		for di := 0; di < n; di++ {
			if si == di {
				continue
			}
			a := adjust(si, di)
			assert.False(t, used[a])
			used[a] = true
			assert.GreaterOrEqual(t, a, 0)
			assert.Less(t, a, n-1)
		}
	}
}
