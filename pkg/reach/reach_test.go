package reach

import (
	"testing"

	"github.com/lucasbrandao/repmaze/pkg/portconfig"
	"github.com/stretchr/testify/assert"
)

func TestReachableEmptyPCIsUnreachable(t *testing.T) {
	f := New(4)
	pc := portconfig.Create(4)
	assert.False(t, f.Reachable(pc))
}

func TestReachableDirectPort(t *testing.T) {
	f := New(4)
	pc := portconfig.Create(4)
	pc.SetNormalPort(portconfig.DirE, 0, portconfig.DirE, 1, true)
	assert.True(t, f.Reachable(pc))
}

func TestReachableViaChain(t *testing.T) {
	f := New(4)
	pc := portconfig.Create(4)
	pc.SetNormalPort(portconfig.DirE, 0, portconfig.DirN, 3, true)
	pc.SetNormalPort(portconfig.DirN, 3, portconfig.DirE, 1, true)
	assert.True(t, f.Reachable(pc))
}

func TestReachableViaNXEdge(t *testing.T) {
	f := New(3)
	pc := portconfig.Create(3)
	_ = pc.SetNXPort(0, 1, true)
	assert.True(t, f.Reachable(pc))
}

func TestUnreachableWhenDisconnected(t *testing.T) {
	f := New(4)
	pc := portconfig.Create(4)
	pc.SetNormalPort(portconfig.DirN, 2, portconfig.DirN, 3, true)
	assert.False(t, f.Reachable(pc))
}

// TestReusedFilterIsIndependentPerCall exercises that stale adjacency from
// a previous Reachable call never leaks into the next one.
func TestReusedFilterIsIndependentPerCall(t *testing.T) {
	f := New(4)
	connected := portconfig.Create(4)
	connected.SetNormalPort(portconfig.DirE, 0, portconfig.DirE, 1, true)
	assert.True(t, f.Reachable(connected))

	empty := portconfig.Create(4)
	assert.False(t, f.Reachable(empty))
}
