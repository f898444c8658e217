package hanoi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, disks int) (*Engine, *int) {
	t.Helper()
	redraws := 0
	cfg := DefaultConfig()
	cfg.Disks = disks
	e, err := NewEngine(cfg, func() { redraws++ }, nil)
	require.NoError(t, err)
	return e, &redraws
}

func TestEngineTickIsGatedBySpeed(t *testing.T) {
	e, redraws := newTestEngine(t, 3)
	require.Equal(t, 10*time.Millisecond, e.Interval())
	require.True(t, e.RequestSolve())

	e.Tick(4 * time.Millisecond)
	e.Tick(4 * time.Millisecond)
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Zero(t, *redraws)
	assert.Zero(t, e.MovesMade())

	e.Tick(2 * time.Millisecond)
	assert.Equal(t, 1, e.MovesMade())
	assert.NotEqual(t, PhaseIdle, e.Phase())
	assert.Equal(t, 2, *redraws, "begin and first step each request a redraw")
	assert.Equal(t, 6, e.Remaining())
}

func TestEngineSolvesToCompletion(t *testing.T) {
	e, _ := newTestEngine(t, 4)
	require.True(t, e.RequestSolve())
	assert.False(t, e.RequestSolve(), "second request while solving")

	for i := 0; !e.Done(); i++ {
		require.Less(t, i, 200000, "solve did not finish")
		e.Tick(e.Interval())
	}

	assert.Equal(t, 15, e.MovesMade())
	assert.Equal(t, []int{3, 2, 1, 0}, e.Pegs()[2])
	g := e.Config().Geometry
	for _, d := range e.Disks() {
		assert.Equal(t, g.SlotPosition(2, 3-d.ID), d.Position, "disk %d", d.ID)
		assert.Equal(t, Up, d.Normal)
	}
	assert.False(t, e.RequestSolve(), "board is no longer in the start layout")
}

func TestEngineBoardLeadsAnimation(t *testing.T) {
	e, _ := newTestEngine(t, 2)
	require.True(t, e.RequestSolve())
	e.Tick(e.Interval())

	require.Equal(t, PhaseLifting, e.Phase())
	assert.Equal(t, []int{1}, e.Pegs()[0])
	assert.Equal(t, []int{0}, e.Pegs()[1])
	assert.Equal(t, DefaultGeometry().SlotPosition(0, 1).X(), e.Disks()[0].Position.X())
}

func TestEngineAdjustSpeedClamps(t *testing.T) {
	e, _ := newTestEngine(t, 1)
	assert.Equal(t, DefaultSpeed, e.Speed())
	assert.Equal(t, 120, e.Faster())
	assert.Equal(t, 100, e.Slower())
	assert.Equal(t, 1, e.AdjustSpeed(-1000))
	assert.Equal(t, time.Second, e.Interval())
	assert.Equal(t, DefaultMaxSpeed, e.AdjustSpeed(1<<20))
}

func TestEngineStopAndReset(t *testing.T) {
	e, _ := newTestEngine(t, 3)
	require.True(t, e.RequestSolve())
	e.Tick(e.Interval())
	require.False(t, e.Reset(), "reset refused mid-solve")

	assert.Equal(t, 6, e.Stop())
	assert.False(t, e.Solving())
	for i := 0; e.Phase() != PhaseIdle; i++ {
		require.Less(t, i, 10000)
		e.Tick(e.Interval())
	}
	assert.Equal(t, 1, e.MovesMade())

	require.True(t, e.Reset())
	assert.True(t, e.Board().Solved(0))
	assert.Zero(t, e.MovesMade())
	assert.True(t, e.RequestSolve())
}

func TestEngineZeroDisks(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	assert.False(t, e.RequestSolve())
	e.Tick(time.Second)
	assert.True(t, e.Done())
	assert.Empty(t, e.Disks())
}

func TestNewEngineRejectsDiskCountOutOfRange(t *testing.T) {
	for _, n := range []int{-1, MaxDisks + 1, 64} {
		_, err := NewEngine(Config{Disks: n}, nil, nil)
		assert.Error(t, err, "disks %d", n)
	}
}

func TestEngineIntervalWholeMilliseconds(t *testing.T) {
	e, _ := newTestEngine(t, 1)
	e.AdjustSpeed(300 - e.Speed())
	require.Equal(t, 300, e.Speed())
	assert.Equal(t, 3*time.Millisecond, e.Interval())

	e.AdjustSpeed(DefaultMaxSpeed)
	assert.Equal(t, time.Millisecond, e.Interval())
}
