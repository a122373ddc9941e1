package timer_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/timer"
)

func newTestRegistry(t *testing.T) (*timer.Registry, *time.Time) {
	t.Helper()
	reg, err := timer.NewRegistry(filepath.Join(t.TempDir(), "timers.json"))
	assert.NoError(t, err)
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	clock := &now
	reg.Clock = func() time.Time { return *clock }
	return reg, clock
}

func TestRegistry_StartStop(t *testing.T) {
	reg, clock := newTestRegistry(t)

	assert.NoError(t, reg.Start(1))
	assert.True(t, reg.Running(1))

	*clock = clock.Add(12 * time.Second)

	delta, err := reg.Stop(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), delta)
	assert.False(t, reg.Running(1))
}

func TestRegistry_StartTwiceFails(t *testing.T) {
	reg, _ := newTestRegistry(t)

	assert.NoError(t, reg.Start(1))
	assert.ErrorIs(t, reg.Start(1), timer.ErrAlreadyRunning)
}

func TestRegistry_StopWithoutStart(t *testing.T) {
	reg, _ := newTestRegistry(t)

	delta, err := reg.Stop(1)
	assert.ErrorIs(t, err, timer.ErrNotRunning)
	assert.Equal(t, int64(0), delta)
}

func TestRegistry_ImmediateStopCommitsZero(t *testing.T) {
	reg, _ := newTestRegistry(t)

	assert.NoError(t, reg.Start(1))
	delta, err := reg.Stop(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), delta)
}

func TestRegistry_TruncatesToWholeSeconds(t *testing.T) {
	reg, clock := newTestRegistry(t)

	assert.NoError(t, reg.Start(1))
	*clock = clock.Add(5*time.Second + 900*time.Millisecond)

	delta, err := reg.Stop(1)
	assert.NoError(t, err)
	// floor, never rounded: repeated cycles may undercount but cannot
	// accumulate fractional seconds into overcounting.
	assert.Equal(t, int64(5), delta)
}

func TestRegistry_NegativeSkewClampsToZero(t *testing.T) {
	reg, clock := newTestRegistry(t)

	assert.NoError(t, reg.Start(1))
	*clock = clock.Add(-10 * time.Second)

	delta, err := reg.Stop(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), delta)
}

func TestRegistry_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timers.json")
	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	reg, err := timer.NewRegistry(path)
	assert.NoError(t, err)
	reg.Clock = func() time.Time { return start }
	assert.NoError(t, reg.Start(7))

	// A fresh registry over the same file sees the same running timer
	// with the same start instant.
	reloaded, err := timer.NewRegistry(path)
	assert.NoError(t, err)
	reloaded.Clock = func() time.Time { return start.Add(5 * time.Second) }

	entry, running := reloaded.Snapshot(7)
	assert.True(t, running)
	assert.True(t, entry.StartedAt.Equal(start))

	delta, err := reloaded.Stop(7)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), delta)
}

func TestRegistry_ForeignOwnerBlocksStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timers.json")

	first, err := timer.NewRegistry(path)
	assert.NoError(t, err)
	assert.NoError(t, first.Start(3))

	// A second process sharing the registry file must not restart the
	// held slot.
	second, err := timer.NewRegistry(path)
	assert.NoError(t, err)
	assert.ErrorIs(t, second.Start(3), timer.ErrAlreadyRunning)
}

func TestRegistry_DiscardRemovesWithoutDelta(t *testing.T) {
	reg, clock := newTestRegistry(t)

	assert.NoError(t, reg.Start(1))
	*clock = clock.Add(time.Minute)

	assert.NoError(t, reg.Discard(1))
	assert.False(t, reg.Running(1))

	// Discarding a missing entry is a no-op.
	assert.NoError(t, reg.Discard(1))
}

func TestRegistry_ResumeReinstatesEntry(t *testing.T) {
	reg, clock := newTestRegistry(t)

	assert.NoError(t, reg.Start(1))
	entry, ok := reg.Snapshot(1)
	assert.True(t, ok)

	*clock = clock.Add(30 * time.Second)
	_, err := reg.Stop(1)
	assert.NoError(t, err)

	assert.NoError(t, reg.Resume(1, entry))
	restored, ok := reg.Snapshot(1)
	assert.True(t, ok)
	assert.Equal(t, entry, restored)

	// The elapsed time before the failed stop is still there.
	delta, err := reg.Stop(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(30), delta)
}

func TestRegistry_CorruptFileBackedUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timers.json")
	assert.NoError(t, writeFile(path, "{not json"))

	reg, err := timer.NewRegistry(path)
	assert.NoError(t, err)
	assert.Empty(t, reg.RunningIDs())
	assert.FileExists(t, path+".corrupt")
}
