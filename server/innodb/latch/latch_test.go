package latch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatchBasicExclusion(t *testing.T) {
	l := NewLatch()
	l.Lock()
	assert.False(t, l.TryLock())
	l.Unlock()
	assert.True(t, l.TryLock())
	l.Unlock()
}

func TestLatchSharedReaders(t *testing.T) {
	l := NewLatch()
	l.RLock()
	assert.True(t, l.TryRLock())
	l.RUnlock()
	l.RUnlock()
}

func TestWaitArrayReservationLifecycle(t *testing.T) {
	l := NewLeveledLatch(LevelFSP, "fsp-test")
	before := GlobalWaitArray().Len()

	done := make(chan struct{})
	l.Lock()
	go func() {
		l.Lock()
		l.Unlock()
		close(done)
	}()

	// give the second goroutine time to register its reservation
	require.Eventually(t, func() bool {
		return GlobalWaitArray().Len() > before
	}, time.Second, time.Millisecond)

	l.Unlock()
	<-done

	assert.Equal(t, before, GlobalWaitArray().Len())
}

func TestLongWaitsThreshold(t *testing.T) {
	l := NewLeveledLatch(LevelKernel, "kernel-test")
	l.Lock()
	defer l.Unlock()

	done := make(chan struct{})
	go func() {
		l.Lock()
		l.Unlock()
		close(done)
	}()
	defer func() { <-done }()

	require.Eventually(t, func() bool {
		return GlobalWaitArray().Len() > 0
	}, time.Second, time.Millisecond)

	assert.Empty(t, GlobalWaitArray().LongWaits(WarnAfter))
	assert.NotEmpty(t, GlobalWaitArray().LongWaits(0))
}

func TestOrderingHierarchyViolationPanics(t *testing.T) {
	DebugOrderCheck = true
	defer func() { DebugOrderCheck = false }()

	outer := NewLeveledLatch(LevelDict, "dict")
	inner := NewLeveledLatch(LevelFSP, "fsp")

	outer.Lock()
	defer outer.Unlock()

	assert.Panics(t, func() {
		inner.Lock()
	})
}

func TestOrderingHierarchyAllowsAscendingAcquisition(t *testing.T) {
	DebugOrderCheck = true
	defer func() { DebugOrderCheck = false }()

	lower := NewLeveledLatch(LevelFSP, "fsp")
	higher := NewLeveledLatch(LevelDict, "dict")

	lower.Lock()
	defer lower.Unlock()

	assert.NotPanics(t, func() {
		higher.Lock()
		higher.Unlock()
	})
}
