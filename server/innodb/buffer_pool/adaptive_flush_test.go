package buffer_pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdaptiveFlushPacerTargetTracksRedoRate(t *testing.T) {
	p := NewAdaptiveFlushPacer(1000)

	p.ObserveLSN(8192)
	// simulate ~1600 pages/sec worth of redo generation over one window
	p.lastLSNTime = time.Now().Add(-time.Second)
	p.ObserveLSN(8192 + 16384*1600)

	target := p.TargetPagesPerSecond(16384)
	assert.Greater(t, target, 0)
}

func TestAdaptiveFlushPacerClampsToIOCapacity(t *testing.T) {
	p := NewAdaptiveFlushPacer(10)

	p.ObserveLSN(8192)
	p.lastLSNTime = time.Now().Add(-time.Second)
	// a huge redo burst should still clamp to io capacity
	p.ObserveLSN(8192 + 16384*10000)

	assert.LessOrEqual(t, p.TargetPagesPerSecond(16384), 10)
}

func TestBufferPoolFlushDirtyPagesPacedFallsBackWithoutPacer(t *testing.T) {
	bp := &BufferPool{
		pageSize:       16384,
		flushBlockList: NewFlushBlockList(),
	}
	// no dirty pages queued, no pacer configured: should be a no-op, not an error
	assert.NoError(t, bp.FlushDirtyPagesPaced())
}
