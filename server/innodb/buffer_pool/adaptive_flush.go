package buffer_pool

import (
	"sync"
	"time"

	"github.com/go-innodb/storage-engine/logger"
)

// AdaptiveFlushPacer tracks redo generation and page-flush rates and
// derives a target pages/sec the buffer pool's background flusher
// should aim for, the way buf_flu.hpp's page_cleaner computes
// af_needed_for_redo/pages_for_lsn and blends them with the io-capacity
// ceiling instead of flushing every dirty page as fast as disk allows.
type AdaptiveFlushPacer struct {
	mu sync.Mutex

	window time.Duration

	lastLSN       uint64
	lastLSNTime   time.Time
	redoRateBytes float64 // smoothed bytes/sec of redo generation

	lastFlushed     uint64
	lastFlushedTime time.Time
	flushRatePages  float64 // smoothed pages/sec actually flushed

	ioCapacity int // ceiling on pages/sec the pacer will ever target
	smoothing  float64 // exponential smoothing factor in (0,1]
}

// NewAdaptiveFlushPacer creates a pacer with a ceiling of ioCapacity
// pages/sec, matching innodb_io_capacity's role as the hard cap the
// ratio-based target is clamped against.
func NewAdaptiveFlushPacer(ioCapacity int) *AdaptiveFlushPacer {
	return &AdaptiveFlushPacer{
		window:     time.Second,
		ioCapacity: ioCapacity,
		smoothing:  0.3,
		lastLSNTime: time.Now(),
		lastFlushedTime: time.Now(),
	}
}

// ObserveLSN records the current redo LSN so the pacer can derive a
// smoothed generation rate. Call this whenever a mini-transaction
// commits (Mtr.Commit's returned endLSN).
func (p *AdaptiveFlushPacer) ObserveLSN(lsn uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if p.lastLSN == 0 {
		p.lastLSN = lsn
		p.lastLSNTime = now
		return
	}

	elapsed := now.Sub(p.lastLSNTime).Seconds()
	if elapsed <= 0 || lsn <= p.lastLSN {
		return
	}

	instantRate := float64(lsn-p.lastLSN) / elapsed
	p.redoRateBytes = p.smoothing*instantRate + (1-p.smoothing)*p.redoRateBytes
	p.lastLSN = lsn
	p.lastLSNTime = now
}

// ObserveFlushed records that n pages were just written to disk, for
// the flush-rate half of the blend.
func (p *AdaptiveFlushPacer) ObserveFlushed(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(p.lastFlushedTime).Seconds()
	p.lastFlushed += uint64(n)
	if elapsed < p.window.Seconds() {
		return
	}

	instantRate := float64(p.lastFlushed) / elapsed
	p.flushRatePages = p.smoothing*instantRate + (1-p.smoothing)*p.flushRatePages
	p.lastFlushed = 0
	p.lastFlushedTime = now
}

// TargetPagesPerSecond blends the redo-generation-driven target with
// the observed flush rate and clamps to ioCapacity, mirroring
// page_cleaner_flush_pages_recommendation's
// max(af_needed_for_redo, pages_for_lsn) bounded by io_capacity_max.
// pageSize is used to convert redo bytes/sec into an equivalent
// pages/sec (one full-page mtr log record roughly dirties one page).
func (p *AdaptiveFlushPacer) TargetPagesPerSecond(pageSize uint32) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pageSize == 0 {
		pageSize = 16384
	}

	redoTarget := p.redoRateBytes / float64(pageSize)
	target := redoTarget
	if p.flushRatePages > target {
		target = p.flushRatePages
	}

	if target <= 0 {
		return 0
	}
	if int(target) > p.ioCapacity {
		logger.Debugf("adaptive flush: target %f pages/sec clamped to io_capacity %d\n", target, p.ioCapacity)
		return p.ioCapacity
	}
	return int(target)
}

// flushPacer is the buffer pool's default pacer; nil until configured
// via EnableAdaptiveFlush, so existing callers of FlushDirtyPages keep
// flushing everything in one pass unless they opt in.
func (bp *BufferPool) EnableAdaptiveFlush(ioCapacity int) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.flushPacer = NewAdaptiveFlushPacer(ioCapacity)
}

// FlushDirtyPagesPaced flushes at most the pacer's current
// target-pages-per-second worth of dirty pages, instead of draining
// the whole flush list in one burst. Falls back to flushing everything
// when no pacer is configured.
func (bp *BufferPool) FlushDirtyPagesPaced() error {
	bp.mu.RLock()
	pacer := bp.flushPacer
	bp.mu.RUnlock()

	if pacer == nil {
		return bp.FlushDirtyPages()
	}

	limit := pacer.TargetPagesPerSecond(bp.pageSize)
	if limit <= 0 {
		return nil
	}

	flushList := bp.GetFlushDiskList()
	flushed := 0
	for flushed < limit && !flushList.IsEmpty() {
		block := flushList.GetLastBlock()
		if block == nil {
			continue
		}
		if err := bp.writeToDisk(block.BufferPage); err != nil {
			return err
		}
		bp.UpdateDirtyPageCount(-1)
		flushed++
	}

	pacer.ObserveFlushed(flushed)
	return nil
}
