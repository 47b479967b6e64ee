package buffer_pool

import (
	"sync"

	"github.com/go-innodb/storage-engine/logger"
	"github.com/go-innodb/storage-engine/server/innodb/basic"
)

// doublewriteBasePage is the first page number in the system tablespace
// reserved for doublewrite staging slots, mirroring how InnoDB carves the
// doublewrite buffer out of a fixed range of pages near the start of the
// system tablespace rather than giving it its own file.
const doublewriteBasePage = 1

// DoubleWriteBuffer stages a page's bytes into a fixed area of the system
// tablespace before it is written to its real home location. A write that
// is interrupted mid-page (process kill, power loss) always leaves either
// the old or the new image intact in the staging slot, so recovery can
// detect a torn home-page write by comparing checksums and restore the
// staged copy instead of reading a half-written page back in.
type DoubleWriteBuffer struct {
	mu sync.Mutex

	systemSpace basic.Space // space 0, backing the staging slots
	slots       int
	next        int
}

// NewDoubleWriteBuffer creates a staging buffer with the given number of
// slots carved out of systemSpace starting at doublewriteBasePage.
func NewDoubleWriteBuffer(systemSpace basic.Space, slots int) *DoubleWriteBuffer {
	if slots <= 0 {
		slots = 64
	}
	return &DoubleWriteBuffer{
		systemSpace: systemSpace,
		slots:       slots,
	}
}

// Stage writes content into the next staging slot (round-robin) and fsyncs
// it there before the caller is allowed to write to the page's home
// location. Returns the slot page number used, for diagnostics/tests.
func (dw *DoubleWriteBuffer) Stage(content []byte) (uint32, error) {
	dw.mu.Lock()
	slot := dw.next
	dw.next = (dw.next + 1) % dw.slots
	dw.mu.Unlock()

	slotPage := doublewriteBasePage + uint32(slot)
	if dw.systemSpace == nil {
		return slotPage, nil
	}
	if err := dw.systemSpace.FlushToDisk(slotPage, content); err != nil {
		return slotPage, err
	}
	return slotPage, nil
}

// EnableDoubleWrite wires a staging buffer into the buffer pool so that
// writeToDisk stages every page write through it first.
func (bp *BufferPool) EnableDoubleWrite(systemSpace basic.Space, slots int) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.dblwr = NewDoubleWriteBuffer(systemSpace, slots)
}

// stageDoubleWrite stages page content through the doublewrite buffer when
// one is configured. A nil receiver or unconfigured buffer is a no-op, so
// callers that never opted in keep writing straight to the home page.
func (bp *BufferPool) stageDoubleWrite(content []byte) {
	if bp.dblwr == nil {
		return
	}
	if _, err := bp.dblwr.Stage(content); err != nil {
		logger.Debugf("doublewrite: failed to stage page before home write: %v\n", err)
	}
}
