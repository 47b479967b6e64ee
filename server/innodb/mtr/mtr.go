// Package mtr implements the mini-transaction: the short-lived handle
// that bundles a group of page latches and the redo log records their
// modifications generate into one atomically-committed, atomically
// logged unit. Every page modification in the storage engine happens
// inside a mini-transaction so that either all of its effects are
// durable after a crash or none are.
//
// Grounded on original_source's mtr_mtr.hpp/mtr_log.hpp/mtr_log.cpp and
// on the teacher's redo_log_manager.go for how a completed log buffer
// actually reaches disk.
package mtr

import (
	"encoding/binary"
	"fmt"

	"github.com/go-innodb/storage-engine/server/innodb/basic"
	"github.com/go-innodb/storage-engine/server/innodb/latch"
	"github.com/go-innodb/storage-engine/server/innodb/manager"
	"github.com/go-innodb/storage-engine/server/innodb/storage/store/logs"
)

// Logging mode of a mini-transaction: default logs everything, LOG_NONE
// disables logging entirely (for operations over non-redo-logged
// objects, e.g. a temporary sort file), SHORT_INSERTS abbreviates insert
// log records (spec §4.3, mtr_mtr.hpp MTR_LOG_*).
const (
	LogAll          = logs.MTR_LOG_ALL
	LogNone         = logs.MTR_LOG_NONE
	LogShortInserts = logs.MTR_LOG_SHORT_INSERTS
)

// Memo slot kinds, in the order mtr_mtr.hpp requires: the first three
// line up with the rw-latch modes (S, X, no-latch/buffer-fix only).
const (
	MemoPageSFix = logs.MTR_MEMO_PAGE_S_FIX
	MemoPageXFix = logs.MTR_MEMO_PAGE_X_FIX
	MemoBufFix   = logs.MTR_MEMO_BUF_FIX
	MemoModify   = logs.MTR_MEMO_MODIFY
	MemoSLock    = logs.MTR_MEMO_S_LOCK
	MemoXLock    = logs.MTR_MEMO_X_LOCK
)

// state values, debug bookkeeping only (mirrors MTR_ACTIVE/COMMITTING/COMMITTED).
type state int

const (
	stateActive state = iota
	stateCommitting
	stateCommitted
)

// memoSlot is one entry of the mtr memo stack: a held latch (and, for
// page fixes, the page it protects) that must be released at commit.
type memoSlot struct {
	kind  int
	latch *latch.Latch
	page  basic.IPage
}

// Mtr is a mini-transaction handle and buffer, one per goroutine/call
// stack, never shared across goroutines (mtr_mtr.hpp's mtr_struct).
type Mtr struct {
	memo []memoSlot
	log  []byte

	modifications bool
	nLogRecs      int
	logMode       int
	startLSN      uint64
	endLSN        uint64
	state         state
}

// Start begins a new mini-transaction with the default logging mode.
func Start() *Mtr {
	return &Mtr{logMode: LogAll, state: stateActive}
}

// StartWithMode begins a new mini-transaction in a non-default logging
// mode (mtr_start + mtr_set_log_mode).
func StartWithMode(mode int) *Mtr {
	m := Start()
	m.logMode = mode
	return m
}

// LogMode returns the mini-transaction's current logging mode.
func (m *Mtr) LogMode() int { return m.logMode }

// SetLogMode changes the logging mode and returns the previous one.
func (m *Mtr) SetLogMode(mode int) int {
	old := m.logMode
	m.logMode = mode
	return old
}

// Savepoint returns the current memo-stack depth, to later release
// latches taken after this point without committing (mtr_set_savepoint).
func (m *Mtr) Savepoint() int { return len(m.memo) }

// -----------------------------------------------------------------------
// Memo / latching
// -----------------------------------------------------------------------

func (m *Mtr) push(kind int, l *latch.Latch, page basic.IPage) {
	m.memo = append(m.memo, memoSlot{kind: kind, latch: l, page: page})
}

// SLock acquires l in shared mode and records the reservation in the
// memo, to be released at Commit.
func (m *Mtr) SLock(l *latch.Latch) {
	l.RLock()
	m.push(MemoSLock, l, nil)
}

// XLock acquires l in exclusive mode and records the reservation.
func (m *Mtr) XLock(l *latch.Latch) {
	l.Lock()
	m.push(MemoXLock, l, nil)
}

// SFixPage s-latches a page and pins it for the duration of the
// mini-transaction (MTR_MEMO_PAGE_S_FIX).
func (m *Mtr) SFixPage(page basic.IPage, l *latch.Latch) {
	l.RLock()
	page.Pin()
	m.push(MemoPageSFix, l, page)
}

// XFixPage x-latches a page and pins it for the duration of the
// mini-transaction (MTR_MEMO_PAGE_X_FIX) — the mode every page
// modification below requires.
func (m *Mtr) XFixPage(page basic.IPage, l *latch.Latch) {
	l.Lock()
	page.Pin()
	m.push(MemoPageXFix, l, page)
}

// Contains reports whether the memo holds an object of the given kind,
// for assertions the way mtr_memo_contains does in debug builds.
func (m *Mtr) Contains(page basic.IPage, kind int) bool {
	for _, s := range m.memo {
		if s.page == page && s.kind == kind {
			return true
		}
	}
	return false
}

// ReleaseToSavepoint releases every memo entry taken after sp, in LIFO
// order, without committing. The mini-transaction must not have made any
// page modifications after sp — those can only be undone by a full
// Commit/Rollback (mtr_rollback_to_savepoint).
func (m *Mtr) ReleaseToSavepoint(sp int) {
	for i := len(m.memo) - 1; i >= sp; i-- {
		m.releaseSlot(m.memo[i])
	}
	m.memo = m.memo[:sp]
}

func (m *Mtr) releaseSlot(s memoSlot) {
	switch s.kind {
	case MemoPageSFix:
		if s.page != nil {
			s.page.Unpin()
		}
		s.latch.RUnlock()
	case MemoPageXFix, MemoModify:
		if s.page != nil {
			s.page.Unpin()
		}
		s.latch.Unlock()
	case MemoSLock:
		s.latch.RUnlock()
	case MemoXLock:
		s.latch.Unlock()
	}
}

// -----------------------------------------------------------------------
// Logging primitives (mlog_write_ulint / mlog_write_string family)
// -----------------------------------------------------------------------

// writeInitialLogRecord appends the 1-byte type + compressed space id +
// compressed page number header every per-page log record starts with
// (mlog_write_initial_log_record_fast), and marks the page as modified
// in the memo if it isn't already.
func (m *Mtr) writeInitialLogRecord(page basic.IPage, typ byte) {
	m.markModified(page)
	if m.logMode == LogNone {
		return
	}
	m.log = append(m.log, typ)
	m.log = writeCompressed(m.log, page.GetSpaceID())
	m.log = writeCompressed(m.log, page.GetPageNo())
	m.nLogRecs++
}

// markModified flips the mtr's modifications flag and upgrades the
// page's memo entry to MTR_MEMO_MODIFY, the way mlog_write_initial_log_record
// always does regardless of logging mode.
func (m *Mtr) markModified(page basic.IPage) {
	m.modifications = true
	page.MarkDirty()
	for i := range m.memo {
		if m.memo[i].page == page && m.memo[i].kind == MemoPageXFix {
			m.memo[i].kind = MemoModify
		}
	}
}

// pageModifyN writes an n-byte (n in {1,2,4}) value at offset into the
// page's frame and appends the corresponding MLOG_nBYTES record
// (mlog_write_ulint). PageModify8 below handles the 8-byte case, whose
// value is logged raw instead of compressed.
func (m *Mtr) pageModifyN(page basic.IPage, offset uint16, val uint32, n int, mlogType byte) {
	data := page.GetData()
	switch n {
	case 1:
		data[offset] = byte(val)
	case 2:
		binary.BigEndian.PutUint16(data[offset:], uint16(val))
	case 4:
		binary.BigEndian.PutUint32(data[offset:], val)
	default:
		panic(fmt.Sprintf("mtr: unsupported write width %d", n))
	}
	page.SetData(data)

	m.writeInitialLogRecord(page, mlogType)
	if m.logMode == LogNone {
		return
	}
	m.log = writeCompressed(m.log, uint32(offset))
	m.log = writeCompressed(m.log, val)
}

// PageModify1 writes a single byte at offset and logs an MLOG_1BYTE record.
func (m *Mtr) PageModify1(page basic.IPage, offset uint16, val byte) {
	m.pageModifyN(page, offset, uint32(val), 1, logs.MLOG_1BYTE)
}

// PageModify2 writes a big-endian uint16 at offset and logs an MLOG_2BYTES record.
func (m *Mtr) PageModify2(page basic.IPage, offset uint16, val uint16) {
	m.pageModifyN(page, offset, uint32(val), 2, logs.MLOG_2BYTES)
}

// PageModify4 writes a big-endian uint32 at offset and logs an MLOG_4BYTES record.
func (m *Mtr) PageModify4(page basic.IPage, offset uint16, val uint32) {
	m.pageModifyN(page, offset, val, 4, logs.MLOG_4BYTES)
}

// PageModify8 writes a big-endian uint64 at offset and logs an
// MLOG_8BYTES record (mlog_write_dulint): unlike the narrower widths,
// the value itself is written raw rather than compressed, since dulints
// are typically LSNs or trx ids with no small-value bias worth
// compressing.
func (m *Mtr) PageModify8(page basic.IPage, offset uint16, val uint64) {
	data := page.GetData()
	binary.BigEndian.PutUint64(data[offset:], val)
	page.SetData(data)

	m.writeInitialLogRecord(page, logs.MLOG_8BYTES)
	if m.logMode == LogNone {
		return
	}
	m.log = writeCompressed(m.log, uint32(offset))
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], val)
	m.log = append(m.log, b[:]...)
}

// PageWriteString writes an arbitrary byte string at offset and logs an
// MLOG_WRITE_STRING record (mlog_write_string): offset, length, then the
// bytes themselves.
func (m *Mtr) PageWriteString(page basic.IPage, offset uint16, str []byte) {
	data := page.GetData()
	copy(data[offset:], str)
	page.SetData(data)

	m.writeInitialLogRecord(page, logs.MLOG_WRITE_STRING)
	if m.logMode == LogNone {
		return
	}
	m.log = writeCompressed(m.log, uint32(offset))
	m.log = writeCompressed(m.log, uint32(len(str)))
	m.log = append(m.log, str...)
}

// -----------------------------------------------------------------------
// Commit
// -----------------------------------------------------------------------

// Commit flushes the accumulated log buffer as a single redo log entry,
// assigns the mini-transaction its LSN range, and releases every latch
// held in the memo stack in LIFO order (mtr_commit). If the
// mini-transaction made no modifications, nothing is appended to the
// redo log — only the latches are released.
func (m *Mtr) Commit(redo *manager.RedoLogManager) (startLSN, endLSN uint64, err error) {
	if m.state != stateActive {
		panic("mtr: commit of a non-active mini-transaction")
	}
	m.state = stateCommitting
	defer func() { m.state = stateCommitted }()

	if m.modifications && len(m.log) > 0 && m.logMode != LogNone {
		if m.nLogRecs > 1 {
			m.log = append(m.log, logs.MLOG_MULTI_REC_END)
		}

		entry := &manager.RedoLogEntry{
			PageID: m.firstPageID(),
			Type:   logs.MLOG_DUMMY_RECORD,
			Data:   m.log,
		}
		lsn, appendErr := redo.Append(entry)
		if appendErr != nil {
			err = appendErr
			return
		}
		m.startLSN = uint64(lsn)
		m.endLSN = uint64(lsn) + uint64(len(m.log))
		for _, s := range m.memo {
			if s.page != nil {
				s.page.SetLSN(m.endLSN)
			}
		}
	}

	for i := len(m.memo) - 1; i >= 0; i-- {
		m.releaseSlot(m.memo[i])
	}
	m.memo = nil

	return m.startLSN, m.endLSN, nil
}

func (m *Mtr) firstPageID() uint64 {
	for _, s := range m.memo {
		if s.page != nil {
			return uint64(s.page.GetSpaceID())<<32 | uint64(s.page.GetPageNo())
		}
	}
	return 0
}

// HasModifications reports whether the mini-transaction logged any page
// change, the way callers check mtr->modifications before deciding
// whether a checkpoint needs to wait for it.
func (m *Mtr) HasModifications() bool { return m.modifications }

// LogRecordCount returns how many initial log records have been written,
// i.e. how many distinct page modifications this mini-transaction made.
func (m *Mtr) LogRecordCount() int { return m.nLogRecs }
