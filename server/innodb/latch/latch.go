// Package latch implements the mutex and rw-latch primitives the storage
// engine serializes access with, plus the global wait array, the latch
// ordering hierarchy and its debug-mode violation check, and the
// long-wait monitor thread that watches the wait array for stuck
// reservations.
package latch

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Level is a rung of the fixed latch-acquisition order. Acquiring a latch
// at a lower-or-equal level while already holding one is a programming
// error (a guaranteed way to deadlock against a thread acquiring in the
// opposite order), and is caught by the debug stack below.
type Level int

const (
	LevelMemPool Level = iota
	LevelBufBlock
	LevelSearchSys
	LevelLog
	LevelKernel
	LevelTreeNode
	LevelIndexTree
	LevelFSP
	LevelDict
	LevelUserTrxLock
)

func (l Level) String() string {
	switch l {
	case LevelMemPool:
		return "MEM_POOL"
	case LevelBufBlock:
		return "BUF_BLOCK"
	case LevelSearchSys:
		return "SEARCH_SYS"
	case LevelLog:
		return "LOG"
	case LevelKernel:
		return "KERNEL"
	case LevelTreeNode:
		return "TREE_NODE"
	case LevelIndexTree:
		return "INDEX_TREE"
	case LevelFSP:
		return "FSP"
	case LevelDict:
		return "DICT"
	case LevelUserTrxLock:
		return "USER_TRX_LOCK"
	default:
		return "UNKNOWN"
	}
}

// Mode is the acquisition mode recorded in a wait-array cell and in the
// per-goroutine level stack.
type Mode int

const (
	ModeShared Mode = iota
	ModeExclusive
)

// unleveled marks a Latch created with plain NewLatch, which opts out of
// the ordering-hierarchy debug check entirely (the teacher's original
// call sites never tagged a level).
const unleveled Level = -1

// Latch is a mutex/rw-latch hybrid: ModeExclusive behaves like a plain
// mutex, ModeShared allows concurrent readers. Waits are recorded in the
// process-wide wait array so the long-wait monitor can see them. The
// array keeps one cell per latch: concurrent waiters on the same latch
// share that cell, and the first grant clears it. No cycle detection
// runs over the array.
type Latch struct {
	mu    sync.RWMutex
	level Level
	name  string
}

// NewLatch creates an unleveled latch, equivalent to the teacher's plain
// sync.RWMutex wrapper. Use NewLeveledLatch to participate in the
// ordering-hierarchy debug check.
func NewLatch() *Latch {
	return &Latch{level: unleveled, name: "latch"}
}

// NewLeveledLatch creates a latch tagged with its place in the ordering
// hierarchy, for subsystems (FSP, dict, index tree) that want the
// debug-mode acquisition-order check.
func NewLeveledLatch(level Level, name string) *Latch {
	return &Latch{level: level, name: name}
}

func (l *Latch) Lock() {
	l.reserve(ModeExclusive)
	l.mu.Lock()
	l.granted()
}

func (l *Latch) Unlock() {
	l.mu.Unlock()
	l.popLevel()
}

func (l *Latch) RLock() {
	l.reserve(ModeShared)
	l.mu.RLock()
	l.granted()
}

func (l *Latch) RUnlock() {
	l.mu.RUnlock()
	l.popLevel()
}

func (l *Latch) TryLock() bool {
	if !l.mu.TryLock() {
		return false
	}
	l.pushLevel()
	return true
}

func (l *Latch) TryRLock() bool {
	if !l.mu.TryRLock() {
		return false
	}
	l.pushLevel()
	return true
}

// reserve registers a wait-array cell before blocking on the underlying
// mutex, so the long-wait monitor can see the reservation even if Lock
// never returns. It also runs the debug ordering check: a goroutine may
// not acquire a latch whose level is <= the level of any latch it already
// holds (see sync_sync.hpp's "latching order" discussion).
func (l *Latch) reserve(mode Mode) {
	l.checkOrder()
	globalWaitArray.reserve(l, mode)
}

func (l *Latch) granted() {
	globalWaitArray.release(l)
	l.pushLevel()
}

func (l *Latch) pushLevel() {
	if !DebugOrderCheck || l.level == unleveled {
		return
	}
	s := currentStack()
	s.mu.Lock()
	s.levels = append(s.levels, l.level)
	s.mu.Unlock()
}

func (l *Latch) popLevel() {
	if !DebugOrderCheck || l.level == unleveled {
		return
	}
	s := currentStack()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.levels) - 1; i >= 0; i-- {
		if s.levels[i] == l.level {
			s.levels = append(s.levels[:i], s.levels[i+1:]...)
			return
		}
	}
}

func (l *Latch) checkOrder() {
	if !DebugOrderCheck || l.level == unleveled {
		return
	}
	s := currentStack()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, held := range s.levels {
		if held >= l.level {
			panic(fmt.Sprintf("latch order violation: acquiring %q at level %s while holding level %s", l.name, l.level, held))
		}
	}
}

// -----------------------------------------------------------------------
// Wait array
// -----------------------------------------------------------------------

// Cell mirrors one slot of the original wait array: the object being
// waited for, the mode requested, and when the reservation was made, so
// the monitor can tell how long a goroutine has been stuck.
type Cell struct {
	Object   *Latch
	Mode     Mode
	Reserved time.Time
}

// WaitArray is the process-wide table of in-flight latch reservations.
// It exists independently of any one Latch so the monitor goroutine can
// do a single scan per tick instead of polling every latch in the
// engine.
type WaitArray struct {
	mu    sync.Mutex
	cells map[*Latch]*Cell
}

var globalWaitArray = &WaitArray{cells: make(map[*Latch]*Cell)}

func (w *WaitArray) reserve(l *Latch, mode Mode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cells[l] = &Cell{Object: l, Mode: mode, Reserved: time.Now()}
}

func (w *WaitArray) release(l *Latch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.cells, l)
}

// LongWaits returns every cell that has been reserved for at least
// threshold, for the background monitor and for tests.
func (w *WaitArray) LongWaits(threshold time.Duration) []Cell {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	var out []Cell
	for _, c := range w.cells {
		if now.Sub(c.Reserved) >= threshold {
			out = append(out, *c)
		}
	}
	return out
}

// Len reports the number of currently outstanding reservations.
func (w *WaitArray) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.cells)
}

// GlobalWaitArray exposes the process-wide wait array for diagnostics and
// for the long-wait monitor.
func GlobalWaitArray() *WaitArray { return globalWaitArray }

// -----------------------------------------------------------------------
// Per-goroutine level stack (debug-mode ordering check)
// -----------------------------------------------------------------------

// DebugOrderCheck enables the latch-ordering-hierarchy violation panic.
// Disabled by default since the per-goroutine bookkeeping costs a
// map lookup and a runtime.Stack call per Lock/Unlock; flip it on in
// tests and debug builds, the way IB_DEBUG gates the equivalent check in
// the original engine.
var DebugOrderCheck = false

type gStack struct {
	mu     sync.Mutex
	levels []Level
}

var stacks sync.Map // goroutine id -> *gStack

// goroutineID extracts the numeric goroutine id from the runtime stack
// trace header ("goroutine 17 [running]:"). Go deliberately exposes no
// public API for this; parsing the trace is the accepted workaround for
// goroutine-local state, used here purely for the debug ordering check
// and never on a hot path when DebugOrderCheck is off.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}
	id, _ := strconv.ParseInt(string(b[:i]), 10, 64)
	return id
}

func currentStack() *gStack {
	key := goroutineID()
	v, _ := stacks.LoadOrStore(key, &gStack{})
	return v.(*gStack)
}

// -----------------------------------------------------------------------
// Long-wait monitor
// -----------------------------------------------------------------------

// WarnAfter and FatalAfter match sync_sync.hpp's semaphore wait monitor:
// a reservation outstanding past WarnAfter is logged, past FatalAfter is
// treated as a likely hang.
const (
	WarnAfter  = 240 * time.Second
	FatalAfter = 600 * time.Second
)

// Monitor scans the global wait array once a second and logs any
// reservation that has been outstanding too long. Callers run it as a
// background goroutine for the lifetime of the engine; close stop to
// stop it.
func Monitor(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			scanOnce()
		}
	}
}

func scanOnce() {
	for _, c := range globalWaitArray.LongWaits(WarnAfter) {
		waited := time.Since(c.Reserved)
		fields := logrus.Fields{"mode": c.Mode, "waited": waited}
		if waited >= FatalAfter {
			logrus.WithFields(fields).Error("latch wait exceeded fatal threshold, possible hang")
		} else {
			logrus.WithFields(fields).Warn("latch wait exceeded warn threshold")
		}
	}
}
