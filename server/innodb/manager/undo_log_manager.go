package manager

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"encoding/binary"

	"github.com/juju/errors"

	"github.com/go-innodb/storage-engine/server/innodb/basic"
)

// defaultRsegSlots mirrors the historical 128 rollback-segment slots
// trx_sys_t reserves in the system tablespace header (trx_sys_t::rseg_array).
const defaultRsegSlots = 128

// UndoLogManager 撤销日志管理器
type UndoLogManager struct {
	mu       sync.RWMutex
	logs     map[int64][]UndoLogEntry // 事务ID -> Undo日志列表
	undoDir  string                   // Undo日志目录
	undoFile *os.File                 // Undo日志文件

	// 事务状态跟踪
	activeTxns    map[int64]bool // 活跃事务集合
	oldestTxnTime time.Time      // 最老事务开始时间

	bufferPool basic.IBufferPool

	// rollback-segment slot assignment
	nRsegSlots int
	nextRseg   int
	trxRseg    map[int64]int
}

// NewUndoLogManager 创建新的撤销日志管理器
func NewUndoLogManager(undoDir string) (*UndoLogManager, error) {
	if err := os.MkdirAll(undoDir, 0755); err != nil {
		return nil, err
	}

	undoFile, err := os.OpenFile(
		filepath.Join(undoDir, "undo.log"),
		os.O_CREATE|os.O_RDWR|os.O_APPEND,
		0644,
	)
	if err != nil {
		return nil, err
	}

	return &UndoLogManager{
		logs:       make(map[int64][]UndoLogEntry),
		activeTxns: make(map[int64]bool),
		undoDir:    undoDir,
		undoFile:   undoFile,
		nRsegSlots: defaultRsegSlots,
		trxRseg:    make(map[int64]int),
	}, nil
}

// SetBufferPool wires the buffer pool Rollback applies before-images
// against. Rollback degrades to log bookkeeping only until this is set.
func (u *UndoLogManager) SetBufferPool(bp basic.IBufferPool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.bufferPool = bp
}

// AssignRsegSlot binds trxID to a rollback-segment slot, round-robin
// over the fixed slot pool the way trx_assign_rseg picks the
// least-recently-used slot cyclically rather than always slot 0, so
// concurrent transactions' undo logs spread across segments.
func (u *UndoLogManager) AssignRsegSlot(trxID int64) int {
	u.mu.Lock()
	defer u.mu.Unlock()

	if slot, ok := u.trxRseg[trxID]; ok {
		return slot
	}
	slot := u.nextRseg
	u.nextRseg = (u.nextRseg + 1) % u.nRsegSlots
	u.trxRseg[trxID] = slot
	return slot
}

// RsegSlot returns the slot previously assigned to trxID, or -1 if none.
func (u *UndoLogManager) RsegSlot(trxID int64) int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if slot, ok := u.trxRseg[trxID]; ok {
		return slot
	}
	return -1
}

// Append 追加一条撤销日志
func (u *UndoLogManager) Append(entry *UndoLogEntry) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	// 设置创建时间
	entry.Timestamp = time.Now()

	// 如果是新事务，更新活跃事务集合
	if !u.activeTxns[entry.TrxID] {
		u.activeTxns[entry.TrxID] = true
		if u.oldestTxnTime.IsZero() || entry.Timestamp.Before(u.oldestTxnTime) {
			u.oldestTxnTime = entry.Timestamp
		}
	}

	// 添加到内存中
	u.logs[entry.TrxID] = append(u.logs[entry.TrxID], *entry)

	// 写入文件
	return u.writeEntryToFile(entry)
}

// writeEntryToFile 将Undo日志写入文件
func (u *UndoLogManager) writeEntryToFile(entry *UndoLogEntry) error {
	// 写入LSN
	if err := binary.Write(u.undoFile, binary.BigEndian, entry.LSN); err != nil {
		return err
	}

	// 写入事务ID
	if err := binary.Write(u.undoFile, binary.BigEndian, entry.TrxID); err != nil {
		return err
	}

	// 写入表ID
	if err := binary.Write(u.undoFile, binary.BigEndian, entry.TableID); err != nil {
		return err
	}

	// 写入操作类型
	if err := binary.Write(u.undoFile, binary.BigEndian, entry.Type); err != nil {
		return err
	}

	// 写入数据
	dataLen := uint16(len(entry.Data))
	if err := binary.Write(u.undoFile, binary.BigEndian, dataLen); err != nil {
		return err
	}
	if _, err := u.undoFile.Write(entry.Data); err != nil {
		return err
	}

	return u.undoFile.Sync()
}

// Rollback 回滚指定事务: walks the transaction's undo records newest
// first and applies each one's compensating action to the buffer pool,
// the way row_undo_mod/row_undo_ins apply before-images back over a
// page during ROLLBACK and during crash recovery's rollback-of-active
// transactions pass.
func (u *UndoLogManager) Rollback(txID int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	entries, exists := u.logs[txID]
	if !exists {
		return errors.New("transaction not found")
	}

	for i := len(entries) - 1; i >= 0; i-- {
		if err := u.applyCompensation(&entries[i]); err != nil {
			return errors.Annotatef(err, "undo log: rollback trx %d entry %d", txID, i)
		}
	}

	u.cleanupLocked(txID)
	return nil
}

// applyCompensation undoes one log entry's effect on the page it
// targeted. Entries with no SpaceID/PageNo (logical-only undo, e.g. a
// DDL-adjacent bookkeeping record) carry no page-level action and are
// skipped. Caller holds u.mu.
func (u *UndoLogManager) applyCompensation(entry *UndoLogEntry) error {
	if u.bufferPool == nil || entry.SpaceID == 0 && entry.PageNo == 0 {
		return nil
	}

	page, err := u.bufferPool.GetPage(entry.SpaceID, entry.PageNo)
	if err != nil {
		return errors.Annotatef(err, "undo log: load page %d:%d", entry.SpaceID, entry.PageNo)
	}

	data := page.GetData()
	end := int(entry.Offset) + len(entry.Data)
	if end > len(data) {
		return errors.Errorf("undo log: entry overruns page (offset %d len %d page %d)",
			entry.Offset, len(entry.Data), len(data))
	}

	switch entry.Type {
	case LOG_TYPE_UPDATE, LOG_TYPE_DELETE:
		// entry.Data holds the before-image; write it straight back.
		copy(data[entry.Offset:end], entry.Data)
	case LOG_TYPE_INSERT:
		// undo an insert by zeroing the bytes it wrote.
		for i := int(entry.Offset); i < end; i++ {
			data[i] = 0
		}
	default:
		return errors.Errorf("undo log: unsupported undo type %d", entry.Type)
	}

	if err := page.SetData(data); err != nil {
		return errors.Trace(err)
	}
	page.MarkDirty()
	return nil
}

// Cleanup 清理事务的Undo日志
func (u *UndoLogManager) Cleanup(txID int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cleanupLocked(txID)
}

// cleanupLocked does the work of Cleanup; caller holds u.mu.
func (u *UndoLogManager) cleanupLocked(txID int64) {
	delete(u.logs, txID)
	delete(u.activeTxns, txID)
	delete(u.trxRseg, txID)

	// 更新最老事务时间
	if len(u.activeTxns) == 0 {
		u.oldestTxnTime = time.Time{}
	} else {
		oldestTime := time.Now()
		for txID := range u.activeTxns {
			if entries := u.logs[txID]; len(entries) > 0 {
				if entries[0].Timestamp.Before(oldestTime) {
					oldestTime = entries[0].Timestamp
				}
			}
		}
		u.oldestTxnTime = oldestTime
	}
}

// GetActiveTxns 获取活跃事务列表
func (u *UndoLogManager) GetActiveTxns() []int64 {
	u.mu.RLock()
	defer u.mu.RUnlock()

	txns := make([]int64, 0, len(u.activeTxns))
	for txID := range u.activeTxns {
		txns = append(txns, txID)
	}
	return txns
}

// GetOldestTxnTime 获取最老事务的开始时间
func (u *UndoLogManager) GetOldestTxnTime() time.Time {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.oldestTxnTime
}

// Close 关闭Undo日志管理器
func (u *UndoLogManager) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.undoFile.Close()
}
