package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-innodb/storage-engine/server/innodb/basic"
)

func TestUndoLogManager(t *testing.T) {
	testDir := t.TempDir()

	mgr, err := NewUndoLogManager(testDir)
	require.NoError(t, err)
	defer mgr.Close()

	t.Run("基本操作", func(t *testing.T) {
		entry := &UndoLogEntry{
			TrxID:   1,
			TableID: 100,
			Type:    LOG_TYPE_UPDATE,
			Data:    []byte("old data"),
		}

		err := mgr.Append(entry)
		require.NoError(t, err)

		txns := mgr.GetActiveTxns()
		assert.Contains(t, txns, int64(1))

		err = mgr.Rollback(1)
		require.NoError(t, err)

		txns = mgr.GetActiveTxns()
		assert.NotContains(t, txns, int64(1))
	})

	t.Run("多事务操作", func(t *testing.T) {
		for txID := int64(1); txID <= 3; txID++ {
			for i := 0; i < 5; i++ {
				entry := &UndoLogEntry{
					TrxID:   txID,
					TableID: uint64(100 + i),
					Type:    LOG_TYPE_UPDATE,
					Data:    []byte("old data"),
				}
				err := mgr.Append(entry)
				require.NoError(t, err)
			}
		}

		txns := mgr.GetActiveTxns()
		assert.Len(t, txns, 3)

		oldestTime := mgr.GetOldestTxnTime()
		assert.False(t, oldestTime.IsZero())

		err := mgr.Rollback(1)
		require.NoError(t, err)
		err = mgr.Rollback(2)
		require.NoError(t, err)

		txns = mgr.GetActiveTxns()
		assert.Len(t, txns, 1)
		assert.Contains(t, txns, int64(3))
	})

	t.Run("事务清理", func(t *testing.T) {
		entry := &UndoLogEntry{
			TrxID:   100,
			TableID: 100,
			Type:    LOG_TYPE_UPDATE,
			Data:    []byte("old data"),
		}
		err := mgr.Append(entry)
		require.NoError(t, err)

		mgr.Cleanup(100)

		txns := mgr.GetActiveTxns()
		assert.NotContains(t, txns, int64(100))
	})
}

func TestUndoLogManager_Concurrent(t *testing.T) {
	testDir := t.TempDir()
	mgr, err := NewUndoLogManager(testDir)
	require.NoError(t, err)
	defer mgr.Close()

	const numGoroutines = 10
	const numEntriesPerGoroutine = 100

	done := make(chan bool)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			txID := int64(id + 1)
			for j := 0; j < numEntriesPerGoroutine; j++ {
				entry := &UndoLogEntry{
					TrxID:   txID,
					TableID: uint64(id*1000 + j),
					Type:    LOG_TYPE_UPDATE,
					Data:    []byte("old data"),
				}
				if err := mgr.Append(entry); err != nil {
					t.Error(err)
				}
			}
			done <- true
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	txns := mgr.GetActiveTxns()
	assert.Len(t, txns, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			txID := int64(id + 1)
			if err := mgr.Rollback(txID); err != nil {
				t.Error(err)
			}
			done <- true
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	txns = mgr.GetActiveTxns()
	assert.Empty(t, txns)
}

func TestUndoLogManagerAssignRsegSlotRoundRobins(t *testing.T) {
	testDir := t.TempDir()
	mgr, err := NewUndoLogManager(testDir)
	require.NoError(t, err)
	defer mgr.Close()

	s1 := mgr.AssignRsegSlot(1)
	s2 := mgr.AssignRsegSlot(2)
	assert.NotEqual(t, s1, s2)

	// re-assigning the same trx returns its existing slot
	assert.Equal(t, s1, mgr.AssignRsegSlot(1))
	assert.Equal(t, s1, mgr.RsegSlot(1))

	mgr.Cleanup(1)
	assert.Equal(t, -1, mgr.RsegSlot(1))
}

// fakeUndoPool is a minimal basic.IBufferPool for exercising
// Rollback's page-level before-image replay.
type fakeUndoPool struct {
	pages map[uint64]*fakeUndoPage
}

func newFakeUndoPool() *fakeUndoPool {
	return &fakeUndoPool{pages: make(map[uint64]*fakeUndoPage)}
}

func (f *fakeUndoPool) key(spaceID, pageNo uint32) uint64 { return uint64(spaceID)<<32 | uint64(pageNo) }

func (f *fakeUndoPool) GetPage(spaceID, pageNo uint32) (basic.IPage, error) {
	k := f.key(spaceID, pageNo)
	p, ok := f.pages[k]
	if !ok {
		p = &fakeUndoPage{spaceID: spaceID, pageNo: pageNo, data: make([]byte, 32)}
		f.pages[k] = p
	}
	return p, nil
}

func (f *fakeUndoPool) NewPage(spaceID, pageNo uint32, pageType basic.PageType) (basic.IPage, error) {
	return f.GetPage(spaceID, pageNo)
}
func (f *fakeUndoPool) FreePage(spaceID, pageNo uint32) error { return nil }
func (f *fakeUndoPool) Flush() error                          { return nil }
func (f *fakeUndoPool) Close() error                          { return nil }

type fakeUndoPage struct {
	spaceID, pageNo uint32
	data            []byte
	lsn             uint64
	dirty           bool
}

func (p *fakeUndoPage) GetPageID() uint32           { return p.pageNo }
func (p *fakeUndoPage) GetPageNo() uint32           { return p.pageNo }
func (p *fakeUndoPage) GetSpaceID() uint32          { return p.spaceID }
func (p *fakeUndoPage) GetPageType() basic.PageType { return 0 }
func (p *fakeUndoPage) GetSize() uint32             { return uint32(len(p.data)) }
func (p *fakeUndoPage) GetData() []byte             { return p.data }
func (p *fakeUndoPage) GetContent() []byte          { return p.data }
func (p *fakeUndoPage) SetData(data []byte) error   { p.data = data; return nil }
func (p *fakeUndoPage) SetContent(content []byte)   { p.data = content }
func (p *fakeUndoPage) IsDirty() bool               { return p.dirty }
func (p *fakeUndoPage) SetDirty(dirty bool)         { p.dirty = dirty }
func (p *fakeUndoPage) MarkDirty()                  { p.dirty = true }
func (p *fakeUndoPage) ClearDirty()                 { p.dirty = false }
func (p *fakeUndoPage) GetState() basic.PageState   { return 0 }
func (p *fakeUndoPage) SetState(basic.PageState)    {}
func (p *fakeUndoPage) GetLSN() uint64               { return p.lsn }
func (p *fakeUndoPage) SetLSN(lsn uint64)            { p.lsn = lsn }
func (p *fakeUndoPage) Pin()                         {}
func (p *fakeUndoPage) Unpin()                       {}
func (p *fakeUndoPage) Read() error                  { return nil }
func (p *fakeUndoPage) Write() error                 { return nil }
func (p *fakeUndoPage) IsLeafPage() bool             { return true }
func (p *fakeUndoPage) Init() error                  { return nil }
func (p *fakeUndoPage) Release()                     {}

func TestUndoLogManagerRollbackRestoresBeforeImage(t *testing.T) {
	testDir := t.TempDir()
	mgr, err := NewUndoLogManager(testDir)
	require.NoError(t, err)
	defer mgr.Close()

	pool := newFakeUndoPool()
	mgr.SetBufferPool(pool)

	page, err := pool.GetPage(5, 9)
	require.NoError(t, err)
	data := page.GetData()
	copy(data[0:4], []byte{0xCA, 0xFE, 0xBA, 0xBE})
	require.NoError(t, page.SetData(data))

	// record an update's before-image, then overwrite the live page as
	// if the update had gone through.
	require.NoError(t, mgr.Append(&UndoLogEntry{
		TrxID:   42,
		Type:    LOG_TYPE_UPDATE,
		Data:    []byte{0xCA, 0xFE, 0xBA, 0xBE},
		SpaceID: 5,
		PageNo:  9,
		Offset:  0,
	}))
	data = page.GetData()
	copy(data[0:4], []byte{0x00, 0x00, 0x00, 0x00})
	require.NoError(t, page.SetData(data))
	page.SetDirty(false)

	require.NoError(t, mgr.Rollback(42))

	page, err = pool.GetPage(5, 9)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCA, 0xFE, 0xBA, 0xBE}, page.GetData()[0:4])
	assert.True(t, page.IsDirty())
}
