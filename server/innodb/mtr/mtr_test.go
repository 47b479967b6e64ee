package mtr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-innodb/storage-engine/server/innodb/basic"
	"github.com/go-innodb/storage-engine/server/innodb/latch"
	"github.com/go-innodb/storage-engine/server/innodb/manager"
)

// fakePage is a minimal basic.IPage for exercising the mtr package
// without pulling in a real buffer pool.
type fakePage struct {
	spaceID uint32
	pageNo  uint32
	data    []byte
	dirty   bool
	lsn     uint64
	pins    int
}

func newFakePage(space, no uint32) *fakePage {
	return &fakePage{spaceID: space, pageNo: no, data: make([]byte, 64)}
}

func (p *fakePage) GetPageID() uint32       { return p.pageNo }
func (p *fakePage) GetPageNo() uint32       { return p.pageNo }
func (p *fakePage) GetSpaceID() uint32      { return p.spaceID }
func (p *fakePage) GetPageType() basic.PageType { return 0 }
func (p *fakePage) GetSize() uint32         { return uint32(len(p.data)) }
func (p *fakePage) GetData() []byte         { return p.data }
func (p *fakePage) GetContent() []byte      { return p.data }
func (p *fakePage) SetData(data []byte) error {
	p.data = data
	return nil
}
func (p *fakePage) SetContent(content []byte)   { p.data = content }
func (p *fakePage) IsDirty() bool               { return p.dirty }
func (p *fakePage) SetDirty(dirty bool)         { p.dirty = dirty }
func (p *fakePage) MarkDirty()                  { p.dirty = true }
func (p *fakePage) ClearDirty()                 { p.dirty = false }
func (p *fakePage) GetState() basic.PageState   { return 0 }
func (p *fakePage) SetState(basic.PageState)    {}
func (p *fakePage) GetLSN() uint64              { return p.lsn }
func (p *fakePage) SetLSN(lsn uint64)           { p.lsn = lsn }
func (p *fakePage) Pin()                        { p.pins++ }
func (p *fakePage) Unpin()                      { p.pins-- }
func (p *fakePage) Read() error                 { return nil }
func (p *fakePage) Write() error                { return nil }
func (p *fakePage) IsLeafPage() bool            { return true }
func (p *fakePage) Init() error                 { return nil }
func (p *fakePage) Release()                    {}

func newTestRedoLogManager(t *testing.T) *manager.RedoLogManager {
	t.Helper()
	rlm, err := manager.NewRedoLogManager(t.TempDir(), 16)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rlm.Close() })
	return rlm
}

func TestCompressedRoundTrip(t *testing.T) {
	for _, n := range []uint32{0, 1, 0x7F, 0x80, 0x3FFF, 0x4000, 0x1FFFFF, 0x200000, 0xFFFFFFF, 0x10000000, 0xFFFFFFFF} {
		buf := writeCompressed(nil, n)
		assert.Len(t, buf, compressedSize(n))
		got, consumed := readCompressed(buf)
		assert.Equal(t, n, got)
		assert.Equal(t, len(buf), consumed)
	}
}

func TestMtrPageModifyWritesData(t *testing.T) {
	page := newFakePage(1, 10)
	l := latch.NewLeveledLatch(latch.LevelTreeNode, "test-page")

	m := Start()
	m.XFixPage(page, l)
	m.PageModify4(page, 0, 0xDEADBEEF)

	assert.Equal(t, uint32(0xDEADBEEF), beUint32(page.GetData()[0:4]))
	assert.True(t, m.HasModifications())
	assert.Equal(t, 1, m.LogRecordCount())
}

func TestMtrCommitAppendsRedoAndReleasesLatches(t *testing.T) {
	redo := newTestRedoLogManager(t)
	page := newFakePage(2, 20)
	l := latch.NewLeveledLatch(latch.LevelTreeNode, "test-page-2")

	m := Start()
	m.XFixPage(page, l)
	m.PageModify2(page, 4, 0xBEEF)

	startLSN, endLSN, err := m.Commit(redo)
	require.NoError(t, err)
	assert.Greater(t, endLSN, startLSN)
	assert.Equal(t, endLSN, page.GetLSN())
	assert.Equal(t, 0, page.pins)

	assert.True(t, l.TryLock())
	l.Unlock()
}

func TestMtrLogNoneSkipsRedoAppend(t *testing.T) {
	redo := newTestRedoLogManager(t)
	page := newFakePage(3, 30)
	l := latch.NewLeveledLatch(latch.LevelTreeNode, "test-page-3")

	m := StartWithMode(LogNone)
	m.XFixPage(page, l)
	m.PageModify1(page, 0, 0xFF)

	startLSN, endLSN, err := m.Commit(redo)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), startLSN)
	assert.Equal(t, uint64(0), endLSN)
	assert.True(t, m.HasModifications())
}

func TestMtrSavepointReleasesOnlyNewerLatches(t *testing.T) {
	pageA := newFakePage(4, 40)
	pageB := newFakePage(4, 41)
	la := latch.NewLeveledLatch(latch.LevelTreeNode, "a")
	lb := latch.NewLeveledLatch(latch.LevelTreeNode, "b")

	m := Start()
	m.SFixPage(pageA, la)
	sp := m.Savepoint()
	m.SFixPage(pageB, lb)

	m.ReleaseToSavepoint(sp)

	assert.True(t, lb.TryLock())
	lb.Unlock()
	assert.False(t, la.TryLock())
}

func TestMtrPageWriteString(t *testing.T) {
	page := newFakePage(5, 50)
	l := latch.NewLeveledLatch(latch.LevelTreeNode, "str-page")

	m := Start()
	m.XFixPage(page, l)
	m.PageWriteString(page, 2, []byte("hi"))

	assert.Equal(t, []byte("hi"), page.GetData()[2:4])
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
