package manager

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/juju/errors"

	"github.com/go-innodb/storage-engine/server/innodb/basic"
	"github.com/go-innodb/storage-engine/server/innodb/storage/wrapper/system"
)

// IBufManager 管理Insert Buffer
type IBufManager struct {
	mu sync.RWMutex

	// Insert Buffer映射: space_id -> ibuf_tree
	ibufTrees map[uint32]*IBufTree

	// 段管理器
	segmentManager *SegmentManager

	// 页面管理器
	pageManager basic.PageManager

	// 合并阈值: 一棵树的条目数达到单页容量的这个比例就触发收缩
	mergeThreshold float64

	// 最后一次合并时间
	lastMergeTime time.Time
}

// IBufTree 表示一个Insert Buffer B+树
type IBufTree struct {
	SpaceID    uint32 // 表空间ID
	SegmentID  uint32 // Insert Buffer段ID
	RootPageNo uint32 // B+树根页号
	Height     uint8  // B+树高度
	Size       uint64 // 缓存的记录数
}

// IBufRecord 表示一个Insert Buffer记录
type IBufRecord struct {
	basic.Record
	SpaceID uint32    // 表空间ID
	PageNo  uint32    // 目标页号
	Type    uint8     // 操作类型
	Key     []byte    // 索引键值
	Value   []byte    // 记录内容
	TrxID   uint64    // 事务ID
	Time    time.Time // 插入时间
}

// 操作类型常量
const (
	IBUF_OP_INSERT uint8 = iota // 插入操作
	IBUF_OP_DELETE              // 删除操作
	IBUF_OP_UPDATE              // 更新操作
)

func opToEntryType(op uint8) system.IBufEntryType {
	switch op {
	case IBUF_OP_DELETE:
		return system.IBufEntryDelete
	case IBUF_OP_UPDATE:
		return system.IBufEntryUpdate
	default:
		return system.IBufEntryInsert
	}
}

// NewIBufManager 创建Insert Buffer管理器
func NewIBufManager(segmentManager *SegmentManager, pageManager basic.PageManager) *IBufManager {
	return &IBufManager{
		ibufTrees:      make(map[uint32]*IBufTree),
		segmentManager: segmentManager,
		pageManager:    pageManager,
		mergeThreshold: 0.7, // 当缓存页使用率达到70%时触发合并
		lastMergeTime:  time.Now(),
	}
}

// CreateIBufTree 为表空间创建Insert Buffer树
func (im *IBufManager) CreateIBufTree(spaceID uint32) (*IBufTree, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if tree := im.ibufTrees[spaceID]; tree != nil {
		return tree, nil
	}

	seg, err := im.segmentManager.CreateSegment(spaceID, SEGMENT_TYPE_DATA, false)
	if err != nil {
		return nil, errors.Annotatef(err, "ibuf: create segment for space %d", spaceID)
	}
	segImpl, ok := seg.(*SegmentImpl)
	if !ok {
		return nil, errors.Errorf("ibuf: unexpected segment implementation %T", seg)
	}

	rootPageNo, err := im.segmentManager.AllocatePage(segImpl.SegmentID)
	if err != nil {
		return nil, errors.Annotatef(err, "ibuf: allocate root page for space %d", spaceID)
	}

	root := system.NewIBufPage(spaceID, rootPageNo)
	if err := root.Write(); err != nil {
		return nil, errors.Trace(err)
	}
	if err := im.pageManager.WritePage(spaceID, rootPageNo, root.GetContent()); err != nil {
		return nil, errors.Annotatef(err, "ibuf: persist root page %d:%d", spaceID, rootPageNo)
	}

	tree := &IBufTree{
		SpaceID:    spaceID,
		SegmentID:  segImpl.SegmentID,
		RootPageNo: rootPageNo,
		Height:     1,
	}
	im.ibufTrees[spaceID] = tree
	return tree, nil
}

// loadRoot reads the tree's root page into a system.IBufPage ready for
// AddEntry/RemoveEntry/GetAllEntries. Caller holds im.mu.
func (im *IBufManager) loadRoot(tree *IBufTree) (*system.IBufPage, error) {
	content, err := im.pageManager.GetPage(tree.SpaceID, tree.RootPageNo)
	if err != nil {
		return nil, errors.Annotatef(err, "ibuf: load root page %d:%d", tree.SpaceID, tree.RootPageNo)
	}
	root := system.NewIBufPage(tree.SpaceID, tree.RootPageNo)
	root.SetContent(content)
	if err := root.Read(); err != nil {
		return nil, errors.Trace(err)
	}
	return root, nil
}

// saveRoot serializes root back to the page manager. Caller holds im.mu.
func (im *IBufManager) saveRoot(tree *IBufTree, root *system.IBufPage) error {
	if err := root.Write(); err != nil {
		return errors.Trace(err)
	}
	if err := im.pageManager.WritePage(tree.SpaceID, tree.RootPageNo, root.GetContent()); err != nil {
		return errors.Annotatef(err, "ibuf: persist root page %d:%d", tree.SpaceID, tree.RootPageNo)
	}
	return nil
}

// InsertRecord 插入一条记录到Insert Buffer
func (im *IBufManager) InsertRecord(record *IBufRecord) error {
	im.mu.RLock()
	tree := im.ibufTrees[record.SpaceID]
	im.mu.RUnlock()

	if tree == nil {
		created, err := im.CreateIBufTree(record.SpaceID)
		if err != nil {
			return err
		}
		tree = created
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	root, err := im.loadRoot(tree)
	if err != nil {
		return err
	}

	entry := &system.IBufEntry{
		Type:      opToEntryType(record.Type),
		SpaceID:   record.SpaceID,
		PageNo:    record.PageNo,
		Data:      record.Value,
		Timestamp: record.Time.UnixNano(),
	}

	if _, err := root.AddEntry(entry); err != nil {
		if errors.Cause(err) == system.ErrIBufFull {
			if mergeErr := im.mergeIBufTreeLocked(tree); mergeErr != nil {
				return errors.Annotate(mergeErr, "ibuf: merge full tree before retrying insert")
			}
			root, err = im.loadRoot(tree)
			if err != nil {
				return err
			}
			if _, err := root.AddEntry(entry); err != nil {
				return errors.Annotate(err, "ibuf: insert after merge")
			}
		} else {
			return errors.Annotate(err, "ibuf: insert record")
		}
	}

	tree.Size++
	return im.saveRoot(tree, root)
}

// mergeIBufTree 合并Insert Buffer树到实际的索引页
func (im *IBufManager) mergeIBufTree(tree *IBufTree) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.mergeIBufTreeLocked(tree)
}

// mergeIBufTreeLocked does the work of mergeIBufTree; caller holds im.mu.
func (im *IBufManager) mergeIBufTreeLocked(tree *IBufTree) error {
	root, err := im.loadRoot(tree)
	if err != nil {
		return err
	}

	byPage := make(map[uint32][]*IBufRecord)
	for _, entry := range root.GetAllEntries() {
		byPage[entry.PageNo] = append(byPage[entry.PageNo], &IBufRecord{
			SpaceID: entry.SpaceID,
			PageNo:  entry.PageNo,
			Type:    entryTypeToOp(entry.Type),
			Value:   entry.Data,
			Time:    time.Unix(0, entry.Timestamp),
		})
	}

	for pageNo, records := range byPage {
		if err := im.mergePageLocked(tree, pageNo, records); err != nil {
			return errors.Annotatef(err, "ibuf: merge page %d:%d", tree.SpaceID, pageNo)
		}
	}

	tree.Size = 0
	im.lastMergeTime = time.Now()
	return nil
}

func entryTypeToOp(t system.IBufEntryType) uint8 {
	switch t {
	case system.IBufEntryDelete:
		return IBUF_OP_DELETE
	case system.IBufEntryUpdate:
		return IBUF_OP_UPDATE
	default:
		return IBUF_OP_INSERT
	}
}

// mergePage 合并一个页面的记录
func (im *IBufManager) mergePage(spaceID uint32, pageNo uint32, records []*IBufRecord) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	tree := im.ibufTrees[spaceID]
	if tree == nil {
		return errors.Errorf("ibuf: no tree for space %d", spaceID)
	}
	return im.mergePageLocked(tree, pageNo, records)
}

// mergePageLocked applies the buffered changes for one target page and
// removes them from the tree's root page. Caller holds im.mu.
func (im *IBufManager) mergePageLocked(tree *IBufTree, pageNo uint32, records []*IBufRecord) error {
	target, err := im.pageManager.GetPage(tree.SpaceID, pageNo)
	if err != nil {
		return errors.Annotatef(err, "ibuf: load target page %d:%d", tree.SpaceID, pageNo)
	}

	staging := system.NewIBufPage(tree.SpaceID, pageNo)
	for _, rec := range records {
		if _, err := staging.AddEntry(&system.IBufEntry{
			Type:      opToEntryType(rec.Type),
			SpaceID:   rec.SpaceID,
			PageNo:    rec.PageNo,
			Data:      rec.Value,
			Timestamp: rec.Time.UnixNano(),
		}); err != nil {
			return errors.Trace(err)
		}
	}
	if err := staging.MergePage(target); err != nil {
		return errors.Trace(err)
	}

	if err := im.pageManager.WritePage(tree.SpaceID, pageNo, target); err != nil {
		return errors.Annotatef(err, "ibuf: persist merged page %d:%d", tree.SpaceID, pageNo)
	}

	root, err := im.loadRoot(tree)
	if err != nil {
		return err
	}
	if err := removeEntriesForPage(root, pageNo); err != nil {
		return errors.Trace(err)
	}
	return im.saveRoot(tree, root)
}

// removeEntriesForPage drops every entry in root targeting pageNo. It
// walks slot indices directly since GetAllEntries doesn't expose them.
func removeEntriesForPage(root *system.IBufPage, pageNo uint32) error {
	for slot := uint16(0); slot < system.MaxEntriesPerIBufPage; slot++ {
		entry, err := root.GetEntry(slot)
		if err != nil {
			continue
		}
		if entry.PageNo == pageNo {
			if err := root.RemoveEntry(slot); err != nil {
				return err
			}
		}
	}
	return nil
}

// Contract merges the maxTrees least-recently-touched Insert Buffer
// trees, the way ibuf_contract_for_n_pages periodically drains the
// buffer in the background even absent memory pressure.
func (im *IBufManager) Contract(maxTrees int) (int, error) {
	im.mu.Lock()
	trees := make([]*IBufTree, 0, len(im.ibufTrees))
	for _, t := range im.ibufTrees {
		trees = append(trees, t)
	}
	im.mu.Unlock()

	merged := 0
	for _, tree := range trees {
		if merged >= maxTrees {
			break
		}
		if tree.Size == 0 {
			continue
		}
		if err := im.mergeIBufTree(tree); err != nil {
			return merged, err
		}
		merged++
	}
	return merged, nil
}

// buildKey 构造Insert Buffer键值
func (im *IBufManager) buildKey(pageNo uint32, indexKey []byte) []byte {
	key := make([]byte, 4+len(indexKey))
	binary.BigEndian.PutUint32(key[:4], pageNo)
	copy(key[4:], indexKey)
	return key
}

// Close 关闭Insert Buffer管理器
func (im *IBufManager) Close() error {
	im.mu.Lock()
	trees := make([]*IBufTree, 0, len(im.ibufTrees))
	for _, tree := range im.ibufTrees {
		trees = append(trees, tree)
	}
	im.mu.Unlock()

	for _, tree := range trees {
		if err := im.mergeIBufTree(tree); err != nil {
			return err
		}
	}

	im.mu.Lock()
	im.ibufTrees = nil
	im.mu.Unlock()
	return nil
}
