package manager

import (
	"github.com/go-innodb/storage-engine/server/innodb/basic"
	"github.com/go-innodb/storage-engine/server/innodb/buffer_pool"
	extent2 "github.com/go-innodb/storage-engine/server/innodb/storage/wrapper/extent"
	"sync"
)

// AllocPurpose分辨一次区分配背后的意图，镜像fsp_reserve_free_extents的alloc_type:
// NORMAL在空间紧张时可以失败，UNDO/CLEANING必须成功，否则purge/回滚无法释放空间，
// 数据库会进入"满了但清不出空间"的死锁状态。
type AllocPurpose uint8

const (
	AllocPurposeNormal   AllocPurpose = iota // 一般操作，如B+树插入导致的页分裂
	AllocPurposeUndo                         // undo日志分配：长期看会在purge后释放空间
	AllocPurposeCleaning                      // 物理删除/purge等清理性操作
)

// AllocDirection对应fseg_alloc_free_page的direction参数：当新页是因为索引页
// 分裂而需要、且记录按顺序插入时，告诉分配器记录朝哪个方向增长，从而把新页
// 尽量分配在紧邻当前页的位置，保持顺序插入的局部性。
type AllocDirection uint8

const (
	AllocDirectionNone AllocDirection = iota
	AllocDirectionLeft
	AllocDirectionRight
)

// reservedExtentsMargin镜像fsp_reserve_free_extents对"总区数<64页"这种极小
// 表空间的特殊处理：正常情况下每次分裂/合并保留2个区的安全边际。
const reservedExtentsMargin = 2

// ExtentManager 区管理器
type ExtentManager struct {
	sync.RWMutex

	// 底层存储
	bufferPool *buffer_pool.BufferPool

	// 区缓存
	extentCache map[uint32]*extent2.BaseExtent // key: extentID

	// 空闲区列表
	freeExtents []uint32

	// 已为UNDO/CLEANING等优先用途预留、尚未消费的区数
	reservedExtents uint32

	// 统计信息
	stats *ExtentStats
}

// ExtentStats 区统计信息
type ExtentStats struct {
	TotalExtents   uint32  // 总区数
	FreeExtents    uint32  // 空闲区数
	FullExtents    uint32  // 已满区数
	FragmentRatio  float64 // 碎片率
	AvgUtilization float64 // 平均利用率
}

// NewExtentManager 创建区管理器
func NewExtentManager(bp *buffer_pool.BufferPool) *ExtentManager {
	return &ExtentManager{
		bufferPool:  bp,
		extentCache: make(map[uint32]*extent2.BaseExtent),
		freeExtents: make([]uint32, 0),
		stats:       &ExtentStats{},
	}
}

// AllocateExtent 分配新区
func (em *ExtentManager) AllocateExtent(spaceID uint32, extType basic.ExtentType) (*extent2.BaseExtent, error) {
	em.Lock()
	defer em.Unlock()

	// 优先从空闲列表分配
	var extentID uint32
	if len(em.freeExtents) > 0 {
		extentID = em.freeExtents[len(em.freeExtents)-1]
		em.freeExtents = em.freeExtents[:len(em.freeExtents)-1]
	} else {
		// 创建新区
		extentID = em.stats.TotalExtents
		em.stats.TotalExtents++
	}

	// 创建区对象
	ext := extent2.NewBaseExtent(spaceID, extentID, extType)

	// 加入缓存
	em.extentCache[extentID] = ext

	// 更新统计
	em.updateStats()

	return ext, nil
}

// ReserveFreeExtents实现fsp_reserve_free_extents: 在真正分配前为一次操作预留
// nExt个区。purpose为AllocPurposeNormal时，若预留会让空闲区数跌破
// reservedExtentsMargin的安全边际则失败返回0；AllocPurposeUndo/Cleaning
// 即使空间紧张也必须成功，避免purge无法推进导致的死锁。
func (em *ExtentManager) ReserveFreeExtents(spaceID uint32, nExt uint32, purpose AllocPurpose) (uint32, error) {
	em.Lock()
	defer em.Unlock()

	free := uint32(len(em.freeExtents))

	if purpose == AllocPurposeNormal {
		if free < em.reservedExtents+nExt+reservedExtentsMargin {
			return 0, ErrInsufficientSpace
		}
	}

	em.reservedExtents += nExt
	return nExt, nil
}

// ReleaseReservedExtents释放之前由ReserveFreeExtents预留、最终未消费的区配额。
func (em *ExtentManager) ReleaseReservedExtents(nExt uint32) {
	em.Lock()
	defer em.Unlock()

	if nExt > em.reservedExtents {
		nExt = em.reservedExtents
	}
	em.reservedExtents -= nExt
}

// AllocateExtentForPurpose分配一个新区并消费之前为purpose预留的配额(若有)，
// 供真正需要扩展段大小的路径使用，而不仅仅是检查额度是否充足。
func (em *ExtentManager) AllocateExtentForPurpose(spaceID uint32, extType basic.ExtentType, purpose AllocPurpose) (*extent2.BaseExtent, error) {
	ext, err := em.AllocateExtent(spaceID, extType)
	if err != nil {
		return nil, err
	}

	em.Lock()
	if purpose != AllocPurposeNormal && em.reservedExtents > 0 {
		em.reservedExtents--
	}
	em.Unlock()

	return ext, nil
}

// GetExtent 获取区
func (em *ExtentManager) GetExtent(extentID uint32) (*extent2.BaseExtent, error) {
	em.RLock()
	defer em.RUnlock()

	// 先查缓存
	if ext, ok := em.extentCache[extentID]; ok {
		return ext, nil
	}

	// TODO: 从磁盘加载区信息

	return nil, extent2.ErrInvalidExtent
}

// FreeExtent 释放区
func (em *ExtentManager) FreeExtent(extentID uint32) error {
	em.Lock()
	defer em.Unlock()

	// 获取区对象
	ext, ok := em.extentCache[extentID]
	if !ok {
		return extent2.ErrInvalidExtent
	}

	// 重置区
	if err := ext.Reset(); err != nil {
		return err
	}

	// 加入空闲列表
	em.freeExtents = append(em.freeExtents, extentID)

	// 更新统计
	em.updateStats()

	return nil
}

// GetStats 获取统计信息
func (em *ExtentManager) GetStats() *ExtentStats {
	em.RLock()
	defer em.RUnlock()
	return em.stats
}

// updateStats 更新统计信息
func (em *ExtentManager) updateStats() {
	stats := &ExtentStats{
		TotalExtents: em.stats.TotalExtents,
		FreeExtents:  uint32(len(em.freeExtents)),
	}

	var fullCount uint32
	var totalSpace uint64
	var usedSpace uint64

	// 统计已用区
	for _, ext := range em.extentCache {
		if ext.IsFull() {
			fullCount++
		}
		totalSpace += 64 * 16 * 1024 // 64页 * 16KB
		usedSpace += 64*16*1024 - ext.GetFreeSpace()
	}

	stats.FullExtents = fullCount
	if totalSpace > 0 {
		stats.AvgUtilization = float64(usedSpace) / float64(totalSpace)
	}
	if em.stats.TotalExtents > 0 {
		stats.FragmentRatio = float64(em.stats.TotalExtents-fullCount) / float64(em.stats.TotalExtents)
	}

	em.stats = stats
}

// DefragmentExtent 整理区碎片
func (em *ExtentManager) DefragmentExtent(extentID uint32) error {
	em.Lock()
	defer em.Unlock()

	ext, ok := em.extentCache[extentID]
	if !ok {
		return extent2.ErrInvalidExtent
	}

	return ext.Defragment()
}

// GetFreeExtentCount 获取空闲区数量
func (em *ExtentManager) GetFreeExtentCount() int {
	em.RLock()
	defer em.RUnlock()
	return len(em.freeExtents)
}

// GetTotalExtentCount 获取总区数量
func (em *ExtentManager) GetTotalExtentCount() uint32 {
	em.RLock()
	defer em.RUnlock()
	return em.stats.TotalExtents
}
