package record

import (
	"encoding/binary"
	"github.com/go-innodb/storage-engine/server/innodb/basic"
)

// TODO: This file needs complete implementation
// Currently disabled due to missing dependencies

// Placeholder to avoid compilation errors

// SystemClusterInternalRow 系统聚簇索引内部节点行记录
// 用于系统表的B+树内部节点
type SystemClusterInternalRow struct {
	*ClusterInternalRow // 继承普通聚簇索引内部节点
	SystemType          SystemRecordType
	SystemData          []byte // 系统特定数据
}

// NewSystemClusterInternalRow 创建系统聚簇索引内部节点行记录
func NewSystemClusterInternalRow(tableTuple tuple, sysType SystemRecordType) basic.Row {
	baseRow := NewClusterInternalRow(tableTuple)
	return &SystemClusterInternalRow{
		ClusterInternalRow: baseRow.(*ClusterInternalRow),
		SystemType:         sysType,
		SystemData:         make([]byte, 0),
	}
}

// NewSystemClusterInternalRowWithContent 从内容创建系统聚簇索引内部节点行记录
func NewSystemClusterInternalRowWithContent(content []byte, tableTuple tuple, sysType SystemRecordType) basic.Row {
	baseRow := NewClusterInternalRowWithContent(content, tableTuple)
	return &SystemClusterInternalRow{
		ClusterInternalRow: baseRow.(*ClusterInternalRow),
		SystemType:         sysType,
		SystemData:         make([]byte, 0),
	}
}

// 实现basic.Row接口的特化方法
func (r *SystemClusterInternalRow) Less(than basic.Row) bool {
	// 系统记录内部节点可能有特殊的排序逻辑
	if otherSys, ok := than.(*SystemClusterInternalRow); ok {
		// 先按系统类型排序
		if r.SystemType != otherSys.SystemType {
			return r.SystemType < otherSys.SystemType
		}
		// 同类型系统记录按父类逻辑排序
		return r.ClusterInternalRow.Less(otherSys.ClusterInternalRow)
	}
	// 与非系统记录比较时使用父类逻辑
	return r.ClusterInternalRow.Less(than)
}

func (r *SystemClusterInternalRow) ToByte() []byte {
	baseBytes := r.ClusterInternalRow.ToByte()
	// 添加系统特定的序列化逻辑
	result := make([]byte, 0, len(baseBytes)+len(r.SystemData)+1)
	result = append(result, byte(r.SystemType))
	result = append(result, baseBytes...)
	result = append(result, r.SystemData...)
	return result
}

func (r *SystemClusterInternalRow) ToString() string {
	return "SystemClusterInternalRow{Type: " + string(rune(r.SystemType)) + "}"
}

// 系统记录特有方法
func (r *SystemClusterInternalRow) GetSystemType() SystemRecordType {
	return r.SystemType
}

func (r *SystemClusterInternalRow) SetSystemType(sysType SystemRecordType) {
	r.SystemType = sysType
}

func (r *SystemClusterInternalRow) GetSystemData() []byte {
	return r.SystemData
}

func (r *SystemClusterInternalRow) SetSystemData(data []byte) {
	r.SystemData = data
}

// 系统记录分类方法
func (r *SystemClusterInternalRow) IsDataDictionaryRecord() bool {
	return r.SystemType == SystemRecordTypeDataDictionary
}

func (r *SystemClusterInternalRow) IsTablespaceRecord() bool {
	return r.SystemType == SystemRecordTypeTablespace
}

func (r *SystemClusterInternalRow) IsRollbackSegmentRecord() bool {
	return r.SystemType == SystemRecordTypeRollbackSegment
}

// 系统内部节点特定的数据访问方法
func (r *SystemClusterInternalRow) GetChildPagePointer() uint32 {
	// 系统内部节点也需要存储子页面指针
	if r.ClusterInternalRow != nil {
		return r.ClusterInternalRow.GetPageNumber()
	}
	return 0
}

func (r *SystemClusterInternalRow) SetChildPagePointer(pageNum uint32) {
	// 设置子页面指针
	if len(r.SystemData) < 4 {
		r.SystemData = make([]byte, 4)
	}
	binary.LittleEndian.PutUint32(r.SystemData[:4], pageNum)
}

func (r *SystemClusterInternalRow) GetTableId() uint64 {
	// 对于数据字典内部节点记录，获取表ID
	if r.IsDataDictionaryRecord() && len(r.SystemData) >= 12 { // 4字节页面指针 + 8字节表ID
		return binary.LittleEndian.Uint64(r.SystemData[4:12])
	}
	return 0
}

func (r *SystemClusterInternalRow) GetTablespaceId() uint32 {
	// 对于表空间内部节点记录，获取表空间ID
	if r.IsTablespaceRecord() && len(r.SystemData) >= 8 { // 4字节页面指针 + 4字节表空间ID
		return binary.LittleEndian.Uint32(r.SystemData[4:8])
	}
	return 0
}

func (r *SystemClusterInternalRow) GetRollbackSegmentId() uint16 {
	// 对于回滚段内部节点记录，获取回滚段ID
	if r.IsRollbackSegmentRecord() && len(r.SystemData) >= 6 { // 4字节页面指针 + 2字节回滚段ID
		return binary.LittleEndian.Uint16(r.SystemData[4:6])
	}
	return 0
}
