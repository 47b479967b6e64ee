package record

import (
	"encoding/binary"
	"github.com/go-innodb/storage-engine/server/innodb/basic"
)

// SystemClusterLeafRow 系统聚簇索引叶子节点行记录
// 用于系统表（如数据字典、表空间管理等）的存储
type SystemClusterLeafRow struct {
	*ClusterLeafRow // 继承普通聚簇索引叶子节点
	SystemType      SystemRecordType
	SystemData      []byte // 系统特定数据
}

// TODO: This file needs complete implementation
// Currently disabled due to missing dependencies

// Placeholder to avoid compilation errors

// NewSystemClusterLeafRow 创建系统聚簇索引叶子节点行记录
func NewSystemClusterLeafRow(content []byte, tableTuple tuple, sysType SystemRecordType) basic.Row {
	baseRow := NewClusterLeafRow(content, tableTuple)
	return &SystemClusterLeafRow{
		ClusterLeafRow: baseRow.(*ClusterLeafRow),
		SystemType:     sysType,
		SystemData:     make([]byte, 0),
	}
}

// NewSystemClusterLeafRowEmpty 创建空的系统聚簇索引叶子节点行记录
func NewSystemClusterLeafRowEmpty(tableTuple tuple, sysType SystemRecordType) basic.Row {
	return &SystemClusterLeafRow{
		ClusterLeafRow: &ClusterLeafRow{
			FrmMeta:   tableTuple,
			RowValues: make([]basic.Value, 0),
		},
		SystemType: sysType,
		SystemData: make([]byte, 0),
	}
}

// 实现basic.Row接口的特化方法
func (r *SystemClusterLeafRow) Less(than basic.Row) bool {
	// 系统记录可能有特殊的排序逻辑
	if otherSys, ok := than.(*SystemClusterLeafRow); ok {
		// 先按系统类型排序
		if r.SystemType != otherSys.SystemType {
			return r.SystemType < otherSys.SystemType
		}
		// 同类型系统记录按父类逻辑排序
		return r.ClusterLeafRow.Less(otherSys.ClusterLeafRow)
	}
	// 与非系统记录比较时使用父类逻辑
	return r.ClusterLeafRow.Less(than)
}

func (r *SystemClusterLeafRow) ToByte() []byte {
	baseBytes := r.ClusterLeafRow.ToByte()
	// 可以在这里添加系统特定的序列化逻辑
	result := make([]byte, 0, len(baseBytes)+len(r.SystemData)+1)
	result = append(result, byte(r.SystemType))
	result = append(result, baseBytes...)
	result = append(result, r.SystemData...)
	return result
}

func (r *SystemClusterLeafRow) ToString() string {
	return "SystemClusterLeafRow{Type: " + string(rune(r.SystemType)) + "}"
}

// 系统记录特有方法
func (r *SystemClusterLeafRow) GetSystemType() SystemRecordType {
	return r.SystemType
}

func (r *SystemClusterLeafRow) SetSystemType(sysType SystemRecordType) {
	r.SystemType = sysType
}

func (r *SystemClusterLeafRow) GetSystemData() []byte {
	return r.SystemData
}

func (r *SystemClusterLeafRow) SetSystemData(data []byte) {
	r.SystemData = data
}

// 系统记录分类方法
func (r *SystemClusterLeafRow) IsDataDictionaryRecord() bool {
	return r.SystemType == SystemRecordTypeDataDictionary
}

func (r *SystemClusterLeafRow) IsTablespaceRecord() bool {
	return r.SystemType == SystemRecordTypeTablespace
}

func (r *SystemClusterLeafRow) IsRollbackSegmentRecord() bool {
	return r.SystemType == SystemRecordTypeRollbackSegment
}

// 系统表特定的数据访问方法
func (r *SystemClusterLeafRow) GetTableId() uint64 {
	// 对于数据字典记录，获取表ID
	if r.IsDataDictionaryRecord() && len(r.SystemData) >= 8 {
		return binary.LittleEndian.Uint64(r.SystemData[:8])
	}
	return 0
}

func (r *SystemClusterLeafRow) GetTablespaceId() uint32 {
	// 对于表空间记录，获取表空间ID
	if r.IsTablespaceRecord() && len(r.SystemData) >= 4 {
		return binary.LittleEndian.Uint32(r.SystemData[:4])
	}
	return 0
}

func (r *SystemClusterLeafRow) GetRollbackSegmentId() uint16 {
	// 对于回滚段记录，获取回滚段ID
	if r.IsRollbackSegmentRecord() && len(r.SystemData) >= 2 {
		return binary.LittleEndian.Uint16(r.SystemData[:2])
	}
	return 0
}
