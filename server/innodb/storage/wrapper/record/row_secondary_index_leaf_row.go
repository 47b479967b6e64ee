package record

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
	"github.com/go-innodb/storage-engine/server/common"
	"github.com/go-innodb/storage-engine/server/innodb/basic"
	"github.com/go-innodb/storage-engine/server/innodb/metadata"
	"github.com/go-innodb/storage-engine/util"
)

// TODO: This file needs complete implementation
// Currently disabled due to missing dependencies

// Placeholder to avoid compilation errors

// SecondaryIndexLeafRowHeader 辅助索引叶子节点行头部
type SecondaryIndexLeafRowHeader struct {
	basic.FieldDataHeader

	FrmMeta metadata.TableRowTuple

	deleteFlag bool
	minRecFlag bool
	nOwned     uint16
	heapNo     uint16
	recordType uint8
	nextRecord uint16
	Content    []byte

	// 辅助索引特有字段
	indexKeyContent     []byte // 索引键内容
	primaryKeyContent   []byte // 主键内容
	VarLengthContent    []byte
	NullContent         []byte
	VarLengthContentMap map[byte]uint16
}

// NewSecondaryIndexLeafRowHeader 创建辅助索引叶子节点行头部
func NewSecondaryIndexLeafRowHeader(frmMeta metadata.TableRowTuple) basic.FieldDataHeader {
	return &SecondaryIndexLeafRowHeader{
		FrmMeta:             frmMeta,
		deleteFlag:          false,
		minRecFlag:          false,
		nOwned:              1,
		heapNo:              0,
		nextRecord:          0,
		Content:             []byte{util.ConvertBits2Byte("00000000")},
		indexKeyContent:     make([]byte, 0),
		primaryKeyContent:   make([]byte, 0),
		VarLengthContent:    make([]byte, 0),
		NullContent:         make([]byte, 0),
		VarLengthContentMap: make(map[byte]uint16),
	}
}

// NewSecondaryIndexLeafRowHeaderWithContents 从字节内容创建辅助索引叶子节点行头部
func NewSecondaryIndexLeafRowHeaderWithContents(frmMeta metadata.TableRowTuple, content []byte) basic.FieldDataHeader {
	header := &SecondaryIndexLeafRowHeader{
		FrmMeta:             frmMeta,
		VarLengthContentMap: make(map[byte]uint16),
	}

	// 解析内容（简化实现）
	if len(content) >= 5 {
		header.Content = content[len(content)-5:]
	} else {
		header.Content = make([]byte, 5)
	}

	return header
}

// 实现FieldDataHeader接口的方法
func (h *SecondaryIndexLeafRowHeader) SetDeleteFlag(delete bool) {
	if delete {
		h.Content[0] = util.ConvertValueOfBitsInBytes(h.Content[0], common.DELETE_OFFSET, common.COMMON_TRUE)
	} else {
		h.Content[0] = util.ConvertValueOfBitsInBytes(h.Content[0], common.DELETE_OFFSET, common.COMMON_FALSE)
	}
	h.deleteFlag = delete
}

func (h *SecondaryIndexLeafRowHeader) GetDeleteFlag() bool {
	value := util.ReadBytesByIndexBit(h.Content[0], common.DELETE_OFFSET)
	return value == "1"
}

func (h *SecondaryIndexLeafRowHeader) SetRecMinFlag(flag bool) {
	if flag {
		h.Content[0] = util.ConvertValueOfBitsInBytes(h.Content[0], common.MIN_REC_OFFSET, common.COMMON_TRUE)
	} else {
		h.Content[0] = util.ConvertValueOfBitsInBytes(h.Content[0], common.MIN_REC_OFFSET, common.COMMON_FALSE)
	}
	h.minRecFlag = flag
}

func (h *SecondaryIndexLeafRowHeader) GetRecMinFlag() bool {
	value := util.ReadBytesByIndexBit(h.Content[0], common.MIN_REC_OFFSET)
	return value == "1"
}

func (h *SecondaryIndexLeafRowHeader) SetNOwned(size byte) {
	h.Content[0] = util.ConvertBits2Byte(util.WriteBitsByStart(h.Content[0], util.TrimLeftPaddleBitString(size, 4), 4, 8))
	h.nOwned = uint16(size)
}

func (h *SecondaryIndexLeafRowHeader) GetNOwned() byte {
	return util.LeftPaddleBitString(util.ReadBytesByIndexBitByStart(h.Content[0], 4, 8), 4)
}

func (h *SecondaryIndexLeafRowHeader) SetHeapNo(heapNo uint16) {
	result := util.ConvertUInt2Bytes(heapNo)
	resultArray := util.ConvertBytes2BitStrings(result)
	h.Content[1] = util.ConvertString2Byte(strings.Join(resultArray[3:11], ""))
	h.Content[2] = util.ConvertString2Byte(util.WriteBitsByStart(h.Content[2], resultArray[11:16], 0, 5))
	h.heapNo = heapNo
}

func (h *SecondaryIndexLeafRowHeader) GetHeapNo() uint16 {
	heapNo := make([]string, 0)
	heapNo = append(heapNo, "0", "0", "0")
	heapNo = append(heapNo, util.ConvertByte2BitsString(h.Content[1])...)
	heapNo = append(heapNo, util.ConvertByte2BitsString(h.Content[2])[0:5]...)

	result := util.ConvertBits2Bytes(strings.Join(heapNo, ""))
	bytesBuffer := bytes.NewBuffer(result)
	var rs uint16
	binary.Read(bytesBuffer, binary.BigEndian, &rs)
	return rs
}

func (h *SecondaryIndexLeafRowHeader) SetRecordType(recordType uint8) {
	resultArray := util.ConvertByte2BitsString(recordType)
	h.Content[2] = util.ConvertString2Byte(util.WriteBitsByStart(h.Content[2], resultArray[5:8], 5, 8))
	h.recordType = recordType
}

func (h *SecondaryIndexLeafRowHeader) GetRecordType() uint8 {
	recordType := make([]string, 0)
	recordType = append(recordType, "0", "0", "0", "0", "0")
	recordType = append(recordType, util.ConvertByte2BitsString(h.Content[2])[5:8]...)
	return uint8(util.ReadUB2Byte2Int(util.ConvertBits2Bytes(strings.Join(recordType, ""))))
}

func (h *SecondaryIndexLeafRowHeader) SetNextRecord(nextRecord uint16) {
	h.Content[3] = util.ConvertUInt2Bytes(nextRecord)[0]
	h.Content[4] = util.ConvertUInt2Bytes(nextRecord)[1]
	h.nextRecord = nextRecord
}

func (h *SecondaryIndexLeafRowHeader) GetNextRecord() uint16 {
	return util.ReadUB2Byte2Int(h.Content[3:5])
}

func (h *SecondaryIndexLeafRowHeader) GetRowHeaderLength() uint16 {
	return uint16(len(h.Content) + len(h.VarLengthContent) + len(h.NullContent) + len(h.indexKeyContent) + len(h.primaryKeyContent))
}

func (h *SecondaryIndexLeafRowHeader) ToByte() []byte {
	result := make([]byte, 0)
	result = append(result, h.indexKeyContent...)
	result = append(result, h.primaryKeyContent...)
	result = append(result, h.VarLengthContent...)
	result = append(result, h.NullContent...)
	result = append(result, h.Content...)
	return result
}

// 辅助索引特有方法
func (h *SecondaryIndexLeafRowHeader) SetValueNull(nullValue byte, index byte) {
	nullStrArrays := util.ConvertBytes2BitStrings(h.NullContent)

	if index < byte(len(nullStrArrays)) {
		if len(nullStrArrays) == 0 {
			nullStrArrays = append(nullStrArrays, "0", "0", "0", "0", "0", "0", "0", "0")
		}
		nullStrArrays[byte(len(nullStrArrays))-1-index] = strconv.Itoa(int(nullValue))
	} else {
		newNullStrArrays := make([]string, 0)
		newNullStrArrays = append(newNullStrArrays, "0", "0", "0", "0", "0", "0", "0")
		newNullStrArrays = append(newNullStrArrays, strconv.Itoa(int(nullValue)))
		newNullStrArrays = append(newNullStrArrays, nullStrArrays...)
		nullStrArrays = newNullStrArrays
	}

	h.NullContent = util.ConvertStringArrays2BytesArrays(nullStrArrays)
}

func (h *SecondaryIndexLeafRowHeader) IsValueNullByIdx(index byte) bool {
	nullStrArrays := util.ConvertBytes2BitStrings(h.NullContent)
	if int(index) >= len(nullStrArrays) {
		return false
	}
	return nullStrArrays[byte(len(nullStrArrays))-1-index] == "1"
}

func (h *SecondaryIndexLeafRowHeader) GetVarValueLengthByIndex(index byte) int {
	if length, exists := h.VarLengthContentMap[index]; exists {
		return int(length)
	}
	return 0
}

// SecondaryIndexLeafRowData 辅助索引叶子节点行数据
type SecondaryIndexLeafRowData struct {
	basic.FieldDataValue
	Content     []byte
	meta        metadata.TableRowTuple
	RowValues   []basic.Value
	IndexKeys   []basic.Value // 索引键值
	PrimaryKeys []basic.Value // 主键值
}

// NewSecondaryIndexLeafRowData 创建辅助索引叶子节点行数据
func NewSecondaryIndexLeafRowData(meta metadata.TableRowTuple) basic.FieldDataValue {
	return &SecondaryIndexLeafRowData{
		Content:     make([]byte, 0),
		meta:        meta,
		RowValues:   make([]basic.Value, 0),
		IndexKeys:   make([]basic.Value, 0),
		PrimaryKeys: make([]basic.Value, 0),
	}
}

// NewSecondaryIndexLeafRowDataWithContents 从内容创建辅助索引叶子节点行数据
func NewSecondaryIndexLeafRowDataWithContents(content []byte, meta metadata.TableRowTuple) basic.FieldDataValue {
	return &SecondaryIndexLeafRowData{
		Content:     content,
		meta:        meta,
		RowValues:   make([]basic.Value, 0),
		IndexKeys:   make([]basic.Value, 0),
		PrimaryKeys: make([]basic.Value, 0),
	}
}

func (d *SecondaryIndexLeafRowData) WriteBytesWithNull(content []byte) {
	d.Content = util.WriteWithNull(d.Content, content)
}

func (d *SecondaryIndexLeafRowData) GetPrimaryKey() []byte {
	if len(d.PrimaryKeys) > 0 {
		return d.PrimaryKeys[0].Bytes()
	}
	return nil
}

func (d *SecondaryIndexLeafRowData) GetRowDataLength() uint16 {
	return uint16(len(d.Content))
}

func (d *SecondaryIndexLeafRowData) ToByte() []byte {
	return d.Content
}

func (d *SecondaryIndexLeafRowData) ReadValue(index int) basic.Value {
	if index >= 0 && index < len(d.RowValues) {
		return d.RowValues[index]
	}
	return basic.NewStringValue("")
}

// SecondaryIndexLeafRow 辅助索引叶子节点行记录
type SecondaryIndexLeafRow struct {
	basic.Row
	header      basic.FieldDataHeader
	value       basic.FieldDataValue
	FrmMeta     metadata.TableRowTuple
	RowValues   []basic.Value
	IndexKeys   []basic.Value // 索引键值
	PrimaryKeys []basic.Value // 主键引用
}

// NewSecondaryIndexLeafRow 创建辅助索引叶子节点行记录
func NewSecondaryIndexLeafRow(meta metadata.TableRowTuple, indexKeys []basic.Value, primaryKeys []basic.Value) basic.Row {
	return &SecondaryIndexLeafRow{
		header:      NewSecondaryIndexLeafRowHeader(meta),
		value:       NewSecondaryIndexLeafRowData(meta),
		FrmMeta:     meta,
		RowValues:   make([]basic.Value, 0),
		IndexKeys:   indexKeys,
		PrimaryKeys: primaryKeys,
	}
}

// NewSecondaryIndexLeafRowWithContent 从内容创建辅助索引叶子节点行记录
func NewSecondaryIndexLeafRowWithContent(content []byte, meta metadata.TableRowTuple) basic.Row {
	return &SecondaryIndexLeafRow{
		header:      NewSecondaryIndexLeafRowHeaderWithContents(meta, content),
		value:       NewSecondaryIndexLeafRowDataWithContents(content, meta),
		FrmMeta:     meta,
		RowValues:   make([]basic.Value, 0),
		IndexKeys:   make([]basic.Value, 0),
		PrimaryKeys: make([]basic.Value, 0),
	}
}

// 实现basic.Row接口
func (r *SecondaryIndexLeafRow) Less(than basic.Row) bool {
	if than.IsInfimumRow() {
		return false
	}
	if than.IsSupremumRow() {
		return true
	}

	// 辅助索引按索引键排序，如果索引键相等则按主键排序
	if otherSecondary, ok := than.(*SecondaryIndexLeafRow); ok {
		// 比较索引键
		for i, key := range r.IndexKeys {
			if i >= len(otherSecondary.IndexKeys) {
				return false
			}
			cmp := key.Compare(otherSecondary.IndexKeys[i])
			if cmp != 0 {
				return cmp < 0
			}
		}
		// 索引键相等，比较主键
		for i, key := range r.PrimaryKeys {
			if i >= len(otherSecondary.PrimaryKeys) {
				return false
			}
			cmp := key.Compare(otherSecondary.PrimaryKeys[i])
			if cmp != 0 {
				return cmp < 0
			}
		}
	}
	return false
}

func (r *SecondaryIndexLeafRow) ToByte() []byte {
	return append(r.header.ToByte(), r.value.ToByte()...)
}

func (r *SecondaryIndexLeafRow) IsInfimumRow() bool {
	return r.header.GetRecordType() == 2
}

func (r *SecondaryIndexLeafRow) IsSupremumRow() bool {
	return r.header.GetRecordType() == 3
}

func (r *SecondaryIndexLeafRow) GetPageNumber() uint32 {
	if len(r.PrimaryKeys) > 0 {
		// 通过主键查找对应的聚簇索引页面号
		return 0 // 简化实现，实际需要通过主键查找
	}
	return 0
}

func (r *SecondaryIndexLeafRow) WriteWithNull(content []byte) {
	r.value.WriteBytesWithNull(content)
}

func (r *SecondaryIndexLeafRow) WriteBytesWithNullWithsPos(content []byte, index byte) {
	r.value.WriteBytesWithNull(content)
}

func (r *SecondaryIndexLeafRow) GetRowLength() uint16 {
	return r.header.GetRowHeaderLength() + r.value.GetRowDataLength()
}

func (r *SecondaryIndexLeafRow) GetHeaderLength() uint16 {
	return r.header.GetRowHeaderLength()
}

func (r *SecondaryIndexLeafRow) GetPrimaryKey() basic.Value {
	if len(r.PrimaryKeys) > 0 {
		return r.PrimaryKeys[0]
	}
	return basic.NewStringValue("")
}

func (r *SecondaryIndexLeafRow) GetFieldLength() int {
	return r.FrmMeta.GetColumnLength()
}

func (r *SecondaryIndexLeafRow) ReadValueByIndex(index int) basic.Value {
	return r.value.ReadValue(index)
}

func (r *SecondaryIndexLeafRow) SetNOwned(cnt byte) {
	r.header.SetNOwned(cnt)
}

func (r *SecondaryIndexLeafRow) GetNOwned() byte {
	return r.header.GetNOwned()
}

func (r *SecondaryIndexLeafRow) GetNextRowOffset() uint16 {
	return r.header.GetNextRecord()
}

func (r *SecondaryIndexLeafRow) SetNextRowOffset(offset uint16) {
	r.header.SetNextRecord(offset)
}

func (r *SecondaryIndexLeafRow) GetHeapNo() uint16 {
	return r.header.GetHeapNo()
}

func (r *SecondaryIndexLeafRow) SetHeapNo(heapNo uint16) {
	r.header.SetHeapNo(heapNo)
}

func (r *SecondaryIndexLeafRow) SetTransactionId(trxId uint64) {
	// 辅助索引不存储事务ID
}

func (r *SecondaryIndexLeafRow) GetValueByColName(colName string) basic.Value {
	if r.FrmMeta != nil {
		_, pos := r.FrmMeta.GetColumnDescInfo(colName)
		if pos >= 0 && pos < len(r.RowValues) {
			return r.RowValues[pos]
		}
	}
	return basic.NewStringValue("")
}

func (r *SecondaryIndexLeafRow) ToString() string {
	return "SecondaryIndexLeafRow"
}

// 辅助索引特有方法
func (r *SecondaryIndexLeafRow) GetIndexKeys() []basic.Value {
	return r.IndexKeys
}

func (r *SecondaryIndexLeafRow) SetIndexKeys(keys []basic.Value) {
	r.IndexKeys = keys
}

func (r *SecondaryIndexLeafRow) GetPrimaryKeys() []basic.Value {
	return r.PrimaryKeys
}

func (r *SecondaryIndexLeafRow) SetPrimaryKeys(keys []basic.Value) {
	r.PrimaryKeys = keys
}
