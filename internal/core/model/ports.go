package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// PortProcessMap 端口 -> 进程名，保持首次出现的顺序
// 同一端口再次写入只更新进程名，不改变位置
type PortProcessMap struct {
	order  []uint32
	values map[uint32]string
}

// NewPortProcessMap 创建空映射
func NewPortProcessMap() *PortProcessMap {
	return &PortProcessMap{values: make(map[uint32]string)}
}

// Set 写入端口对应的进程名
func (m *PortProcessMap) Set(port uint32, process string) {
	if m.values == nil {
		m.values = make(map[uint32]string)
	}
	if _, ok := m.values[port]; !ok {
		m.order = append(m.order, port)
	}
	m.values[port] = process
}

// Get 读取端口对应的进程名
func (m *PortProcessMap) Get(port uint32) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[port]
	return v, ok
}

// Ports 按插入顺序返回端口
func (m *PortProcessMap) Ports() []uint32 {
	if m == nil {
		return nil
	}
	return append([]uint32(nil), m.order...)
}

// Len 端口数量
func (m *PortProcessMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Clone 深拷贝
func (m *PortProcessMap) Clone() *PortProcessMap {
	out := NewPortProcessMap()
	if m == nil {
		return out
	}
	for _, port := range m.order {
		out.Set(port, m.values[port])
	}
	return out
}

// MarshalJSON 以插入顺序输出 {"<port>": "<process>"}，不转义 HTML 字符
func (m *PortProcessMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, port := range m.Ports() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.FormatUint(uint64(port), 10)))
		buf.WriteByte(':')

		var value bytes.Buffer
		enc := json.NewEncoder(&value)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(m.values[port]); err != nil {
			return nil, err
		}
		buf.Write(bytes.TrimRight(value.Bytes(), "\n"))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
