// Package catalog 保存经过形状校验的软件记录
package catalog

import (
	"fmt"

	"mirakextractor/internal/core/cpe"
	"mirakextractor/internal/core/model"
)

// Catalog 只追加的软件记录集合
// 单一所有者使用，不做加锁；相同记录允许重复加入
type Catalog struct {
	records []model.SoftwareRecord
}

// New 创建空的软件目录
func New() *Catalog {
	return &Catalog{records: make([]model.SoftwareRecord, 0)}
}

// Add 校验原始记录 (name, vendor, version[, arch]) 并追加
// 字段数不是 3 或 4 时返回 ErrInvalidArity，目录保持不变
func (c *Catalog) Add(raw []string) error {
	if len(raw) != 3 && len(raw) != 4 {
		return fmt.Errorf("%w: got %d fields %q", model.ErrInvalidArity, len(raw), raw)
	}

	name, vendor, version := raw[0], raw[1], raw[2]
	chunks := []string{vendor, name, version}
	record := model.SoftwareRecord{
		Vendor:  vendor,
		Product: name,
		Version: version,
	}
	if len(raw) == 4 {
		record.Arch = raw[3]
		chunks = append(chunks, raw[3])
	}
	record.CPEName = cpe.Synthesize(model.PartApplication, chunks...)

	c.records = append(c.records, record)
	return nil
}

// List 按插入顺序返回所有已接收的记录
func (c *Catalog) List() []model.SoftwareRecord {
	out := make([]model.SoftwareRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Len 已接收的记录数
func (c *Catalog) Len() int {
	return len(c.records)
}
