/**
 * 软件记录人工修正规则表
 * @author: sun977
 * @date: 2026.10.13
 * @description: 包管理器的 vendor 字段多为自由文本，不可靠。这里集中维护按顺序匹配的修正规则，
 *               发现阶段与报告聚合阶段共用同一份厂商钉选表，避免两处逻辑各自演化。
 */

package normalize

import (
	"fmt"

	"mirakextractor/internal/core/cpe"
)

// 原始记录下标 (name, vendor, version[, arch])
const (
	idxName = iota
	idxVendor
	idxVersion
)

// VendorTagSuffix 无法可靠确定厂商时使用的合成厂商后缀
const VendorTagSuffix = "-tag_rec-app"

// vendorPins 产品名 -> 官方厂商，无论来源如何都强制生效
var vendorPins = map[string]string{
	"routinator": "nlnetlabs",
}

// Rule 单条修正规则，第一条匹配的规则生效
type Rule struct {
	Name  string
	Match func(name string) bool
	Apply func(raw []string, osProduct string)
}

// Rules 按顺序检查的修正规则表
var Rules = []Rule{
	{
		Name:  "vendor-pin",
		Match: func(name string) bool { _, ok := vendorPins[name]; return ok },
		Apply: func(raw []string, _ string) { raw[idxVendor] = vendorPins[raw[idxName]] },
	},
	{
		Name:  "python3",
		Match: func(name string) bool { return name == "python3" },
		Apply: func(raw []string, _ string) {
			raw[idxName] = "python"
			raw[idxVendor] = "python"
		},
	},
	{
		Name:  "vendor-tag",
		Match: func(string) bool { return true },
		Apply: func(raw []string, osProduct string) {
			raw[idxVendor] = fmt.Sprintf("%s%s", osProduct, VendorTagSuffix)
		},
	},
}

// Record 原地清洗并修正一条原始记录
// 少于 3 个字段的记录保持原样，交给目录做字段数校验
func Record(raw []string, osProduct string) {
	if len(raw) <= idxVersion {
		return
	}

	raw[idxVersion] = cpe.Sanitize(raw[idxVersion])
	raw[idxName] = cpe.Sanitize(raw[idxName])

	for _, rule := range Rules {
		if rule.Match(raw[idxName]) {
			rule.Apply(raw, osProduct)
			return
		}
	}
}

// PinnedVendor 返回产品的钉选厂商
func PinnedVendor(product string) (string, bool) {
	vendor, ok := vendorPins[product]
	return vendor, ok
}
