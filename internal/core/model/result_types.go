/**
 * 提取结果模型
 * @author: sun977
 * @date: 2026.10.12
 * @description: 主机识别结果与软件记录的核心结构体，JSON 字段名与 MIRAK 报告格式保持一致。
 */

package model

// Part CPE 中的 part 字段
const (
	PartApplication = "a" // 应用软件
	PartOS          = "o" // 操作系统
)

// AppEntry appsFound 数组中的单个条目
// 字段顺序即 JSON 输出顺序，不可随意调整
type AppEntry struct {
	Type    string `json:"type"`
	Vendor  string `json:"vendor"`
	Product string `json:"product"`
	Version string `json:"version"`
	CPEName string `json:"cpeName"`
}

// Headers 实现 TabularData 接口
func (e AppEntry) Headers() []string {
	return []string{"Type", "Vendor", "Product", "Version", "CPE"}
}

// Rows 实现 TabularData 接口
func (e AppEntry) Rows() [][]string {
	return [][]string{{e.Type, e.Vendor, e.Product, e.Version, e.CPEName}}
}

// HostIdentity 操作系统身份
// Product 只来自一个身份源，Vendor 由 Product 推导
type HostIdentity struct {
	Vendor  string
	Product string
	Version string
	CPEName string
	Source  string // 命中的身份源 (os-release/lsb-release/issue/manual)，不进入报告
}

// Entry 转换为报告条目
func (h HostIdentity) Entry() AppEntry {
	return AppEntry{
		Type:    PartOS,
		Vendor:  h.Vendor,
		Product: h.Product,
		Version: h.Version,
		CPEName: h.CPEName,
	}
}

// SoftwareRecord 包管理器发现的应用软件
// CPEName 在构造时计算一次，之后不再重算
type SoftwareRecord struct {
	Vendor  string
	Product string
	Version string
	Arch    string // 可选，只参与 CPE 合成
	CPEName string
}

// Entry 转换为报告条目
func (r SoftwareRecord) Entry() AppEntry {
	return AppEntry{
		Type:    PartApplication,
		Vendor:  r.Vendor,
		Product: r.Product,
		Version: r.Version,
		CPEName: r.CPEName,
	}
}

// Connection 监听连接的最小抽象
type Connection struct {
	Status    string
	LocalPort uint32
	PID       int32
}

// 地址族
const (
	FamilyIPv4 = 4
	FamilyIPv6 = 6
)

// InterfaceAddr 网卡地址
type InterfaceAddr struct {
	Family  int // FamilyIPv4 / FamilyIPv6
	Address string
}

// Interface 网卡及其地址，按系统枚举顺序排列
type Interface struct {
	Name  string
	Addrs []InterfaceAddr
}
