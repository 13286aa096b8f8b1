/**
 * 报告聚合
 * @author: sun977
 * @date: 2026.10.14
 * @description: 收集操作系统身份、软件记录、网络信息与关键文件信息，
 *               生成与 MIRAK 报告格式一致的文档。appsFound 只追加、保持顺序。
 */

package reporter

import (
	"mirakextractor/internal/core/model"
	"mirakextractor/internal/core/normalize"
)

// RedeExternal 主机网络信息
type RedeExternal struct {
	HostIP     string                `json:"hostIP"`
	OpenPorts  []uint32              `json:"openPorts"`
	PortsUseBy *model.PortProcessMap `json:"portsUseBy"`

	set bool // 未写入网络信息时输出 {}
}

// IsSet 是否已写入网络信息
func (r RedeExternal) IsSet() bool {
	return r.set
}

// Document 导出文档，字段顺序即 JSON 顺序
type Document struct {
	AppsFound      []model.AppEntry `json:"appsFound"`
	RedeExternal   RedeExternal     `json:"redeExternal"`
	StrategicFiles []model.FileInfo `json:"strategicFiles"`
}

// Report 单次运行的报告聚合器，不并发使用
type Report struct {
	apps      []model.AppEntry
	rede      RedeExternal
	strategic []model.FileInfo
}

// New 创建空报告
func New() *Report {
	return &Report{
		apps:      []model.AppEntry{},
		strategic: []model.FileInfo{},
	}
}

// AddApps 追加一个软件条目，routinator 的厂商强制修正为官方厂商
func (r *Report) AddApps(entry model.AppEntry) {
	if vendor, ok := normalize.PinnedVendor(entry.Product); ok {
		entry.Vendor = vendor
	}
	r.apps = append(r.apps, entry)
}

// AddRedeExternal 写入网络信息，重复调用以最后一次为准
func (r *Report) AddRedeExternal(hostIP string, openPorts []uint32, portsUseBy *model.PortProcessMap) {
	ports := make([]uint32, len(openPorts))
	copy(ports, openPorts)
	r.rede = RedeExternal{
		HostIP:     hostIP,
		OpenPorts:  ports,
		PortsUseBy: portsUseBy.Clone(),
		set:        true,
	}
}

// AddStrategicFiles 写入关键文件信息，整体替换
func (r *Report) AddStrategicFiles(files []model.FileInfo) {
	r.strategic = append([]model.FileInfo{}, files...)
}

// OSProduct 返回第一个 type == "o" 条目的产品名，没有时返回空字符串
func (r *Report) OSProduct() string {
	for _, app := range r.apps {
		if app.Type == model.PartOS {
			return app.Product
		}
	}
	return ""
}

// Apps 返回 appsFound 的副本
func (r *Report) Apps() []model.AppEntry {
	return append([]model.AppEntry{}, r.apps...)
}

// Finalize 再次对全部条目执行厂商修正，可重复调用
func (r *Report) Finalize() {
	for i := range r.apps {
		if vendor, ok := normalize.PinnedVendor(r.apps[i].Product); ok {
			r.apps[i].Vendor = vendor
		}
	}
}

// Dict 返回报告文档的深拷贝，不改变聚合器状态
func (r *Report) Dict() Document {
	doc := Document{
		AppsFound:      append([]model.AppEntry{}, r.apps...),
		StrategicFiles: append([]model.FileInfo{}, r.strategic...),
	}
	if r.rede.set {
		doc.RedeExternal = RedeExternal{
			HostIP:     r.rede.HostIP,
			OpenPorts:  append([]uint32{}, r.rede.OpenPorts...),
			PortsUseBy: r.rede.PortsUseBy.Clone(),
			set:        true,
		}
	}
	return doc
}
