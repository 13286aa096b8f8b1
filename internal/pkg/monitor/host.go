package monitor

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"mirakextractor/internal/pkg/logger"
)

// HostInfo 主机静态信息，只用于启动日志，不进入报告
type HostInfo struct {
	Hostname        string
	OS              string
	Platform        string
	PlatformVersion string
	KernelVersion   string
	Arch            string
	CPUCores        int
	MemoryTotal     uint64
}

// GetHostInfo 获取主机静态信息，单项失败只记录日志
func GetHostInfo(ctx context.Context) *HostInfo {
	info := &HostInfo{CPUCores: runtime.NumCPU()}

	hInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetHostInfo", "Failed to get host info: "+err.Error(), logger.WarnLevel, nil)
	} else {
		info.Hostname = hInfo.Hostname
		info.OS = hInfo.OS
		info.Platform = hInfo.Platform
		info.PlatformVersion = hInfo.PlatformVersion
		info.KernelVersion = hInfo.KernelVersion
		info.Arch = hInfo.KernelArch
	}

	// host.Info 失败或返回空时回退到编译目标
	if info.OS == "" {
		info.OS = runtime.GOOS
	}
	if info.Arch == "" {
		info.Arch = runtime.GOARCH
	}

	vMem, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetHostInfo", "Failed to get memory info: "+err.Error(), logger.WarnLevel, nil)
	} else {
		info.MemoryTotal = vMem.Total
	}

	return info
}

// Fields 转为日志字段
func (h *HostInfo) Fields() map[string]interface{} {
	return map[string]interface{}{
		"hostname":         h.Hostname,
		"os":               h.OS,
		"platform":         h.Platform,
		"platform_version": h.PlatformVersion,
		"kernel":           h.KernelVersion,
		"arch":             h.Arch,
		"cpu_cores":        h.CPUCores,
		"memory_total":     h.MemoryTotal,
	}
}
