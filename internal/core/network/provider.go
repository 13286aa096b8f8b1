/**
 * 网络信息采集
 * @author: sun977
 * @date: 2026.10.14
 * @description: 通过 gopsutil 读取监听连接、网卡地址与进程名，为报告的 redeExternal 部分提供数据
 */

package network

import (
	"context"
	"fmt"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"mirakextractor/internal/core/model"
	"mirakextractor/internal/pkg/utils"
)

// Provider 网络信息来源
type Provider interface {
	// Connections 返回所有 inet 连接
	Connections(ctx context.Context) ([]model.Connection, error)
	// Interfaces 按系统枚举顺序返回网卡及地址
	Interfaces(ctx context.Context) ([]model.Interface, error)
	// ProcessName 根据 PID 查询进程名
	ProcessName(ctx context.Context, pid int32) (string, error)
}

// GopsutilProvider 基于 gopsutil 的实现
type GopsutilProvider struct{}

// NewGopsutilProvider 创建 gopsutil 网络信息来源
func NewGopsutilProvider() *GopsutilProvider {
	return &GopsutilProvider{}
}

// Connections 实现 Provider
func (GopsutilProvider) Connections(ctx context.Context) ([]model.Connection, error) {
	stats, err := psnet.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	conns := make([]model.Connection, 0, len(stats))
	for _, s := range stats {
		conns = append(conns, model.Connection{
			Status:    s.Status,
			LocalPort: s.Laddr.Port,
			PID:       s.Pid,
		})
	}
	return conns, nil
}

// Interfaces 实现 Provider
// gopsutil 的地址为 CIDR 形式，这里拆成纯地址并标注地址族，非 IP 地址 (MAC 等) 丢弃
func (GopsutilProvider) Interfaces(ctx context.Context) ([]model.Interface, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	ifaces := make([]model.Interface, 0, len(stats))
	for _, s := range stats {
		iface := model.Interface{Name: s.Name}
		for _, a := range s.Addrs {
			family := utils.IPFamily(a.Addr)
			if family == 0 {
				continue
			}
			iface.Addrs = append(iface.Addrs, model.InterfaceAddr{
				Family:  family,
				Address: utils.NormalizeIP(a.Addr),
			})
		}
		ifaces = append(ifaces, iface)
	}
	return ifaces, nil
}

// ProcessName 实现 Provider
func (GopsutilProvider) ProcessName(ctx context.Context, pid int32) (string, error) {
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return "", err
	}
	return proc.NameWithContext(ctx)
}
