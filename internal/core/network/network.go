package network

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"mirakextractor/internal/core/model"
	"mirakextractor/internal/pkg/logger"
)

const (
	// StatusListen gopsutil 中监听状态的取值
	StatusListen = "LISTEN"
	// UnknownProcess 无法确定进程时的占位名
	UnknownProcess = "N/A"

	loopbackName   = "lo"
	loopbackPrefix = "127."
)

// dottedQuad 0-255 的四段点分十进制
var dottedQuad = regexp.MustCompile(`^((25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])\.){3}(25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])$`)

// ValidateIPv4 校验主机 IP，空字符串表示未找到地址，视为合法
func ValidateIPv4(ip string) error {
	if ip == "" {
		return nil
	}
	if !dottedQuad.MatchString(ip) {
		return fmt.Errorf("%w: %q", model.ErrInvalidIPFormat, ip)
	}
	return nil
}

// PrimaryIPv4 返回第一个非回环的 IPv4 地址
// 跳过名为 lo 的网卡以及 127. 开头的地址，找不到时返回空字符串
func PrimaryIPv4(ctx context.Context, p Provider) (string, error) {
	ifaces, err := p.Interfaces(ctx)
	if err != nil {
		return "", err
	}
	for _, iface := range ifaces {
		if iface.Name == loopbackName {
			continue
		}
		for _, addr := range iface.Addrs {
			if addr.Family != model.FamilyIPv4 {
				continue
			}
			if addr.Address != "" && !strings.HasPrefix(addr.Address, loopbackPrefix) {
				return addr.Address, nil
			}
		}
	}
	logger.Warnf("no non-loopback IPv4 address found")
	return "", nil
}

// ListeningPorts 返回处于监听状态的端口 (按连接枚举顺序，允许重复) 以及端口到进程名的映射
func ListeningPorts(ctx context.Context, p Provider) ([]uint32, *model.PortProcessMap, error) {
	conns, err := p.Connections(ctx)
	if err != nil {
		return nil, nil, err
	}

	ports := make([]uint32, 0)
	byPort := model.NewPortProcessMap()
	for _, conn := range conns {
		if conn.Status != StatusListen {
			continue
		}
		ports = append(ports, conn.LocalPort)
		byPort.Set(conn.LocalPort, processName(ctx, p, conn.PID))
	}
	return ports, byPort, nil
}

// processName PID 为 0 或查询失败时返回 N/A
func processName(ctx context.Context, p Provider, pid int32) string {
	if pid == 0 {
		return UnknownProcess
	}
	name, err := p.ProcessName(ctx, pid)
	if err != nil {
		logger.WithField("pid", pid).Debugf("process lookup failed: %v", err)
		return UnknownProcess
	}
	return name
}
