package utils

import (
	"net"
	"strings"
)

// NormalizeIP 标准化IP地址：
// - 若带前缀长度 (10.0.0.5/24)，去掉前缀
// - 若是带端口的地址，去掉端口
// - 若是 IPv4-mapped IPv6 (::ffff:192.0.2.1)，转成纯 IPv4
// - 否则按原样返回（包括真 IPv6）
func NormalizeIP(input string) string {
	ip := strings.TrimSpace(input)
	if ip == "" {
		return ""
	}

	if i := strings.IndexByte(ip, '/'); i >= 0 {
		ip = ip[:i]
	}
	if h, _, err := net.SplitHostPort(ip); err == nil {
		ip = h
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ip
	}
	if v4 := parsed.To4(); v4 != nil {
		return v4.String()
	}
	return parsed.String()
}

// IPFamily 返回地址族 4 / 6，无法解析时返回 0
func IPFamily(input string) int {
	parsed := net.ParseIP(NormalizeIP(input))
	switch {
	case parsed == nil:
		return 0
	case parsed.To4() != nil:
		return 4
	default:
		return 6
	}
}
