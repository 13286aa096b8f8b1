/**
 * routinator 配置校验
 * @author: sun977
 * @date: 2026.10.14
 * @description: routinator.conf 允许的配置项及其取值校验函数
 */

package routinator

import (
	"net"
	"strconv"
	"strings"
)

// Validator 单个配置值的校验函数
type Validator func(value any) bool

// Field 配置项名称 + 校验函数
type Field struct {
	Key      string
	Validate Validator
}

// RequiredKeys 必须出现的配置项
var RequiredKeys = []string{"repository-dir", "rtr-listen", "http-listen"}

// Schema 允许的配置项，顺序即校验报告顺序
var Schema = []Field{
	{"repository-dir", IsPath},
	{"no-rir-tals", IsBool},
	{"tals", ListOf(IsString)},
	{"extra-tals-dir", IsPath},
	{"exceptions", ListOf(IsPath)},
	{"strict", IsBool},
	{"stale", Enum("reject", "warn", "accept")},
	{"allow-dubious-hosts", IsBool},
	{"disable-rsync", IsBool},
	{"rsync-command", IsString},
	{"rsync-args", ListOf(IsString)},
	{"rsync-count", IsInt},
	{"validation-threads", IsInt},
	{"refresh", IsInt},
	{"retry", IsInt},
	{"expire", IsInt},
	{"history-size", IsInt},
	{"rtr-listen", ListOf(IsIPPort)},
	{"http-listen", ListOf(IsIPPort)},
	{"log-level", Enum("off", "error", "warn", "info", "debug")},
	{"log", Enum("stderr", "syslog", "file", "default")},
	{"syslog-facility", IsString},
	{"log-file", IsPath},
	{"pid-file", IsPath},
	{"working-dir", IsPath},
	{"chroot", IsPath},
	{"tal-labels", IsList},
	{"tal-dir", IsPath},
}

// IsString 字符串
func IsString(value any) bool {
	_, ok := value.(string)
	return ok
}

// IsPath 非空白字符串
func IsPath(value any) bool {
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) != ""
}

// IsBool 布尔值
func IsBool(value any) bool {
	_, ok := value.(bool)
	return ok
}

// IsInt 整数，TOML 解码结果为 int64
func IsInt(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// IsList 任意元素的数组
func IsList(value any) bool {
	_, ok := value.([]any)
	return ok
}

// Enum 取值必须在给定集合内
func Enum(allowed ...string) Validator {
	return func(value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}

// IsIPPort "IP:端口"，按最后一个冒号切分，端口范围 1-65535
func IsIPPort(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return false
	}
	if net.ParseIP(s[:i]) == nil {
		return false
	}
	port, err := strconv.Atoi(s[i+1:])
	return err == nil && port > 0 && port < 65536
}

// ListOf 数组且每个元素都通过 fn
func ListOf(fn Validator) Validator {
	return func(value any) bool {
		items, ok := value.([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if !fn(item) {
				return false
			}
		}
		return true
	}
}
