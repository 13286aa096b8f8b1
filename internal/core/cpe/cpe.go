/**
 * CPE 2.3 字符串合成
 * @author: sun977
 * @date: 2026.10.12
 * @description: 将 (part, vendor, product, version[, arch]) 拼装为固定 13 字段的 CPE 2.3 格式化字符串。
 *               合成器本身不做清洗，调用方需先使用 Sanitize 处理每个片段。
 */

package cpe

import (
	"regexp"
	"strings"
)

const (
	prefix   = "cpe:2.3"
	wildcard = "*"
)

// disallowed 匹配 CPE 片段中不允许出现的字符 (冒号是字段分隔符，必须剔除)
var disallowed = regexp.MustCompile(`[^a-zA-Z0-9\-_/.]`)

// Pattern 校验应用类 CPE 名称的格式
var Pattern = regexp.MustCompile(`^cpe:2\.3:[ao]:[A-Za-z0-9\-_/.]*:[A-Za-z0-9\-_/.]*:[A-Za-z0-9\-_/.]*:\*:\*:\*:[^:]+:\*:\*:\*$`)

// Synthesize 合成 CPE 2.3 名称
// chunks 依次为 vendor, product, version, [arch]
// 少于 3 个片段时返回空字符串 (软失败，调用方需要判空)，多余的片段被忽略
func Synthesize(part string, chunks ...string) string {
	if len(chunks) < 3 {
		return ""
	}

	arch := wildcard
	if len(chunks) >= 4 {
		arch = chunks[3]
	}

	fields := []string{
		prefix, part,
		chunks[0], chunks[1], chunks[2], // vendor:product:version
		wildcard, wildcard, wildcard, // update:edition:language
		arch,                         // sw_edition
		wildcard, wildcard, wildcard, // target_sw:target_hw:other
	}
	return strings.Join(fields, ":")
}

// OSName 合成操作系统的 CPE 名称，product 固定追加 _linux 后缀
func OSName(vendor, product, version string) string {
	return Synthesize("o", vendor, product+"_linux", version)
}

// Sanitize 剔除 [A-Za-z0-9-_/.] 以外的所有字符
func Sanitize(chunk string) string {
	return disallowed.ReplaceAllString(chunk, "")
}
