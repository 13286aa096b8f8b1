package identity

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"mirakextractor/internal/core/model"
)

// SourceKind 身份源类型
type SourceKind string

const (
	SourceOSRelease  SourceKind = "os-release"
	SourceLSBRelease SourceKind = "lsb-release"
	SourceIssue      SourceKind = "issue"
	SourceManual     SourceKind = "manual" // 交互输入，不可配置
)

// Source 身份源: 类型 + 文件路径
type Source struct {
	Kind SourceKind
	Path string
}

// DefaultPaths 各身份源的默认文件路径
var DefaultPaths = map[SourceKind]string{
	SourceOSRelease:  "/etc/os-release",
	SourceLSBRelease: "/etc/lsb-release",
	SourceIssue:      "/etc/issue",
}

// DefaultSources 默认尝试顺序
func DefaultSources() []Source {
	return []Source{
		{Kind: SourceOSRelease, Path: DefaultPaths[SourceOSRelease]},
		{Kind: SourceLSBRelease, Path: DefaultPaths[SourceLSBRelease]},
		{Kind: SourceIssue, Path: DefaultPaths[SourceIssue]},
	}
}

// ParseSourceKind 解析配置中的身份源名称
func ParseSourceKind(name string) (SourceKind, error) {
	kind := SourceKind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := parsers[kind]; !ok {
		return "", fmt.Errorf("unknown identity source %q", name)
	}
	return kind, nil
}

type parseFunc func(content string) (product, version string, err error)

// parsers 身份源类型 -> 解析函数
var parsers = map[SourceKind]parseFunc{
	SourceOSRelease:  parseOSRelease,
	SourceLSBRelease: parseLSBRelease,
	SourceIssue:      parseIssue,
}

// issuePattern 匹配 /etc/issue 开头的 "<发行版> ... <版本>"
// 使用 regexp2 以获得 Unicode 语义的 \w 与 \d
var issuePattern = regexp2.MustCompile(`^([A-Za-z]+)[\w\s/]*\s+(\d+(?:\.\d+){0,2})`, regexp2.None)

// parseKeyValue 解析 KEY=VALUE 行，在第一个等号处切分并去除双引号，遇到空行停止
func parseKeyValue(content string, lowerValues bool) map[string]string {
	info := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			break
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if lowerValues {
			value = strings.ToLower(value)
		}
		info[key] = strings.Trim(value, `"`)
	}
	return info
}

// parseOSRelease VERSION_ID 按文件原样返回，不截断
func parseOSRelease(content string) (string, string, error) {
	info := parseKeyValue(content, false)
	if info["ID"] == "" || info["VERSION_ID"] == "" {
		return "", "", fmt.Errorf("%w: ID or VERSION_ID missing", model.ErrMissingIdentityInfo)
	}
	return info["ID"], info["VERSION_ID"], nil
}

func parseLSBRelease(content string) (string, string, error) {
	info := parseKeyValue(content, true)
	if info["DISTRIB_ID"] == "" || info["DISTRIB_RELEASE"] == "" {
		return "", "", fmt.Errorf("%w: DISTRIB_ID or DISTRIB_RELEASE missing", model.ErrMissingIdentityInfo)
	}
	return info["DISTRIB_ID"], info["DISTRIB_RELEASE"], nil
}

func parseIssue(content string) (string, string, error) {
	m, err := issuePattern.FindStringMatch(content)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", model.ErrMissingIdentityInfo, err)
	}
	if m == nil {
		return "", "", fmt.Errorf("%w: issue banner does not match", model.ErrMissingIdentityInfo)
	}
	return strings.ToLower(m.GroupByNumber(1).String()), m.GroupByNumber(2).String(), nil
}

// SourcesFrom 按配置的名称顺序构造身份源，pathFor 返回名称对应的文件路径
func SourcesFrom(names []string, pathFor func(kind string) string) ([]Source, error) {
	sources := make([]Source, 0, len(names))
	for _, name := range names {
		kind, err := ParseSourceKind(name)
		if err != nil {
			return nil, err
		}
		path := DefaultPaths[kind]
		if pathFor != nil {
			if p := pathFor(string(kind)); p != "" {
				path = p
			}
		}
		sources = append(sources, Source{Kind: kind, Path: path})
	}
	return sources, nil
}
