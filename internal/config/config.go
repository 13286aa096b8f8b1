/**
 * 提取器配置
 * @author: sun977
 * @date: 2026.10.13
 * @description: 提取器配置结构，支持 yaml 文件、MIRAK_ 前缀环境变量与命令行覆盖
 */
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 提取器配置
type Config struct {
	// 应用配置
	App *AppConfig `yaml:"app" mapstructure:"app"`

	// 日志配置
	Log *LogConfig `yaml:"log" mapstructure:"log"`

	// 提取配置
	Extractor *ExtractorConfig `yaml:"extractor" mapstructure:"extractor"`

	// 输出配置
	Output *OutputConfig `yaml:"output" mapstructure:"output"`

	// Routinator 配置校验
	Routinator *RoutinatorConfig `yaml:"routinator" mapstructure:"routinator"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`               // 应用名称
	Environment string `yaml:"environment" mapstructure:"environment"` // 运行环境
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // 日志级别 (debug/info/warn/error/fatal)
	Format     string `yaml:"format" mapstructure:"format"`           // 日志格式 (json/text)
	Output     string `yaml:"output" mapstructure:"output"`           // 日志输出 (stdout/stderr/file)
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // 日志文件路径
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // 最大文件大小（MB）
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // 最大备份数
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // 最大保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`       // 是否压缩
	Caller     bool   `yaml:"caller" mapstructure:"caller"`           // 是否显示调用者信息
}

// ExtractorConfig 提取流程配置
type ExtractorConfig struct {
	IdentitySources []string             `yaml:"identity_sources" mapstructure:"identity_sources"` // 身份源尝试顺序
	Paths           *IdentityPathsConfig `yaml:"paths" mapstructure:"paths"`                       // 身份源文件路径
	Interactive     bool                 `yaml:"interactive" mapstructure:"interactive"`           // 身份源全部失败时是否询问操作员
	CommandTimeout  time.Duration        `yaml:"command_timeout" mapstructure:"command_timeout"`   // 包管理器查询超时
	ShowProgress    bool                 `yaml:"show_progress" mapstructure:"show_progress"`       // 是否显示进度条
	StrategicPaths  []string             `yaml:"strategic_paths" mapstructure:"strategic_paths"`   // 需要采集权限信息的 RPKI 文件/目录
}

// IdentityPathsConfig 身份源文件路径
type IdentityPathsConfig struct {
	OSRelease  string `yaml:"os_release" mapstructure:"os_release"`
	LSBRelease string `yaml:"lsb_release" mapstructure:"lsb_release"`
	Issue      string `yaml:"issue" mapstructure:"issue"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	ReportPath  string `yaml:"report_path" mapstructure:"report_path"`   // 报告路径，对应 MIRAK_OUTPUT_REPORT
	MetricsFile string `yaml:"metrics_file" mapstructure:"metrics_file"` // prometheus textfile 路径，为空不输出
	Summary     bool   `yaml:"summary" mapstructure:"summary"`           // 导出后是否打印汇总表
}

// RoutinatorConfig routinator 配置文件位置
type RoutinatorConfig struct {
	ConfigFile string `yaml:"config_file" mapstructure:"config_file"`
}

// PathFor 返回身份源对应的文件路径
func (p *IdentityPathsConfig) PathFor(source string) string {
	if p == nil {
		return ""
	}
	switch source {
	case "os-release":
		return p.OSRelease
	case "lsb-release":
		return p.LSBRelease
	case "issue":
		return p.Issue
	}
	return ""
}

// YAML 以 yaml 形式输出生效配置
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}
