// 结构化事件日志
package logger

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// FormatTimestamp 格式化时间戳为统一的毫秒精度格式
// 返回格式："2006-01-02 15:04:05.000"
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000")
}

// NowFormatted 返回当前时间的格式化字符串
func NowFormatted() string {
	return FormatTimestamp(time.Now())
}

// LogType 日志类型枚举
type LogType string

const (
	// SystemLog 系统日志 - 启动、配置加载、主机信息
	SystemLog LogType = "system"
	// ExtractLog 提取日志 - 身份解析、软件包发现、网络采集等阶段事件
	ExtractLog LogType = "extract"
	// ExportLog 导出日志 - 报告写盘
	ExportLog LogType = "export"
)

// StageLogEntry 提取阶段日志条目
type StageLogEntry struct {
	Stage   string `json:"stage"`   // 阶段 (identity, discovery, catalog, network, files, export)
	Event   string `json:"event"`   // 事件 (source_failed, record_rejected, completed ...)
	Message string `json:"message"` // 详细信息
	Level   string `json:"level"`
}

// SystemLogEntry 系统日志条目
type SystemLogEntry struct {
	Component string `json:"component"`
	Event     string `json:"event"`
	Message   string `json:"message"`
	Level     string `json:"level"`
}

// LogStageEvent 记录提取阶段事件
func LogStageEvent(stage, event, message string, level LogLevel, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	le := StageLogEntry{
		Stage:   stage,
		Event:   event,
		Message: message,
		Level:   toLogrusLevel(level).String(),
	}

	fields := logrus.Fields{
		"type":   ExtractLog,
		"stage":  le.Stage,
		"event":  le.Event,
		"detail": le.Message,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	emit(entry().WithFields(fields), level, fmt.Sprintf("%s: %s", stage, event))
}

// LogSystemEvent 记录系统事件日志
// 用于记录启动、配置加载、主机信息等系统级事件
func LogSystemEvent(component, event, message string, level LogLevel, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	le := SystemLogEntry{
		Component: component,
		Event:     event,
		Message:   message,
		Level:     toLogrusLevel(level).String(),
	}

	fields := logrus.Fields{
		"type":      SystemLog,
		"component": le.Component,
		"event":     le.Event,
		"detail":    le.Message,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	emit(entry().WithFields(fields), level, fmt.Sprintf("System event: %s - %s", component, event))
}

// LogExportOperation 记录报告导出结果
func LogExportOperation(path string, size int, duration time.Duration, err error) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":     ExportLog,
		"path":     path,
		"bytes":    size,
		"duration": duration.Milliseconds(),
	}

	if err != nil {
		entry().WithFields(fields).WithError(err).Error("Export failed")
		return
	}
	entry().WithFields(fields).Info("Export completed")
}

func emit(entry *logrus.Entry, level LogLevel, message string) {
	switch toLogrusLevel(level) {
	case logrus.DebugLevel:
		entry.Debug(message)
	case logrus.WarnLevel:
		entry.Warn(message)
	case logrus.ErrorLevel:
		entry.Error(message)
	case logrus.FatalLevel:
		entry.Fatal(message)
	default:
		entry.Info(message)
	}
}

// LogLevel 日志级别类型，封装logrus.Level避免业务层直接依赖logrus
type LogLevel int

const (
	// DebugLevel 调试级别
	DebugLevel LogLevel = iota
	// InfoLevel 信息级别
	InfoLevel
	// WarnLevel 警告级别
	WarnLevel
	// ErrorLevel 错误级别
	ErrorLevel
	// FatalLevel 致命错误级别
	FatalLevel
)

// toLogrusLevel 将封装的LogLevel转换为logrus.Level
func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
