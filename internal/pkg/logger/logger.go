/**
 * 日志管理器
 * @author: sun977
 * @date: 2026.10.13
 * @description: 进程级 logrus 实例。一次提取对应一个 run_id，设置后所有日志都带上该字段，
 *               方便把同一次运行的阶段事件、告警与导出结果串起来。未初始化时所有输出静默。
 */

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"mirakextractor/internal/config"
)

// 毫秒精度，不带时区
const timestampFormat = "2006-01-02 15:04:05.000"

// LoggerManager 日志管理器
type LoggerManager struct {
	logger *logrus.Logger
	config *config.LogConfig
	runID  string
}

// LoggerInstance 全局日志实例
var LoggerInstance *LoggerManager

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// InitLogger 按配置构建 logrus 实例并设为全局实例
// 非法级别回退到 info，格式或输出目标非法时返回错误
func InitLogger(cfg *config.LogConfig) (*LoggerManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("log config cannot be nil")
	}

	formatter, err := newFormatter(cfg.Format)
	if err != nil {
		return nil, err
	}
	out, err := newWriter(cfg)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetFormatter(formatter)
	l.SetOutput(out)
	l.SetReportCaller(cfg.Caller)
	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		l.SetLevel(level)
	} else {
		l.SetLevel(logrus.InfoLevel)
		l.Warnf("invalid log level %q, falling back to info", cfg.Level)
	}

	LoggerInstance = &LoggerManager{logger: l, config: cfg}
	return LoggerInstance, nil
}

func newFormatter(format string) (logrus.Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyFunc: "function",
			},
		}, nil
	case "text", "":
		return &logrus.TextFormatter{TimestampFormat: timestampFormat, FullTimestamp: true}, nil
	}
	return nil, fmt.Errorf("unsupported log format: %s", format)
}

// newWriter 终端提示走 stdout，日志默认写 stderr
func newWriter(cfg *config.LogConfig) (io.Writer, error) {
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		return os.Stdout, nil
	case "stderr", "":
		return os.Stderr, nil
	case "file":
	default:
		return nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	if cfg.FilePath == "" {
		return nil, fmt.Errorf("file path is required when output is file")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	rotate := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge, // 天
		Compress:   cfg.Compress,
	}
	// 排查问题时 debug 日志同时打到终端
	if strings.EqualFold(cfg.Level, "debug") {
		return io.MultiWriter(os.Stderr, rotate), nil
	}
	return rotate, nil
}

// SetRunID 设置本次提取的关联ID
func (lm *LoggerManager) SetRunID(id string) {
	lm.runID = id
}

// SetLevel 运行时调整日志级别
func (lm *LoggerManager) SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	lm.logger.SetLevel(parsed)
	lm.config.Level = level
	return nil
}

// SetOutput 替换输出目标，测试中用于捕获日志
func (lm *LoggerManager) SetOutput(w io.Writer) {
	lm.logger.SetOutput(w)
}

// entry 当前运行的日志入口，已设置 run_id 时自动附带
func entry() *logrus.Entry {
	if LoggerInstance == nil {
		return logrus.NewEntry(discard)
	}
	e := logrus.NewEntry(LoggerInstance.logger)
	if LoggerInstance.runID != "" {
		e = e.WithField("run_id", LoggerInstance.runID)
	}
	return e
}

func Debugf(format string, args ...interface{}) { entry().Debugf(format, args...) }

func Info(args ...interface{}) { entry().Info(args...) }

func Infof(format string, args ...interface{}) { entry().Infof(format, args...) }

func Warnf(format string, args ...interface{}) { entry().Warnf(format, args...) }

func Errorf(format string, args ...interface{}) { entry().Errorf(format, args...) }

// WithField 添加单个字段
func WithField(key string, value interface{}) *logrus.Entry {
	return entry().WithField(key, value)
}

// WithFields 添加多个字段
func WithFields(fields logrus.Fields) *logrus.Entry {
	return entry().WithFields(fields)
}
