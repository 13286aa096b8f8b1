package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mirakextractor/internal/core/model"
	"mirakextractor/internal/pkg/logger"
)

// reportIndent 下游解析器依赖的缩进
const reportIndent = "    "

// MarshalJSON 未写入网络信息时输出 {}
func (r RedeExternal) MarshalJSON() ([]byte, error) {
	if !r.set {
		return []byte("{}"), nil
	}
	type fields RedeExternal
	f := fields(r)
	if f.OpenPorts == nil {
		f.OpenPorts = []uint32{}
	}
	return marshal(f, "")
}

// Encode 生成报告字节: 4 空格缩进、不转义 HTML 与非 ASCII 字符、无结尾换行
func Encode(doc Document) ([]byte, error) {
	if doc.AppsFound == nil {
		doc.AppsFound = []model.AppEntry{}
	}
	if doc.StrategicFiles == nil {
		doc.StrategicFiles = []model.FileInfo{}
	}
	return marshal(doc, reportIndent)
}

func marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteFileAtomic 先写入同目录临时文件再重命名，失败时不会留下半份报告
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename report: %w", err)
	}
	return nil
}

// Export 将报告文档写入 path
func Export(path string, doc Document) error {
	start := time.Now()
	data, err := Encode(doc)
	if err != nil {
		logger.LogExportOperation(path, 0, time.Since(start), err)
		return fmt.Errorf("failed to encode report: %w", err)
	}
	err = WriteFileAtomic(path, data)
	logger.LogExportOperation(path, len(data), time.Since(start), err)
	return err
}

// JsonReporter 将报告导出为 MIRAK JSON 文件
type JsonReporter struct {
	FilePath string
}

func NewJsonReporter(filePath string) *JsonReporter {
	return &JsonReporter{FilePath: filePath}
}

func (r *JsonReporter) Report(ctx context.Context, report *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Export(r.FilePath, report.Dict())
}
