package reporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"mirakextractor/internal/core/model"
)

// CsvReporter 将 appsFound 导出为 CSV 文件，便于表格工具查看
type CsvReporter struct {
	FilePath string
}

func NewCsvReporter(filePath string) *CsvReporter {
	return &CsvReporter{
		FilePath: filePath,
	}
}

func (r *CsvReporter) Report(ctx context.Context, report *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeCsv(report.Apps())
	if err != nil {
		return err
	}
	return WriteFileAtomic(r.FilePath, data)
}

// EncodeCsv 表头 + 每个条目一行
func EncodeCsv(apps []model.AppEntry) ([]byte, error) {
	var buf bytes.Buffer
	// 写入 UTF-8 BOM，防止 Excel 打开乱码
	buf.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(&buf)
	if err := w.Write(model.AppEntry{}.Headers()); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}
	for _, app := range apps {
		if err := w.WriteAll(app.Rows()); err != nil {
			return nil, fmt.Errorf("failed to write rows: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
