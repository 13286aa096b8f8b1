/**
 * 结果输出接口定义
 * @author: Sun977
 * @date: 2026.10.14
 * @description: 定义报告输出的通用接口，解耦 JSON 文件 / CSV 文件 / 控制台输出。
 */

package reporter

import (
	"context"
	"errors"
)

// TabularData 是一个可以被渲染为表格的数据接口
type TabularData interface {
	Headers() []string
	Rows() [][]string
}

// Reporter 定义报告输出的行为
type Reporter interface {
	// Report 输出最终报告
	Report(ctx context.Context, report *Report) error
}

// MultiReporter 按顺序向多个目标输出 (e.g., JSON 文件 + 控制台)
// 某个目标失败不影响后续目标，全部错误合并返回
type MultiReporter struct {
	reporters []Reporter
}

func NewMultiReporter(reporters ...Reporter) *MultiReporter {
	return &MultiReporter{
		reporters: reporters,
	}
}

func (m *MultiReporter) Report(ctx context.Context, report *Report) error {
	var errs []error
	for _, r := range m.reporters {
		if err := r.Report(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len 目标数量
func (m *MultiReporter) Len() int {
	return len(m.reporters)
}
