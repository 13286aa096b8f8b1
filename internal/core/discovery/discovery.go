/**
 * 已安装软件发现
 * @author: sun977
 * @date: 2026.10.13
 * @description: 按操作系统身份选择包管理器 (dpkg / rpm)，输出原始 (name, vendor, version, arch) 记录，
 *               并在交给软件目录之前统一清洗与修正。只识别包管理器安装的软件。
 */

package discovery

import (
	"context"

	"mirakextractor/internal/core/normalize"
	"mirakextractor/internal/pkg/logger"
)

// 包管理器名称
const (
	ManagerDpkg = "dpkg"
	ManagerRpm  = "rpm"
)

// Discoverer 软件发现器
type Discoverer struct {
	runner CommandRunner
}

// NewDiscoverer 创建发现器，runner 为 nil 时使用 ExecRunner
func NewDiscoverer(runner CommandRunner) *Discoverer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Discoverer{runner: runner}
}

// ManagerFor 根据操作系统产品名选择包管理器，未知产品返回空字符串
func ManagerFor(product string) string {
	switch product {
	case "enterprise":
		return ManagerRpm
	case "ubuntu", "debian":
		return ManagerDpkg
	default:
		return ""
	}
}

// Discover 查询包管理器并返回修正后的原始记录
// 未知产品返回空结果
func (d *Discoverer) Discover(ctx context.Context, product string) ([][]string, error) {
	var (
		records [][]string
		err     error
	)

	manager := ManagerFor(product)
	switch manager {
	case ManagerRpm:
		records, err = queryRpm(ctx, d.runner)
	case ManagerDpkg:
		records, err = queryDpkg(ctx, d.runner)
	default:
		logger.Warnf("no package manager known for product %q, skipping software discovery", product)
		return [][]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = [][]string{}
	}

	for _, raw := range records {
		normalize.Record(raw, product)
	}

	logger.WithField("manager", manager).Debugf("discovered %d package records", len(records))
	return records, nil
}
