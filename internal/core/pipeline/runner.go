/**
 * 提取流程编排
 * @author: sun977
 * @date: 2026.10.15
 * @description: 串联 身份解析 -> 软件发现 -> 软件目录 -> 网络信息 -> 关键文件 -> 最终修正，
 *               生成一份完整报告。任一阶段的致命错误都会在导出前中止本次运行。
 */

package pipeline

import (
	"context"
	"fmt"
	"time"

	"mirakextractor/internal/core/catalog"
	"mirakextractor/internal/core/files"
	"mirakextractor/internal/core/identity"
	"mirakextractor/internal/core/network"
	"mirakextractor/internal/core/reporter"
	"mirakextractor/internal/pkg/logger"
	"mirakextractor/internal/pkg/metrics"
)

// Options 编排选项
type Options struct {
	StrategicPaths []string
	Progress       ProgressFactory
}

// Runner 提取流程运行器，每次 Run 使用独立的报告与软件目录
type Runner struct {
	resolver   IdentityResolver
	discoverer PackageDiscoverer
	network    network.Provider
	inspect    FileInspector
	metrics    *metrics.Metrics
	opts       Options

	// LastContext 最近一次运行的上下文
	LastContext *ExtractContext
}

// NewRunner 创建运行器，metrics 为 nil 时使用独立的指标实例
func NewRunner(resolver IdentityResolver, discoverer PackageDiscoverer, provider network.Provider, m *metrics.Metrics, opts Options) *Runner {
	if m == nil {
		m = metrics.New()
	}
	return &Runner{
		resolver:   resolver,
		discoverer: discoverer,
		network:    provider,
		inspect:    files.Inspect,
		metrics:    m,
		opts:       opts,
	}
}

// WithFileInspector 替换关键文件采集实现
func (r *Runner) WithFileInspector(fn FileInspector) *Runner {
	r.inspect = fn
	return r
}

// Run 执行一次完整提取，返回已最终修正的报告
// 操作员取消时返回 model.ErrUserCancelled
func (r *Runner) Run(ctx context.Context) (*reporter.Report, error) {
	ec := newExtractContext()
	r.LastContext = ec
	if logger.LoggerInstance != nil {
		logger.LoggerInstance.SetRunID(ec.RunID)
	}

	report := reporter.New()

	if err := r.identify(ctx, ec, report); err != nil {
		return nil, err
	}
	if err := r.discover(ctx, ec, report); err != nil {
		return nil, err
	}
	if err := r.collectNetwork(ctx, ec, report); err != nil {
		return nil, err
	}
	r.collectFiles(ec, report)

	done := ec.stage(StageFinalize)
	report.Finalize()
	done(nil)

	r.metrics.ObserveRun(ec.Started, time.Now())
	return report, nil
}

// identify 阶段 1: 操作系统身份，成为 appsFound 的第一个条目
func (r *Runner) identify(ctx context.Context, ec *ExtractContext, report *reporter.Report) error {
	done := ec.stage(StageIdentity)

	res, err := r.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	ec.Identity = identity.NewHostIdentity(res.Product, res.Version, res.Source)
	report.AddApps(ec.Identity.Entry())

	done(map[string]interface{}{
		"source":  string(res.Source),
		"product": ec.Identity.Product,
		"version": ec.Identity.Version,
	})
	return nil
}

// discover 阶段 2: 包管理器记录经软件目录校验后追加到报告
func (r *Runner) discover(ctx context.Context, ec *ExtractContext, report *reporter.Report) error {
	done := ec.stage(StageDiscovery)

	records, err := r.discoverer.Discover(ctx, report.OSProduct())
	if err != nil {
		return fmt.Errorf("software discovery failed: %w", err)
	}
	ec.Records = len(records)
	r.metrics.AddDiscovered(len(records))
	done(map[string]interface{}{"records": len(records)})

	done = ec.stage(StageCatalog)
	var progress Progress
	if r.opts.Progress != nil && len(records) > 0 {
		progress = r.opts.Progress(len(records))
	}

	cat := catalog.New()
	for _, raw := range records {
		if err := ctx.Err(); err != nil {
			if progress != nil {
				progress.Stop()
			}
			return err
		}
		if err := cat.Add(raw); err != nil {
			ec.Rejected++
			r.metrics.IncRejected()
			logger.LogStageEvent(StageCatalog, "record_rejected", err.Error(), logger.WarnLevel, nil)
		}
		if progress != nil {
			progress.Increment()
		}
	}
	if progress != nil {
		progress.Stop()
	}

	for _, rec := range cat.List() {
		report.AddApps(rec.Entry())
		r.metrics.IncAdmitted()
	}

	done(map[string]interface{}{"admitted": cat.Len(), "rejected": ec.Rejected})
	return nil
}

// collectNetwork 阶段 3: 主机 IP 与监听端口，IP 格式非法时中止
func (r *Runner) collectNetwork(ctx context.Context, ec *ExtractContext, report *reporter.Report) error {
	done := ec.stage(StageNetwork)

	hostIP, err := network.PrimaryIPv4(ctx, r.network)
	if err != nil {
		return fmt.Errorf("interface enumeration failed: %w", err)
	}
	if err := network.ValidateIPv4(hostIP); err != nil {
		return err
	}

	ports, byPort, err := network.ListeningPorts(ctx, r.network)
	if err != nil {
		return fmt.Errorf("connection enumeration failed: %w", err)
	}
	report.AddRedeExternal(hostIP, ports, byPort)
	r.metrics.SetListeningPorts(len(ports))

	done(map[string]interface{}{"host_ip": hostIP, "listening": len(ports)})
	return nil
}

// collectFiles 阶段 4: 关键文件信息，单个路径失败只记录日志
func (r *Runner) collectFiles(ec *ExtractContext, report *reporter.Report) {
	if r.inspect == nil || len(r.opts.StrategicPaths) == 0 {
		return
	}
	done := ec.stage(StageFiles)
	found := r.inspect(r.opts.StrategicPaths)
	report.AddStrategicFiles(found)
	done(map[string]interface{}{"files": len(found)})
}
