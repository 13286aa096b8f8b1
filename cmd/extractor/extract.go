/*
 * @author: Sun977
 * @date: 2026.10.16
 * @description: 默认提取命令: 组装各阶段依赖，运行流程并导出报告
 */

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mirakextractor/internal/config"
	"mirakextractor/internal/core/discovery"
	"mirakextractor/internal/core/identity"
	"mirakextractor/internal/core/model"
	"mirakextractor/internal/core/network"
	"mirakextractor/internal/core/pipeline"
	"mirakextractor/internal/core/reporter"
	"mirakextractor/internal/pkg/logger"
	"mirakextractor/internal/pkg/metrics"

	"github.com/spf13/cobra"
)

// extractOptions 提取命令的本地参数，报告路径和指标文件经 viper 合并进配置
type extractOptions struct {
	NonInteractive bool
	CsvPath        string
	NoProgress     bool
	Verbose        bool
}

var extractOpts extractOptions

func registerExtractFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("output", "o", "./mirak.json", "MIRAK 报告输出路径")
	flags.String("metrics-file", "", "Prometheus 文本格式指标输出路径")
	flags.BoolVar(&extractOpts.NonInteractive, "non-interactive", false, "身份源全部失败时不进行交互输入")
	flags.StringVar(&extractOpts.CsvPath, "csv", "", "额外导出软件清单 CSV")
	flags.BoolVar(&extractOpts.NoProgress, "no-progress", false, "不显示进度条")
	flags.BoolVarP(&extractOpts.Verbose, "verbose", "v", false, "控制台输出完整软件清单")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	runner, err := buildRunner(cfg, m)
	if err != nil {
		return err
	}

	report, err := runner.Run(ctx)
	if errors.Is(err, model.ErrUserCancelled) {
		// 操作员主动取消不算失败，不导出任何文件
		fmt.Println("Error: user cancel the operation")
		return nil
	}
	if err != nil {
		return err
	}

	if err := buildReporter(cfg).Report(ctx, report); err != nil {
		return err
	}
	fmt.Printf("File exported on '%s'\n", cfg.Output.ReportPath)

	if path := cfg.Output.MetricsFile; path != "" {
		if err := m.WriteToTextfile(path); err != nil {
			// 指标是附加产物，写入失败不影响报告
			logger.Warnf("write metrics file %s: %v", path, err)
		}
	}
	return nil
}

// buildRunner 根据配置组装流程运行器
func buildRunner(cfg *config.Config, m *metrics.Metrics) (*pipeline.Runner, error) {
	ext := cfg.Extractor

	sources, err := identity.SourcesFrom(ext.IdentitySources, ext.Paths.PathFor)
	if err != nil {
		return nil, err
	}
	resolver := identity.NewResolver(nil, sources, identity.NewPtermPrompter())
	resolver.Interactive = ext.Interactive && !extractOpts.NonInteractive
	resolver.Observe = func(kind identity.SourceKind, err error) {
		m.ObserveIdentity(string(kind), err)
	}

	discoverer := discovery.NewDiscoverer(discovery.ExecRunner{Timeout: ext.CommandTimeout})

	opts := pipeline.Options{StrategicPaths: ext.StrategicPaths}
	if ext.ShowProgress && !extractOpts.NoProgress {
		opts.Progress = pipeline.NewPtermProgress
	}
	return pipeline.NewRunner(resolver, discoverer, network.NewGopsutilProvider(), m, opts), nil
}

// buildReporter JSON 报告必选，CSV 与控制台摘要按需追加
func buildReporter(cfg *config.Config) reporter.Reporter {
	reporters := []reporter.Reporter{reporter.NewJsonReporter(cfg.Output.ReportPath)}
	if extractOpts.CsvPath != "" {
		reporters = append(reporters, reporter.NewCsvReporter(extractOpts.CsvPath))
	}
	if cfg.Output.Summary || extractOpts.Verbose {
		reporters = append(reporters, reporter.NewConsoleReporter(extractOpts.Verbose))
	}
	return reporter.NewMultiReporter(reporters...)
}
