/*
 * @author: Sun977
 * @date: 2026.10.16
 * @description: Cobra Root Command 定义，默认动作为执行一次完整提取
 */

package main

import (
	"fmt"
	"io"
	"os"

	"mirakextractor/internal/config"
	"mirakextractor/internal/pkg/logger"
	"mirakextractor/internal/pkg/monitor"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string

	// cfg 由 PersistentPreRunE 加载，所有子命令共享
	cfg *config.Config
	// loader 保留以便 config 子命令输出实际使用的配置文件
	loader *config.ConfigLoader
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mirak-extractor",
	Short: "MIRAK 主机信息提取工具",
	Long: `mirak-extractor 采集本机的操作系统身份、已安装软件、对外网络暴露面和关键文件信息，
并导出为 MIRAK JSON 报告。

示例:
  1.默认提取，报告写入 ./mirak.json
	mirak-extractor
  2.指定报告路径，禁止交互输入
	mirak-extractor -o /tmp/host.json --non-interactive
  3.校验 routinator 配置
	mirak-extractor validate-routinator --file /etc/routinator/routinator.conf
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// PersistentPreRunE: 全局初始化逻辑，确保所有子命令都能使用配置和日志
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime(cmd)
	},
	RunE: runExtract,
}

func Execute() {
	// 全局 Panic Recovery
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n[FATAL] Extractor crashed unexpectedly: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// 全局 Flag
	pflags := rootCmd.PersistentFlags()
	pflags.StringVar(&cfgFile, "config", "", "配置文件或配置目录 (默认: ./configs/config.yaml)")
	pflags.StringVar(&envFile, "env-file", ".env", "环境变量文件")
	pflags.String("log-level", "", "日志级别 (debug, info, warn, error, fatal)")

	registerExtractFlags(rootCmd)

	// 注册子命令
	rootCmd.AddCommand(newValidateRoutinatorCmd())
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initRuntime 依次加载 .env、配置文件和命令行参数，然后初始化日志
func initRuntime(cmd *cobra.Command) error {
	if err := config.NewEnvLoader(envFile).Load(); err != nil {
		return err
	}

	loader = config.NewConfigLoader(cfgFile, config.DefaultEnvPrefix)
	v := loader.Viper()
	// 命令行参数优先级最高，只有显式设置时才覆盖
	bindings := map[string]string{
		"log.level":           "log-level",
		"output.report_path":  "output",
		"output.metrics_file": "metrics-file",
	}
	for key, name := range bindings {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return err
			}
		}
	}

	loaded, err := loader.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded

	initCLILogger(cfg.Log)
	logger.WithFields(monitor.GetHostInfo(cmd.Context()).Fields()).Debug("host information")
	return nil
}

// initCLILogger 初始化 CLI 模式下的日志，pterm 的提示输出跟随日志级别
func initCLILogger(logConfig *config.LogConfig) {
	switch logConfig.Level {
	case "debug":
		pterm.EnableDebugMessages()
	case "info":
		pterm.DisableDebugMessages()
	case "warn", "error", "fatal":
		pterm.DisableDebugMessages()
		pterm.Info = *pterm.Info.WithWriter(io.Discard)
	}

	if _, err := logger.InitLogger(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
	}
}
