package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "显示合并后的有效配置",
	Long:  "按 flag > 环境变量 > 配置文件 > 默认值 合并后输出 YAML 格式的有效配置。",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		if used := loader.GetConfigPath(); used != "" {
			fmt.Printf("# config file: %s\n", used)
		} else {
			fmt.Println("# config file: none (defaults and environment)")
		}
		fmt.Print(out)
		return nil
	},
}
