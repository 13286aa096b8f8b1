/*
 * @author: Sun977
 * @date: 2026.10.16
 * @description: routinator 配置校验子命令
 */

package main

import (
	"fmt"

	"mirakextractor/internal/core/routinator"
	"mirakextractor/internal/pkg/logger"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newValidateRoutinatorCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate-routinator",
		Short: "校验 routinator 配置文件",
		Long: `读取 TOML 格式的 routinator 配置，检查缺失、多余和取值非法的配置项。
存在任何问题时以非零状态退出。

示例:
  mirak-extractor validate-routinator --file /etc/routinator/routinator.conf
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = cfg.Routinator.ConfigFile
			}

			problems := routinator.Check(nil, file)
			logger.LogSystemEvent("routinator", "validate", file, logger.DebugLevel, map[string]interface{}{
				"problems": len(problems),
			})
			if len(problems) == 0 {
				pterm.Success.Printfln("Routinator config %s is valid", file)
				return nil
			}
			for _, p := range problems {
				pterm.Error.Println(p)
			}
			return fmt.Errorf("routinator config %s has %d problem(s)", file, len(problems))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "routinator 配置文件路径 (默认取配置 routinator.config_file)")
	return cmd
}
