/**
 * 操作系统身份解析
 * @author: sun977
 * @date: 2026.10.13
 * @description: 按顺序尝试多个身份源 (os-release / lsb-release / issue)，任一解析成功即返回；
 *               全部失败时回退到操作员交互输入。身份源失败只记录日志，不中断流程。
 */

package identity

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"mirakextractor/internal/core/model"
	"mirakextractor/internal/pkg/logger"
)

// manualProducts 交互菜单: 1 -> enterprise, 2 -> ubuntu, 3 -> debian
var manualProducts = []string{"enterprise", "ubuntu", "debian"}

// versionPattern 手动输入的版本: 1 / 1.0 / 1.0.0
var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}$`)

const distributorMenu = "Please, select your distributor below:\n1) Redhat\n2) Canonical\n3) Debian"

// Result 解析结果
type Result struct {
	Product string
	Version string
	Source  SourceKind
}

// Resolver 身份解析器
type Resolver struct {
	fs       afero.Fs
	sources  []Source
	prompter Prompter

	// Interactive 为 false 时不回退到交互输入，直接返回 ErrNoIdentitySource
	Interactive bool
	// Observe 每次身份源尝试后回调 (err 为 nil 表示成功)，用于指标统计
	Observe func(kind SourceKind, err error)
}

// NewResolver 创建身份解析器
// fs 为 nil 时使用真实文件系统，sources 为空时使用默认顺序
func NewResolver(fs afero.Fs, sources []Source, prompter Prompter) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if len(sources) == 0 {
		sources = DefaultSources()
	}
	if prompter == nil {
		prompter = NewPtermPrompter()
	}
	return &Resolver{
		fs:          fs,
		sources:     sources,
		prompter:    prompter,
		Interactive: true,
	}
}

// Resolve 依次尝试可读的身份源，返回 (product, version)
// 操作员拒绝手动输入时返回 ErrUserCancelled
func (r *Resolver) Resolve(ctx context.Context) (Result, error) {
	for _, src := range r.readable() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		product, version, err := r.parse(src)
		r.observe(src.Kind, err)
		if err != nil {
			logger.LogStageEvent("identity", "source_failed", fmt.Sprintf("%s: %v", src.Path, err), logger.WarnLevel,
				map[string]interface{}{"source": string(src.Kind)})
			continue
		}

		logger.WithField("source", string(src.Kind)).Infof("operating system detected: %s version %s", product, version)
		return Result{Product: product, Version: version, Source: src.Kind}, nil
	}

	if !r.Interactive {
		return Result{}, model.ErrNoIdentitySource
	}
	return r.manual(ctx)
}

// readable 过滤出存在且可读的身份源，保持原顺序
func (r *Resolver) readable() []Source {
	var out []Source
	for _, src := range r.sources {
		f, err := r.fs.Open(src.Path)
		if err != nil {
			logger.Debugf("identity source %s not readable: %v", src.Path, err)
			continue
		}
		f.Close()
		out = append(out, src)
	}
	return out
}

func (r *Resolver) parse(src Source) (string, string, error) {
	parse, ok := parsers[src.Kind]
	if !ok {
		return "", "", fmt.Errorf("unknown identity source %q", src.Kind)
	}
	content, err := afero.ReadFile(r.fs, src.Path)
	if err != nil {
		return "", "", err
	}
	return parse(string(content))
}

func (r *Resolver) observe(kind SourceKind, err error) {
	if r.Observe != nil {
		r.Observe(kind, err)
	}
}

// manual 交互式恢复: 确认 -> 选择发行版 -> 输入版本
// 任何输入错误 (EOF / 中断) 都视为操作员取消
func (r *Resolver) manual(ctx context.Context) (Result, error) {
	r.prompter.Println("Unable to find operating system information")
	ok, err := r.prompter.Confirm("Would you like to enter this host's operating system information manually?")
	if err != nil || !ok {
		return Result{}, model.ErrUserCancelled
	}

	var product string
	for product == "" {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		r.prompter.Println(distributorMenu)
		answer, err := r.prompter.Input("Enter the number of the desired option")
		if err != nil {
			return Result{}, model.ErrUserCancelled
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(answer))
		if convErr != nil || n < 1 || n > len(manualProducts) {
			continue
		}
		product = manualProducts[n-1]
	}

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		version, err := r.prompter.Input("Now enter the product version")
		if err != nil {
			return Result{}, model.ErrUserCancelled
		}
		version = strings.TrimSpace(version)
		if versionPattern.MatchString(version) {
			r.observe(SourceManual, nil)
			return Result{Product: product, Version: version, Source: SourceManual}, nil
		}
		r.prompter.Println("The version provided is not in a valid standard (1 or 1.0 or 1.0.0), please try again.")
	}
}
