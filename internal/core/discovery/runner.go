package discovery

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"mirakextractor/internal/core/model"
)

// CommandRunner 执行外部命令并返回标准输出
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner 基于 os/exec 的实现
// 子进程退出码被忽略，只消费 stdout；Timeout > 0 时限制等待时间
type ExecRunner struct {
	Timeout time.Duration
}

// Output 执行命令
func (r ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			// 非零退出码仍然使用已输出的内容
			return out, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", model.ErrCommandFailed, name, err)
	}
	return out, nil
}
