package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mirakextractor/internal/core/identity"
	"mirakextractor/internal/core/model"
	"mirakextractor/internal/pkg/logger"
)

// 提取阶段
const (
	StageIdentity  = "identity"
	StageDiscovery = "discovery"
	StageCatalog   = "catalog"
	StageNetwork   = "network"
	StageFiles     = "files"
	StageFinalize  = "finalize"
)

// IdentityResolver 操作系统身份解析
type IdentityResolver interface {
	Resolve(ctx context.Context) (identity.Result, error)
}

// PackageDiscoverer 已安装软件发现
type PackageDiscoverer interface {
	Discover(ctx context.Context, product string) ([][]string, error)
}

// FileInspector 关键文件信息采集
type FileInspector func(paths []string) []model.FileInfo

// Progress 软件目录写入进度
type Progress interface {
	Increment()
	Stop()
}

// ProgressFactory 按总数创建进度显示，返回 nil 表示不显示
type ProgressFactory func(total int) Progress

// ExtractContext 单次运行的上下文，在各个阶段之间传递
type ExtractContext struct {
	RunID   string
	Started time.Time

	Identity model.HostIdentity
	Records  int // 包管理器返回的原始记录数
	Rejected int // 被软件目录拒绝的记录数
}

func newExtractContext() *ExtractContext {
	return &ExtractContext{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
}

// stage 记录阶段耗时，结束时输出一条 completed 事件
func (c *ExtractContext) stage(name string) func(fields map[string]interface{}) {
	start := time.Now()
	return func(fields map[string]interface{}) {
		if fields == nil {
			fields = map[string]interface{}{}
		}
		fields["run_id"] = c.RunID
		fields["duration_ms"] = time.Since(start).Milliseconds()
		logger.LogStageEvent(name, "completed", name+" stage completed", logger.DebugLevel, fields)
	}
}
