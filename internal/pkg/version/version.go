// ### 发布流程
// 1. **更新版本号**：修改 `internal/pkg/version/version.go`
// 2. **构建时注入**：-ldflags "-X mirakextractor/internal/pkg/version.GitCommit=... -X ...BuildTime=..."
// 3. **推送代码和 Tag**

package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "1.2.0" // 版本号 -- 发布时候更新版本号
	BuildTime string
	GitCommit string
	GoVersion = runtime.Version()
)

func GetVersion() string {
	return Version
}

// GetFullVersion 版本号 + 提交 + 构建时间，未注入的字段省略
func GetFullVersion() string {
	full := Version
	if GitCommit != "" {
		full += fmt.Sprintf(" (%s)", GitCommit)
	}
	if BuildTime != "" {
		full += " built " + BuildTime
	}
	return full
}
