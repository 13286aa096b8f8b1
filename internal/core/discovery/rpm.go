package discovery

import (
	"context"
	"strings"
)

const (
	rpmBinary = "rpm"
	rpmFormat = "%{NAME}|%{VENDOR}|%{VERSION}|%{ARCH}\n"
)

// queryRpm 列出 RPM 系已安装的软件包
// 每行 name|vendor|version|arch，字段两端空白被去除
func queryRpm(ctx context.Context, runner CommandRunner) ([][]string, error) {
	out, err := runner.Output(ctx, rpmBinary, "-qa", "--queryformat", rpmFormat)
	if err != nil {
		return nil, err
	}
	return parseRpm(string(out)), nil
}

func parseRpm(output string) [][]string {
	var records [][]string
	for _, line := range splitLines(output) {
		fields := strings.Split(line, "|")
		for i := range fields {
			fields[i] = strings.Trim(fields[i], " ")
		}
		records = append(records, fields)
	}
	return records
}
