package discovery

import (
	"context"
	"strings"
)

const (
	dpkgQuery  = "dpkg-query"
	dpkgFormat = "-f=${binary:Package}|${Maintainer}|${Version}|${Architecture}\n"
)

// queryDpkg 列出 Debian 系已安装的软件包
// 每行 package|maintainer|version|architecture，多架构限定符 (pkg:amd64) 在冒号处截断
func queryDpkg(ctx context.Context, runner CommandRunner) ([][]string, error) {
	out, err := runner.Output(ctx, dpkgQuery, "-W", dpkgFormat)
	if err != nil {
		return nil, err
	}
	return parseDpkg(string(out)), nil
}

func parseDpkg(output string) [][]string {
	var records [][]string
	for _, line := range splitLines(output) {
		fields := strings.Split(line, "|")
		if i := strings.Index(fields[0], ":"); i >= 0 {
			fields[0] = fields[0][:i]
		}
		records = append(records, fields)
	}
	return records
}

// splitLines 按行切分并丢弃空行
func splitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
