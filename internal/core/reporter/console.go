package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm" // 引入 pterm 库用于控制台输出
)

// ConsoleReporter 控制台汇总输出
type ConsoleReporter struct {
	// Verbose 为 true 时额外打印完整的软件清单
	Verbose bool
	writer  io.Writer
}

func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{Verbose: verbose}
}

// WithWriter 指定输出目标，默认标准输出
func (r *ConsoleReporter) WithWriter(w io.Writer) *ConsoleReporter {
	r.writer = w
	return r
}

func (r *ConsoleReporter) Report(ctx context.Context, report *Report) error {
	if report == nil {
		return nil
	}
	doc := report.Dict()

	if err := r.printTableFromData([]string{"Item", "Value"}, summaryRows(doc)); err != nil {
		return err
	}

	if doc.RedeExternal.IsSet() && doc.RedeExternal.PortsUseBy.Len() > 0 {
		if err := r.printTableFromData([]string{"Port", "Process"}, portRows(doc.RedeExternal)); err != nil {
			return err
		}
	}

	if r.Verbose && len(doc.AppsFound) > 0 {
		var rows [][]string
		for _, app := range doc.AppsFound {
			rows = append(rows, app.Rows()...)
		}
		return r.printTable(tabular{headers: doc.AppsFound[0].Headers(), rows: rows})
	}
	return nil
}

// summaryRows 操作系统、软件数量、主机 IP、监听端口数
func summaryRows(doc Document) [][]string {
	osName := "unknown"
	packages := 0
	for _, app := range doc.AppsFound {
		switch app.Type {
		case "o":
			if osName == "unknown" {
				osName = fmt.Sprintf("%s %s %s", app.Vendor, app.Product, app.Version)
			}
		default:
			packages++
		}
	}

	hostIP := "-"
	openPorts := 0
	if doc.RedeExternal.IsSet() {
		if doc.RedeExternal.HostIP != "" {
			hostIP = doc.RedeExternal.HostIP
		}
		openPorts = len(doc.RedeExternal.OpenPorts)
	}

	return [][]string{
		{"Operating system", osName},
		{"Packages", strconv.Itoa(packages)},
		{"Host IP", hostIP},
		{"Listening sockets", strconv.Itoa(openPorts)},
		{"Strategic files", strconv.Itoa(len(doc.StrategicFiles))},
	}
}

func portRows(rede RedeExternal) [][]string {
	var rows [][]string
	for _, port := range rede.PortsUseBy.Ports() {
		name, _ := rede.PortsUseBy.Get(port)
		rows = append(rows, []string{strconv.FormatUint(uint64(port), 10), name})
	}
	return rows
}

type tabular struct {
	headers []string
	rows    [][]string
}

func (t tabular) Headers() []string { return t.headers }
func (t tabular) Rows() [][]string  { return t.rows }

func (r *ConsoleReporter) printTable(data TabularData) error {
	return r.printTableFromData(data.Headers(), data.Rows())
}

func (r *ConsoleReporter) printTableFromData(headers []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)

	printer := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false). // 简洁风格
		WithData(tableData)
	if r.writer != nil {
		printer = printer.WithWriter(r.writer)
	}

	if err := printer.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
