package pipeline

import (
	"github.com/pterm/pterm"

	"mirakextractor/internal/pkg/logger"
)

// ptermProgress pterm 进度条
type ptermProgress struct {
	bar *pterm.ProgressbarPrinter
}

// NewPtermProgress 在终端显示 "Progress" 进度条，启动失败时不显示
func NewPtermProgress(total int) Progress {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Progress").
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		logger.Debugf("progress bar unavailable: %v", err)
		return nil
	}
	return &ptermProgress{bar: bar}
}

func (p *ptermProgress) Increment() {
	p.bar.Increment()
}

func (p *ptermProgress) Stop() {
	_, _ = p.bar.Stop()
}
