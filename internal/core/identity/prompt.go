package identity

import (
	"github.com/pterm/pterm"
)

// Prompter 操作员交互能力，便于在测试中替换
type Prompter interface {
	// Confirm 是/否确认
	Confirm(message string) (bool, error)
	// Input 读取一行输入
	Input(message string) (string, error)
	// Println 输出提示信息
	Println(message string)
}

// PtermPrompter 基于 pterm 交互组件的终端实现
type PtermPrompter struct{}

func NewPtermPrompter() *PtermPrompter {
	return &PtermPrompter{}
}

func (p *PtermPrompter) Confirm(message string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.Show(message)
}

func (p *PtermPrompter) Input(message string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(message)
}

func (p *PtermPrompter) Println(message string) {
	pterm.Println(message)
}
