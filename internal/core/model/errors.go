package model

import "errors"

// 提取流程的错误分类
// 调用方使用 errors.Is 判断，具体上下文通过 %w 包装
var (
	// ErrMissingIdentityInfo 身份源缺少必需字段或模式不匹配，尝试下一个身份源
	ErrMissingIdentityInfo = errors.New("required identity information not found")
	// ErrNoIdentitySource 所有身份源均失败且不允许交互输入
	ErrNoIdentitySource = errors.New("unable to determine operating system identity")
	// ErrInvalidArity 软件记录字段数不是 3 或 4
	ErrInvalidArity = errors.New("software record must have 3 or 4 fields")
	// ErrInvalidIPFormat 主机 IP 不符合点分十进制格式
	ErrInvalidIPFormat = errors.New("the ip provided is in an invalid format")
	// ErrUserCancelled 操作员拒绝手动输入，进程以成功状态退出
	ErrUserCancelled = errors.New("user cancelled the operation")
	// ErrCommandFailed 包管理器进程无法启动
	ErrCommandFailed = errors.New("package manager command failed")
)
