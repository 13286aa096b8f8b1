package model

// 文件类型
const (
	FileTypeFile      = "file"
	FileTypeDirectory = "directory"
)

// FilePermission 八进制权限的三位数字，字段顺序即 JSON 输出顺序
type FilePermission struct {
	Group  int `json:"group"`
	Owner  int `json:"owner"`
	Others int `json:"others"`
}

// FileOwner 属主用户与属组
type FileOwner struct {
	User  string `json:"user"`
	Group string `json:"group"`
}

// FileInfo strategicFiles 中的单个条目
type FileInfo struct {
	Type       string         `json:"type"`
	FileName   string         `json:"fileName"`
	Permission FilePermission `json:"permission"`
	Owner      FileOwner      `json:"owner"`
}
