package routinator

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Validate 校验配置，返回全部问题，无问题时返回空切片
// 顺序: 缺失的必需项 -> 未知配置项 (按名称排序) -> 非法取值 (按 Schema 顺序)
func Validate(cfg map[string]any) []string {
	problems := []string{}

	for _, key := range RequiredKeys {
		if _, ok := cfg[key]; !ok {
			problems = append(problems, fmt.Sprintf("Missing mandatory configuration: '%s'", key))
		}
	}

	known := make(map[string]struct{}, len(Schema))
	for _, f := range Schema {
		known[f.Key] = struct{}{}
	}
	var unexpected []string
	for key := range cfg {
		if _, ok := known[key]; !ok {
			unexpected = append(unexpected, key)
		}
	}
	sort.Strings(unexpected)
	for _, key := range unexpected {
		problems = append(problems, fmt.Sprintf("Unexpected configuration key: '%s'", key))
	}

	for _, f := range Schema {
		value, ok := cfg[f.Key]
		if !ok {
			continue
		}
		if !f.Validate(value) {
			problems = append(problems, fmt.Sprintf("Invalid value for '%s': %v", f.Key, value))
		}
	}

	return problems
}

// ReadConfig 读取 TOML 格式的 routinator 配置
// 文件不存在或解析失败时返回 nil 配置和对应的问题描述
func ReadConfig(fsys afero.Fs, path string) (map[string]any, []string) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if _, err := fsys.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, []string{fmt.Sprintf("Config file for Routinator not found on %s", path)}
		}
		return nil, []string{fmt.Sprintf("Unable to read config file %s: %v", path, err)}
	}

	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, []string{fmt.Sprintf("Error on parsing TOML: %v", err)}
	}
	return v.AllSettings(), nil
}

// Check 读取并校验，返回全部问题
func Check(fsys afero.Fs, path string) []string {
	cfg, problems := ReadConfig(fsys, path)
	if cfg == nil {
		return problems
	}
	return append(problems, Validate(cfg)...)
}
