package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultEnvPrefix 环境变量前缀
const DefaultEnvPrefix = "MIRAK"

// ConfigLoader 配置加载器
type ConfigLoader struct {
	configPath string
	envPrefix  string
	viper      *viper.Viper
}

// NewConfigLoader 创建配置加载器
func NewConfigLoader(configPath, envPrefix string) *ConfigLoader {
	if envPrefix == "" {
		envPrefix = DefaultEnvPrefix
	}

	return &ConfigLoader{
		configPath: configPath,
		envPrefix:  envPrefix,
		viper:      viper.New(),
	}
}

// Viper 返回底层 viper 实例，命令行用于绑定 flag
func (cl *ConfigLoader) Viper() *viper.Viper {
	return cl.viper
}

// LoadConfig 加载配置
// 优先级: flag > 环境变量 > 配置文件 > 默认值
func (cl *ConfigLoader) LoadConfig() (*Config, error) {
	cl.viper.SetConfigType("yaml")

	cl.viper.SetEnvPrefix(cl.envPrefix)
	cl.viper.AutomaticEnv()
	cl.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cl.bindEnvVars()
	cl.setDefaults()

	if err := cl.loadConfigFile(); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	var config Config
	if err := cl.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cl.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// loadConfigFile 加载配置文件
// 一次性命令行工具，没有配置文件时完全依赖默认值
func (cl *ConfigLoader) loadConfigFile() error {
	if cl.configPath == "" {
		cl.configPath = os.Getenv(cl.envPrefix + "_CONFIG_PATH")
	}

	// 显式指定的配置文件必须存在
	if ext := strings.ToLower(filepath.Ext(cl.configPath)); ext == ".yaml" || ext == ".yml" {
		cl.viper.SetConfigFile(cl.configPath)
		return cl.viper.ReadInConfig()
	}

	if cl.configPath != "" {
		cl.viper.AddConfigPath(cl.configPath)
	}
	cl.viper.AddConfigPath("./configs")
	cl.viper.AddConfigPath(".")

	cl.viper.SetConfigName(fmt.Sprintf("config.%s", cl.getEnvironment()))
	err := cl.viper.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return err
	}

	cl.viper.SetConfigName("config")
	if err := cl.viper.ReadInConfig(); err != nil {
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// getEnvironment 获取运行环境
func (cl *ConfigLoader) getEnvironment() string {
	env := os.Getenv(cl.envPrefix + "_ENV")
	if env == "" {
		env = os.Getenv("GO_ENV")
	}
	if env == "" {
		env = "production"
	}
	return env
}

// bindEnvVars 绑定环境变量
func (cl *ConfigLoader) bindEnvVars() {
	// 历史遗留的报告路径变量
	cl.viper.BindEnv("output.report_path", cl.envPrefix+"_OUTPUT_REPORT")
	cl.viper.BindEnv("output.metrics_file", cl.envPrefix+"_METRICS_FILE")

	cl.viper.BindEnv("log.level", cl.envPrefix+"_LOG_LEVEL")
	cl.viper.BindEnv("log.file_path", cl.envPrefix+"_LOG_FILE_PATH")

	cl.viper.BindEnv("extractor.interactive", cl.envPrefix+"_INTERACTIVE")
	cl.viper.BindEnv("extractor.command_timeout", cl.envPrefix+"_COMMAND_TIMEOUT")

	cl.viper.BindEnv("routinator.config_file", cl.envPrefix+"_ROUTINATOR_CONFIG")
}

// setDefaults 设置默认值
func (cl *ConfigLoader) setDefaults() {
	cl.viper.SetDefault("app.name", "mirak-extractor")
	cl.viper.SetDefault("app.environment", "production")

	cl.viper.SetDefault("log.level", "fatal")
	cl.viper.SetDefault("log.format", "text")
	cl.viper.SetDefault("log.output", "stderr")
	cl.viper.SetDefault("log.file_path", "./logs/extractor.log")
	cl.viper.SetDefault("log.max_size", 10)
	cl.viper.SetDefault("log.max_backups", 3)
	cl.viper.SetDefault("log.max_age", 28)
	cl.viper.SetDefault("log.compress", true)
	cl.viper.SetDefault("log.caller", false)

	cl.viper.SetDefault("extractor.identity_sources", []string{"os-release", "lsb-release", "issue"})
	cl.viper.SetDefault("extractor.paths.os_release", "/etc/os-release")
	cl.viper.SetDefault("extractor.paths.lsb_release", "/etc/lsb-release")
	cl.viper.SetDefault("extractor.paths.issue", "/etc/issue")
	cl.viper.SetDefault("extractor.interactive", true)
	cl.viper.SetDefault("extractor.command_timeout", "5m")
	cl.viper.SetDefault("extractor.show_progress", true)
	cl.viper.SetDefault("extractor.strategic_paths", []string{
		"/etc/routinator/routinator.conf",
		"/var/lib/routinator/rpki-cache",
		"/var/lib/routinator/tals",
	})

	cl.viper.SetDefault("output.report_path", "./mirak.json")
	cl.viper.SetDefault("output.metrics_file", "")
	cl.viper.SetDefault("output.summary", true)

	cl.viper.SetDefault("routinator.config_file", "/etc/routinator/routinator.conf")
}

// validateConfig 验证配置
func (cl *ConfigLoader) validateConfig(config *Config) error {
	if config.Output == nil || config.Output.ReportPath == "" {
		return fmt.Errorf("output report path is required")
	}
	if config.Extractor == nil {
		return fmt.Errorf("extractor config is required")
	}
	if len(config.Extractor.IdentitySources) == 0 {
		return fmt.Errorf("at least one identity source is required")
	}
	for _, src := range config.Extractor.IdentitySources {
		if config.Extractor.Paths.PathFor(strings.ToLower(strings.TrimSpace(src))) == "" {
			return fmt.Errorf("unknown identity source or empty path: %q", src)
		}
	}
	if config.Extractor.CommandTimeout < time.Second {
		return fmt.Errorf("command timeout too short: %s", config.Extractor.CommandTimeout)
	}
	return nil
}

// GetConfigPath 获取实际使用的配置文件路径，未使用配置文件时为空
func (cl *ConfigLoader) GetConfigPath() string {
	return cl.viper.ConfigFileUsed()
}
