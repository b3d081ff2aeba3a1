package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SerialConfig 串口连接参数。
// 数据位 8、停止位 1、无校验由协议固定，不作为配置项。
type SerialConfig struct {
	Port        string        `mapstructure:"port"`
	Baud        int           `mapstructure:"baud"`
	ReadTimeout time.Duration `mapstructure:"readTimeout"`
}

// ExchangeConfig 重试预算与退避
type ExchangeConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Backoff  time.Duration `mapstructure:"backoff"`
}

// LumberjackConfig 日志滚动（lumberjack）配置
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig 日志级别与输出配置
type LoggingConfig struct {
	Level  string           `mapstructure:"level"`
	Format string           `mapstructure:"format"`
	File   LumberjackConfig `mapstructure:"file"`
}

// Config 顶层配置结构
type Config struct {
	Serial   SerialConfig   `mapstructure:"serial"`
	Exchange ExchangeConfig `mapstructure:"exchange"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Load 从 YAML/TOML/JSON 文件与环境变量加载配置。
// 若 path 为空，则尝试从环境变量 AQUOS_CONFIG 读取；否则回退到 ./configs。
// 配置文件缺失时依赖默认值与环境变量运行。
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		path = v.GetString("AQUOS_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("example")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	// 环境变量覆盖：前缀 AQUOS_，点号替换为下划线
	v.SetEnvPrefix("AQUOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if fmt.Sprintf("%T", err) != fmt.Sprintf("%T", notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 基本合法性检查
func (c *Config) Validate() error {
	if c.Serial.Port == "" {
		return fmt.Errorf("config: serial.port must not be empty")
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("config: serial.baud must be positive")
	}
	if c.Serial.ReadTimeout <= 0 {
		return fmt.Errorf("config: serial.readTimeout must be positive")
	}
	if c.Exchange.Attempts < 1 {
		return fmt.Errorf("config: exchange.attempts must be at least 1")
	}
	if c.Exchange.Backoff < 0 {
		return fmt.Errorf("config: exchange.backoff must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serial.port", "/dev/ttyUSB0")
	v.SetDefault("serial.baud", 9600)
	v.SetDefault("serial.readTimeout", "1000ms")

	v.SetDefault("exchange.attempts", 6)
	v.SetDefault("exchange.backoff", "2s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "logs/aquosctl.log")
	v.SetDefault("logging.file.maxSize", 10)
	v.SetDefault("logging.file.maxBackups", 3)
	v.SetDefault("logging.file.maxAge", 7)
	v.SetDefault("logging.file.compress", false)
}
