package config

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	// File switches output from stdout to a size-rotated log file.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// RefreshConfig holds the refresh settings the monitor starts with. Both can be
// changed at runtime through the API.
type RefreshConfig struct {
	IntervalMs uint64 `mapstructure:"interval_ms"`
	Paused     bool   `mapstructure:"paused"`
}

type AuthConfig struct {
	Enable          bool        `mapstructure:"enable"`
	RsaPublicKeyPem SecretValue `mapstructure:"rsa_public_key_pem"`
}

type NotifyConfig struct {
	// Buffer is the per-subscriber event queue length.
	Buffer int `mapstructure:"buffer"`
}

type ProcmonConfig struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Refresh RefreshConfig `mapstructure:"refresh"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Notify  NotifyConfig  `mapstructure:"notify"`
}

// SecretValue keeps key material out of log output.
type SecretValue string

func (s SecretValue) Value() string {
	return string(s)
}

func (s SecretValue) String() string {
	if s == "" {
		return ""
	}
	return "******"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1:7420")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 50)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("refresh.interval_ms", 1000)
	v.SetDefault("refresh.paused", false)
	v.SetDefault("auth.enable", false)
	v.SetDefault("auth.rsa_public_key_pem", "")
	v.SetDefault("notify.buffer", 64)
}

func InitProcmonConfig(configName string, configPath string) (ProcmonConfig, error) {
	var cfg ProcmonConfig
	v := viper.New()
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = "procmon_config"
	}
	v.AddConfigPath(".")
	v.AddConfigPath(GetAbsPath("config"))
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.SetEnvPrefix("PROCMON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	err := v.ReadInConfig()
	if err != nil {
		return cfg, err
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// GetAbsPath returns the absolute path by joining the given paths with the project root directory
func GetAbsPath(paths ...string) string {
	_, filePath, _, _ := runtime.Caller(0)
	basePath := filepath.Dir(filePath)
	rootPath := filepath.Join(basePath, "..")
	return filepath.Join(rootPath, filepath.Join(paths...))
}
