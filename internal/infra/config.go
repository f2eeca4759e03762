package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPort is used when neither config nor command line provide one.
const DefaultPort = 8000

// Config는 목 서버의 모든 설정을 담습니다.
// LoadConfig로 로드된 후에 환경 변수를 통해 값을 덮어씁니다.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Port        int    `yaml:"port"`
		FixtureRoot string `yaml:"fixture_root"`
	} `yaml:"server"`

	Stream struct {
		TickIntervalMS  int `yaml:"tick_interval_ms"`
		PingIntervalSec int `yaml:"ping_interval_sec"`
	} `yaml:"stream"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no config file exists.
// The mock must run from a bare fixtures directory with zero setup.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Name = "ARB Platform API"
	cfg.App.Version = "0.1.0"
	cfg.Server.Port = DefaultPort
	cfg.Server.FixtureRoot = "."
	cfg.Stream.TickIntervalMS = 1000
	cfg.Stream.PingIntervalSec = 30
	cfg.Logging.Level = "info"
	return cfg
}

// LoadConfig는 설정 파일을 읽고 파싱합니다. 파일이 없으면 기본값을 사용합니다.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Server.Port)
	}
	if c.Server.FixtureRoot == "" {
		return fmt.Errorf("fixture root must not be empty")
	}
	if c.Stream.TickIntervalMS <= 0 {
		return fmt.Errorf("stream tick interval must be positive")
	}
	if c.Stream.PingIntervalSec <= 0 {
		return fmt.Errorf("stream ping interval must be positive")
	}
	return nil
}

// TickInterval returns the stream quote push interval.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Stream.TickIntervalMS) * time.Millisecond
}

// PingInterval returns the stream keepalive interval.
func (c *Config) PingInterval() time.Duration {
	return time.Duration(c.Stream.PingIntervalSec) * time.Second
}

// overrideWithEnv는 환경 변수가 존재할 경우 설정 값을 덮어씁니다.
func overrideWithEnv(cfg *Config) {
	if port := os.Getenv("ARB_MOCK_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if root := os.Getenv("ARB_MOCK_ROOT"); root != "" {
		cfg.Server.FixtureRoot = root
	}
	if level := os.Getenv("ARB_MOCK_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
