package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// APIKeyEnv 是API Key的环境变量兜底
const APIKeyEnv = "SHODAN_API_KEY"

// ErrNoAPIKey 表示参数、配置文件和环境变量都没有提供API Key
var ErrNoAPIKey = errors.New("no se encontró la API key: usa -k, el archivo de configuración o la variable SHODAN_API_KEY")

// Config 是可选YAML配置文件的结构，命令行参数优先于这里的值
type Config struct {
	APIKey string `yaml:"api_key"`

	Query struct {
		Pages        int     `yaml:"pages"`
		PageSize     int     `yaml:"page_size"`
		DelaySeconds float64 `yaml:"delay_seconds"`
	} `yaml:"query"`

	Analysis struct {
		MinIPsPerCIDR int `yaml:"min_ips_per_cidr"`
		MinPortsPerIP int `yaml:"min_ports_per_ip"`
	} `yaml:"analysis"`

	Output struct {
		Database string `yaml:"database"`
		CSV      string `yaml:"csv"`
	} `yaml:"output"`
}

// Default 返回和命令行默认值一致的配置
func Default() *Config {
	cfg := &Config{}
	cfg.Query.Pages = 1
	cfg.Query.PageSize = 100
	cfg.Query.DelaySeconds = 1.0
	return cfg
}

// Load 读取YAML配置文件。path为空时直接返回默认配置。
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return cfg, nil
}

// ResolveAPIKey 解析API Key：显式参数 > 配置文件 > 环境变量，
// 都没有时返回 ErrNoAPIKey。
func ResolveAPIKey(explicit, fromFile string) (string, error) {
	if k := strings.TrimSpace(explicit); k != "" {
		return k, nil
	}
	if k := strings.TrimSpace(fromFile); k != "" {
		return k, nil
	}
	if k := strings.TrimSpace(os.Getenv(APIKeyEnv)); k != "" {
		return k, nil
	}
	return "", ErrNoAPIKey
}
