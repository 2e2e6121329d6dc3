package config

import (
	"errors"
	"path/filepath"
	"sort"

	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Toolkits           []string      `toml:"toolkits"`
	Kubeconfig         string        `toml:"kubeconfig"`
	Context            string        `toml:"context"`
	ReadOnly           bool          `toml:"read_only"`
	DisableDestructive bool          `toml:"disable_destructive"`
	LogLevel           string        `toml:"log_level"`
	HTTPAddr           string        `toml:"http_addr"`
	MetricsAddr        string        `toml:"metrics_addr"`
	Safety             SafetyConfig  `toml:"safety"`
	Timeouts           TimeoutConfig `toml:"timeouts"`
	Cache              CacheConfig   `toml:"cache"`
}

type SafetyConfig struct {
	AllowDestructiveTools []string `toml:"allow_destructive_tools"`
}

type TimeoutConfig struct {
	DefaultSeconds int            `toml:"default_seconds"`
	MaxSeconds     int            `toml:"max_seconds"`
	PerTool        map[string]int `toml:"per_tool"`
}

type CacheConfig struct {
	ResponseTTLSeconds int `toml:"response_ttl_seconds"`
}

type Overrides struct {
	Toolkits           *[]string
	Kubeconfig         *string
	Context            *string
	ReadOnly           *bool
	DisableDestructive *bool
	LogLevel           *string
	HTTPAddr           *string
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Timeouts: TimeoutConfig{
			DefaultSeconds: 30,
			MaxSeconds:     120,
		},
		Cache: CacheConfig{
			ResponseTTLSeconds: 60,
		},
	}
}

func Load(path string, dir string, overrides Overrides) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		merge(&cfg, fileCfg)
	}

	if dir != "" {
		files, err := dropInFiles(dir)
		if err != nil {
			return cfg, err
		}
		for _, file := range files {
			fileCfg, err := readFile(file)
			if err != nil {
				return cfg, err
			}
			merge(&cfg, fileCfg)
		}
	}

	applyOverrides(&cfg, overrides)
	return cfg, nil
}

func readFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err != nil {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func dropInFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func merge(dst *Config, src Config) {
	if len(src.Toolkits) > 0 {
		dst.Toolkits = append([]string{}, src.Toolkits...)
	}
	if src.Kubeconfig != "" {
		dst.Kubeconfig = src.Kubeconfig
	}
	if src.Context != "" {
		dst.Context = src.Context
	}
	if src.ReadOnly {
		dst.ReadOnly = src.ReadOnly
	}
	if src.DisableDestructive {
		dst.DisableDestructive = src.DisableDestructive
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.HTTPAddr != "" {
		dst.HTTPAddr = src.HTTPAddr
	}
	if src.MetricsAddr != "" {
		dst.MetricsAddr = src.MetricsAddr
	}
	if len(src.Safety.AllowDestructiveTools) > 0 {
		dst.Safety.AllowDestructiveTools = append([]string{}, src.Safety.AllowDestructiveTools...)
	}
	if src.Timeouts.DefaultSeconds > 0 {
		dst.Timeouts.DefaultSeconds = src.Timeouts.DefaultSeconds
	}
	if src.Timeouts.MaxSeconds > 0 {
		dst.Timeouts.MaxSeconds = src.Timeouts.MaxSeconds
	}
	if len(src.Timeouts.PerTool) > 0 {
		dst.Timeouts.PerTool = map[string]int{}
		for name, seconds := range src.Timeouts.PerTool {
			dst.Timeouts.PerTool[name] = seconds
		}
	}
	if src.Cache.ResponseTTLSeconds > 0 {
		dst.Cache.ResponseTTLSeconds = src.Cache.ResponseTTLSeconds
	}
}

func applyOverrides(cfg *Config, overrides Overrides) {
	if overrides.Toolkits != nil {
		cfg.Toolkits = append([]string{}, (*overrides.Toolkits)...)
	}
	if overrides.Kubeconfig != nil {
		cfg.Kubeconfig = *overrides.Kubeconfig
	}
	if overrides.Context != nil {
		cfg.Context = *overrides.Context
	}
	if overrides.ReadOnly != nil {
		cfg.ReadOnly = *overrides.ReadOnly
	}
	if overrides.DisableDestructive != nil {
		cfg.DisableDestructive = *overrides.DisableDestructive
	}
	if overrides.LogLevel != nil {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.HTTPAddr != nil {
		cfg.HTTPAddr = *overrides.HTTPAddr
	}
}
